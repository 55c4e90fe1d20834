package arena

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	screenWidth  = 1280
	screenHeight = 800

	// visual effect lifetimes, seconds
	attackLineTTL = 0.15
	rallyRingTTL  = 0.5
	stunStarsTTL  = 0.4
	defeatMarkTTL = 1.2
	ambushTintTTL = 0.6
)

// visual is a live presentation marker spawned from a drained effect.
type visual struct {
	effect Effect
	age    float64
	ttl    float64
}

// Game is the Ebiten front-end around one Battle. It owns the camera, input
// edge detection, and the drained visual effects; the simulation itself never
// sees any of this.
type Game struct {
	battle *Battle
	cfg    Config

	camX    float64
	camY    float64
	camZoom float64

	simSpeed  float64
	tickAccum float64

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	visuals []visual

	// animalAlpha tracks the ambush fade tween, 1 = fully visible.
	animalAlpha float64
}

// NewGame creates the front-end with a fresh battle from the config.
func NewGame(cfg Config) *Game {
	g := &Game{
		battle:      NewBattle(cfg, time.Now().UnixNano()),
		cfg:         cfg,
		camZoom:     6.0,
		simSpeed:    1.0,
		prevKeys:    make(map[ebiten.Key]bool),
		animalAlpha: 1.0,
	}
	return g
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// keyPressed is an edge-triggered key check.
func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

func (g *Game) Update() error {
	g.handleGlobalInput()

	switch g.battle.Phase() {
	case PhaseSetup:
		g.handleSetupInput()
	case PhaseBattle:
		g.handleBattleInput()
	case PhaseResult:
		if g.keyPressed(ebiten.KeyR) {
			g.battle.Reset()
			g.visuals = nil
			g.animalAlpha = 1.0
		}
	}

	// Fixed-rate ticks scaled by sim speed.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.battle.Update(1.0 / tickRate)
	}

	g.drainEffects()
	g.ageVisuals(1.0 / tickRate)

	// Camera follows the commander.
	cmd := g.battle.Commander()
	g.camX += (cmd.Pos.X - g.camX) * 0.1
	g.camY += (cmd.Pos.Z - g.camY) * 0.1

	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		g.camZoom = clamp(g.camZoom*math.Pow(1.1, wheelY), 2.0, 20.0)
	}
	return nil
}

func (g *Game) handleGlobalInput() {
	if g.keyPressed(ebiten.KeyF2) {
		if err := clipboard.WriteAll(g.debugReport()); err != nil {
			log.Printf("clipboard copy failed: %v", err)
		}
	}
	if g.keyPressed(ebiten.KeyMinus) {
		g.simSpeed = clamp(g.simSpeed/2, 0.25, 4)
	}
	if g.keyPressed(ebiten.KeyEqual) {
		g.simSpeed = clamp(g.simSpeed*2, 0.25, 4)
	}
}

// handleSetupInput: click to place fighters, number keys to pick a formation,
// Enter to start.
func (g *Game) handleSetupInput() {
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if down && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		pos := g.screenToWorld(float64(mx), float64(my))
		if _, err := g.battle.PlaceFighter(pos); err != nil {
			log.Printf("%v", err)
		}
	}
	g.prevMouseLeft = down

	g.handleFormationKeys()
	if g.keyPressed(ebiten.KeyEnter) {
		if err := g.battle.StartBattle(); err != nil {
			log.Printf("%v", err)
		}
	}
}

// handleBattleInput: WASD moves the commander, Space attacks, E rallies.
func (g *Game) handleBattleInput() {
	var dir Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Z -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Z += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X += 1
	}
	g.battle.SetMoveIntent(dir)
	g.battle.SetAttackHeld(ebiten.IsKeyPressed(ebiten.KeySpace))
	if g.keyPressed(ebiten.KeyE) {
		g.battle.Rally()
	}
	g.handleFormationKeys()
	if g.keyPressed(ebiten.KeyR) {
		g.battle.Reset()
		g.visuals = nil
		g.animalAlpha = 1.0
	}
}

func (g *Game) handleFormationKeys() {
	switch {
	case g.keyPressed(ebiten.Key1):
		g.battle.SetFormation(FormationCircle)
	case g.keyPressed(ebiten.Key2):
		g.battle.SetFormation(FormationLine)
	case g.keyPressed(ebiten.Key3):
		g.battle.SetFormation(FormationArrow)
	case g.keyPressed(ebiten.Key4):
		g.battle.SetFormation(FormationScatter)
	}
}

// drainEffects converts queued simulation effects into timed visuals. Unit
// IDs are resolved against the current roster; effects referring to units a
// reset disposed of are dropped here.
func (g *Game) drainEffects() {
	for _, e := range g.battle.Effects().Drain() {
		switch e.Kind {
		case EffectAmbushFade:
			g.animalAlpha = 0.35
			continue
		case EffectAmbushLunge:
			g.animalAlpha = 1.0
			continue
		}
		ttl := attackLineTTL
		switch e.Kind {
		case EffectRallyRing:
			ttl = rallyRingTTL
		case EffectStunStars:
			ttl = stunStarsTTL
		case EffectDefeatMark:
			ttl = defeatMarkTTL
		case EffectEnrageTint, EffectCalmTint:
			ttl = ambushTintTTL
		}
		if g.unitByID(e.UnitID) == nil && e.Kind != EffectDefeatMark {
			continue
		}
		g.visuals = append(g.visuals, visual{effect: e, ttl: ttl})
	}
}

func (g *Game) ageVisuals(dt float64) {
	keep := g.visuals[:0]
	for _, v := range g.visuals {
		v.age += dt
		if v.age < v.ttl {
			keep = append(keep, v)
		}
	}
	g.visuals = keep
}

// unitByID resolves a roster handle to a live unit, or nil.
func (g *Game) unitByID(id int) *Unit {
	switch {
	case id == commanderID:
		return &g.battle.Commander().Unit
	case id == g.battle.Animal().ID:
		return &g.battle.Animal().Unit
	default:
		for _, f := range g.battle.Fighters() {
			if f.ID == id {
				return &f.Unit
			}
		}
	}
	return nil
}

// worldToScreen projects an arena-floor position into screen pixels.
func (g *Game) worldToScreen(p Vec3) (float64, float64) {
	return (p.X-g.camX)*g.camZoom + screenWidth/2,
		(p.Z-g.camY)*g.camZoom + screenHeight/2
}

func (g *Game) screenToWorld(sx, sy float64) Vec3 {
	return Vec3{
		X: (sx-screenWidth/2)/g.camZoom + g.camX,
		Z: (sy-screenHeight/2)/g.camZoom + g.camY,
	}
}

// debugReport renders a text snapshot suitable for pasting into a bug report.
func (g *Game) debugReport() string {
	snap := g.battle.Snapshot()
	return fmt.Sprintf(
		"--- battle debug report ---\nseed=%d phase=%s outcome=%s elapsed=%.1fs\nfighters=%d/%d commander_hp=%.0f%% animal=%s hp=%.0f%% state=%s behavior=%s enraged=%v\n\n%s",
		g.battle.Seed(), snap.Phase, snap.Outcome, snap.Elapsed,
		snap.FightersAlive, snap.FightersTotal, snap.CommanderHP*100,
		snap.AnimalType, snap.AnimalHP*100, snap.AnimalState, snap.Behavior, snap.Enraged,
		g.battle.Log().Summary(),
	)
}
