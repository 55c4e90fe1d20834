package arena

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colorGround    = color.RGBA{R: 34, G: 51, B: 34, A: 255}
	colorArenaEdge = color.RGBA{R: 120, G: 110, B: 70, A: 255}
	colorFighter   = color.RGBA{R: 90, G: 200, B: 120, A: 255}
	colorFleeing   = color.RGBA{R: 220, G: 200, B: 80, A: 255}
	colorCommander = color.RGBA{R: 80, G: 150, B: 255, A: 255}
	colorAnimal    = color.RGBA{R: 150, G: 90, B: 50, A: 255}
	colorEnraged   = color.RGBA{R: 220, G: 60, B: 40, A: 255}
	colorDead      = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	colorHPBack    = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	colorHPFill    = color.RGBA{R: 70, G: 220, B: 70, A: 230}
	colorHPLow     = color.RGBA{R: 230, G: 70, B: 50, A: 230}
	colorSlot      = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	colorAttack    = color.RGBA{R: 255, G: 240, B: 180, A: 200}
	colorRally     = color.RGBA{R: 120, G: 180, B: 255, A: 180}
	colorStun      = color.RGBA{R: 255, G: 230, B: 60, A: 255}
	colorHUD       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

var hudFace = basicfont.Face7x13

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorGround)
	g.drawArena(screen)
	g.drawFormationSlots(screen)
	for _, f := range g.battle.Fighters() {
		g.drawFighter(screen, f)
	}
	g.drawCommander(screen)
	g.drawAnimal(screen)
	g.drawVisuals(screen)
	g.drawHUD(screen)
}

func (g *Game) drawArena(screen *ebiten.Image) {
	half := g.cfg.ArenaSize / 2
	x0, y0 := g.worldToScreen(Vec3{X: -half, Z: -half})
	x1, y1 := g.worldToScreen(Vec3{X: half, Z: half})
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, colorArenaEdge, false)
}

// drawFormationSlots shows where the current formation wants each fighter.
func (g *Game) drawFormationSlots(screen *ebiten.Image) {
	b := g.battle
	total := len(b.Fighters())
	if total == 0 {
		return
	}
	cmd := b.Commander()
	center := cmd.Pos.Add(HeadingVec(cmd.Facing).Scale(formationForwardOffset))
	for i := 0; i < total; i++ {
		slot := SlotPosition(b.Formation(), i, total, center, cmd.Facing)
		sx, sy := g.worldToScreen(slot)
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(0.4*g.camZoom), 1, colorSlot, false)
	}
}

func (g *Game) drawFighter(screen *ebiten.Image, f *Fighter) {
	sx, sy := g.worldToScreen(f.Pos)
	c := colorFighter
	switch f.State {
	case StateDead:
		c = colorDead
	case StateFleeing:
		c = colorFleeing
	}
	r := float32(0.5 * g.camZoom)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), r, c, false)
	if f.Alive() {
		g.drawFacing(screen, &f.Unit, 0.8)
		g.drawHealthBar(screen, &f.Unit, 1.2)
	}
}

func (g *Game) drawCommander(screen *ebiten.Image) {
	cmd := g.battle.Commander()
	sx, sy := g.worldToScreen(cmd.Pos)
	c := colorCommander
	if !cmd.Alive() {
		c = colorDead
	}
	r := float32(0.7 * g.camZoom)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), r, c, false)
	if cmd.Alive() {
		g.drawFacing(screen, &cmd.Unit, 1.1)
		g.drawHealthBar(screen, &cmd.Unit, 1.6)
		// Influence radius, faint.
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(influenceRadius*g.camZoom), 1, colorSlot, false)
	}
}

func (g *Game) drawAnimal(screen *ebiten.Image) {
	a := g.battle.Animal()
	sx, sy := g.worldToScreen(a.Pos)
	c := colorAnimal
	if a.Enraged {
		c = colorEnraged
	}
	if !a.Alive() {
		c = colorDead
	}
	c.A = uint8(255 * g.animalAlpha)
	r := float32(2.0 * g.camZoom)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), r, c, false)
	if a.Alive() {
		g.drawFacing(screen, &a.Unit, 2.8)
		g.drawHealthBar(screen, &a.Unit, 4.5)
	}
}

// drawFacing draws a short heading tick from the unit's centre.
func (g *Game) drawFacing(screen *ebiten.Image, u *Unit, length float64) {
	tip := u.Pos.Add(HeadingVec(u.Facing).Scale(length))
	x0, y0 := g.worldToScreen(u.Pos)
	x1, y1 := g.worldToScreen(tip)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, colorHUD, false)
}

func (g *Game) drawHealthBar(screen *ebiten.Image, u *Unit, halfWidth float64) {
	ratio := u.HealthRatio()
	x0, y0 := g.worldToScreen(Vec3{X: u.Pos.X - halfWidth, Z: u.Pos.Z})
	x1, _ := g.worldToScreen(Vec3{X: u.Pos.X + halfWidth, Z: u.Pos.Z})
	w := float32(x1 - x0)
	y := float32(y0) - float32(1.2*g.camZoom)
	fill := colorHPFill
	if ratio < 0.3 {
		fill = colorHPLow
	}
	vector.DrawFilledRect(screen, float32(x0), y, w, 3, colorHPBack, false)
	vector.DrawFilledRect(screen, float32(x0), y, w*float32(ratio), 3, fill, false)
}

func (g *Game) drawVisuals(screen *ebiten.Image) {
	for _, v := range g.visuals {
		frac := v.age / v.ttl
		e := v.effect
		switch e.Kind {
		case EffectAttackLine:
			src := g.unitByID(e.UnitID)
			dst := g.unitByID(e.Target)
			if src == nil || dst == nil {
				continue
			}
			x0, y0 := g.worldToScreen(src.Pos)
			x1, y1 := g.worldToScreen(dst.Pos)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, colorAttack, false)
		case EffectRallyRing:
			sx, sy := g.worldToScreen(e.Pos)
			radius := float32(frac * influenceRadius * g.camZoom)
			vector.StrokeCircle(screen, float32(sx), float32(sy), radius, 2, colorRally, false)
		case EffectStunStars:
			u := g.unitByID(e.UnitID)
			if u == nil {
				continue
			}
			sx, sy := g.worldToScreen(u.Pos)
			vector.DrawFilledCircle(screen, float32(sx), float32(sy)-float32(1.5*g.camZoom), 3, colorStun, false)
		case EffectKnockback:
			u := g.unitByID(e.UnitID)
			if u == nil {
				continue
			}
			sx, sy := g.worldToScreen(u.Pos)
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32(0.8*g.camZoom), 1, colorAttack, false)
		case EffectDefeatMark:
			sx, sy := g.worldToScreen(e.Pos)
			d := float32(0.6 * g.camZoom)
			vector.StrokeLine(screen, float32(sx)-d, float32(sy)-d, float32(sx)+d, float32(sy)+d, 2, colorDead, false)
			vector.StrokeLine(screen, float32(sx)-d, float32(sy)+d, float32(sx)+d, float32(sy)-d, 2, colorDead, false)
		case EffectEnrageTint:
			sx, sy := g.worldToScreen(e.Pos)
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32((2.5+frac*2)*g.camZoom), 2, colorEnraged, false)
		case EffectCalmTint:
			sx, sy := g.worldToScreen(e.Pos)
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32((2.5+frac*2)*g.camZoom), 2, colorCommander, false)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	snap := g.battle.Snapshot()
	line1 := fmt.Sprintf("phase: %s   fighters: %d/%d   commander: %.0f%%   %s: %.0f%% [%s]",
		snap.Phase, snap.FightersAlive, snap.FightersTotal,
		snap.CommanderHP*100, snap.AnimalType, snap.AnimalHP*100, snap.AnimalState)
	if snap.Enraged {
		line1 += "  ENRAGED"
	}
	text.Draw(screen, line1, hudFace, 12, 20, colorHUD)

	switch snap.Phase {
	case PhaseSetup:
		text.Draw(screen, "click: place fighter   1-4: formation   enter: start", hudFace, 12, 38, colorHUD)
	case PhaseBattle:
		text.Draw(screen, fmt.Sprintf("%.1fs  wasd: move  space: attack  e: rally  1-4: formation  r: restart  speed x%.2g",
			snap.Elapsed, g.simSpeed), hudFace, 12, 38, colorHUD)
	case PhaseResult:
		msg := fmt.Sprintf("%s   score: %d   time: %.1fs   r: play again", snap.Outcome, snap.Score, snap.Elapsed)
		text.Draw(screen, msg, hudFace, screenWidth/2-len(msg)*7/2, screenHeight/2, colorHUD)
	}
}
