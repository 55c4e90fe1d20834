package arena

import (
	"fmt"
	"math"
	"math/rand"
)

// Phase is the session lifecycle stage.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseBattle
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseBattle:
		return "battle"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Outcome is the battle result, undecided until the result phase.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomePlayerWins
	OutcomePlayerLoses
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWins:
		return "player_wins"
	case OutcomePlayerLoses:
		return "player_loses"
	default:
		return "undecided"
	}
}

const (
	// Scoring: flat base for the win, a bonus per surviving fighter, and a
	// time bonus per full second under par.
	scoreWinBase        = 1000
	scorePerFighter     = 100
	scorePerSecondUnder = 10
	scoreParSeconds     = 180.0

	// Formation reference frame: slots are laid out ahead of the commander.
	formationForwardOffset = 8.0

	animalSpawnDistance = 0.75 // of arena half-extent, along -X from centre
	commanderSpawnX     = 0.6  // of arena half-extent, along +X

	tickRate = 60
)

// difficultyScale maps the difficulty config key to an animal stat multiplier
// on health and attack power. Unknown values behave as normal.
func difficultyScale(d string) float64 {
	switch d {
	case "easy":
		return 0.8
	case "hard":
		return 1.25
	default:
		return 1.0
	}
}

// TickContext is the explicit per-tick simulation context handed to every
// engine. All shared state flows through it; nothing in the package reads
// globals.
type TickContext struct {
	Fighters  []*Fighter
	Commander *Commander
	Animal    *Animal

	Combat  *CombatResolver
	Effects *EffectQueue
	Rng     floatSource
	Log     *SimLog

	Now  float64 // battle clock, seconds
	Tick int

	Formation       FormationKind
	FighterTotal    int
	FormationCenter Vec3
	FormationFacing float64

	arenaHalf float64
}

// ClampToArena keeps a position inside the square arena floor.
func (ctx *TickContext) ClampToArena(p Vec3) Vec3 {
	p.X = clamp(p.X, -ctx.arenaHalf, ctx.arenaHalf)
	p.Z = clamp(p.Z, -ctx.arenaHalf, ctx.arenaHalf)
	p.Y = 0
	return p
}

// Battle owns one session: the roster, the animal, the clock, and the phase
// machine. All mutation happens inside Update or the explicit input methods.
type Battle struct {
	cfg Config

	phase   Phase
	outcome Outcome
	clock   float64
	tick    int
	score   int

	fighters  []*Fighter
	commander *Commander
	animal    *Animal
	formation FormationKind

	combat  *CombatResolver
	effects *EffectQueue
	rng     *rand.Rand
	seed    int64
	log     *SimLog

	// everFielded records that at least one fighter entered the battle, so
	// the loss condition can distinguish "all fighters dead" from "none yet".
	everFielded bool

	// Commander input, set by the presentation layer between ticks.
	moveIntent Vec3
	attackHeld bool
}

// NewBattle creates a session in the setup phase. The seed drives every
// random draw in the session; equal seeds and inputs replay identically.
func NewBattle(cfg Config, seed int64) *Battle {
	b := &Battle{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
		effects: NewEffectQueue(),
		log:     NewSimLog(),
	}
	b.combat = NewCombatResolver(b.rng, b.effects)
	b.spawn()
	return b
}

func (b *Battle) spawn() {
	half := b.cfg.ArenaSize / 2
	b.commander = NewCommander(Vec3{X: half * commanderSpawnX})
	b.animal = NewAnimal(b.cfg.AnimalType, Vec3{X: -half * animalSpawnDistance})

	scale := difficultyScale(b.cfg.Difficulty)
	b.animal.MaxHealth *= scale
	b.animal.Health = b.animal.MaxHealth
	b.animal.AttackPower *= scale

	b.phase = PhaseSetup
	b.outcome = OutcomeUndecided
	b.formation = FormationCircle
	b.log.Add(b.tick, b.animal.ID, "session", "animal_type", b.animal.Profile.Type, b.animal.MaxHealth)
}

// Reset discards the battle and returns to a fresh setup phase atomically:
// roster cleared, clock zeroed, pending effects dropped. The random stream
// restarts from the original seed.
func (b *Battle) Reset() {
	b.fighters = nil
	b.clock = 0
	b.tick = 0
	b.score = 0
	b.everFielded = false
	b.moveIntent = Vec3{}
	b.attackHeld = false
	b.effects.Clear()
	b.log = NewSimLog()
	b.rng = rand.New(rand.NewSource(b.seed))
	b.combat = NewCombatResolver(b.rng, b.effects)
	b.spawn()
}

// PlaceFighter adds one fighter at pos during setup. It fails when the roster
// is full or the phase is wrong; the session is otherwise untouched.
func (b *Battle) PlaceFighter(pos Vec3) (*Fighter, error) {
	if b.phase != PhaseSetup {
		return nil, fmt.Errorf("place fighter: phase is %s, want setup", b.phase)
	}
	if len(b.fighters) >= b.cfg.MaxFighters {
		return nil, fmt.Errorf("place fighter: roster full (%d)", b.cfg.MaxFighters)
	}
	pos.Y = 0
	pos.X = clamp(pos.X, -b.cfg.ArenaSize/2, b.cfg.ArenaSize/2)
	pos.Z = clamp(pos.Z, -b.cfg.ArenaSize/2, b.cfg.ArenaSize/2)
	f := NewFighter(len(b.fighters), pos)
	b.fighters = append(b.fighters, f)
	b.log.Add(b.tick, f.ID, "roster", "placed", "", float64(len(b.fighters)))
	return f, nil
}

// SetFormation changes the roster's formation shape. Valid in any phase;
// fighters steer toward the new slots on the next tick.
func (b *Battle) SetFormation(kind FormationKind) {
	b.formation = kind
	b.log.Add(b.tick, commanderID, "command", "formation", kind.String(), 0)
}

// StartBattle moves from setup to battle. At least one fighter must be
// fielded.
func (b *Battle) StartBattle() error {
	if b.phase != PhaseSetup {
		return fmt.Errorf("start battle: phase is %s, want setup", b.phase)
	}
	if len(b.fighters) == 0 {
		return fmt.Errorf("start battle: no fighters placed")
	}
	b.phase = PhaseBattle
	b.everFielded = true
	b.log.Add(b.tick, commanderID, "session", "battle_start", "", float64(len(b.fighters)))
	return nil
}

// SetMoveIntent sets the commander's movement direction for upcoming ticks.
// Zero means hold position. The vector is normalized internally.
func (b *Battle) SetMoveIntent(dir Vec3) {
	dir.Y = 0
	b.moveIntent = dir.Normalized()
}

// SetAttackHeld latches the commander's attack input. While held, the
// commander swings at the animal whenever in range and off cooldown.
func (b *Battle) SetAttackHeld(held bool) {
	b.attackHeld = held
}

// Rally flags every live fighter inside the commander's influence radius.
// The flag is consumed by each fighter's next steering tick: a stronger pull
// back toward the commander and a one-swing damage bonus.
func (b *Battle) Rally() {
	if b.phase != PhaseBattle || !b.commander.Alive() {
		return
	}
	n := 0
	for _, f := range b.fighters {
		if f.Alive() && InRadius(b.commander.Pos, f.Pos, influenceRadius) {
			f.Influenced = true
			n++
		}
	}
	b.effects.Push(Effect{Kind: EffectRallyRing, UnitID: commanderID, Pos: b.commander.Pos, At: b.clock})
	b.log.Add(b.tick, commanderID, "command", "rally", "", float64(n))
}

// Update advances the simulation one tick. Outside the battle phase it is a
// no-op; the clock and units only move while the battle runs.
func (b *Battle) Update(dt float64) {
	if b.phase != PhaseBattle {
		return
	}
	b.tick++
	b.clock += dt

	ctx := b.tickContext()

	// Damage landing on the animal this tick feeds its rage model.
	before := b.animal.Health

	b.updateCommander(ctx, dt)
	for _, f := range b.fighters {
		f.Update(ctx, dt)
	}
	if dealt := before - b.animal.Health; dealt > 0 {
		b.animal.NoteDamage(dealt)
	}

	b.animal.Update(ctx, dt)

	b.checkEnd()
}

func (b *Battle) tickContext() *TickContext {
	facing := b.commander.Facing
	center := b.commander.Pos.Add(HeadingVec(facing).Scale(formationForwardOffset))
	return &TickContext{
		Fighters:        b.fighters,
		Commander:       b.commander,
		Animal:          b.animal,
		Combat:          b.combat,
		Effects:         b.effects,
		Rng:             b.rng,
		Log:             b.log,
		Now:             b.clock,
		Tick:            b.tick,
		Formation:       b.formation,
		FighterTotal:    len(b.fighters),
		FormationCenter: center,
		FormationFacing: facing,
		arenaHalf:       b.cfg.ArenaSize / 2,
	}
}

// updateCommander applies player input: movement at the commander's speed
// and, while the attack input is held, swings at the animal in range.
func (b *Battle) updateCommander(ctx *TickContext, dt float64) {
	cmd := b.commander
	if !cmd.Alive() {
		return
	}
	if cmd.TickStun(dt) {
		cmd.State = StateStunned
		return
	}

	cmd.Vel = b.moveIntent.Scale(cmd.MoveSpeed).Add(cmd.Knock)
	cmd.Knock = cmd.Knock.Scale(knockbackDecay)
	if cmd.Knock.LenSq() < 1e-6 {
		cmd.Knock = Vec3{}
	}
	cmd.Pos = ctx.ClampToArena(cmd.Pos.Add(cmd.Vel.Scale(dt)))
	if cmd.Vel.LenSq() > 1e-6 {
		cmd.Facing = LerpAngle(cmd.Facing, cmd.Vel.Heading(), clamp01(fighterTurnSmoothing*dt))
	}
	cmd.State = StateIdle
	if b.moveIntent.LenSq() > 0 {
		cmd.State = StateMoving
	}

	if b.attackHeld && b.animal.Alive() && InRadius(cmd.Pos, b.animal.Pos, cmd.AttackRange) {
		cmd.State = StateAttacking
		if b.combat.Attack(&cmd.Unit, []*Unit{&b.animal.Unit}, cmd.AttackPower, b.clock) {
			b.log.Add(b.tick, commanderID, "combat", "commander_hit", "", b.animal.Health)
		}
	}
}

// checkEnd evaluates win/loss and, on either, freezes the battle in the
// result phase with a final score.
func (b *Battle) checkEnd() {
	if b.animal.Health <= 0 {
		b.finish(OutcomePlayerWins)
		return
	}
	if b.commander.Alive() {
		return
	}
	if b.everFielded && b.aliveFighters() == 0 {
		b.finish(OutcomePlayerLoses)
	}
}

func (b *Battle) finish(o Outcome) {
	b.phase = PhaseResult
	b.outcome = o
	b.score = b.computeScore(o)
	b.log.Add(b.tick, commanderID, "session", "outcome", o.String(), float64(b.score))
}

// computeScore: a win is worth the flat base plus bonuses for surviving
// fighters and for beating par; a loss scores zero.
func (b *Battle) computeScore(o Outcome) int {
	if o != OutcomePlayerWins {
		return 0
	}
	score := scoreWinBase + scorePerFighter*b.aliveFighters()
	if under := scoreParSeconds - b.clock; under > 0 {
		score += scorePerSecondUnder * int(math.Floor(under))
	}
	return score
}

func (b *Battle) aliveFighters() int {
	n := 0
	for _, f := range b.fighters {
		if f.Alive() {
			n++
		}
	}
	return n
}

// --- Read accessors for presentation and reporting ---

func (b *Battle) Phase() Phase              { return b.phase }
func (b *Battle) Outcome() Outcome          { return b.outcome }
func (b *Battle) Score() int                { return b.score }
func (b *Battle) Elapsed() float64          { return b.clock }
func (b *Battle) Fighters() []*Fighter      { return b.fighters }
func (b *Battle) Commander() *Commander     { return b.commander }
func (b *Battle) Animal() *Animal           { return b.animal }
func (b *Battle) Effects() *EffectQueue     { return b.effects }
func (b *Battle) Log() *SimLog              { return b.log }
func (b *Battle) Formation() FormationKind  { return b.formation }
func (b *Battle) ActiveConfig() Config      { return b.cfg }
func (b *Battle) Seed() int64               { return b.seed }

// Snapshot is a read-only summary for the HUD and the headless report.
type Snapshot struct {
	Phase         Phase
	Outcome       Outcome
	Elapsed       float64
	Score         int
	FightersAlive int
	FightersTotal int
	CommanderHP   float64 // ratio
	AnimalHP      float64 // ratio
	AnimalType    string
	AnimalState   UnitState
	Enraged       bool
	Behavior      BehaviorKind
}

// Snapshot captures the current session summary.
func (b *Battle) Snapshot() Snapshot {
	return Snapshot{
		Phase:         b.phase,
		Outcome:       b.outcome,
		Elapsed:       b.clock,
		Score:         b.score,
		FightersAlive: b.aliveFighters(),
		FightersTotal: len(b.fighters),
		CommanderHP:   b.commander.HealthRatio(),
		AnimalHP:      b.animal.HealthRatio(),
		AnimalType:    b.animal.Profile.Type,
		AnimalState:   b.animal.State,
		Enraged:       b.animal.Enraged,
		Behavior:      b.animal.CurrentBehavior,
	}
}
