package arena

import (
	"fmt"
	"math"
)

// TestSim is a headless battle harness used exclusively by tests. It mirrors
// the game loop's Update cadence without any Ebiten dependency and adds
// per-tick state-change logging on top of the battle's own event log.
type TestSim struct {
	Battle *Battle

	cfg  Config
	seed int64

	// Scripted combat randomness, replacing the seeded stream when set.
	combatRng floatSource
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config and seed, applied first
	simOptUnit                       // place fighters, move units, override stats
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the session seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithArenaSize sets the arena side length.
func WithArenaSize(size float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.ArenaSize = size
	}}
}

// WithMaxFighters caps the roster.
func WithMaxFighters(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.MaxFighters = n
	}}
}

// WithAnimalType selects the opponent from the catalog.
func WithAnimalType(name string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.AnimalType = name
	}}
}

// WithDifficulty sets the difficulty scaling key.
func WithDifficulty(d string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Difficulty = d
	}}
}

// WithCombatRng substitutes a scripted random source for combat resolution,
// pinning damage variance and stun rolls exactly.
func WithCombatRng(src floatSource) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.combatRng = src
	}}
}

// WithFighterAt places one fighter at (x, z) during setup.
func WithFighterAt(x, z float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		if _, err := ts.Battle.PlaceFighter(Vec3{X: x, Z: z}); err != nil {
			panic(fmt.Sprintf("test harness: %v", err))
		}
	}}
}

// WithFighterRing places n fighters evenly on a ring around the commander.
func WithFighterRing(n int, radius float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		center := ts.Battle.Commander().Pos
		for i := 0; i < n; i++ {
			angle := 2 * math.Pi * float64(i) / float64(n)
			p := center.Add(Vec3{X: math.Cos(angle) * radius, Z: math.Sin(angle) * radius})
			if _, err := ts.Battle.PlaceFighter(p); err != nil {
				panic(fmt.Sprintf("test harness: %v", err))
			}
		}
	}}
}

// WithCommanderAt moves the commander to (x, z).
func WithCommanderAt(x, z float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.Battle.Commander().Pos = Vec3{X: x, Z: z}
	}}
}

// WithAnimalAt moves the animal to (x, z).
func WithAnimalAt(x, z float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.Battle.Animal().Pos = Vec3{X: x, Z: z}
	}}
}

// WithAnimalHealth overrides the animal's current health.
func WithAnimalHealth(h float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.Battle.Animal().Health = h
	}}
}

// NewTestSim constructs a harness in two ordered passes: infrastructure
// (config, seed, scripted randomness), then unit placement and overrides.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:  DefaultConfig(),
		seed: 1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Battle = NewBattle(ts.cfg, ts.seed)
	if ts.combatRng != nil {
		ts.Battle.combat = NewCombatResolver(ts.combatRng, ts.Battle.effects)
	}
	for _, o := range opts {
		if o.kind == simOptUnit {
			o.fn(ts)
		}
	}
	return ts
}

// Start moves the battle out of setup. Harness runs call it implicitly.
func (ts *TestSim) Start() {
	if ts.Battle.Phase() == PhaseSetup {
		if err := ts.Battle.StartBattle(); err != nil {
			panic(fmt.Sprintf("test harness: %v", err))
		}
	}
}

const tickDt = 1.0 / tickRate

// RunTicks advances the battle n ticks at the fixed rate, logging unit state
// changes to the battle's event log.
func (ts *TestSim) RunTicks(n int) {
	ts.Start()
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate returns
// true. Returns the tick at which it was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	ts.Start()
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Battle.tick
		}
	}
	return -1
}

// runOneTick snapshots discrete state, advances the battle, and logs diffs.
func (ts *TestSim) runOneTick() {
	b := ts.Battle

	prevStates := make(map[int]UnitState, len(b.fighters))
	for _, f := range b.fighters {
		prevStates[f.ID] = f.State
	}
	prevAnimalState := b.animal.State
	prevBehavior := b.animal.CurrentBehavior
	prevEnraged := b.animal.Enraged

	b.Update(tickDt)

	for _, f := range b.fighters {
		if f.State != prevStates[f.ID] {
			b.log.Add(b.tick, f.ID, "state", "change",
				fmt.Sprintf("%s to %s", prevStates[f.ID], f.State), 0)
		}
	}
	if b.animal.State != prevAnimalState {
		b.log.Add(b.tick, b.animal.ID, "animal", "state_change",
			fmt.Sprintf("%s to %s", prevAnimalState, b.animal.State), 0)
	}
	if b.animal.CurrentBehavior != prevBehavior {
		b.log.Add(b.tick, b.animal.ID, "animal", "behavior_change",
			string(b.animal.CurrentBehavior), b.animal.BehaviorTimeRemaining)
	}
	if b.animal.Enraged != prevEnraged {
		key := "enrage"
		if !b.animal.Enraged {
			key = "calm"
		}
		b.log.Add(b.tick, b.animal.ID, "animal", key, "", b.animal.RecentDamage)
	}
}

// FighterSnapshot is a lightweight copy of one fighter's state at a tick.
type FighterSnapshot struct {
	ID     int
	Pos    Vec3
	Health float64
	State  UnitState
}

// SimSnapshot captures a lightweight state summary for assertions.
type SimSnapshot struct {
	Tick     int
	Battle   Snapshot
	Fighters []FighterSnapshot
}

// Snapshot returns the current state of the battle and every fighter.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.Battle.tick, Battle: ts.Battle.Snapshot()}
	for _, f := range ts.Battle.fighters {
		snap.Fighters = append(snap.Fighters, FighterSnapshot{
			ID:     f.ID,
			Pos:    f.Pos,
			Health: f.Health,
			State:  f.State,
		})
	}
	return snap
}
