package arena

import "fmt"

// --- Fighter steering constants ---

const (
	fighterMaxHealth      = 50.0
	fighterBaseDamage     = 8.0
	fighterAttackRange    = 2.5
	fighterAttackCooldown = 1.2
	fighterMaxSpeed       = 8.0
	fighterTurnSmoothing  = 10.0 // facing lerp factor per second

	// Steering weights. The formation spring is deliberately uncapped:
	// magnitude grows linearly with distance, so stragglers pull harder.
	formationWeight  = 0.6
	targetSeekWeight = 4.0
	separationWeight = 6.0
	avoidRadius      = 2.0

	influenceRadius    = 15.0
	influencePullBand  = 0.7 // pull kicks in beyond this fraction of the radius
	influencePullForce = 5.0
	influenceDamageMul = 1.5

	fleeHealthRatio = 0.2
	fleeForce       = 20.0 // larger than any normal force; flee always wins

	knockbackDecay = 0.85 // residual impulse multiplier per tick at 60 Hz
)

// Fighter is one autonomous member of the player's crowd.
type Fighter struct {
	Unit

	// Force is the steering accumulator, zeroed at the start of every tick
	// before behaviour forces are summed.
	Force Vec3

	// FormationIndex is the fighter's position within the roster, used to
	// compute its formation slot. Stable for the life of the battle.
	FormationIndex int

	// Influenced is set by the commander's rally action and consumed (and
	// cleared) by the next steering tick.
	Influenced bool
}

// NewFighter creates a fighter at a placement position.
func NewFighter(index int, pos Vec3) *Fighter {
	return &Fighter{
		Unit: Unit{
			ID:             index,
			Label:          fmt.Sprintf("F%d", index),
			Pos:            pos,
			Health:         fighterMaxHealth,
			MaxHealth:      fighterMaxHealth,
			AttackPower:    fighterBaseDamage,
			AttackRange:    fighterAttackRange,
			AttackCooldown: fighterAttackCooldown,
			LastAttackTime: neverAttacked,
			State:          StateIdle,
		},
		FormationIndex: index,
	}
}

// classifyFighterState derives the fighter's discrete state from the current
// snapshot. Pure: no side effects, deterministic for a given snapshot. Run
// once per tick before steering.
func classifyFighterState(f *Fighter, animal *Animal) UnitState {
	if f.State == StateDead {
		return StateDead
	}
	if f.Health < f.MaxHealth*fleeHealthRatio {
		return StateFleeing
	}
	if animal != nil && animal.Alive() {
		if f.Pos.DistTo(animal.Pos) <= f.AttackRange {
			return StateAttacking
		}
		return StateMoving
	}
	return StateIdle
}

// Update runs one steering + attack tick for the fighter.
func (f *Fighter) Update(ctx *TickContext, dt float64) {
	if !f.Alive() {
		return
	}
	if f.TickStun(dt) {
		// Stunned: no steering, but residual knockback still bleeds off.
		f.integrate(ctx, Vec3{}, dt)
		return
	}

	f.State = classifyFighterState(f, ctx.Animal)

	// Consume the rally flag up front so the same tick's attack sees it.
	influenced := f.Influenced
	f.Influenced = false

	f.Force = Vec3{}
	if f.State == StateFleeing {
		// Injury override: a single flee force away from the animal replaces
		// everything else.
		if ctx.Animal != nil && ctx.Animal.Alive() {
			away := f.Pos.Sub(ctx.Animal.Pos)
			away.Y = 0
			f.Force = away.Normalized().Scale(fleeForce)
		}
	} else {
		f.addFormationSeek(ctx)
		f.addTargetSeek(ctx)
		f.addSeparation(ctx)
		f.addCommanderPull(ctx, influenced)
	}

	steer := Vec3{}
	if f.Force.LenSq() > 1e-12 {
		steer = f.Force.Normalized().Scale(fighterMaxSpeed)
	}
	f.integrate(ctx, steer, dt)

	// Attack check: in range, in the attacking state, cooldown elapsed.
	if f.State == StateAttacking && ctx.Animal != nil && ctx.Animal.Alive() {
		base := fighterBaseDamage
		if influenced {
			base *= influenceDamageMul
		}
		ctx.Combat.Attack(&f.Unit, []*Unit{&ctx.Animal.Unit}, base, ctx.Now)
	}
}

// addFormationSeek pulls toward the fighter's formation slot with a linear
// spring: force grows with distance, uncapped.
func (f *Fighter) addFormationSeek(ctx *TickContext) {
	slot := SlotPosition(ctx.Formation, f.FormationIndex, ctx.FighterTotal, ctx.FormationCenter, ctx.FormationFacing)
	pull := slot.Sub(f.Pos)
	pull.Y = 0
	f.Force = f.Force.Add(pull.Scale(formationWeight))
}

// addTargetSeek steers toward the animal while outside attack range. Inside
// range the seek force is suppressed so fighters don't jitter on the boundary.
func (f *Fighter) addTargetSeek(ctx *TickContext) {
	if ctx.Animal == nil || !ctx.Animal.Alive() {
		return
	}
	to := ctx.Animal.Pos.Sub(f.Pos)
	to.Y = 0
	if to.Len() <= f.AttackRange {
		return
	}
	f.Force = f.Force.Add(to.Normalized().Scale(targetSeekWeight))
}

// addSeparation pushes away from every other live fighter inside the
// avoidance radius, with linear falloff to zero at the boundary.
func (f *Fighter) addSeparation(ctx *TickContext) {
	for _, other := range ctx.Fighters {
		if other == f || !other.Alive() {
			continue
		}
		away := f.Pos.Sub(other.Pos)
		away.Y = 0
		d := away.Len()
		if d >= avoidRadius || d < 1e-9 {
			continue
		}
		strength := separationWeight * (1.0 - d/avoidRadius)
		f.Force = f.Force.Add(away.Scale(strength / d))
	}
}

// addCommanderPull applies the rally/influence pull: inside the influence
// radius (or explicitly flagged), fighters beyond 70% of the radius are drawn
// back toward the commander.
func (f *Fighter) addCommanderPull(ctx *TickContext, influenced bool) {
	cmd := ctx.Commander
	if cmd == nil || !cmd.Alive() {
		return
	}
	to := cmd.Pos.Sub(f.Pos)
	to.Y = 0
	d := to.Len()
	if !influenced && d > influenceRadius {
		return
	}
	if d > influenceRadius*influencePullBand {
		f.Force = f.Force.Add(to.Normalized().Scale(influencePullForce))
	}
}

// integrate applies steering plus residual knockback, clamps to the arena,
// and smooth-rotates facing toward the velocity direction. A near-zero
// velocity keeps the previous facing (no atan2 on a degenerate vector).
func (f *Fighter) integrate(ctx *TickContext, steer Vec3, dt float64) {
	f.Vel = steer.Add(f.Knock)
	f.Knock = f.Knock.Scale(knockbackDecay)
	if f.Knock.LenSq() < 1e-6 {
		f.Knock = Vec3{}
	}

	f.Pos = f.Pos.Add(f.Vel.Scale(dt))
	f.Pos = ctx.ClampToArena(f.Pos)

	if f.Vel.LenSq() > 1e-6 {
		f.Facing = LerpAngle(f.Facing, f.Vel.Heading(), clamp01(fighterTurnSmoothing*dt))
	}
}
