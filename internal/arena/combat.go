package arena

import "math"

// floatSource is the injected randomness used by combat variance and the
// animal's behaviour selection. *rand.Rand satisfies it; tests substitute a
// scripted source to pin outcomes exactly.
type floatSource interface {
	Float64() float64
}

const (
	damageVarianceMin = 0.8
	damageVarianceMax = 1.2

	// neverAttacked predates any battle clock so the first swing is never
	// cooldown-gated.
	neverAttacked = -1000.0
)

// CombatResolver applies attacks for every unit in the battle: fighters,
// commander, and animal all resolve damage through the same path.
type CombatResolver struct {
	rng     floatSource
	effects *EffectQueue
}

// NewCombatResolver creates a resolver. effects may be nil for headless runs.
func NewCombatResolver(rng floatSource, effects *EffectQueue) *CombatResolver {
	return &CombatResolver{rng: rng, effects: effects}
}

// Attack resolves one swing from attacker against every live unit in targets.
// It declines (no-op, false) when the attacker's cooldown has not elapsed.
// Damage per target is floor(baseDamage × U(0.8, 1.2)); health clamps at zero
// and a unit reaching zero transitions to the terminal dead state. The
// attacker's LastAttackTime advances exactly once per call, so an area hit on
// N targets still costs a single cooldown charge.
func (cr *CombatResolver) Attack(attacker *Unit, targets []*Unit, baseDamage, now float64) bool {
	if now-attacker.LastAttackTime < attacker.AttackCooldown {
		return false
	}
	attacker.LastAttackTime = now

	for _, t := range targets {
		if t == nil || !t.Alive() {
			continue
		}
		dmg := math.Floor(baseDamage * (damageVarianceMin + cr.rng.Float64()*(damageVarianceMax-damageVarianceMin)))
		t.Health -= dmg
		if t.Health <= 0 {
			t.Health = 0
			t.State = StateDead
			t.Vel = Vec3{}
			cr.effects.Push(Effect{Kind: EffectDefeatMark, UnitID: t.ID, Pos: t.Pos, At: now})
		}
		cr.effects.Push(Effect{Kind: EffectAttackLine, UnitID: attacker.ID, Target: t.ID, Pos: attacker.Pos, At: now})
	}
	return true
}

// TryStun rolls the given chance and, on success, stuns target for a duration
// drawn uniformly from [minSec, maxSec]. Dead units are never stunned.
func (cr *CombatResolver) TryStun(target *Unit, chance, minSec, maxSec float64, now float64) bool {
	if target == nil || !target.Alive() {
		return false
	}
	if cr.rng.Float64() > chance {
		return false
	}
	target.StunTimer = minSec + cr.rng.Float64()*(maxSec-minSec)
	cr.effects.Push(Effect{Kind: EffectStunStars, UnitID: target.ID, Pos: target.Pos, At: now})
	return true
}

// Knockback shoves target directly away from the given origin. The impulse is
// applied to velocity; the target's own engine integrates and decays it.
func (cr *CombatResolver) Knockback(target *Unit, from Vec3, force float64, now float64) {
	if target == nil || !target.Alive() {
		return
	}
	dir := target.Pos.Sub(from)
	dir.Y = 0
	dir = dir.Normalized()
	if dir.LenSq() == 0 {
		dir = HeadingVec(target.Facing + math.Pi)
	}
	target.Knock = target.Knock.Add(dir.Scale(force))
	cr.effects.Push(Effect{Kind: EffectKnockback, UnitID: target.ID, Pos: target.Pos, At: now})
}
