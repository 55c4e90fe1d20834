package arena

// UnitState is the discrete behaviour tag carried by every unit. Fighters use
// idle/moving/attacking/fleeing, the animal uses idle/searching/charging/
// attacking/stunned; dead is terminal for everyone.
type UnitState int

const (
	StateIdle UnitState = iota
	StateMoving
	StateAttacking
	StateFleeing
	StateSearching
	StateCharging
	StateStunned
	StateDead
)

func (s UnitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateAttacking:
		return "attacking"
	case StateFleeing:
		return "fleeing"
	case StateSearching:
		return "searching"
	case StateCharging:
		return "charging"
	case StateStunned:
		return "stunned"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Unit is the base record shared by fighters, the commander, and the animal.
// Engines mutate fields in place; the battle owns the lifecycle.
type Unit struct {
	ID    int
	Label string // short display tag, e.g. "F3", "CMD", "BEAST"

	Pos    Vec3
	Vel    Vec3
	Facing float64 // radians about Y on the arena floor

	Health    float64
	MaxHealth float64

	AttackPower    float64
	AttackRange    float64
	AttackCooldown float64 // seconds between swings
	LastAttackTime float64 // battle-clock time of the last resolved attack

	State UnitState

	// StunTimer counts down in seconds; a stunned unit skips its update.
	StunTimer float64

	// Knock is the residual knockback impulse, decayed each tick by the
	// owning engine and added on top of steering velocity.
	Knock Vec3
}

// Alive reports whether the unit is still an active participant.
func (u *Unit) Alive() bool {
	return u.State != StateDead
}

// HealthRatio returns health/maxHealth clamped to [0,1].
func (u *Unit) HealthRatio() float64 {
	if u.MaxHealth <= 0 {
		return 0
	}
	return clamp01(u.Health / u.MaxHealth)
}

// TickStun advances the stun timer and reports whether the unit is still
// stunned this tick.
func (u *Unit) TickStun(dt float64) bool {
	if u.StunTimer <= 0 {
		return false
	}
	u.StunTimer -= dt
	if u.StunTimer < 0 {
		u.StunTimer = 0
	}
	return u.StunTimer > 0
}

// Commander is the player-driven unit. It has no autonomous behaviour but is
// a valid attacker and target on the same combat resolution path as fighters.
type Commander struct {
	Unit

	MoveSpeed float64
}

// commanderID is the roster handle used for weak target references to the
// commander (fighters use their non-negative roster index).
const commanderID = -1

// NewCommander creates the commander at a spawn position.
func NewCommander(pos Vec3) *Commander {
	return &Commander{
		Unit: Unit{
			ID:             commanderID,
			Label:          "CMD",
			Pos:            pos,
			Health:         commanderMaxHealth,
			MaxHealth:      commanderMaxHealth,
			AttackPower:    commanderAttackPower,
			AttackRange:    commanderAttackRange,
			AttackCooldown: commanderAttackCooldown,
			LastAttackTime: neverAttacked,
			State:          StateIdle,
		},
		MoveSpeed: commanderMoveSpeed,
	}
}

const (
	commanderMaxHealth      = 200.0
	commanderAttackPower    = 15.0
	commanderAttackRange    = 3.0
	commanderAttackCooldown = 0.8
	commanderMoveSpeed      = 12.0
)
