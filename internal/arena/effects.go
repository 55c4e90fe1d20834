package arena

// EffectKind names a transient visual event requested by the simulation.
type EffectKind int

const (
	EffectAttackLine  EffectKind = iota // swing from attacker toward target
	EffectRallyRing                     // expanding ring at the commander
	EffectEnrageTint                    // animal tint change on enrage edge
	EffectCalmTint                      // animal tint revert on de-enrage
	EffectStunStars                     // stun marker above a unit
	EffectKnockback                     // shove trail on a thrown unit
	EffectAmbushFade                    // animal goes semi-transparent
	EffectAmbushLunge                   // visibility restored on the lunge
	EffectDefeatMark                    // unit reached the terminal state
)

func (k EffectKind) String() string {
	switch k {
	case EffectAttackLine:
		return "attack_line"
	case EffectRallyRing:
		return "rally_ring"
	case EffectEnrageTint:
		return "enrage_tint"
	case EffectCalmTint:
		return "calm_tint"
	case EffectStunStars:
		return "stun_stars"
	case EffectKnockback:
		return "knockback"
	case EffectAmbushFade:
		return "ambush_fade"
	case EffectAmbushLunge:
		return "ambush_lunge"
	case EffectDefeatMark:
		return "defeat_mark"
	default:
		return "unknown"
	}
}

// Effect is one fire-and-forget presentation request. Effects carry unit IDs
// rather than pointers; a drainer must re-check liveness before touching any
// visual resource, since a battle reset can dispose the referent after the
// effect was queued.
type Effect struct {
	Kind   EffectKind
	UnitID int  // subject unit (commanderID for the commander)
	Target int  // secondary unit for lines/throws, 0 otherwise
	Pos    Vec3 // world position at the time of the request
	At     float64
}

// EffectQueue buffers effects between the simulation tick and the
// presentation layer. The simulation only appends; the presentation drains.
// Effects never mutate simulation state.
type EffectQueue struct {
	pending []Effect
}

// NewEffectQueue returns an empty queue.
func NewEffectQueue() *EffectQueue {
	return &EffectQueue{}
}

// Push appends an effect. A nil queue is a valid sink that drops everything,
// so headless runs don't need to wire presentation.
func (q *EffectQueue) Push(e Effect) {
	if q == nil {
		return
	}
	q.pending = append(q.pending, e)
}

// Drain returns all pending effects and clears the queue.
func (q *EffectQueue) Drain() []Effect {
	if q == nil || len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Clear drops pending effects without delivering them. Used on battle reset.
func (q *EffectQueue) Clear() {
	if q == nil {
		return
	}
	q.pending = nil
}
