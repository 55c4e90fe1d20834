package arena

import "math"

// BehaviorKind names one animal behaviour. charge and search are common to
// every type; the rest are type-specific specials.
type BehaviorKind string

const (
	BehaviorNone    BehaviorKind = ""
	BehaviorCharge  BehaviorKind = "charge"
	BehaviorSearch  BehaviorKind = "search"
	BehaviorBite    BehaviorKind = "bite"
	BehaviorGore    BehaviorKind = "gore"
	BehaviorPound   BehaviorKind = "pound"
	BehaviorSweep   BehaviorKind = "sweep"
	BehaviorSwipe   BehaviorKind = "swipe"
	BehaviorTrample BehaviorKind = "trample"
	BehaviorThrow   BehaviorKind = "throw"
	BehaviorAmbush  BehaviorKind = "ambush"
)

// attackShape describes how a behaviour's hit volume is resolved.
type attackShape int

const (
	shapeSingle attackShape = iota
	shapeRadius
	shapeCone
	shapeRect
)

// behaviorSpec is the static tuning for one behaviour kind.
type behaviorSpec struct {
	shape     attackShape
	damageMul float64 // on the animal's attack power
	speedMul  float64 // on the animal's move speed while executing
	stuns     bool    // radius attacks may also stun
	knockback float64 // impulse for throw-style attacks
	reachMul  float64 // hit volume reach, on attack range
	closeIn   bool    // true = favoured near the target, false = approach/ranged
	area      bool    // favoured when targets cluster
}

var behaviorSpecs = map[BehaviorKind]behaviorSpec{
	BehaviorBite:    {shape: shapeSingle, damageMul: 1.8, speedMul: 1.1, reachMul: 1.0, closeIn: true},
	BehaviorGore:    {shape: shapeSingle, damageMul: 2.0, speedMul: 1.2, reachMul: 1.0, closeIn: true},
	BehaviorPound:   {shape: shapeRadius, damageMul: 1.2, speedMul: 0.8, stuns: true, reachMul: 1.5, closeIn: true, area: true},
	BehaviorSweep:   {shape: shapeCone, damageMul: 0.9, speedMul: 0.9, reachMul: 1.6, closeIn: true, area: true},
	BehaviorSwipe:   {shape: shapeCone, damageMul: 0.8, speedMul: 1.0, reachMul: 1.6, closeIn: true, area: true},
	BehaviorTrample: {shape: shapeRect, damageMul: 0.85, speedMul: 1.6, reachMul: 4.0, area: true},
	BehaviorThrow:   {shape: shapeSingle, damageMul: 1.3, speedMul: 1.0, knockback: 18.0, reachMul: 1.1, closeIn: true},
	BehaviorAmbush:  {shape: shapeSingle, damageMul: 2.2, speedMul: 0.0, reachMul: 1.2},
}

// --- Behaviour tuning ---

const (
	chargeDurationMin  = 3.0
	chargeDurationMax  = 5.0
	searchDurationMin  = 2.0
	searchDurationMax  = 5.0
	specialDurationMin = 1.5
	specialDurationMax = 2.5
	enragedDurationMul = 1.3

	specialCooldownMin = 5.0
	specialCooldownMax = 10.0

	poundStunChance = 0.7
	poundStunMin    = 1.0
	poundStunMax    = 2.0

	sweepHalfAngle = math.Pi / 4 // 90° total arc
	trampleHalfW   = 2.0

	ambushPrepareTime = 0.6
	ambushLungeSpeed  = 3.0 // on move speed

	// Rage model.
	enrageAttackMul   = 1.3
	enrageSpeedMul    = 1.2
	enragedCooldown   = 0.7
	enrageThreshold   = 0.10 // of max health, on decaying recent damage
	deEnrageThreshold = 0.05
	rageDecayRate     = 0.6 // fraction of recent damage shed per second

	// Target acquisition.
	threatRange          = 60.0
	threatProximityW     = 40.0
	threatHealthW        = 20.0
	threatActivityBonus  = 15.0
	threatJitter         = 8.0
	threatOpportunistic  = 25.0
	threatLowHealthRatio = 0.35
	commanderBaseThreat  = 10.0
	commanderIntThreat   = 20.0

	animalTurnSmoothing = 6.0
	clusterRangeMul     = 2.0 // cluster census radius, on attack range
	clusterAreaMinCount = 3
)

// noTarget marks an empty weak target reference.
const noTarget = -2

// AnimalProfile is the fixed stat/behaviour template for one animal type.
type AnimalProfile struct {
	Type           string
	MaxHealth      float64
	AttackPower    float64
	AttackRange    float64
	AttackCooldown float64
	MoveSpeed      float64
	ChargeSpeed    float64
	Aggression     float64 // 0-1, biases behaviour weights toward charge
	Intelligence   float64 // 0-1, biases target scoring
	Behaviors      []BehaviorKind
}

// animalProfiles is the fixed catalog selected by the animalType config key.
var animalProfiles = map[string]AnimalProfile{
	"bear": {
		Type: "bear", MaxHealth: 1000, AttackPower: 25, AttackRange: 4.0,
		AttackCooldown: 1.5, MoveSpeed: 6.0, ChargeSpeed: 11.0,
		Aggression: 0.7, Intelligence: 0.5,
		Behaviors: []BehaviorKind{BehaviorSwipe, BehaviorPound},
	},
	"rhino": {
		Type: "rhino", MaxHealth: 1400, AttackPower: 30, AttackRange: 3.5,
		AttackCooldown: 1.8, MoveSpeed: 5.0, ChargeSpeed: 14.0,
		Aggression: 0.85, Intelligence: 0.3,
		Behaviors: []BehaviorKind{BehaviorGore, BehaviorTrample},
	},
	"gorilla": {
		Type: "gorilla", MaxHealth: 900, AttackPower: 22, AttackRange: 3.0,
		AttackCooldown: 1.3, MoveSpeed: 7.0, ChargeSpeed: 10.0,
		Aggression: 0.6, Intelligence: 0.75,
		Behaviors: []BehaviorKind{BehaviorPound, BehaviorThrow, BehaviorSweep},
	},
	"panther": {
		Type: "panther", MaxHealth: 650, AttackPower: 28, AttackRange: 2.8,
		AttackCooldown: 1.0, MoveSpeed: 9.0, ChargeSpeed: 13.0,
		Aggression: 0.75, Intelligence: 0.85,
		Behaviors: []BehaviorKind{BehaviorBite, BehaviorAmbush},
	},
}

const defaultAnimalType = "bear"

// ProfileFor returns the profile for an animal type, falling back to the
// default when the name is unknown. Configuration errors never fail a session.
func ProfileFor(name string) AnimalProfile {
	if p, ok := animalProfiles[name]; ok {
		return p
	}
	return animalProfiles[defaultAnimalType]
}

// AnimalTypes lists the catalog keys, for config validation and UI.
func AnimalTypes() []string {
	return []string{"bear", "rhino", "gorilla", "panther"}
}

// Animal is the single large AI-controlled opponent.
type Animal struct {
	Unit

	Profile      AnimalProfile
	MoveSpeed    float64
	ChargeSpeed  float64
	Aggression   float64
	Intelligence float64

	CurrentBehavior       BehaviorKind
	BehaviorTimeRemaining float64
	cooldownUntil         map[BehaviorKind]float64 // battle-clock expiry per special

	// Rage.
	RecentDamage float64
	Enraged      bool
	// baseCooldown holds the pre-enrage attack cooldown so the revert is an
	// exact inverse rather than a reapplied constant.
	baseCooldown float64

	// Weak target reference: a roster handle (fighter ID or commanderID),
	// revalidated every tick before use.
	targetID int

	// Ambush two-phase state.
	ambushPrepared bool
	ambushElapsed  float64
}

// NewAnimal creates an animal of the named type at a spawn position.
func NewAnimal(typeName string, pos Vec3) *Animal {
	p := ProfileFor(typeName)
	return &Animal{
		Unit: Unit{
			ID:             1000,
			Label:          "BEAST",
			Pos:            pos,
			Health:         p.MaxHealth,
			MaxHealth:      p.MaxHealth,
			AttackPower:    p.AttackPower,
			AttackRange:    p.AttackRange,
			AttackCooldown: p.AttackCooldown,
			LastAttackTime: neverAttacked,
			State:          StateIdle,
		},
		Profile:       p,
		MoveSpeed:     p.MoveSpeed,
		ChargeSpeed:   p.ChargeSpeed,
		Aggression:    p.Aggression,
		Intelligence:  p.Intelligence,
		cooldownUntil: make(map[BehaviorKind]float64),
		targetID:      noTarget,
	}
}

// NoteDamage reports damage landing on the animal. The battle calls it with
// the health delta the player side dealt during the tick.
func (a *Animal) NoteDamage(amount float64) {
	a.RecentDamage += amount
}

// updateRage decays accumulated recent damage and applies/reverts the enrage
// stat modifiers exactly once per edge crossing.
func (a *Animal) updateRage(ctx *TickContext, dt float64) {
	a.RecentDamage -= a.RecentDamage * rageDecayRate * dt
	if a.RecentDamage < 0 {
		a.RecentDamage = 0
	}

	if !a.Enraged && a.RecentDamage > a.MaxHealth*enrageThreshold {
		a.Enraged = true
		a.AttackPower *= enrageAttackMul
		a.MoveSpeed *= enrageSpeedMul
		a.ChargeSpeed *= enrageSpeedMul
		a.baseCooldown = a.AttackCooldown
		a.AttackCooldown = enragedCooldown
		ctx.Effects.Push(Effect{Kind: EffectEnrageTint, UnitID: a.ID, Pos: a.Pos, At: ctx.Now})
		return
	}
	if a.Enraged && a.RecentDamage < a.MaxHealth*deEnrageThreshold {
		a.Enraged = false
		a.AttackPower /= enrageAttackMul
		a.MoveSpeed /= enrageSpeedMul
		a.ChargeSpeed /= enrageSpeedMul
		a.AttackCooldown = a.baseCooldown
		ctx.Effects.Push(Effect{Kind: EffectCalmTint, UnitID: a.ID, Pos: a.Pos, At: ctx.Now})
	}
}

// resolveTarget turns the weak target handle into a live unit, or nil when
// the referent is gone or dead.
func (a *Animal) resolveTarget(ctx *TickContext) *Unit {
	switch {
	case a.targetID == noTarget:
		return nil
	case a.targetID == commanderID:
		if ctx.Commander != nil && ctx.Commander.Alive() {
			return &ctx.Commander.Unit
		}
	default:
		for _, f := range ctx.Fighters {
			if f.ID == a.targetID && f.Alive() {
				return &f.Unit
			}
		}
	}
	return nil
}

// findNewTarget scores every living fighter and the commander and locks onto
// the highest threat. Ties resolve in first-seen order (strict greater-than).
func (a *Animal) findNewTarget(ctx *TickContext) *Unit {
	var best *Unit
	bestScore := math.Inf(-1)

	consider := func(u *Unit, commander bool) {
		d := a.Pos.DistTo(u.Pos)
		score := threatProximityW * (1.0 - clamp01(d/threatRange))
		score += threatHealthW * (1.0 - u.HealthRatio())
		if u.State == StateAttacking {
			score += threatActivityBonus
		}
		score += ctx.Rng.Float64() * threatJitter
		// Opportunistic pick: smarter animals notice wounded stragglers.
		if !commander && u.HealthRatio() < threatLowHealthRatio && ctx.Rng.Float64() < a.Intelligence {
			score += threatOpportunistic
		}
		if commander {
			score += commanderBaseThreat + a.Intelligence*commanderIntThreat
		}
		if score > bestScore {
			bestScore = score
			best = u
		}
	}

	for _, f := range ctx.Fighters {
		if f.Alive() {
			consider(&f.Unit, false)
		}
	}
	if ctx.Commander != nil && ctx.Commander.Alive() {
		consider(&ctx.Commander.Unit, true)
	}

	if best == nil {
		a.targetID = noTarget
		a.State = StateSearching
		return nil
	}
	a.targetID = best.ID
	return best
}

// behaviorContext is the snapshot selectBehavior scores against.
type behaviorContext struct {
	HealthRatio float64
	Enraged     bool
	TargetDist  float64
	AttackRange float64
	Aggression  float64
	// ClusterCount is how many live targets sit within double attack range
	// of the animal; ≥3 favours area attacks.
	ClusterCount int
	// OnCooldown reports whether a special is still cooling down.
	OnCooldown func(BehaviorKind) bool
}

// selectBehavior draws one behaviour from the weighted option set. Pure given
// its inputs and the injected random source: build the weights, normalize to
// sum 1, one uniform draw, cumulative scan.
func selectBehavior(p AnimalProfile, bc behaviorContext, rng floatSource) BehaviorKind {
	type option struct {
		kind   BehaviorKind
		weight float64
	}

	opts := make([]option, 0, len(p.Behaviors)+1)

	// Charge is always on the table, biased by aggression, and preferred
	// when the target is far away.
	chargeW := 1.0 + bc.Aggression*1.5
	if bc.TargetDist > bc.AttackRange*3 {
		chargeW += 1.0
	}
	opts = append(opts, option{BehaviorCharge, chargeW})

	for _, kind := range p.Behaviors {
		if bc.OnCooldown != nil && bc.OnCooldown(kind) {
			continue
		}
		spec := behaviorSpecs[kind]
		w := 1.0
		// Low health favours high-power finishers.
		if bc.HealthRatio < 0.35 {
			w += spec.damageMul * 1.2
		}
		if bc.Enraged {
			w += 0.8
		}
		// Distance fit: close-range attacks near the target, approach or
		// ranged openers otherwise.
		if bc.TargetDist <= bc.AttackRange*1.5 {
			if spec.closeIn {
				w += 1.2
			}
		} else if !spec.closeIn {
			w += 1.0
		}
		// Clustered targets invite area attacks.
		if bc.ClusterCount >= clusterAreaMinCount && spec.area {
			w += 1.5
		}
		opts = append(opts, option{kind, w})
	}

	total := 0.0
	for _, o := range opts {
		total += o.weight
	}
	draw := rng.Float64() * total
	acc := 0.0
	for _, o := range opts {
		acc += o.weight
		if draw < acc {
			return o.kind
		}
	}
	return opts[len(opts)-1].kind
}

// Update runs one behaviour tick for the animal.
func (a *Animal) Update(ctx *TickContext, dt float64) {
	if !a.Alive() {
		return
	}

	a.updateRage(ctx, dt)

	if a.TickStun(dt) {
		a.State = StateStunned
		a.integrate(ctx, Vec3{}, dt)
		return
	}

	target := a.resolveTarget(ctx)
	if target == nil {
		target = a.findNewTarget(ctx)
	}

	a.BehaviorTimeRemaining -= dt
	if a.BehaviorTimeRemaining <= 0 {
		a.pickBehavior(ctx, target)
	}

	a.execute(ctx, target, dt)
}

// pickBehavior chooses the next behaviour and rolls its duration and, for
// specials, its cooldown. Without a target the animal degrades to search.
func (a *Animal) pickBehavior(ctx *TickContext, target *Unit) {
	if target == nil {
		a.CurrentBehavior = BehaviorSearch
		a.BehaviorTimeRemaining = a.rollDuration(ctx, searchDurationMin, searchDurationMax)
		a.State = StateSearching
		return
	}

	bc := behaviorContext{
		HealthRatio: a.HealthRatio(),
		Enraged:     a.Enraged,
		TargetDist:  a.Pos.DistTo(target.Pos),
		AttackRange: a.AttackRange,
		Aggression:  a.Aggression,
		ClusterCount: countLiveWithin(ctx, a.Pos,
			a.AttackRange*clusterRangeMul),
		OnCooldown: func(k BehaviorKind) bool {
			return ctx.Now < a.cooldownUntil[k]
		},
	}
	kind := selectBehavior(a.Profile, bc, ctx.Rng)
	a.CurrentBehavior = kind

	switch kind {
	case BehaviorCharge:
		a.BehaviorTimeRemaining = a.rollDuration(ctx, chargeDurationMin, chargeDurationMax)
		a.State = StateCharging
	default:
		a.BehaviorTimeRemaining = a.rollDuration(ctx, specialDurationMin, specialDurationMax)
		a.cooldownUntil[kind] = ctx.Now + specialCooldownMin + ctx.Rng.Float64()*(specialCooldownMax-specialCooldownMin)
		a.State = StateCharging
		if kind == BehaviorAmbush {
			a.ambushPrepared = false
			a.ambushElapsed = 0
		}
	}
}

// rollDuration draws a behaviour duration, stretched while enraged.
func (a *Animal) rollDuration(ctx *TickContext, min, max float64) float64 {
	d := min + ctx.Rng.Float64()*(max-min)
	if a.Enraged {
		d *= enragedDurationMul
	}
	return d
}

// execute advances the current behaviour: a movement vector toward the target
// scaled by the behaviour's speed multiplier, plus its attack shape when the
// target comes into reach. Attack calls decline silently on cooldown, so a
// behaviour held for several ticks never double-applies damage.
func (a *Animal) execute(ctx *TickContext, target *Unit, dt float64) {
	switch a.CurrentBehavior {
	case BehaviorSearch, BehaviorNone:
		a.executeSearch(ctx, dt)
	case BehaviorCharge:
		a.executeCharge(ctx, target, dt)
	case BehaviorAmbush:
		a.executeAmbush(ctx, target, dt)
	default:
		a.executeSpecial(ctx, target, dt)
	}
}

// executeSearch wanders slowly: drift toward the arena centre with a gentle
// heading oscillation until a target shows up.
func (a *Animal) executeSearch(ctx *TickContext, dt float64) {
	a.State = StateSearching
	toCenter := Vec3{}.Sub(a.Pos)
	toCenter.Y = 0
	dir := toCenter.Normalized()
	if dir.LenSq() == 0 {
		dir = HeadingVec(a.Facing)
	}
	wobble := math.Sin(ctx.Now * 0.8)
	move := HeadingVec(dir.Heading() + wobble*0.6).Scale(a.MoveSpeed * 0.4)
	a.integrate(ctx, move, dt)
}

// executeCharge runs straight at the target and bites on contact.
func (a *Animal) executeCharge(ctx *TickContext, target *Unit, dt float64) {
	if target == nil {
		a.executeSearch(ctx, dt)
		return
	}
	to := target.Pos.Sub(a.Pos)
	to.Y = 0
	dist := to.Len()
	a.State = StateCharging

	var move Vec3
	if dist > a.AttackRange*0.8 {
		move = to.Normalized().Scale(a.ChargeSpeed)
	}
	a.integrate(ctx, move, dt)

	if dist <= a.AttackRange {
		a.State = StateAttacking
		ctx.Combat.Attack(&a.Unit, []*Unit{target}, a.AttackPower, ctx.Now)
	}
}

// executeSpecial handles every single/radius/cone/rect special.
func (a *Animal) executeSpecial(ctx *TickContext, target *Unit, dt float64) {
	if target == nil {
		// A behaviour whose target died mid-swing degrades to search.
		a.CurrentBehavior = BehaviorSearch
		a.executeSearch(ctx, dt)
		return
	}
	spec := behaviorSpecs[a.CurrentBehavior]

	to := target.Pos.Sub(a.Pos)
	to.Y = 0
	dist := to.Len()
	reach := a.AttackRange * spec.reachMul

	var move Vec3
	if dist > a.AttackRange*0.8 {
		move = to.Normalized().Scale(a.MoveSpeed * spec.speedMul)
		a.State = StateCharging
	}
	a.integrate(ctx, move, dt)

	if dist > reach {
		return
	}
	a.State = StateAttacking

	victims := a.shapeVictims(ctx, spec, target, reach)
	if len(victims) == 0 {
		return
	}
	if !ctx.Combat.Attack(&a.Unit, victims, a.AttackPower*spec.damageMul, ctx.Now) {
		return
	}
	for _, v := range victims {
		if spec.stuns {
			ctx.Combat.TryStun(v, poundStunChance, poundStunMin, poundStunMax, ctx.Now)
		}
		if spec.knockback > 0 {
			ctx.Combat.Knockback(v, a.Pos, spec.knockback, ctx.Now)
		}
	}
}

// executeAmbush is the two-phase prepare-then-lunge special: first the animal
// freezes and fades, then it lunges at high speed for bonus damage and
// becomes fully visible again.
func (a *Animal) executeAmbush(ctx *TickContext, target *Unit, dt float64) {
	if target == nil {
		a.CurrentBehavior = BehaviorSearch
		a.executeSearch(ctx, dt)
		return
	}
	spec := behaviorSpecs[BehaviorAmbush]

	if !a.ambushPrepared {
		if a.ambushElapsed == 0 {
			ctx.Effects.Push(Effect{Kind: EffectAmbushFade, UnitID: a.ID, Pos: a.Pos, At: ctx.Now})
		}
		a.ambushElapsed += dt
		a.State = StateIdle
		a.integrate(ctx, Vec3{}, dt)
		if a.ambushElapsed >= ambushPrepareTime {
			a.ambushPrepared = true
			ctx.Effects.Push(Effect{Kind: EffectAmbushLunge, UnitID: a.ID, Pos: a.Pos, At: ctx.Now})
		}
		return
	}

	to := target.Pos.Sub(a.Pos)
	to.Y = 0
	dist := to.Len()
	a.State = StateCharging

	var move Vec3
	if dist > a.AttackRange*0.8 {
		move = to.Normalized().Scale(a.MoveSpeed * ambushLungeSpeed)
	}
	a.integrate(ctx, move, dt)

	if dist <= a.AttackRange*spec.reachMul {
		a.State = StateAttacking
		ctx.Combat.Attack(&a.Unit, []*Unit{target}, a.AttackPower*spec.damageMul, ctx.Now)
	}
}

// shapeVictims collects every live unit inside the behaviour's hit volume.
// Single-target shapes hit only the locked target.
func (a *Animal) shapeVictims(ctx *TickContext, spec behaviorSpec, target *Unit, reach float64) []*Unit {
	if spec.shape == shapeSingle {
		if target.Alive() {
			return []*Unit{target}
		}
		return nil
	}

	var out []*Unit
	add := func(u *Unit) {
		if !u.Alive() {
			return
		}
		switch spec.shape {
		case shapeRadius:
			if InRadius(a.Pos, u.Pos, reach) {
				out = append(out, u)
			}
		case shapeCone:
			if InCone(a.Pos, a.Facing, reach, sweepHalfAngle, u.Pos) {
				out = append(out, u)
			}
		case shapeRect:
			if InRect(a.Pos, a.Facing, reach, trampleHalfW, u.Pos) {
				out = append(out, u)
			}
		}
	}
	for _, f := range ctx.Fighters {
		add(&f.Unit)
	}
	if ctx.Commander != nil {
		add(&ctx.Commander.Unit)
	}
	return out
}

// integrate applies movement plus residual knockback, clamps to the arena,
// and turns facing toward the movement direction.
func (a *Animal) integrate(ctx *TickContext, move Vec3, dt float64) {
	a.Vel = move.Add(a.Knock)
	a.Knock = a.Knock.Scale(knockbackDecay)
	if a.Knock.LenSq() < 1e-6 {
		a.Knock = Vec3{}
	}

	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
	a.Pos = ctx.ClampToArena(a.Pos)

	if a.Vel.LenSq() > 1e-6 {
		a.Facing = LerpAngle(a.Facing, a.Vel.Heading(), clamp01(animalTurnSmoothing*dt))
	}
}

// countLiveWithin counts live fighters and the commander inside radius of p.
func countLiveWithin(ctx *TickContext, p Vec3, radius float64) int {
	n := 0
	for _, f := range ctx.Fighters {
		if f.Alive() && InRadius(p, f.Pos, radius) {
			n++
		}
	}
	if ctx.Commander != nil && ctx.Commander.Alive() && InRadius(p, ctx.Commander.Pos, radius) {
		n++
	}
	return n
}
