package arena

import "testing"

func animalCtx(a *Animal, fighters []*Fighter, cmd *Commander) *TickContext {
	return &TickContext{
		Fighters:  fighters,
		Commander: cmd,
		Animal:    a,
		Combat:    NewCombatResolver(midRng(), nil),
		Effects:   NewEffectQueue(),
		Rng:       midRng(),
		arenaHalf: 60,
	}
}

func TestProfileForUnknownTypeFallsBack(t *testing.T) {
	p := ProfileFor("chupacabra")
	if p.Type != defaultAnimalType {
		t.Fatalf("unknown type should fall back to %s, got %s", defaultAnimalType, p.Type)
	}
}

func TestProfileCatalogComplete(t *testing.T) {
	for _, name := range AnimalTypes() {
		p := ProfileFor(name)
		if p.Type != name {
			t.Fatalf("catalog entry %s resolves to %s", name, p.Type)
		}
		if len(p.Behaviors) == 0 {
			t.Fatalf("%s has no special behaviours", name)
		}
		for _, b := range p.Behaviors {
			if _, ok := behaviorSpecs[b]; !ok {
				t.Fatalf("%s lists behaviour %s with no spec", name, b)
			}
		}
	}
}

func TestEnrageAppliesAndRevertsExactly(t *testing.T) {
	a := NewAnimal("bear", Vec3{})
	ctx := animalCtx(a, nil, nil)

	baseAttack := a.AttackPower
	baseMove := a.MoveSpeed
	baseCharge := a.ChargeSpeed
	baseCooldown := a.AttackCooldown

	for cycle := 0; cycle < 5; cycle++ {
		a.NoteDamage(a.MaxHealth * 0.2)
		a.updateRage(ctx, 1.0/60)
		if !a.Enraged {
			t.Fatalf("cycle %d: damage burst above threshold must enrage", cycle)
		}
		if !almostEq(a.AttackPower, baseAttack*enrageAttackMul, 1e-9) {
			t.Fatalf("cycle %d: enraged attack %f, want %f", cycle, a.AttackPower, baseAttack*enrageAttackMul)
		}
		if a.AttackCooldown != enragedCooldown {
			t.Fatalf("cycle %d: enraged cooldown %f", cycle, a.AttackCooldown)
		}

		// Extra updates while enraged must not stack the modifiers.
		a.updateRage(ctx, 1.0/60)
		a.updateRage(ctx, 1.0/60)
		if !almostEq(a.AttackPower, baseAttack*enrageAttackMul, 1e-9) {
			t.Fatalf("cycle %d: modifiers stacked on repeated updates", cycle)
		}

		a.RecentDamage = 0
		a.updateRage(ctx, 1.0/60)
		if a.Enraged {
			t.Fatalf("cycle %d: drained rage must revert", cycle)
		}
		if !almostEq(a.AttackPower, baseAttack, 1e-9) ||
			!almostEq(a.MoveSpeed, baseMove, 1e-9) ||
			!almostEq(a.ChargeSpeed, baseCharge, 1e-9) ||
			!almostEq(a.AttackCooldown, baseCooldown, 1e-9) {
			t.Fatalf("cycle %d: revert drifted: attack=%f move=%f charge=%f cooldown=%f",
				cycle, a.AttackPower, a.MoveSpeed, a.ChargeSpeed, a.AttackCooldown)
		}
	}
}

func TestRecentDamageDecays(t *testing.T) {
	a := NewAnimal("bear", Vec3{})
	ctx := animalCtx(a, nil, nil)
	a.NoteDamage(40)
	for i := 0; i < 60; i++ {
		a.updateRage(ctx, 1.0/60)
	}
	if a.RecentDamage >= 40 {
		t.Fatalf("recent damage must decay, still %f", a.RecentDamage)
	}
	if a.RecentDamage < 0 {
		t.Fatalf("recent damage must not go negative, got %f", a.RecentDamage)
	}
}

func TestFindNewTargetPrefersCloserAndWounded(t *testing.T) {
	a := NewAnimal("bear", Vec3{})
	near := NewFighter(0, Vec3{X: 5})
	far := NewFighter(1, Vec3{X: 50})
	ctx := animalCtx(a, []*Fighter{near, far}, nil)
	// Pin the jitter and opportunistic rolls mid-band for both candidates.
	ctx.Rng = midRng()

	got := a.findNewTarget(ctx)
	if got == nil || got.ID != near.ID {
		t.Fatalf("expected the near fighter to be locked, got %+v", got)
	}
	if a.targetID != near.ID {
		t.Fatalf("target handle not recorded, got %d", a.targetID)
	}
}

func TestFindNewTargetNoneGoesSearching(t *testing.T) {
	a := NewAnimal("bear", Vec3{})
	dead := NewFighter(0, Vec3{X: 5})
	dead.State = StateDead
	ctx := animalCtx(a, []*Fighter{dead}, nil)

	if got := a.findNewTarget(ctx); got != nil {
		t.Fatalf("no live targets should yield nil, got %+v", got)
	}
	if a.State != StateSearching || a.targetID != noTarget {
		t.Fatalf("expected searching with an empty handle, got %s / %d", a.State, a.targetID)
	}
}

func TestResolveTargetRevalidatesHandle(t *testing.T) {
	a := NewAnimal("bear", Vec3{})
	f := NewFighter(0, Vec3{X: 5})
	ctx := animalCtx(a, []*Fighter{f}, nil)

	a.targetID = f.ID
	if got := a.resolveTarget(ctx); got == nil {
		t.Fatal("live handle should resolve")
	}
	f.State = StateDead
	if got := a.resolveTarget(ctx); got != nil {
		t.Fatal("handle to a dead fighter must resolve to nil")
	}
}

func TestSelectBehaviorIsDeterministic(t *testing.T) {
	bc := behaviorContext{
		HealthRatio: 0.8,
		TargetDist:  10,
		AttackRange: 4,
		Aggression:  0.7,
		OnCooldown:  func(BehaviorKind) bool { return false },
	}
	p := ProfileFor("bear")

	first := selectBehavior(p, bc, &scriptedRng{vals: []float64{0.42}})
	for i := 0; i < 10; i++ {
		if got := selectBehavior(p, bc, &scriptedRng{vals: []float64{0.42}}); got != first {
			t.Fatalf("same inputs must select the same behaviour: %s vs %s", first, got)
		}
	}
}

func TestSelectBehaviorDrawEdges(t *testing.T) {
	bc := behaviorContext{
		HealthRatio: 1.0,
		TargetDist:  10,
		AttackRange: 4,
		Aggression:  0.5,
		OnCooldown:  func(BehaviorKind) bool { return false },
	}
	p := ProfileFor("bear")

	// Draw 0 lands in the first option's band, which is always charge.
	if got := selectBehavior(p, bc, &scriptedRng{vals: []float64{0.0}}); got != BehaviorCharge {
		t.Fatalf("zero draw should select charge, got %s", got)
	}
	// Draw just under 1 lands in the last special's band.
	last := p.Behaviors[len(p.Behaviors)-1]
	if got := selectBehavior(p, bc, &scriptedRng{vals: []float64{0.999999}}); got != last {
		t.Fatalf("top draw should select %s, got %s", last, got)
	}
}

func TestSelectBehaviorSkipsCooldowns(t *testing.T) {
	bc := behaviorContext{
		HealthRatio: 1.0,
		TargetDist:  2,
		AttackRange: 4,
		Aggression:  0.9,
		OnCooldown:  func(BehaviorKind) bool { return true },
	}
	p := ProfileFor("gorilla")

	// Every special cooling down leaves charge as the only option.
	for _, draw := range []float64{0.0, 0.3, 0.7, 0.999999} {
		if got := selectBehavior(p, bc, &scriptedRng{vals: []float64{draw}}); got != BehaviorCharge {
			t.Fatalf("draw %f: only charge is available, got %s", draw, got)
		}
	}
}

func TestPoundHitsRadiusAndCanStun(t *testing.T) {
	a := NewAnimal("bear", Vec3{})
	a.CurrentBehavior = BehaviorPound
	a.BehaviorTimeRemaining = 1

	inside := NewFighter(0, Vec3{X: 3})
	outside := NewFighter(1, Vec3{X: 30})
	ctx := animalCtx(a, []*Fighter{inside, outside}, nil)
	// Draws: damage variance 0.5, stun chance 0.5 (passes 0.7), duration 0.5.
	ctx.Combat = NewCombatResolver(midRng(), ctx.Effects)

	a.executeSpecial(ctx, &inside.Unit, 1.0/60)

	if inside.Health == inside.MaxHealth {
		t.Fatal("fighter inside the pound radius must take damage")
	}
	if outside.Health != outside.MaxHealth {
		t.Fatal("fighter outside the radius must be untouched")
	}
	if inside.StunTimer <= 0 {
		t.Fatal("pinned stun roll should stun the victim")
	}
}

func TestTrampleHitsForwardLane(t *testing.T) {
	a := NewAnimal("rhino", Vec3{})
	a.Facing = 0 // +X
	a.CurrentBehavior = BehaviorTrample
	a.BehaviorTimeRemaining = 1

	ahead := NewFighter(0, Vec3{X: 6})
	offside := NewFighter(1, Vec3{X: 6, Z: 8})
	ctx := animalCtx(a, []*Fighter{ahead, offside}, nil)

	a.executeSpecial(ctx, &ahead.Unit, 1.0/60)

	if ahead.Health == ahead.MaxHealth {
		t.Fatal("fighter in the trample lane must take damage")
	}
	if offside.Health != offside.MaxHealth {
		t.Fatal("fighter outside the lane must be untouched")
	}
}

func TestThrowKnocksTargetBack(t *testing.T) {
	a := NewAnimal("gorilla", Vec3{})
	a.CurrentBehavior = BehaviorThrow
	a.BehaviorTimeRemaining = 1

	victim := NewFighter(0, Vec3{X: 2})
	ctx := animalCtx(a, []*Fighter{victim}, nil)

	a.executeSpecial(ctx, &victim.Unit, 1.0/60)

	if victim.Knock.X <= 0 {
		t.Fatalf("throw must shove the victim away from the animal, knock %+v", victim.Knock)
	}
}

func TestAmbushTwoPhase(t *testing.T) {
	a := NewAnimal("panther", Vec3{})
	a.CurrentBehavior = BehaviorAmbush
	a.BehaviorTimeRemaining = 5

	target := NewFighter(0, Vec3{X: 20})
	ctx := animalCtx(a, []*Fighter{target}, nil)

	// Prepare phase: stationary, fade requested.
	a.executeAmbush(ctx, &target.Unit, 1.0/60)
	if a.ambushPrepared {
		t.Fatal("one short tick must not complete the prepare phase")
	}
	if a.Vel.LenSq() != 0 {
		t.Fatalf("preparing animal must hold still, velocity %+v", a.Vel)
	}
	foundFade := false
	for _, e := range ctx.Effects.Drain() {
		if e.Kind == EffectAmbushFade {
			foundFade = true
		}
	}
	if !foundFade {
		t.Fatal("prepare phase must request the fade effect")
	}

	// Run out the prepare window, then verify the lunge moves fast.
	for i := 0; i < 60 && !a.ambushPrepared; i++ {
		a.executeAmbush(ctx, &target.Unit, 1.0/60)
	}
	if !a.ambushPrepared {
		t.Fatal("prepare phase never completed")
	}
	a.executeAmbush(ctx, &target.Unit, 1.0/60)
	if speed := a.Vel.Len(); speed < a.MoveSpeed*2 {
		t.Fatalf("lunge should be well above normal speed, got %f", speed)
	}
}

func TestStunnedAnimalSkipsBehavior(t *testing.T) {
	a := NewAnimal("bear", Vec3{})
	a.StunTimer = 1.0
	target := NewFighter(0, Vec3{X: 3})
	ctx := animalCtx(a, []*Fighter{target}, nil)

	a.Update(ctx, 1.0/60)
	if a.State != StateStunned {
		t.Fatalf("expected stunned, got %s", a.State)
	}
	if target.Health != target.MaxHealth {
		t.Fatal("stunned animal must not attack")
	}
}
