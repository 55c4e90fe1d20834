package arena

import (
	"math"
	"testing"
)

// fighterCtx builds a minimal in-package tick context for steering tests.
func fighterCtx(fighters []*Fighter, animal *Animal, cmd *Commander) *TickContext {
	return &TickContext{
		Fighters:        fighters,
		Commander:       cmd,
		Animal:          animal,
		Combat:          NewCombatResolver(midRng(), nil),
		Effects:         NewEffectQueue(),
		Rng:             midRng(),
		Formation:       FormationCircle,
		FighterTotal:    len(fighters),
		FormationCenter: Vec3{},
		arenaHalf:       60,
	}
}

func TestClassifyFighterState(t *testing.T) {
	animal := NewAnimal("bear", Vec3{X: 30})
	f := NewFighter(0, Vec3{})

	if got := classifyFighterState(f, animal); got != StateMoving {
		t.Fatalf("healthy fighter far from a live animal should move, got %s", got)
	}

	f.Pos = Vec3{X: 28} // within 2.5 attack range
	if got := classifyFighterState(f, animal); got != StateAttacking {
		t.Fatalf("fighter in range should attack, got %s", got)
	}

	f.Health = f.MaxHealth * 0.15
	if got := classifyFighterState(f, animal); got != StateFleeing {
		t.Fatalf("fighter under the flee threshold should flee, got %s", got)
	}

	f.Health = f.MaxHealth
	animal.State = StateDead
	if got := classifyFighterState(f, animal); got != StateIdle {
		t.Fatalf("fighter with no live animal should idle, got %s", got)
	}

	f.State = StateDead
	if got := classifyFighterState(f, animal); got != StateDead {
		t.Fatalf("dead is terminal, got %s", got)
	}
}

func TestWoundedFighterFleesDirectlyAway(t *testing.T) {
	animal := NewAnimal("bear", Vec3{})
	f := NewFighter(0, Vec3{X: 10})
	f.Health = 9 // of 50, below the 20% threshold
	ctx := fighterCtx([]*Fighter{f}, animal, nil)

	f.Update(ctx, 1.0/60)

	if f.State != StateFleeing {
		t.Fatalf("expected fleeing, got %s", f.State)
	}
	// The flee force points from the animal through the fighter: +X here.
	dir := f.Vel.Normalized()
	if dir.X <= 0.99 || math.Abs(dir.Z) > 0.01 {
		t.Fatalf("flee velocity should point directly away from the animal, got %+v", dir)
	}
}

func TestFleeOverridesFormationPull(t *testing.T) {
	animal := NewAnimal("bear", Vec3{})
	f := NewFighter(0, Vec3{X: 10})
	f.Health = 5
	ctx := fighterCtx([]*Fighter{f}, animal, nil)
	// Formation slot sits on the far side of the animal; a blended steering
	// sum would drag the fighter toward it.
	ctx.FormationCenter = Vec3{X: -40}

	f.Update(ctx, 1.0/60)
	if f.Vel.X <= 0 {
		t.Fatalf("flee must replace all other forces, velocity %+v", f.Vel)
	}
}

func TestSeparationPushesNeighborsApart(t *testing.T) {
	a := NewFighter(0, Vec3{X: 0.3})
	b := NewFighter(1, Vec3{X: -0.3})
	ctx := fighterCtx([]*Fighter{a, b}, nil, nil)

	a.Force = Vec3{}
	a.addSeparation(ctx)
	if a.Force.X <= 0 {
		t.Fatalf("fighter a should be pushed +X away from b, force %+v", a.Force)
	}

	b.Force = Vec3{}
	b.addSeparation(ctx)
	if b.Force.X >= 0 {
		t.Fatalf("fighter b should be pushed -X away from a, force %+v", b.Force)
	}
}

func TestSeparationFallsOffAtBoundary(t *testing.T) {
	a := NewFighter(0, Vec3{})
	far := NewFighter(1, Vec3{X: avoidRadius + 0.1})
	ctx := fighterCtx([]*Fighter{a, far}, nil, nil)

	a.Force = Vec3{}
	a.addSeparation(ctx)
	if a.Force.LenSq() != 0 {
		t.Fatalf("no separation beyond the avoid radius, got %+v", a.Force)
	}
}

func TestTargetSeekSuppressedInRange(t *testing.T) {
	animal := NewAnimal("bear", Vec3{X: 2})
	f := NewFighter(0, Vec3{}) // distance 2 < attack range 2.5
	ctx := fighterCtx([]*Fighter{f}, animal, nil)

	f.Force = Vec3{}
	f.addTargetSeek(ctx)
	if f.Force.LenSq() != 0 {
		t.Fatalf("seek force must vanish inside attack range, got %+v", f.Force)
	}

	animal.Pos = Vec3{X: 20}
	f.addTargetSeek(ctx)
	if f.Force.X <= 0 {
		t.Fatalf("seek force should point at the animal, got %+v", f.Force)
	}
}

func TestRallyFlagConsumedAndBoostsDamage(t *testing.T) {
	animal := NewAnimal("bear", Vec3{X: 1})
	f := NewFighter(0, Vec3{})
	f.Influenced = true
	ctx := fighterCtx([]*Fighter{f}, animal, nil)

	before := animal.Health
	f.Update(ctx, 1.0/60)

	if f.Influenced {
		t.Fatal("rally flag must be consumed by the tick that reads it")
	}
	// With variance pinned to 1.0, the boosted swing lands for exactly
	// floor(base x 1.5).
	want := math.Floor(fighterBaseDamage * influenceDamageMul)
	if got := before - animal.Health; got != want {
		t.Fatalf("influenced damage: want %f, got %f", want, got)
	}
}

func TestCommanderPullBeyondBand(t *testing.T) {
	cmd := NewCommander(Vec3{})
	// Fighter inside the influence radius but beyond 70% of it.
	f := NewFighter(0, Vec3{X: influenceRadius * 0.9})
	ctx := fighterCtx([]*Fighter{f}, nil, cmd)

	f.Force = Vec3{}
	f.addCommanderPull(ctx, false)
	if f.Force.X >= 0 {
		t.Fatalf("pull should point back toward the commander, got %+v", f.Force)
	}

	// Inside the band: no pull.
	f.Pos = Vec3{X: influenceRadius * 0.5}
	f.Force = Vec3{}
	f.addCommanderPull(ctx, false)
	if f.Force.LenSq() != 0 {
		t.Fatalf("no pull inside the comfort band, got %+v", f.Force)
	}
}

func TestStunnedFighterSkipsSteering(t *testing.T) {
	animal := NewAnimal("bear", Vec3{X: 30})
	f := NewFighter(0, Vec3{})
	f.StunTimer = 1.0
	ctx := fighterCtx([]*Fighter{f}, animal, nil)

	f.Update(ctx, 1.0/60)
	if f.Vel.LenSq() != 0 {
		t.Fatalf("stunned fighter must not steer, velocity %+v", f.Vel)
	}
}
