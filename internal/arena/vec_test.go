package arena

import (
	"math"
	"testing"
)

func almostEq(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNormalizedDegenerateVectorIsZero(t *testing.T) {
	v := Vec3{}.Normalized()
	if v.LenSq() != 0 {
		t.Fatalf("expected zero vector, got %+v", v)
	}
}

func TestHeadingRoundTrip(t *testing.T) {
	for _, angle := range []float64{0, 0.7, math.Pi / 2, -2.5, 3.0} {
		v := HeadingVec(angle)
		got := v.Heading()
		if !almostEq(math.Mod(got-angle+3*math.Pi, 2*math.Pi)-math.Pi, 0, 1e-9) {
			t.Fatalf("heading %f round-tripped to %f", angle, got)
		}
	}
}

func TestLerpAngleTakesShortestArc(t *testing.T) {
	// From just below +pi to just above -pi: the short way crosses the seam.
	from := math.Pi - 0.1
	to := -math.Pi + 0.1
	mid := LerpAngle(from, to, 0.5)
	if !almostEq(math.Abs(mid), math.Pi, 0.11) {
		t.Fatalf("expected midpoint near the seam, got %f", mid)
	}

	if got := LerpAngle(0, 1, 0); got != 0 {
		t.Fatalf("t=0 should keep the start angle, got %f", got)
	}
	if got := LerpAngle(0, 1, 1); !almostEq(got, 1, 1e-9) {
		t.Fatalf("t=1 should reach the target angle, got %f", got)
	}
}

func TestInConeRespectsAngleAndReach(t *testing.T) {
	apex := Vec3{}
	// Facing +X, 45 degree half-angle, reach 10.
	if !InCone(apex, 0, 10, math.Pi/4, Vec3{X: 5}) {
		t.Fatal("point dead ahead should be inside the cone")
	}
	if InCone(apex, 0, 10, math.Pi/4, Vec3{X: -5}) {
		t.Fatal("point behind should be outside the cone")
	}
	if InCone(apex, 0, 10, math.Pi/4, Vec3{X: 11}) {
		t.Fatal("point past reach should be outside the cone")
	}
	if InCone(apex, 0, 10, math.Pi/4, Vec3{Z: 5}) {
		t.Fatal("point at 90 degrees should be outside a 45 degree half-angle")
	}
}

func TestInRectForwardVolume(t *testing.T) {
	origin := Vec3{}
	// Facing +X, length 10, half-width 2.
	if !InRect(origin, 0, 10, 2, Vec3{X: 5, Z: 1}) {
		t.Fatal("point inside the lane should match")
	}
	if InRect(origin, 0, 10, 2, Vec3{X: 5, Z: 3}) {
		t.Fatal("point outside the half-width should not match")
	}
	if InRect(origin, 0, 10, 2, Vec3{X: -1}) {
		t.Fatal("point behind the origin should not match")
	}
	if InRect(origin, 0, 10, 2, Vec3{X: 11}) {
		t.Fatal("point past the length should not match")
	}
}
