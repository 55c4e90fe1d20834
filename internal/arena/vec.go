package arena

import "math"

// Vec3 is a point or direction in world space. The arena floor is the XZ
// plane; Y is height and stays 0 for ground units.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the magnitude of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LenSq returns the squared magnitude. Use for comparisons.
func (v Vec3) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalized returns a unit vector in the direction of v, or the zero vector
// when v is degenerate (guards atan2/divide on near-zero input).
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// DistTo returns the Euclidean distance from v to o.
func (v Vec3) DistTo(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Heading returns the facing angle (radians, about Y) of the vector's
// XZ projection.
func (v Vec3) Heading() float64 {
	return math.Atan2(v.Z, v.X)
}

// HeadingVec returns the unit vector on the arena floor for a facing angle.
func HeadingVec(angle float64) Vec3 {
	return Vec3{X: math.Cos(angle), Z: math.Sin(angle)}
}

// LerpAngle interpolates from a toward b along the shortest arc.
// t is clamped to [0,1]; the result stays in (-π, π].
func LerpAngle(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t > 1 {
		t = 1
	}
	diff := NormalizeAngle(b - a)
	return NormalizeAngle(a + diff*t)
}

// NormalizeAngle wraps an angle into (-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// InRadius reports whether p lies within radius of center (XZ plane).
func InRadius(center, p Vec3, radius float64) bool {
	dx := p.X - center.X
	dz := p.Z - center.Z
	return dx*dx+dz*dz <= radius*radius
}

// InCone reports whether p lies inside an arc of halfAngle radians either
// side of facing, within reach of apex. Used by sweep/swipe attacks.
func InCone(apex Vec3, facing float64, reach, halfAngle float64, p Vec3) bool {
	d := p.Sub(apex)
	dist := math.Hypot(d.X, d.Z)
	if dist > reach {
		return false
	}
	if dist < 1e-9 {
		return true // on the apex
	}
	off := math.Abs(NormalizeAngle(d.Heading() - facing))
	return off <= halfAngle
}

// InRect reports whether p lies inside a forward corridor: length units ahead
// of origin along facing, halfWidth either side. Used by trample.
func InRect(origin Vec3, facing float64, length, halfWidth float64, p Vec3) bool {
	d := p.Sub(origin)
	fwd := HeadingVec(facing)
	// Project onto forward and lateral axes.
	along := d.X*fwd.X + d.Z*fwd.Z
	lateral := d.X*-fwd.Z + d.Z*fwd.X
	return along >= 0 && along <= length && math.Abs(lateral) <= halfWidth
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
