package arena

import "math"

// FormationKind identifies the group shape fighters are steered into.
type FormationKind int

const (
	FormationCircle  FormationKind = iota // ring around the reference centre
	FormationLine                         // rank perpendicular to facing
	FormationArrow                        // wedge, slot 0 at the point
	FormationScatter                      // loose deterministic spread
)

func (f FormationKind) String() string {
	switch f {
	case FormationCircle:
		return "circle"
	case FormationLine:
		return "line"
	case FormationArrow:
		return "arrow"
	case FormationScatter:
		return "scatter"
	default:
		return "unknown"
	}
}

const (
	circleRadiusPerUnit = 0.8  // ring radius grows with roster size...
	circleRadiusCap     = 12.0 // ...up to this cap
	lineSpacing         = 2.5  // gap between adjacent slots in a rank
	lineWidthCap        = 30.0 // a rank never gets wider than this
	arrowPointLead      = 2.0  // how far the point slot sits ahead of centre
	arrowRowDepth       = 2.2  // distance between wedge rows
	arrowRowSpacing     = 2.4  // lateral gap inside a row
	scatterRadiusCap    = 9.0  // scatter offsets stay inside this radius
)

// SlotPosition returns the world-space formation slot for one fighter.
// Pure and deterministic: the same inputs always produce the same slot, and
// scatter offsets depend on index alone.
func SlotPosition(kind FormationKind, index, total int, center Vec3, facing float64) Vec3 {
	if total < 1 {
		total = 1
	}

	switch kind {
	case FormationCircle:
		radius := math.Min(float64(total)*circleRadiusPerUnit, circleRadiusCap)
		angle := float64(index) / float64(total) * 2 * math.Pi
		return Vec3{
			X: center.X + math.Cos(angle)*radius,
			Z: center.Z + math.Sin(angle)*radius,
		}

	case FormationLine:
		// Rank perpendicular to facing, spread symmetrically about the centre.
		spacing := lineSpacing
		if width := float64(total-1) * spacing; width > lineWidthCap && total > 1 {
			spacing = lineWidthCap / float64(total-1)
		}
		side := (float64(index) - float64(total-1)/2) * spacing
		return slotWorld(center, facing, 0, side)

	case FormationArrow:
		if index == 0 {
			// The point, ahead of the centre along facing.
			return slotWorld(center, facing, arrowPointLead, 0)
		}
		// Remaining fighters fill rows behind the point. Row r holds r+1
		// slots; lateral spacing tightens the further back the row sits.
		row, col, rowSize := arrowRowFor(index)
		spacing := arrowRowSpacing * math.Max(0.5, 1.0-0.08*float64(row))
		side := (float64(col) - float64(rowSize-1)/2) * spacing
		back := arrowPointLead - float64(row)*arrowRowDepth
		return slotWorld(center, facing, back, side)

	case FormationScatter:
		// Deterministic pseudo-random offset seeded purely by index:
		// reproducible placement, not true randomness.
		angle := scatterHash(index) * 2 * math.Pi
		radius := scatterHash(index+7919) * scatterRadiusCap
		return Vec3{
			X: center.X + math.Cos(angle)*radius,
			Z: center.Z + math.Sin(angle)*radius,
		}
	}
	return center
}

// arrowRowFor maps a wedge index (≥1) to its row, column within the row, and
// the row's slot count. Row 1 holds 2 slots, row 2 holds 3, and so on.
func arrowRowFor(index int) (row, col, rowSize int) {
	i := index - 1 // slots after the point
	row = 1
	for i >= row+1 {
		i -= row + 1
		row++
	}
	return row, i, row + 1
}

// slotWorld converts a local (forward, right) offset into world space given
// the reference centre and facing.
func slotWorld(center Vec3, facing, fwd, right float64) Vec3 {
	f := HeadingVec(facing)
	// Right is 90° clockwise from forward on the XZ plane.
	return Vec3{
		X: center.X + f.X*fwd + -f.Z*right,
		Z: center.Z + f.Z*fwd + f.X*right,
	}
}

// scatterHash maps an integer to a stable value in [0,1). A small integer
// mix (splitmix-style) keeps slots well spread without any RNG state.
func scatterHash(i int) float64 {
	x := uint64(i)*0x9E3779B97F4A7C15 + 0xBF58476D1CE4E5B9
	x ^= x >> 30
	x *= 0x94D049BB133111EB
	x ^= x >> 27
	return float64(x>>11) / float64(1<<53)
}
