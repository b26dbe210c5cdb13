// Package sculpt implements the brush engine: adaptive subdivision near
// the stroke point, falloff-weighted deformation, mirror symmetry, and
// the per-sample orchestration tying them together.
package sculpt

import "github.com/Faultbox/sculptkit/pkg/math"

// Axes selects which local mirror planes are active. Each plane passes
// through the object's local origin, perpendicular to the named axis.
type Axes struct {
	X bool `yaml:"x"`
	Y bool `yaml:"y"`
	Z bool `yaml:"z"`
}

// Count returns the number of active axes.
func (a Axes) Count() int {
	n := 0
	if a.X {
		n++
	}
	if a.Y {
		n++
	}
	if a.Z {
		n++
	}
	return n
}

// Point is one stroke application point in the mesh's local space.
// Primary marks the original (unmirrored) point; Mirror records which
// axes were negated, so directional state like the push drag vector can
// be mirrored the same way instead of being re-derived from positions.
type Point struct {
	Position math.Vec3
	Normal   math.Vec3
	Mirror   [3]bool
	Primary  bool
}

// expandOrder lists axis bitmasks in output order: original, single-axis
// mirrors, pair mirrors, triple mirror.
var expandOrder = [8]uint8{0, 1, 2, 4, 3, 5, 6, 7}

// ExpandSymmetry mirrors one local-space point/normal pair across every
// combination of the active axes. The original pair comes first and the
// result always has exactly 2^(active axis count) entries in a
// deterministic order.
func ExpandSymmetry(position, normal math.Vec3, axes Axes) []Point {
	var active uint8
	if axes.X {
		active |= 1
	}
	if axes.Y {
		active |= 2
	}
	if axes.Z {
		active |= 4
	}

	points := make([]Point, 0, 1<<axes.Count())
	for _, mask := range expandOrder {
		if mask&^active != 0 {
			continue // uses an inactive axis
		}
		mirror := [3]bool{mask&1 != 0, mask&2 != 0, mask&4 != 0}
		points = append(points, Point{
			Position: MirrorVec(position, mirror),
			Normal:   MirrorVec(normal, mirror),
			Mirror:   mirror,
			Primary:  mask == 0,
		})
	}
	return points
}

// MirrorVec negates the components of v selected by mirror.
func MirrorVec(v math.Vec3, mirror [3]bool) math.Vec3 {
	if mirror[0] {
		v.X = -v.X
	}
	if mirror[1] {
		v.Y = -v.Y
	}
	if mirror[2] {
		v.Z = -v.Z
	}
	return v
}
