// Package primitive generates the indexed base meshes that sculpting
// starts from. All shapes are welded (no duplicated seam vertices) so
// they verify as watertight before any editing happens.
package primitive

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/pkg/math"
)

// Kind selects a base shape.
type Kind int

const (
	KindSphere Kind = iota
	KindCube
	KindCylinder
	KindCone
	KindTorus
)

// ParseKind parses a shape name as used in config files and scripts.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "sphere":
		return KindSphere, nil
	case "cube":
		return KindCube, nil
	case "cylinder":
		return KindCylinder, nil
	case "cone":
		return KindCone, nil
	case "torus":
		return KindTorus, nil
	}
	return 0, fmt.Errorf("unknown primitive %q", name)
}

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindCube:
		return "cube"
	case KindCylinder:
		return "cylinder"
	case KindCone:
		return "cone"
	case KindTorus:
		return "torus"
	}
	return "unknown"
}

// ForKind builds the given shape at the given scale with default detail.
func ForKind(k Kind, scale float32) *geometry.Mesh {
	switch k {
	case KindCube:
		return Cube(scale)
	case KindCylinder:
		return Cylinder(scale*0.5, scale, 24)
	case KindCone:
		return Cone(scale*0.5, scale, 24)
	case KindTorus:
		return Torus(scale*0.5, scale*0.2, 32, 16)
	default:
		return Sphere(scale*0.5, 2)
	}
}

// Sphere returns an icosphere: an icosahedron whose triangles are split
// 1-to-4 the given number of times, vertices projected onto the sphere.
// subdivisions=0 yields the raw 12-vertex icosahedron.
func Sphere(radius float32, subdivisions int) *geometry.Mesh {
	t := (1.0 + math32.Sqrt(5.0)) / 2.0

	positions := []math.Vec3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	for i := range positions {
		positions[i] = positions[i].Normalize().Scale(radius)
	}

	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for s := 0; s < subdivisions; s++ {
		midCache := make(map[geometry.EdgeKey]uint32)
		mid := func(a, b uint32) uint32 {
			key := geometry.MakeEdgeKey(a, b)
			if idx, ok := midCache[key]; ok {
				return idx
			}
			p := positions[a].Midpoint(positions[b]).Normalize().Scale(radius)
			idx := uint32(len(positions))
			positions = append(positions, p)
			midCache[key] = idx
			return idx
		}

		next := make([]uint32, 0, len(indices)*4)
		for i := 0; i < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			ab, bc, ca := mid(a, b), mid(b, c), mid(c, a)
			next = append(next,
				a, ab, ca,
				ab, b, bc,
				ca, bc, c,
				ab, bc, ca,
			)
		}
		indices = next
	}

	return geometry.New(positions, indices)
}

// Cube returns an axis-aligned cube with the given edge length,
// centered at the origin. Eight shared corner vertices keep it watertight.
func Cube(size float32) *geometry.Mesh {
	h := size / 2
	positions := []math.Vec3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	}
	indices := []uint32{
		0, 3, 2, 0, 2, 1, // -Z
		4, 5, 6, 4, 6, 7, // +Z
		0, 4, 7, 0, 7, 3, // -X
		1, 2, 6, 1, 6, 5, // +X
		0, 1, 5, 0, 5, 4, // -Y
		3, 7, 6, 3, 6, 2, // +Y
	}
	return geometry.New(positions, indices)
}

// Cylinder returns a closed cylinder centered at the origin, axis along Y.
func Cylinder(radius, height float32, segments int) *geometry.Mesh {
	if segments < 3 {
		segments = 3
	}
	h := height / 2

	positions := make([]math.Vec3, 0, segments*2+2)
	for i := 0; i < segments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(segments)
		x := radius * math32.Cos(theta)
		z := radius * math32.Sin(theta)
		positions = append(positions, math.Vec3{X: x, Y: -h, Z: z})
	}
	for i := 0; i < segments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(segments)
		x := radius * math32.Cos(theta)
		z := radius * math32.Sin(theta)
		positions = append(positions, math.Vec3{X: x, Y: h, Z: z})
	}
	bottomCenter := uint32(len(positions))
	positions = append(positions, math.Vec3{Y: -h})
	topCenter := uint32(len(positions))
	positions = append(positions, math.Vec3{Y: h})

	var indices []uint32
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		bi, bj := uint32(i), uint32(j)
		ti, tj := uint32(segments+i), uint32(segments+j)

		indices = append(indices,
			bi, ti, tj, // side
			bi, tj, bj,
			bottomCenter, bi, bj, // caps
			topCenter, tj, ti,
		)
	}
	return geometry.New(positions, indices)
}

// Cone returns a closed cone with its base at -height/2 and apex at
// +height/2, axis along Y.
func Cone(radius, height float32, segments int) *geometry.Mesh {
	if segments < 3 {
		segments = 3
	}
	h := height / 2

	positions := make([]math.Vec3, 0, segments+2)
	for i := 0; i < segments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(segments)
		positions = append(positions, math.Vec3{
			X: radius * math32.Cos(theta),
			Y: -h,
			Z: radius * math32.Sin(theta),
		})
	}
	apex := uint32(len(positions))
	positions = append(positions, math.Vec3{Y: h})
	baseCenter := uint32(len(positions))
	positions = append(positions, math.Vec3{Y: -h})

	var indices []uint32
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		bi, bj := uint32(i), uint32(j)
		indices = append(indices,
			bi, apex, bj,
			baseCenter, bi, bj,
		)
	}
	return geometry.New(positions, indices)
}

// Torus returns a torus in the XZ plane. major is the ring radius, minor
// the tube radius.
func Torus(major, minor float32, majorSegments, minorSegments int) *geometry.Mesh {
	if majorSegments < 3 {
		majorSegments = 3
	}
	if minorSegments < 3 {
		minorSegments = 3
	}

	positions := make([]math.Vec3, 0, majorSegments*minorSegments)
	for i := 0; i < majorSegments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(majorSegments)
		cosT, sinT := math32.Cos(theta), math32.Sin(theta)
		for j := 0; j < minorSegments; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(minorSegments)
			r := major + minor*math32.Cos(phi)
			positions = append(positions, math.Vec3{
				X: r * cosT,
				Y: minor * math32.Sin(phi),
				Z: r * sinT,
			})
		}
	}

	at := func(i, j int) uint32 {
		i = (i + majorSegments) % majorSegments
		j = (j + minorSegments) % minorSegments
		return uint32(i*minorSegments + j)
	}

	var indices []uint32
	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			a := at(i, j)
			b := at(i+1, j)
			c := at(i, j+1)
			d := at(i+1, j+1)
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return geometry.New(positions, indices)
}
