// Package geometry provides the triangle mesh type edited by the sculpting
// engine, plus the derived data (normals, bounds) recomputed after edits.
package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sculptkit/pkg/math"
)

// Vertex is a mesh vertex. Position is authoritative; Normal is derived
// and rebuilt by RecomputeNormals after any edit.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Midpoint(b.Max)
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// Mesh is an indexed triangle mesh. Indices is a multiple of 3; every
// consecutive triple names one triangle, and winding is never reordered
// by any operation in this repository.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	Bounds         Bounds
	BoundingSphere Sphere
}

// New builds a mesh from positions and indices and computes its
// derived data. The indices slice may be nil for unindexed soup input;
// EnsureIndexed is applied before use.
func New(positions []math.Vec3, indices []uint32) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, len(positions)),
		Indices:  indices,
	}
	for i, p := range positions {
		m.Vertices[i].Position = p
	}
	m.EnsureIndexed()
	m.Refresh()
	return m
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c uint32) {
	return m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]
}

// Clone returns a deep copy sharing no storage with m.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices:       make([]Vertex, len(m.Vertices)),
		Indices:        make([]uint32, len(m.Indices)),
		Bounds:         m.Bounds,
		BoundingSphere: m.BoundingSphere,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Indices, m.Indices)
	return c
}

// EnsureIndexed converts an unindexed mesh (no index buffer, vertices in
// triangle order) into indexed form with sequential triples.
func (m *Mesh) EnsureIndexed() {
	if len(m.Indices) > 0 || len(m.Vertices) == 0 {
		return
	}
	n := len(m.Vertices) - len(m.Vertices)%3
	m.Indices = make([]uint32, n)
	for i := 0; i < n; i++ {
		m.Indices[i] = uint32(i)
	}
}

// Refresh recomputes all derived data after positions or topology changed.
func (m *Mesh) Refresh() {
	m.RecomputeNormals()
	m.RecomputeBounds()
}

// RecomputeNormals rebuilds per-vertex normals from the triangle list.
// Face normals are accumulated unnormalized, so larger triangles weigh
// more. Vertices duplicated at the same position (seams from imported
// meshes) are welded so the surface stays smooth across them.
func (m *Mesh) RecomputeNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math.Vec3{}
	}

	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		pa := m.Vertices[a].Position
		pb := m.Vertices[b].Position
		pc := m.Vertices[c].Position

		// Unnormalized cross product: magnitude = 2x triangle area.
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		if n.LengthSq() < 1e-12 {
			continue // degenerate
		}

		m.Vertices[a].Normal = m.Vertices[a].Normal.Add(n)
		m.Vertices[b].Normal = m.Vertices[b].Normal.Add(n)
		m.Vertices[c].Normal = m.Vertices[c].Normal.Add(n)
	}

	weldNormals(m.Vertices)

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		if n.LengthSq() < 1e-12 {
			m.Vertices[i].Normal = math.Vec3{Y: 1}
			continue
		}
		m.Vertices[i].Normal = n.Normalize()
	}
}

// weldNormals sums accumulated normals across vertices at the same
// quantized position so split seams shade smoothly.
func weldNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		p := vertices[i].Position
		key := [3]int32{
			int32(p.X / epsilon),
			int32(p.Y / epsilon),
			int32(p.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vertices[idx].Normal)
		}
		for _, idx := range idxs {
			vertices[idx].Normal = sum
		}
	}
}

// RecomputeBounds rebuilds the bounding box and bounding sphere.
func (m *Mesh) RecomputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		m.BoundingSphere = Sphere{}
		return
	}

	b := Bounds{
		Min: math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
	for i := range m.Vertices {
		b.Extend(m.Vertices[i].Position)
	}
	m.Bounds = b

	center := b.Center()
	var maxSq float32
	for i := range m.Vertices {
		d := m.Vertices[i].Position.DistanceSq(center)
		if d > maxSq {
			maxSq = d
		}
	}
	m.BoundingSphere = Sphere{Center: center, Radius: math32.Sqrt(maxSq)}
}
