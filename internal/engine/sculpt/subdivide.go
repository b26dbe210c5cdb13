package sculpt

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/pkg/math"
)

const (
	// propagationCap bounds the mark-consistency iterations. Marks only
	// ever spread outward one triangle per pass, so a handful of passes
	// settles any practical brush neighborhood.
	propagationCap = 5

	// farSplitFactor: edges longer than this multiple of maxEdge are
	// split even outside the radius, so long thin triangles cannot
	// survive just past the brush boundary.
	farSplitFactor = 2

	// sphereBandTol is the relative tolerance for treating both edge
	// endpoints as lying on a common sphere around the local origin.
	sphereBandTol = 0.03
)

// Subdivide refines the mesh near center: every edge longer than maxEdge
// whose midpoint lies within radius of center is split, and marks are
// propagated until every triangle matches one of the eight split patterns,
// so the result has no T-junctions and stays watertight if the input was.
// The input mesh is not modified; when nothing qualifies, it is returned
// as-is. Vertex count never decreases.
func Subdivide(m *geometry.Mesh, center math.Vec3, radius, maxEdge float32) *geometry.Mesh {
	if maxEdge <= 0 || radius <= 0 {
		return m
	}
	m.EnsureIndexed()
	if m.TriangleCount() == 0 {
		return m
	}

	marked := markLongEdges(m, center, radius, maxEdge)
	if len(marked) == 0 {
		return m
	}
	propagateMarks(m, marked)

	// Copy-on-write: vertices are extended with one midpoint per marked
	// edge, deduplicated by edge key so neighbors share the split vertex.
	vertices := make([]geometry.Vertex, len(m.Vertices), len(m.Vertices)+len(marked))
	copy(vertices, m.Vertices)

	midpoints := make(map[geometry.EdgeKey]uint32, len(marked))
	for key := range marked {
		a, b := key.Endpoints()
		midpoints[key] = uint32(len(vertices))
		vertices = append(vertices, geometry.Vertex{
			Position: splitPosition(m.Vertices[a].Position, m.Vertices[b].Position),
		})
	}

	indices := rebuildTriangles(m, marked, midpoints)

	out := &geometry.Mesh{Vertices: vertices, Indices: indices}
	out.Refresh()
	return out
}

// markLongEdges runs the marking pass over every triangle edge.
func markLongEdges(m *geometry.Mesh, center math.Vec3, radius, maxEdge float32) map[geometry.EdgeKey]bool {
	marked := make(map[geometry.EdgeKey]bool)
	radiusSq := radius * radius
	maxEdgeSq := maxEdge * maxEdge
	farSq := maxEdgeSq * farSplitFactor * farSplitFactor

	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		for _, e := range [3][2]uint32{{a, b}, {b, c}, {c, a}} {
			key := geometry.MakeEdgeKey(e[0], e[1])
			if marked[key] {
				continue
			}
			pa := m.Vertices[e[0]].Position
			pb := m.Vertices[e[1]].Position
			lenSq := pa.DistanceSq(pb)
			if lenSq <= maxEdgeSq {
				continue
			}
			if lenSq > farSq || pa.Midpoint(pb).DistanceSq(center) <= radiusSq {
				marked[key] = true
			}
		}
	}
	return marked
}

// propagateMarks repeatedly marks the third edge of any triangle that has
// exactly two marked edges. Afterwards every triangle has 0, 1, 2 or 3
// marked edges in a configuration the rebuild table handles without
// leaving split vertices dangling on unsplit neighbors.
func propagateMarks(m *geometry.Mesh, marked map[geometry.EdgeKey]bool) {
	for pass := 0; pass < propagationCap; pass++ {
		changed := false
		for t := 0; t < m.TriangleCount(); t++ {
			a, b, c := m.Triangle(t)
			keys := [3]geometry.EdgeKey{
				geometry.MakeEdgeKey(a, b),
				geometry.MakeEdgeKey(b, c),
				geometry.MakeEdgeKey(c, a),
			}
			count := 0
			for _, k := range keys {
				if marked[k] {
					count++
				}
			}
			if count != 2 {
				continue
			}
			for _, k := range keys {
				if !marked[k] {
					marked[k] = true
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
}

// splitPosition returns the new vertex position for a split edge. When
// both endpoints sit at near-equal distance from the local origin, the
// surface is treated as locally spherical and the midpoint is pushed out
// onto that sphere, which keeps curved primitives round under refinement
// instead of faceting along flat chords.
func splitPosition(a, b math.Vec3) math.Vec3 {
	mid := a.Midpoint(b)
	la := a.Length()
	lb := b.Length()
	avg := (la + lb) * 0.5
	if avg > 0 && math32.Abs(la-lb) < sphereBandTol*avg {
		return mid.Normalize().Scale(avg)
	}
	return mid
}

// rebuildTriangles replaces each triangle according to which of its three
// edges are marked. All eight patterns preserve the original winding.
func rebuildTriangles(m *geometry.Mesh, marked map[geometry.EdgeKey]bool, midpoints map[geometry.EdgeKey]uint32) []uint32 {
	indices := make([]uint32, 0, len(m.Indices)*2)

	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		kab := geometry.MakeEdgeKey(a, b)
		kbc := geometry.MakeEdgeKey(b, c)
		kca := geometry.MakeEdgeKey(c, a)

		pattern := 0
		if marked[kab] {
			pattern |= 1
		}
		if marked[kbc] {
			pattern |= 2
		}
		if marked[kca] {
			pattern |= 4
		}

		mab := midpoints[kab]
		mbc := midpoints[kbc]
		mca := midpoints[kca]

		switch pattern {
		case 0:
			indices = append(indices, a, b, c)
		case 1:
			indices = append(indices,
				a, mab, c,
				mab, b, c)
		case 2:
			indices = append(indices,
				a, b, mbc,
				a, mbc, c)
		case 4:
			indices = append(indices,
				a, b, mca,
				mca, b, c)
		case 3:
			indices = append(indices,
				a, mab, c,
				mab, mbc, c,
				mab, b, mbc)
		case 5:
			indices = append(indices,
				a, mab, mca,
				mab, b, c,
				mab, c, mca)
		case 6:
			indices = append(indices,
				a, b, mbc,
				a, mbc, mca,
				mca, mbc, c)
		case 7:
			indices = append(indices,
				a, mab, mca,
				mab, b, mbc,
				mca, mbc, c,
				mab, mbc, mca)
		}
	}
	return indices
}
