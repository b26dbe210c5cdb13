package geometry

import "fmt"

// VerifyWatertight checks that every undirected edge in the triangle list
// is shared by exactly two triangles, and that all indices are in range.
// Returns a description of every violation; an empty slice means the mesh
// is watertight. Open meshes (quads, planes) legitimately report their
// boundary edges here.
func VerifyWatertight(m *Mesh) []string {
	var issues []string

	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			issues = append(issues, fmt.Sprintf("index %d out of range: %d >= %d vertices", i, idx, len(m.Vertices)))
		}
	}
	if len(issues) > 0 {
		return issues
	}

	for key, tris := range EdgeTriangles(m) {
		if len(tris) == 2 {
			continue
		}
		a, b := key.Endpoints()
		issues = append(issues, fmt.Sprintf("edge (%d,%d) used by %d triangles, want 2", a, b, len(tris)))
	}
	return issues
}

// FindTJunctions returns every vertex index that lies strictly between the
// endpoints of a triangle edge it is not an endpoint of, within tol of the
// segment. Such vertices cause visible cracks when the mesh deforms.
func FindTJunctions(m *Mesh, tol float32) []int {
	tolSq := tol * tol
	var found []int
	seen := make(map[int]bool)

	for key := range EdgeTriangles(m) {
		a, b := key.Endpoints()
		pa := m.Vertices[a].Position
		pb := m.Vertices[b].Position
		ab := pb.Sub(pa)
		lenSq := ab.LengthSq()
		if lenSq < 1e-12 {
			continue // zero-length edge, nothing can sit inside it
		}

		for v := range m.Vertices {
			if uint32(v) == a || uint32(v) == b || seen[v] {
				continue
			}
			p := m.Vertices[v].Position
			t := p.Sub(pa).Dot(ab) / lenSq
			if t <= 0.01 || t >= 0.99 {
				continue // at or beyond an endpoint
			}
			onSeg := pa.Add(ab.Scale(t))
			if p.DistanceSq(onSeg) < tolSq {
				seen[v] = true
				found = append(found, v)
			}
		}
	}
	return found
}
