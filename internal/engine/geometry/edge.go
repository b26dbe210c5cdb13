package geometry

// EdgeKey identifies an undirected edge by its two vertex indices packed
// into one uint64, smaller index in the high half. (a,b) and (b,a) map to
// the same key.
type EdgeKey uint64

// MakeEdgeKey returns the canonical key for the edge between a and b.
func MakeEdgeKey(a, b uint32) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey(uint64(a)<<32 | uint64(b))
}

// Endpoints returns the two vertex indices of the edge, smaller first.
func (k EdgeKey) Endpoints() (uint32, uint32) {
	return uint32(k >> 32), uint32(k)
}

// EdgeTriangles maps every undirected edge of the mesh to the indices of
// the triangles that use it.
func EdgeTriangles(m *Mesh) map[EdgeKey][]int {
	adj := make(map[EdgeKey][]int, m.TriangleCount()*3/2)
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		adj[MakeEdgeKey(a, b)] = append(adj[MakeEdgeKey(a, b)], t)
		adj[MakeEdgeKey(b, c)] = append(adj[MakeEdgeKey(b, c)], t)
		adj[MakeEdgeKey(c, a)] = append(adj[MakeEdgeKey(c, a)], t)
	}
	return adj
}
