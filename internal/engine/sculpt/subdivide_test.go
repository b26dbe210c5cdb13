package sculpt

import (
	"testing"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/internal/engine/primitive"
	"github.com/Faultbox/sculptkit/pkg/math"
)

func TestSubdivideIcosahedron(t *testing.T) {
	m := primitive.Sphere(1, 0)
	out := Subdivide(m, math.Vec3{X: 1, Y: 0, Z: 0}, 0.8, 0.3)

	if out.VertexCount() <= 12 {
		t.Errorf("vertex count = %d, want > 12", out.VertexCount())
	}
	if issues := geometry.VerifyWatertight(out); len(issues) != 0 {
		t.Errorf("subdivided sphere not watertight: %v", issues)
	}
	if tj := geometry.FindTJunctions(out, 1e-4); len(tj) != 0 {
		t.Errorf("subdivided sphere has T-junctions at %v", tj)
	}
	// The input must be untouched.
	if m.VertexCount() != 12 {
		t.Errorf("input mesh was mutated: %d vertices", m.VertexCount())
	}
}

func TestSubdivideOpenQuad(t *testing.T) {
	m := geometry.New([]math.Vec3{
		{X: -1, Y: -1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0},
	}, []uint32{0, 1, 2, 0, 2, 3})

	out := Subdivide(m, math.Vec3{}, 1.5, 0.5)
	if out.VertexCount() <= 4 {
		t.Errorf("vertex count = %d, want > 4", out.VertexCount())
	}
	if tj := geometry.FindTJunctions(out, 1e-4); len(tj) != 0 {
		t.Errorf("open quad subdivision left T-junctions at %v", tj)
	}
}

func TestSubdivideMonotonic(t *testing.T) {
	m := primitive.Cube(2)
	out := Subdivide(m, math.Vec3{X: 1, Y: 1, Z: 1}, 1.5, 0.6)
	if out.VertexCount() < m.VertexCount() {
		t.Errorf("vertex count decreased: %d -> %d", m.VertexCount(), out.VertexCount())
	}
}

func TestSubdivideConverges(t *testing.T) {
	// Partial splits introduce connector edges that may still exceed
	// maxEdge, so repeated passes keep refining. The sequence must reach
	// a fixed point where the mesh is returned unchanged.
	m := primitive.Sphere(1, 0)
	center := math.Vec3{X: 1, Y: 0, Z: 0}

	prev := m
	converged := false
	for i := 0; i < 10; i++ {
		next := Subdivide(prev, center, 0.8, 0.6)
		if next == prev {
			converged = true
			break
		}
		prev = next
	}
	if !converged {
		t.Fatal("subdivision did not reach a fixed point in 10 passes")
	}
	if prev.VertexCount() <= m.VertexCount() {
		t.Error("converged mesh was never refined")
	}
	if issues := geometry.VerifyWatertight(prev); len(issues) != 0 {
		t.Errorf("converged mesh not watertight: %v", issues)
	}
}

func TestSubdivideNoOpReturnsInput(t *testing.T) {
	m := primitive.Sphere(1, 0)
	out := Subdivide(m, math.Vec3{X: 1, Y: 0, Z: 0}, 0.8, 10)
	if out != m {
		t.Error("no qualifying edges should return the input mesh")
	}
}

func TestSubdivideInvalidParams(t *testing.T) {
	m := primitive.Sphere(1, 0)
	if Subdivide(m, math.Vec3{}, 0, 0.3) != m {
		t.Error("zero radius should be a no-op")
	}
	if Subdivide(m, math.Vec3{}, 1, 0) != m {
		t.Error("zero max edge should be a no-op")
	}
}

func TestSubdivideEmptyMesh(t *testing.T) {
	m := &geometry.Mesh{}
	if out := Subdivide(m, math.Vec3{}, 1, 0.1); out != m {
		t.Error("empty mesh should pass through unchanged")
	}
}

func TestSubdivideUnindexedInput(t *testing.T) {
	m := &geometry.Mesh{
		Vertices: []geometry.Vertex{
			{Position: math.Vec3{X: -1, Y: -1, Z: 0}},
			{Position: math.Vec3{X: 1, Y: -1, Z: 0}},
			{Position: math.Vec3{X: 0, Y: 1, Z: 0}},
		},
	}
	out := Subdivide(m, math.Vec3{}, 2, 0.5)
	if out.VertexCount() <= 3 {
		t.Errorf("unindexed triangle was not subdivided: %d vertices", out.VertexCount())
	}
}

func TestSubdivideKeepsSphereRound(t *testing.T) {
	m := primitive.Sphere(1, 0)
	out := Subdivide(m, math.Vec3{X: 1, Y: 0, Z: 0}, 0.8, 0.3)

	// Both endpoints of every split edge sit on the unit sphere, so new
	// vertices must be projected out to it rather than left on the chord.
	for i := m.VertexCount(); i < out.VertexCount(); i++ {
		l := out.Vertices[i].Position.Length()
		if l < 0.99 || l > 1.01 {
			t.Errorf("midpoint vertex %d at radius %f, want ~1", i, l)
		}
	}
}

func TestSubdivideCubeStaysWatertight(t *testing.T) {
	m := primitive.Cube(2)
	out := m
	for i := 0; i < 3; i++ {
		out = Subdivide(out, math.Vec3{X: 1, Y: 1, Z: 1}, 2, 0.5)
	}
	if issues := geometry.VerifyWatertight(out); len(issues) != 0 {
		t.Errorf("repeated subdivision broke watertightness: %v", issues)
	}
	if tj := geometry.FindTJunctions(out, 1e-4); len(tj) != 0 {
		t.Errorf("repeated subdivision left T-junctions at %v", tj)
	}
}

func TestSubdividePreservesWinding(t *testing.T) {
	m := primitive.Sphere(1, 0)
	out := Subdivide(m, math.Vec3{X: 1, Y: 0, Z: 0}, 0.8, 0.3)

	// Outward winding everywhere: each face normal points away from the
	// sphere center.
	for tri := 0; tri < out.TriangleCount(); tri++ {
		a, b, c := out.Triangle(tri)
		pa := out.Vertices[a].Position
		pb := out.Vertices[b].Position
		pc := out.Vertices[c].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		center := pa.Add(pb).Add(pc).Scale(1.0 / 3.0)
		if n.Dot(center) <= 0 {
			t.Errorf("triangle %d winds inward", tri)
		}
	}
}
