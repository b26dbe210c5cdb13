package primitive

import (
	"testing"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
)

func TestPrimitivesAreWatertight(t *testing.T) {
	tests := []struct {
		name string
		mesh *geometry.Mesh
	}{
		{"icosahedron", Sphere(1, 0)},
		{"icosphere", Sphere(1, 2)},
		{"cube", Cube(2)},
		{"cylinder", Cylinder(0.5, 1, 16)},
		{"cone", Cone(0.5, 1, 16)},
		{"torus", Torus(1, 0.3, 24, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if issues := geometry.VerifyWatertight(tt.mesh); len(issues) != 0 {
				t.Errorf("%s not watertight: %v", tt.name, issues)
			}
		})
	}
}

func TestEulerCharacteristic(t *testing.T) {
	// V - E + F is 2 for sphere-topology meshes and 0 for a torus.
	tests := []struct {
		name string
		mesh *geometry.Mesh
		want int
	}{
		{"icosahedron", Sphere(1, 0), 2},
		{"icosphere", Sphere(1, 1), 2},
		{"cube", Cube(1), 2},
		{"cylinder", Cylinder(1, 2, 12), 2},
		{"cone", Cone(1, 2, 12), 2},
		{"torus", Torus(1, 0.25, 16, 8), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.mesh.VertexCount()
			e := len(geometry.EdgeTriangles(tt.mesh))
			f := tt.mesh.TriangleCount()
			if got := v - e + f; got != tt.want {
				t.Errorf("V-E+F = %d, want %d (V=%d E=%d F=%d)", got, tt.want, v, e, f)
			}
		})
	}
}

func TestIcosahedronShape(t *testing.T) {
	m := Sphere(1, 0)
	if m.VertexCount() != 12 {
		t.Errorf("icosahedron has %d vertices, want 12", m.VertexCount())
	}
	if m.TriangleCount() != 20 {
		t.Errorf("icosahedron has %d triangles, want 20", m.TriangleCount())
	}
}

func TestSphereVerticesOnSphere(t *testing.T) {
	const radius = 2.5
	m := Sphere(radius, 2)
	for i, v := range m.Vertices {
		l := v.Position.Length()
		if l < radius*0.999 || l > radius*1.001 {
			t.Errorf("vertex %d at distance %f, want %f", i, l, radius)
		}
	}
}

func TestSphereNormalsPointOutward(t *testing.T) {
	m := Sphere(1, 1)
	for i, v := range m.Vertices {
		if v.Normal.Dot(v.Position) <= 0 {
			t.Errorf("vertex %d normal %v does not face outward from %v", i, v.Normal, v.Position)
		}
	}
}

func TestCubeNormalsPointOutward(t *testing.T) {
	m := Cube(2)
	for i, v := range m.Vertices {
		if v.Normal.Dot(v.Position) <= 0 {
			t.Errorf("vertex %d normal %v does not face outward", i, v.Normal)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"sphere", KindSphere, false},
		{"cube", KindCube, false},
		{"cylinder", KindCylinder, false},
		{"cone", KindCone, false},
		{"torus", KindTorus, false},
		{"teapot", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
		if got.String() != tt.name {
			t.Errorf("Kind.String() = %q, want %q", got.String(), tt.name)
		}
	}
}

func TestForKindEveryKind(t *testing.T) {
	for _, k := range []Kind{KindSphere, KindCube, KindCylinder, KindCone, KindTorus} {
		m := ForKind(k, 1)
		if m.VertexCount() == 0 || m.TriangleCount() == 0 {
			t.Errorf("ForKind(%v) produced an empty mesh", k)
		}
	}
}
