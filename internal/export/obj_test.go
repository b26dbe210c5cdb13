package export

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
	"github.com/Faultbox/sculptkit/internal/engine/primitive"
	"github.com/Faultbox/sculptkit/pkg/math"
)

func TestWriteOBJ(t *testing.T) {
	m := geometry.New([]math.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
	}, []uint32{0, 1, 2})

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "tri", m); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "o tri\n") {
		t.Error("missing object name line")
	}
	if !strings.Contains(out, "v 0 0 0\n") || !strings.Contains(out, "v 1 0 0\n") {
		t.Errorf("missing vertex lines in:\n%s", out)
	}
	// Faces are 1-based and reference the normals.
	if !strings.Contains(out, "f 1//1 2//2 3//3\n") {
		t.Errorf("missing face line in:\n%s", out)
	}
}

func TestWriteOBJCounts(t *testing.T) {
	m := primitive.Sphere(1, 2)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "", m); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	var vLines, vnLines, fLines int
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		switch {
		case strings.HasPrefix(sc.Text(), "vn "):
			vnLines++
		case strings.HasPrefix(sc.Text(), "v "):
			vLines++
		case strings.HasPrefix(sc.Text(), "f "):
			fLines++
		}
	}
	if vLines != m.VertexCount() {
		t.Errorf("v lines = %d, want %d", vLines, m.VertexCount())
	}
	if vnLines != m.VertexCount() {
		t.Errorf("vn lines = %d, want %d", vnLines, m.VertexCount())
	}
	if fLines != m.TriangleCount() {
		t.Errorf("f lines = %d, want %d", fLines, m.TriangleCount())
	}
}

func TestSaveOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := SaveOBJ(path, "cube", primitive.Cube(1)); err != nil {
		t.Fatalf("SaveOBJ: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "o cube\n") {
		t.Error("saved file missing object name")
	}
}
