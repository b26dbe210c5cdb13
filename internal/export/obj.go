// Package export writes meshes to interchange formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/sculptkit/internal/engine/geometry"
)

// WriteOBJ writes the mesh as Wavefront OBJ: positions, normals and
// triangular faces. OBJ indices are 1-based.
func WriteOBJ(w io.Writer, name string, m *geometry.Mesh) error {
	bw := bufio.NewWriter(w)

	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n",
			a+1, a+1, b+1, b+1, c+1, c+1)
	}

	return bw.Flush()
}

// SaveOBJ writes the mesh to a file.
func SaveOBJ(path, name string, m *geometry.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteOBJ(f, name, m); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
