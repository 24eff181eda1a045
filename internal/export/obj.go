package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/pathbuilder/pkg/extrude"
)

// WriteOBJ writes a Wavefront OBJ with positions, texture coordinates and
// normals. Face indices are 1-based and shared across the three streams.
func WriteOBJ(w io.Writer, mesh *extrude.Mesh, name string) error {
	if mesh.IsEmpty() {
		return ErrEmptyMesh
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# pathbuilder mesh: %d vertices, %d triangles\n", mesh.VertexCount(), mesh.TriangleCount())
	fmt.Fprintf(bw, "o %s\n", name)

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	hasUV := len(mesh.UVs) == len(mesh.Vertices)
	if hasUV {
		for _, uv := range mesh.UVs {
			fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
		}
	}
	hasNormals := len(mesh.Normals) == len(mesh.Vertices)
	if hasNormals {
		for _, n := range mesh.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
	}

	for i := 0; i+2 < len(mesh.Triangles); i += 3 {
		bw.WriteString("f")
		for _, idx := range mesh.Triangles[i : i+3] {
			k := idx + 1
			switch {
			case hasUV && hasNormals:
				fmt.Fprintf(bw, " %d/%d/%d", k, k, k)
			case hasNormals:
				fmt.Fprintf(bw, " %d//%d", k, k)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", k, k)
			default:
				fmt.Fprintf(bw, " %d", k)
			}
		}
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing obj: %w", err)
	}
	return nil
}
