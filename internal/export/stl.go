package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/pathbuilder/pkg/extrude"
	"github.com/Faultbox/pathbuilder/pkg/math"
)

// ErrTruncatedSTL is returned when binary STL data ends early.
var ErrTruncatedSTL = errors.New("truncated STL data")

const stlHeaderSize = 80

// STLTriangle is one facet of a binary STL file.
type STLTriangle struct {
	Normal    math.Vec3
	Vertices  [3]math.Vec3
	Attribute uint16
}

// WriteSTL writes a little-endian binary STL. Facet normals are computed
// from the winding.
func WriteSTL(w io.Writer, mesh *extrude.Mesh) error {
	if mesh.IsEmpty() {
		return ErrEmptyMesh
	}

	bw := bufio.NewWriter(w)
	var header [stlHeaderSize]byte
	copy(header[:], "pathbuilder binary STL")
	bw.Write(header[:])

	if err := binary.Write(bw, binary.LittleEndian, uint32(mesh.TriangleCount())); err != nil {
		return fmt.Errorf("writing stl: %w", err)
	}

	for i := 0; i+2 < len(mesh.Triangles); i += 3 {
		a := mesh.Vertices[mesh.Triangles[i]]
		b := mesh.Vertices[mesh.Triangles[i+1]]
		c := mesh.Vertices[mesh.Triangles[i+2]]
		tri := STLTriangle{
			Normal:   b.Sub(a).Cross(c.Sub(a)).Normalize(),
			Vertices: [3]math.Vec3{a, b, c},
		}
		if err := binary.Write(bw, binary.LittleEndian, &tri); err != nil {
			return fmt.Errorf("writing stl: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing stl: %w", err)
	}
	return nil
}

// ReadSTL parses a binary STL.
func ReadSTL(r io.Reader) ([]STLTriangle, error) {
	br := bufio.NewReader(r)

	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrTruncatedSTL, err)
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: triangle count: %w", ErrTruncatedSTL, err)
	}

	// The count is untrusted; grow as facets actually arrive.
	tris := make([]STLTriangle, 0, min(count, 1<<16))
	for i := range count {
		var tri STLTriangle
		if err := binary.Read(br, binary.LittleEndian, &tri); err != nil {
			return nil, fmt.Errorf("%w: triangle %d: %w", ErrTruncatedSTL, i, err)
		}
		tris = append(tris, tri)
	}
	return tris, nil
}
