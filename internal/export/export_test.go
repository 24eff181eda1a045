package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/pathbuilder/pkg/extrude"
	"github.com/Faultbox/pathbuilder/pkg/math"
	"github.com/Faultbox/pathbuilder/pkg/profile"
)

// tube returns a straight 3-ring tube with a square profile.
func tube() *extrude.Mesh {
	in := extrude.Input{Profile: profile.Rect(1, 1)}
	for i := range 3 {
		in.Samples = append(in.Samples, math.Vec3{Z: float32(i)})
		in.Tangents = append(in.Tangents, math.Vec3Forward)
		in.Normals = append(in.Normals, math.Vec3Right)
	}
	return extrude.Extrude(in)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"obj", FormatOBJ, false},
		{"STL", FormatSTL, false},
		{" obj ", FormatOBJ, false},
		{"fbx", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q): expected ErrUnknownFormat, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, %v", tt.in, got, err)
		}
	}

	if f, err := FormatFromPath("out/mesh.stl"); err != nil || f != FormatSTL {
		t.Errorf("FormatFromPath: got %q, %v", f, err)
	}
}

func TestWriteOBJ(t *testing.T) {
	mesh := tube()
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh, "tube"); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	counts := map[string]int{}
	for _, line := range strings.Split(buf.String(), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			counts[fields[0]]++
		}
	}

	if counts["v"] != mesh.VertexCount() {
		t.Errorf("v lines: got %d, want %d", counts["v"], mesh.VertexCount())
	}
	if counts["vt"] != mesh.VertexCount() || counts["vn"] != mesh.VertexCount() {
		t.Errorf("vt/vn lines: got %d/%d", counts["vt"], counts["vn"])
	}
	if counts["f"] != mesh.TriangleCount() {
		t.Errorf("f lines: got %d, want %d", counts["f"], mesh.TriangleCount())
	}
	if !strings.Contains(buf.String(), "o tube\n") {
		t.Error("missing object name")
	}

	// First triangle of the first slot is (next+1, next, cur) = (6, 5, 0), 1-based.
	if !strings.Contains(buf.String(), "f 7/7/7 6/6/6 1/1/1\n") {
		t.Error("first face not written with 1-based indices")
	}
}

func TestSTLRoundTrip(t *testing.T) {
	mesh := tube()
	var buf bytes.Buffer
	if err := WriteSTL(&buf, mesh); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}

	if want := 80 + 4 + 50*mesh.TriangleCount(); buf.Len() != want {
		t.Fatalf("size: got %d bytes, want %d", buf.Len(), want)
	}

	tris, err := ReadSTL(&buf)
	if err != nil {
		t.Fatalf("ReadSTL: %v", err)
	}
	if len(tris) != mesh.TriangleCount() {
		t.Fatalf("triangles: got %d, want %d", len(tris), mesh.TriangleCount())
	}

	first := tris[0]
	if first.Vertices[0] != mesh.Vertices[mesh.Triangles[0]] {
		t.Errorf("first vertex: got %v, want %v", first.Vertices[0], mesh.Vertices[mesh.Triangles[0]])
	}
	if !first.Normal.ApproxEqual(math.Vec3Right, 1e-5) {
		t.Errorf("first facet normal: got %v, want +X", first.Normal)
	}
}

func TestReadSTLTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, tube()); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	data := buf.Bytes()

	for _, n := range []int{10, 82, len(data) - 1} {
		if _, err := ReadSTL(bytes.NewReader(data[:n])); !errors.Is(err, ErrTruncatedSTL) {
			t.Errorf("length %d: expected ErrTruncatedSTL, got %v", n, err)
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	empty := &extrude.Mesh{}
	var buf bytes.Buffer

	if err := Write(&buf, empty, FormatOBJ); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("Write: expected ErrEmptyMesh, got %v", err)
	}
	if err := WriteSTL(&buf, empty); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("WriteSTL: expected ErrEmptyMesh, got %v", err)
	}
	if err := Write(&buf, tube(), Format("ply")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write: expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tube.obj")
	if err := WriteFile(path, tube(), FormatOBJ); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}
