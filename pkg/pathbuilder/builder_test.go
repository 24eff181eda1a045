package pathbuilder

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	pmath "github.com/Faultbox/pathbuilder/pkg/math"
	"github.com/Faultbox/pathbuilder/pkg/profile"
	"github.com/Faultbox/pathbuilder/pkg/spline"
	"github.com/Faultbox/pathbuilder/pkg/taper"
)

// record appends one control point per position through the origin frame.
func record(b *Builder, positions ...pmath.Vec3) {
	for _, p := range positions {
		b.SetOrigin(spline.NewFrame(p))
		b.RecordPoint()
	}
}

func TestRecordStraightLine(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1}, pmath.Vec3{X: 2})
	b.Recompute(0.2)

	samples := b.Samples()
	if len(samples) != 11 {
		t.Fatalf("samples: got %d, want 11", len(samples))
	}
	for i, s := range samples {
		if math.Abs(float64(s.Y)) > 1e-5 || math.Abs(float64(s.Z)) > 1e-5 {
			t.Errorf("sample %d off the X axis: %v", i, s)
		}
	}
	if last := samples[len(samples)-1]; last != (pmath.Vec3{X: 2}) {
		t.Errorf("last sample: got %v, want (2, 0, 0)", last)
	}
	if len(b.Tangents()) != len(samples) || len(b.Normals()) != len(samples) || len(b.Binormals()) != len(samples) {
		t.Errorf("frame buffers out of step with %d samples", len(samples))
	}
}

func TestRecordSolvesTangents(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1}, pmath.Vec3{X: 2})

	mid, ok := b.ControlPoint(1)
	if !ok {
		t.Fatal("ControlPoint(1) should exist")
	}
	if !mid.LeftWorld().ApproxEqual(pmath.Vec3{X: 0.6}, 1e-5) {
		t.Errorf("left handle: got %v, want (0.6, 0, 0)", mid.LeftWorld())
	}
	if !mid.RightWorld().ApproxEqual(pmath.Vec3{X: 1.4}, 1e-5) {
		t.Errorf("right handle: got %v, want (1.4, 0, 0)", mid.RightWorld())
	}

	first, _ := b.ControlPoint(0)
	if !first.RightWorld().ApproxEqual(pmath.Vec3{X: 0.4}, 1e-5) {
		t.Errorf("first right handle: got %v, want (0.4, 0, 0)", first.RightWorld())
	}
}

func TestAutoTangentsDisabled(t *testing.T) {
	b := New(WithAutoTangents(false))
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1}, pmath.Vec3{X: 2})

	// Recording solves whatever the toggle says.
	mid, _ := b.ControlPoint(1)
	if !mid.LeftWorld().ApproxEqual(pmath.Vec3{X: 0.6}, 1e-5) || !mid.RightWorld().ApproxEqual(pmath.Vec3{X: 1.4}, 1e-5) {
		t.Fatalf("recorded handles not solved: %v %v", mid.LeftWorld(), mid.RightWorld())
	}
	first, _ := b.ControlPoint(0)
	firstRight := first.RightWorld()

	// Edits do not re-solve while the toggle is off.
	if !b.MoveVertex(1, pmath.Vec3{X: 1, Y: 1}) {
		t.Fatal("MoveVertex failed")
	}
	mid, _ = b.ControlPoint(1)
	if !mid.LeftWorld().ApproxEqual(pmath.Vec3{X: 0.6, Y: 1}, 1e-5) {
		t.Errorf("left handle should ride along unsolved, got %v", mid.LeftWorld())
	}
	first, _ = b.ControlPoint(0)
	if first.RightWorld() != firstRight {
		t.Errorf("end point re-solved after edit: %v, want %v", first.RightWorld(), firstRight)
	}

	b.SetAutoTangents(true)
	b.MoveVertex(1, pmath.Vec3{X: 1, Y: 1})
	first, _ = b.ControlPoint(0)
	if first.RightWorld().ApproxEqual(firstRight, 1e-5) {
		t.Error("edit with auto tangents on should re-solve the end point")
	}
}

func TestControlPointOutOfRange(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1})

	for _, i := range []int{-1, 2, 5} {
		if _, ok := b.ControlPoint(i); ok {
			t.Errorf("ControlPoint(%d) should fail with %d points", i, b.Len())
		}
	}
}

func TestClearThenRecompute(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1}, pmath.Vec3{X: 2})
	b.Recompute(0.2)

	b.Clear()
	b.Recompute(0.2)

	if b.Len() != 0 || len(b.Samples()) != 0 || len(b.Tangents()) != 0 || len(b.Normals()) != 0 {
		t.Errorf("Clear should empty everything, got %v", b.Stats())
	}
	if b.Mesh() == nil || !b.Mesh().IsEmpty() {
		t.Error("mesh should be empty but non-nil")
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1, Z: 1}, pmath.Vec3{X: 2, Y: 1}, pmath.Vec3{X: 3})

	b.Recompute(0.25)
	samples := b.Samples()
	vertices := b.Mesh().Vertices

	b.Recompute(0.25)
	if len(b.Samples()) != len(samples) {
		t.Fatalf("sample count changed: %d vs %d", len(b.Samples()), len(samples))
	}
	for i := range samples {
		if b.Samples()[i] != samples[i] {
			t.Fatalf("sample %d changed", i)
		}
	}
	for i := range vertices {
		if b.Mesh().Vertices[i] != vertices[i] {
			t.Fatalf("vertex %d changed", i)
		}
	}
}

func TestRecomputeClampsSpacing(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1})

	b.Recompute(0)
	want := len(b.Samples())
	b.Recompute(spline.MinVertexDistanceFloor)
	if len(b.Samples()) != want {
		t.Errorf("zero spacing should clamp to the floor: %d vs %d samples", want, len(b.Samples()))
	}
}

func TestRecomputeMesh(t *testing.T) {
	b := New(WithProfile(profile.Circle(0.25, 8)), WithTaper(taper.Linear(1, 0.5)))
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1}, pmath.Vec3{X: 2})
	b.Recompute(0.2)

	stats := b.Stats()
	if stats.Vertices != 11*9 {
		t.Errorf("vertices: got %d, want %d", stats.Vertices, 11*9)
	}
	if stats.Triangles != 10*8*2 {
		t.Errorf("triangles: got %d, want %d", stats.Triangles, 10*8*2)
	}
	if math.Abs(float64(stats.Length)-2) > 1e-4 {
		t.Errorf("length: got %f, want 2", stats.Length)
	}
	if stats.Points != 3 || stats.Samples != 11 {
		t.Errorf("stats: %v", stats)
	}
}

func TestEditsOutOfRange(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{})

	tests := []struct {
		name string
		edit func() bool
	}{
		{"move", func() bool { return b.MoveVertex(3, pmath.Vec3{}) }},
		{"rotate", func() bool { return b.RotateVertex(-1, pmath.QuatIdentity()) }},
		{"scale", func() bool { return b.ScaleVertex(1, pmath.Vec3One) }},
		{"handles", func() bool { return b.SetHandles(2, pmath.Vec3{}, pmath.Vec3{}) }},
		{"mode", func() bool { return b.SetTangentMode(9, spline.TangentLinear) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.edit() {
				t.Error("edit on a missing point should report false")
			}
		})
	}
}

func TestMoveVertexCarriesHandles(t *testing.T) {
	b := New(WithAutoTangents(false))
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1})

	if !b.MoveVertex(1, pmath.Vec3{X: 5}) {
		t.Fatal("MoveVertex failed")
	}
	cp, _ := b.ControlPoint(1)
	if cp.LeftWorld() != (pmath.Vec3{X: 5, Z: -1}) {
		t.Errorf("left handle should follow the vertex, got %v", cp.LeftWorld())
	}
}

func TestSetHandlesMarksFree(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1}, pmath.Vec3{X: 2})

	left, right := pmath.Vec3{X: 1, Y: 1}, pmath.Vec3{X: 1, Y: -1}
	if !b.SetHandles(1, left, right) {
		t.Fatal("SetHandles failed")
	}
	b.RecalculateTangents()

	cp, _ := b.ControlPoint(1)
	if cp.Mode != spline.TangentFree {
		t.Errorf("mode: got %v, want free", cp.Mode)
	}
	if !cp.LeftWorld().ApproxEqual(left, 1e-5) || !cp.RightWorld().ApproxEqual(right, 1e-5) {
		t.Errorf("solver moved free handles: %v %v", cp.LeftWorld(), cp.RightWorld())
	}
}

func TestControlPointsIsCopy(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{})

	points := b.ControlPoints()
	points[0].Vertex.Position = pmath.Vec3{X: 9}

	cp, _ := b.ControlPoint(0)
	if cp.Position() != (pmath.Vec3{}) {
		t.Error("ControlPoints should return a copy")
	}
}

func TestReadSurfaceIsCopy(t *testing.T) {
	b := New()
	record(b, pmath.Vec3{}, pmath.Vec3{X: 1}, pmath.Vec3{X: 2})
	b.Recompute(0.5)

	b.Samples()[0] = pmath.Vec3{Y: 7}
	b.Tangents()[0] = pmath.Vec3{Y: 7}
	b.Normals()[0] = pmath.Vec3{Y: 7}
	m := b.Mesh()
	m.Vertices[0] = pmath.Vec3{Y: 7}
	m.Triangles = nil

	if b.Samples()[0] != (pmath.Vec3{}) {
		t.Errorf("sample changed through the returned slice: %v", b.Samples()[0])
	}
	if b.Tangents()[0].Y == 7 || b.Normals()[0].Y == 7 {
		t.Error("frame buffers changed through the returned slices")
	}
	if b.Mesh().Vertices[0].Y == 7 || b.Mesh().IsEmpty() {
		t.Error("mesh changed through the returned copy")
	}
}

func TestLoggerInjection(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(WithLogger(zap.New(core)))

	record(b, pmath.Vec3{}, pmath.Vec3{X: 1})
	b.Recompute(0.5)

	if n := logs.FilterMessage("recorded control point").Len(); n != 2 {
		t.Errorf("record logs: got %d, want 2", n)
	}
	entries := logs.FilterMessage("recomputed path").All()
	if len(entries) != 1 {
		t.Fatalf("recompute logs: got %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["samples"]; got != int64(len(b.Samples())) {
		t.Errorf("logged samples: got %v, want %d", got, len(b.Samples()))
	}
}

func TestClampVertexDistance(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0.05},
		{-1, 0.05},
		{0.05, 0.05},
		{0.3, 0.3},
	}
	for _, tt := range tests {
		if got := ClampVertexDistance(tt.in); got != tt.want {
			t.Errorf("ClampVertexDistance(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
