package spline

import (
	"testing"

	"github.com/Faultbox/pathbuilder/pkg/math"
)

func TestFrame_RoundTrip(t *testing.T) {
	f := Frame{
		Position: math.Vec3{X: 1, Y: -2, Z: 3},
		Rotation: math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 1, Z: 1}.Normalize(), 0.9),
		Scale:    math.Vec3{X: 2, Y: 0.5, Z: 3},
	}
	p := math.Vec3{X: 4, Y: 5, Z: -6}

	if got := f.ToWorld(f.ToLocal(p)); !got.ApproxEqual(p, 1e-3) {
		t.Errorf("ToWorld(ToLocal(p)) = %v, want %v", got, p)
	}
	if got := f.ToLocal(f.ToWorld(p)); !got.ApproxEqual(p, 1e-3) {
		t.Errorf("ToLocal(ToWorld(p)) = %v, want %v", got, p)
	}
}

func TestFrame_IdentityAndTranslation(t *testing.T) {
	f := NewFrame(math.Vec3{X: 10})
	if got := f.ToWorld(math.Vec3Forward); got != (math.Vec3{X: 10, Z: 1}) {
		t.Errorf("ToWorld = %v, want (10,0,1)", got)
	}
	if got := f.Forward(); !got.ApproxEqual(math.Vec3Forward, eps) {
		t.Errorf("Forward = %v", got)
	}
}

func TestFrame_ZeroScaleDoesNotProduceNaN(t *testing.T) {
	f := NewFrame(math.Vec3{X: 1})
	f.Scale = math.Vec3{X: 1, Y: 0, Z: 1}

	if f.Invertible() {
		t.Error("zero scale frame reported invertible")
	}
	got := f.ToLocal(math.Vec3{X: 3, Y: 1})
	if !got.IsFinite() {
		t.Errorf("ToLocal produced %v", got)
	}
}

func TestControlPoint_Defaults(t *testing.T) {
	cp := NewControlPoint(NewFrame(math.Vec3{Y: 2}))

	if cp.Mode != TangentAuto {
		t.Errorf("mode = %v, want auto", cp.Mode)
	}
	if got := cp.RightWorld(); got != (math.Vec3{Y: 2, Z: 1}) {
		t.Errorf("right handle = %v, want (0,2,1)", got)
	}
	if got := cp.LeftWorld(); got != (math.Vec3{Y: 2, Z: -1}) {
		t.Errorf("left handle = %v, want (0,2,-1)", got)
	}
}

func TestControlPoint_HandlesFollowVertex(t *testing.T) {
	cp := NewControlPoint(IdentityFrame())
	cp.SetRightWorld(math.Vec3{X: 2})

	cp.Vertex.Position = math.Vec3{Y: 5}
	if got := cp.RightWorld(); !got.ApproxEqual(math.Vec3{X: 2, Y: 5}, eps) {
		t.Errorf("after move right handle = %v, want (2,5,0)", got)
	}

	cp.Vertex.Scale = math.Vec3{X: 3, Y: 3, Z: 3}
	if got := cp.RightWorld(); !got.ApproxEqual(math.Vec3{X: 6, Y: 5}, eps) {
		t.Errorf("after scale right handle = %v, want (6,5,0)", got)
	}
}
