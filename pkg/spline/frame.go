// Package spline turns an ordered list of control points into a sampled
// Bezier polyline with rotation-minimizing frames.
package spline

import "github.com/Faultbox/pathbuilder/pkg/math"

// Frame is a position/rotation/scale transform. It is a plain value: it has
// no parent and no children, so copying a Frame never aliases another one.
type Frame struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityFrame returns a frame at the origin with no rotation and unit scale.
func IdentityFrame() Frame {
	return Frame{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One,
	}
}

// NewFrame returns an unrotated, unscaled frame at position.
func NewFrame(position math.Vec3) Frame {
	f := IdentityFrame()
	f.Position = position
	return f
}

// Matrix returns the TRS matrix of the frame.
func (f Frame) Matrix() math.Mat4 {
	return math.TRS(f.Position, f.Rotation.Normalize(), f.Scale)
}

// Invertible reports whether ToLocal is well defined (no zero scale axis).
func (f Frame) Invertible() bool {
	return f.Scale.X != 0 && f.Scale.Y != 0 && f.Scale.Z != 0
}

// ToWorld maps a point from frame-local space to the frame's parent space.
func (f Frame) ToWorld(local math.Vec3) math.Vec3 {
	return f.Matrix().TransformVec3(local)
}

// ToLocal maps a point from the frame's parent space into local space.
// A frame with a zero scale axis cannot be inverted; the point is then
// returned relative to Position without rotation or scale.
func (f Frame) ToLocal(world math.Vec3) math.Vec3 {
	d := world.Sub(f.Position)
	if !f.Invertible() {
		return d
	}
	r := f.Rotation.Normalize().Conjugate().Rotate(d)
	return math.Vec3{X: r.X / f.Scale.X, Y: r.Y / f.Scale.Y, Z: r.Z / f.Scale.Z}
}

// Forward returns the frame's local +Z axis in parent space.
func (f Frame) Forward() math.Vec3 {
	return f.Rotation.Rotate(math.Vec3Forward)
}
