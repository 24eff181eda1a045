package pathbuilder

import (
	"github.com/Faultbox/pathbuilder/pkg/math"
	"github.com/Faultbox/pathbuilder/pkg/spline"
)

// MoveVertex moves point i to a world position. Its handles follow because
// they are stored relative to the vertex.
func (b *Builder) MoveVertex(i int, position math.Vec3) bool {
	cp, ok := b.point(i)
	if !ok {
		return false
	}
	cp.Vertex.Position = position
	b.afterEdit()
	return true
}

// RotateVertex sets the rotation of point i, turning its handles with it.
func (b *Builder) RotateVertex(i int, rotation math.Quat) bool {
	cp, ok := b.point(i)
	if !ok {
		return false
	}
	cp.Vertex.Rotation = rotation.Normalize()
	b.afterEdit()
	return true
}

// ScaleVertex sets the scale of point i, stretching its handles.
func (b *Builder) ScaleVertex(i int, scale math.Vec3) bool {
	cp, ok := b.point(i)
	if !ok {
		return false
	}
	cp.Vertex.Scale = scale
	b.afterEdit()
	return true
}

// SetHandles places both handles of point i at world positions and marks
// the point Free so the solver leaves it alone.
func (b *Builder) SetHandles(i int, leftWorld, rightWorld math.Vec3) bool {
	cp, ok := b.point(i)
	if !ok {
		return false
	}
	cp.SetLeftWorld(leftWorld)
	cp.SetRightWorld(rightWorld)
	cp.Mode = spline.TangentFree
	b.afterEdit()
	return true
}

// SetTangentMode changes how the solver treats point i.
func (b *Builder) SetTangentMode(i int, mode spline.TangentMode) bool {
	cp, ok := b.point(i)
	if !ok {
		return false
	}
	cp.Mode = mode
	b.afterEdit()
	return true
}

func (b *Builder) point(i int) (*spline.ControlPoint, bool) {
	if i < 0 || i >= len(b.points) {
		return nil, false
	}
	return &b.points[i], true
}
