// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/pathbuilder/pkg/math"
)

// Orbit orbits around a center point.
type Orbit struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the XZ plane
	Yaw      float32 // radians around Y

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbit creates an orbit camera suited to paths a few units long.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:        6,
		Pitch:           0.5,
		Yaw:             0.6,
		MinDistance:     0.1,
		MaxDistance:     1000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math32.Pi / 4,
		Near:            0.01,
		Far:             2000,
	}
}

// Position returns the camera position in world space.
func (c *Orbit) Position() math.Vec3 {
	cosPitch := math32.Cos(c.Pitch)
	offset := math.Vec3{
		X: c.Distance * cosPitch * math32.Sin(c.Yaw),
		Y: c.Distance * math32.Sin(c.Pitch),
		Z: c.Distance * cosPitch * math32.Cos(c.Yaw),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3Up)
}

// ProjectionMatrix returns the perspective projection for a viewport aspect.
func (c *Orbit) ProjectionMatrix(aspect float32) math.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation from a mouse drag delta in pixels.
func (c *Orbit) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = min(max(c.Pitch, c.MinPitch), c.MaxPitch)
}

// HandleZoom scales distance by a scroll wheel delta.
func (c *Orbit) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// FitBounds centers on the box and backs off until it fits the vertical
// field of view.
func (c *Orbit) FitBounds(minPt, maxPt math.Vec3) {
	c.Center = minPt.Add(maxPt).Scale(0.5)
	radius := maxPt.Sub(minPt).Length() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / math32.Sin(c.FovY/2)
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}
