package preview

import (
	"fmt"

	"github.com/Faultbox/pathbuilder/pkg/math"
)

// projection maps world points to plane coordinates with a depth axis
// pointing at the viewer.
type projection struct {
	u, v     math.Vec3
	toViewer math.Vec3
}

func newProjection(p Plane) (projection, error) {
	switch p {
	case PlaneXY:
		return projection{u: math.Vec3Right, v: math.Vec3Up, toViewer: math.Vec3Forward}, nil
	case PlaneXZ, "":
		// Looking down; +Z runs toward the bottom of the image.
		return projection{u: math.Vec3Right, v: math.Vec3Forward.Negate(), toViewer: math.Vec3Up}, nil
	case PlaneZY:
		return projection{u: math.Vec3Forward.Negate(), v: math.Vec3Up, toViewer: math.Vec3Right}, nil
	default:
		return projection{}, fmt.Errorf("%w: %q", ErrUnknownPlane, p)
	}
}

func (p projection) project(w math.Vec3) math.Vec2 {
	return math.Vec2{X: w.Dot(p.u), Y: w.Dot(p.v)}
}

func (p projection) depth(w math.Vec3) float32 {
	return w.Dot(p.toViewer)
}

// viewport maps plane coordinates to pixels, flipping y.
type viewport struct {
	scale            float64
	offsetX, offsetY float64
	height           float64
}

func fit(proj projection, points []math.Vec3, opts Options) viewport {
	lo := proj.project(points[0])
	hi := lo
	for _, w := range points[1:] {
		p := proj.project(w)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	margin := max(opts.Margin, 0)
	availW := max(float64(opts.Width)-2*margin, 1)
	availH := max(float64(opts.Height)-2*margin, 1)
	spanX := float64(hi.X - lo.X)
	spanY := float64(hi.Y - lo.Y)

	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = min(availW/spanX, availH/spanY)
	case spanX > 0:
		scale = availW / spanX
	case spanY > 0:
		scale = availH / spanY
	}

	// Center the content.
	cx := float64(lo.X+hi.X) / 2
	cy := float64(lo.Y+hi.Y) / 2
	return viewport{
		scale:   scale,
		offsetX: float64(opts.Width)/2 - cx*scale,
		offsetY: float64(opts.Height)/2 - cy*scale,
		height:  float64(opts.Height),
	}
}

func (v viewport) apply(p math.Vec2) (float64, float64) {
	x := float64(p.X)*v.scale + v.offsetX
	y := float64(p.Y)*v.scale + v.offsetY
	return x, v.height - y
}
