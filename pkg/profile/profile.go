// Package profile builds the cross-section polygons swept along a path.
//
// Profiles live in the XY plane of the sweep frame: X follows the path
// normal, Y the binormal. Z is kept so 3D profiles can be swept as well.
package profile

import (
	"errors"
	gomath "math"

	"github.com/chewxy/math32"
	"honnef.co/go/curve"

	"github.com/Faultbox/pathbuilder/pkg/math"
)

// ErrTooFewVertices is returned when a profile would have fewer than two vertices.
var ErrTooFewVertices = errors.New("profile needs at least 2 vertices")

// Profile is an ordered cross-section polygon.
type Profile struct {
	Vertices []math.Vec3
	// Closed profiles connect the last vertex back to the first.
	Closed bool
}

// Len returns the number of vertices.
func (p Profile) Len() int {
	return len(p.Vertices)
}

// IsEmpty reports whether the profile has no vertices.
func (p Profile) IsEmpty() bool {
	return len(p.Vertices) == 0
}

// FromPoints returns a profile through 2D points in the XY plane.
func FromPoints(points []math.Vec2, closed bool) (Profile, error) {
	if len(points) < 2 {
		return Profile{}, ErrTooFewVertices
	}
	vertices := make([]math.Vec3, len(points))
	for i, p := range points {
		vertices[i] = p.Vec3()
	}
	return Profile{Vertices: vertices, Closed: closed}, nil
}

// Circle returns a regular polygon with the given number of segments,
// starting on +X and running counter-clockwise.
func Circle(radius float32, segments int) Profile {
	segments = max(segments, 3)
	vertices := make([]math.Vec3, segments)
	for i := range vertices {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		vertices[i] = math.Vec3{X: radius * math32.Cos(a), Y: radius * math32.Sin(a)}
	}
	return Profile{Vertices: vertices, Closed: true}
}

// Rect returns an axis-aligned rectangle centered on the origin.
func Rect(width, height float32) Profile {
	w, h := width/2, height/2
	return Profile{
		Vertices: []math.Vec3{
			{X: w, Y: -h},
			{X: w, Y: h},
			{X: -w, Y: h},
			{X: -w, Y: -h},
		},
		Closed: true,
	}
}

// RoundedRect returns a rectangle with circular corners, flattened to within
// tolerance. A zero radius yields Rect.
func RoundedRect(width, height, radius, tolerance float32) (Profile, error) {
	w, h := float64(width)/2, float64(height)/2
	r := min(float64(radius), w, h)
	if r <= 0 {
		return Rect(width, height), nil
	}

	// Cubic approximation of a quarter circle.
	const kappa = 0.5522847498
	k := r * kappa
	pt := func(x, y float64) curve.Point { return curve.Point{X: x, Y: y} }

	var path curve.BezPath
	path.MoveTo(pt(w, -h+r))
	path.LineTo(pt(w, h-r))
	path.CubicTo(pt(w, h-r+k), pt(w-r+k, h), pt(w-r, h))
	path.LineTo(pt(-w+r, h))
	path.CubicTo(pt(-w+r-k, h), pt(-w, h-r+k), pt(-w, h-r))
	path.LineTo(pt(-w, -h+r))
	path.CubicTo(pt(-w, -h+r-k), pt(-w+r-k, -h), pt(-w+r, -h))
	path.LineTo(pt(w-r, -h))
	path.CubicTo(pt(w-r+k, -h), pt(w, -h+r-k), pt(w, -h+r))
	path.ClosePath()

	return FromPath(&path, tolerance)
}

// FromPath flattens the first subpath of a shape into a profile. Curved
// elements are subdivided until the control polygon deviates from the chord by
// less than tolerance. The profile is closed if the subpath ends with
// ClosePath or returns to its starting point.
func FromPath(shape curve.Shape, tolerance float32) (Profile, error) {
	tol := float64(tolerance)
	if !(tol > 0) {
		tol = 0.01
	}

	var vertices []math.Vec3
	var cur curve.Point
	closed := false
	started := false
flatten:
	for el := range shape.PathElements(tol) {
		switch el.Kind {
		case curve.MoveToKind:
			if started {
				break flatten
			}
			started = true
			cur = el.P0
			vertices = append(vertices, fromPoint(cur))
		case curve.LineToKind:
			cur = el.P0
			vertices = append(vertices, fromPoint(cur))
		case curve.QuadToKind:
			// Degree elevation keeps a single subdivision routine.
			c1 := lerpPoint(cur, el.P0, 2.0/3.0)
			c2 := lerpPoint(el.P1, el.P0, 2.0/3.0)
			vertices = appendCubic(vertices, cur, c1, c2, el.P1, tol)
			cur = el.P1
		case curve.CubicToKind:
			vertices = appendCubic(vertices, cur, el.P0, el.P1, el.P2, tol)
			cur = el.P2
		case curve.ClosePathKind:
			closed = true
			break flatten
		}
	}

	// Drop the duplicated start point of a closed outline.
	if n := len(vertices); n > 1 && vertices[n-1].ApproxEqual(vertices[0], 1e-6) {
		vertices = vertices[:n-1]
		closed = true
	}
	if len(vertices) < 2 {
		return Profile{}, ErrTooFewVertices
	}
	return Profile{Vertices: vertices, Closed: closed}, nil
}

// appendCubic appends uniform samples of a cubic, excluding p0. The segment
// count comes from the standard flatness bound on the second differences.
func appendCubic(dst []math.Vec3, p0, p1, p2, p3 curve.Point, tol float64) []math.Vec3 {
	dx := max(gomath.Abs(p0.X-2*p1.X+p2.X), gomath.Abs(p1.X-2*p2.X+p3.X))
	dy := max(gomath.Abs(p0.Y-2*p1.Y+p2.Y), gomath.Abs(p1.Y-2*p2.Y+p3.Y))
	dd := gomath.Hypot(dx, dy)
	n := int(gomath.Ceil(gomath.Sqrt(3 * dd / (4 * tol))))
	n = min(max(n, 1), maxCubicSegments)

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		a := lerpPoint(p0, p1, t)
		b := lerpPoint(p1, p2, t)
		c := lerpPoint(p2, p3, t)
		d := lerpPoint(a, b, t)
		e := lerpPoint(b, c, t)
		dst = append(dst, fromPoint(lerpPoint(d, e, t)))
	}
	return dst
}

const maxCubicSegments = 256

func lerpPoint(a, b curve.Point, t float64) curve.Point {
	return curve.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// SignedArea returns the XY shoelace area; positive for counter-clockwise.
func (p Profile) SignedArea() float32 {
	var area float32
	n := len(p.Vertices)
	for i := range n {
		area += p.Vertices[i].XY().Cross(p.Vertices[(i+1)%n].XY())
	}
	return area / 2
}

// EnsureCCW returns the profile with counter-clockwise XY winding, which
// makes swept faces point away from the path.
func (p Profile) EnsureCCW() Profile {
	if p.SignedArea() >= 0 {
		return p
	}
	reversed := make([]math.Vec3, len(p.Vertices))
	for i, v := range p.Vertices {
		reversed[len(p.Vertices)-1-i] = v
	}
	return Profile{Vertices: reversed, Closed: p.Closed}
}

// Bounds returns the XY bounding box of the profile.
func (p Profile) Bounds() (minPt, maxPt math.Vec3) {
	if len(p.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	minPt, maxPt = p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minPt = minPt.Min(v)
		maxPt = maxPt.Max(v)
	}
	return minPt, maxPt
}

func fromPoint(pt curve.Point) math.Vec3 {
	return math.Vec3{X: float32(pt.X), Y: float32(pt.Y)}
}
