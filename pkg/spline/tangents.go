package spline

import (
	"fmt"
	"strings"

	"github.com/Faultbox/pathbuilder/pkg/math"
)

// HandleScale is the fraction of the neighboring edge length used as the
// handle length by the tangent solver.
const HandleScale float32 = 0.4

// EndpointPolicy selects which handle of the first control point the tangent
// solver writes.
type EndpointPolicy int

const (
	// EndpointOutward writes the first point's right handle and the last
	// point's left handle, the two handles the sampler reads.
	EndpointOutward EndpointPolicy = iota
	// EndpointLegacy writes the left handle of both end points. The first
	// point's right handle then keeps whatever value it had.
	EndpointLegacy
)

func (p EndpointPolicy) String() string {
	switch p {
	case EndpointOutward:
		return "outward"
	case EndpointLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("EndpointPolicy(%d)", int(p))
	}
}

// ParseEndpointPolicy parses "outward" or "legacy". Empty means outward.
func ParseEndpointPolicy(s string) (EndpointPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outward":
		return EndpointOutward, nil
	case "legacy":
		return EndpointLegacy, nil
	default:
		return EndpointOutward, fmt.Errorf("unknown endpoint policy %q", s)
	}
}

// SolveOptions configures SolveTangents.
type SolveOptions struct {
	Endpoints EndpointPolicy
}

// SolveTangents places the handles of every non-free control point in place.
//
// Interior auto points get handles parallel to the line from the next point
// to the previous one, each 0.4 times as long as the edge on its side. This
// is a symmetric heuristic, not a monotone spline fit: sharp reversals can
// overshoot. End points aim at the neighbor's already solved handle and
// borrow its length, so they continue the neighbor's curvature.
//
// Fewer than three points are left untouched.
func SolveTangents(points []ControlPoint, opts SolveOptions) {
	n := len(points)
	if n < 3 {
		return
	}

	for i := 1; i < n-1; i++ {
		solveInterior(&points[i], points[i-1].Position(), points[i+1].Position())
	}

	first := &points[0]
	if h, ok := endpointHandle(*first, points[1], points[1].LeftWorld(), points[1].LeftTangent); ok {
		if opts.Endpoints == EndpointLegacy {
			first.SetLeftWorld(h)
		} else {
			first.SetRightWorld(h)
		}
	}

	last := &points[n-1]
	if h, ok := endpointHandle(*last, points[n-2], points[n-2].RightWorld(), points[n-2].RightTangent); ok {
		last.SetLeftWorld(h)
	}
}

func solveInterior(cp *ControlPoint, previous, next math.Vec3) {
	pos := cp.Position()
	leftLen := previous.Distance(pos) * HandleScale
	rightLen := next.Distance(pos) * HandleScale

	switch cp.Mode {
	case TangentAuto:
		dir := previous.Sub(next).Normalize()
		cp.SetLeftWorld(pos.Add(dir.Scale(leftLen)))
		cp.SetRightWorld(pos.Sub(dir.Scale(rightLen)))
	case TangentLinear:
		cp.SetLeftWorld(pos.Add(previous.Sub(pos).Normalize().Scale(leftLen)))
		cp.SetRightWorld(pos.Add(next.Sub(pos).Normalize().Scale(rightLen)))
	case TangentConstant:
		cp.LeftTangent = math.Vec3{}
		cp.RightTangent = math.Vec3{}
	}
}

// endpointHandle returns the world position of an end point's single handle.
// neighborHandle is the neighbor's handle facing the end point and
// neighborLocal its local offset, whose length becomes the handle length.
func endpointHandle(end, neighbor ControlPoint, neighborHandle, neighborLocal math.Vec3) (math.Vec3, bool) {
	pos := end.Position()
	switch end.Mode {
	case TangentAuto:
		dir := neighborHandle.Sub(pos).Normalize()
		return pos.Add(dir.Scale(neighborLocal.Length())), true
	case TangentLinear:
		towards := neighbor.Position().Sub(pos)
		return pos.Add(towards.Normalize().Scale(towards.Length() * HandleScale)), true
	case TangentConstant:
		return pos, true
	default:
		return math.Vec3{}, false
	}
}
