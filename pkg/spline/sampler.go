package spline

import "github.com/Faultbox/pathbuilder/pkg/math"

// MinVertexDistanceFloor is the smallest sample spacing accepted by Sample.
const MinVertexDistanceFloor float32 = 0.05

// ClampVertexDistance raises d to MinVertexDistanceFloor.
func ClampVertexDistance(d float32) float32 {
	if !(d >= MinVertexDistanceFloor) { // also catches NaN
		return MinVertexDistanceFloor
	}
	return d
}

// EvalCubic evaluates the cubic Bezier (p0, p1, p2, p3) at t using
// De Casteljau's construction.
func EvalCubic(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	a := p0.Lerp(p1, t)
	b := p1.Lerp(p2, t)
	c := p2.Lerp(p3, t)
	d := a.Lerp(b, t)
	e := b.Lerp(c, t)
	return d.Lerp(e, t)
}

// Sample converts the control points into a polyline.
//
// Each segment is a cubic Bezier from a point through its right handle and
// the next point's left handle. The curve parameter advances in steps of
// minVertexDistance divided by the segment's chord length, so spacing is only
// approximately uniform and gets coarser on strongly curved segments. The
// last control point is always appended as the final sample.
//
// Fewer than two points produce no samples.
func Sample(points []ControlPoint, minVertexDistance float32) []math.Vec3 {
	if len(points) < 2 {
		return nil
	}
	step := ClampVertexDistance(minVertexDistance)

	var samples []math.Vec3
	for i := 1; i < len(points); i++ {
		previous := points[i-1]
		current := points[i]

		p0 := previous.Position()
		p1 := previous.RightWorld()
		p2 := current.LeftWorld()
		p3 := current.Position()

		chord := p3.Distance(p0)
		if chord == 0 {
			// Coincident vertices still contribute one sample.
			samples = append(samples, p0)
			continue
		}

		for k := 0; ; k++ {
			dist := float32(k) * step
			if dist >= chord {
				break
			}
			samples = append(samples, EvalCubic(p0, p1, p2, p3, dist/chord))
		}
	}

	return append(samples, points[len(points)-1].Position())
}

// PolylineLength returns the summed distance between consecutive samples.
func PolylineLength(samples []math.Vec3) float32 {
	var total float32
	for i := 1; i < len(samples); i++ {
		total += samples[i].Distance(samples[i-1])
	}
	return total
}
