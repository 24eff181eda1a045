// Package taper provides scalar curves that scale the swept profile along
// the normalized path parameter.
package taper

import "sort"

// Evaluator returns a scale factor for a normalized path position in [0, 1].
type Evaluator interface {
	Evaluate(t float32) float32
}

// Constant is an Evaluator that always returns its value.
type Constant float32

// Evaluate implements Evaluator.
func (c Constant) Evaluate(float32) float32 {
	return float32(c)
}

// Keyframe is a curve key with Hermite slopes on either side.
type Keyframe struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
}

// Curve is a piecewise cubic Hermite curve through its keys. Outside the key
// range it holds the first or last value. A curve without keys evaluates to 1.
type Curve struct {
	keys []Keyframe
}

// NewCurve returns a curve through keys. Keys are sorted by time; the slice
// is copied.
func NewCurve(keys ...Keyframe) *Curve {
	sorted := append([]Keyframe(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return &Curve{keys: sorted}
}

// Linear returns a straight ramp from start at t=0 to end at t=1.
func Linear(start, end float32) *Curve {
	slope := end - start
	return NewCurve(
		Keyframe{Time: 0, Value: start, OutTangent: slope},
		Keyframe{Time: 1, Value: end, InTangent: slope},
	)
}

// Smooth returns a curve through (time, value) pairs whose slopes are
// derived from the neighboring keys.
func Smooth(times, values []float32) *Curve {
	n := min(len(times), len(values))
	keys := make([]Keyframe, n)
	for i := range n {
		keys[i] = Keyframe{Time: times[i], Value: values[i]}
	}
	c := NewCurve(keys...)
	c.AutoTangents()
	return c
}

// Keys returns a copy of the curve's keys in time order.
func (c *Curve) Keys() []Keyframe {
	return append([]Keyframe(nil), c.keys...)
}

// AutoTangents recomputes every key's slopes: interior keys average the
// slopes of their two segments, end keys take their single segment's slope.
func (c *Curve) AutoTangents() {
	n := len(c.keys)
	if n < 2 {
		for i := range c.keys {
			c.keys[i].InTangent, c.keys[i].OutTangent = 0, 0
		}
		return
	}

	slope := func(a, b Keyframe) float32 {
		dt := b.Time - a.Time
		if dt == 0 {
			return 0
		}
		return (b.Value - a.Value) / dt
	}

	for i := range c.keys {
		var s float32
		switch i {
		case 0:
			s = slope(c.keys[0], c.keys[1])
		case n - 1:
			s = slope(c.keys[n-2], c.keys[n-1])
		default:
			s = (slope(c.keys[i-1], c.keys[i]) + slope(c.keys[i], c.keys[i+1])) / 2
		}
		c.keys[i].InTangent = s
		c.keys[i].OutTangent = s
	}
}

// Evaluate implements Evaluator.
func (c *Curve) Evaluate(t float32) float32 {
	if c == nil || len(c.keys) == 0 {
		return 1
	}
	if len(c.keys) == 1 || t <= c.keys[0].Time {
		return c.keys[0].Value
	}
	last := c.keys[len(c.keys)-1]
	if t >= last.Time {
		return last.Value
	}

	// Find surrounding keys
	next := sort.Search(len(c.keys), func(i int) bool {
		return c.keys[i].Time > t
	})
	k0 := c.keys[next-1]
	k1 := c.keys[next]

	dt := k1.Time - k0.Time
	if dt == 0 {
		return k1.Value
	}
	return hermite(k0.Value, k0.OutTangent*dt, k1.Value, k1.InTangent*dt, (t-k0.Time)/dt)
}

// hermite evaluates the cubic Hermite basis with endpoint values p0, p1 and
// slopes m0, m1 already scaled to the unit interval.
func hermite(p0, m0, p1, m1, s float32) float32 {
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*p0 + h10*m0 + h01*p1 + h11*m1
}
