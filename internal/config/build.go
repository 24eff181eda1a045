package config

import (
	"fmt"

	"go.uber.org/zap"

	pmath "github.com/Faultbox/pathbuilder/pkg/math"
	"github.com/Faultbox/pathbuilder/pkg/pathbuilder"
	"github.com/Faultbox/pathbuilder/pkg/profile"
	"github.com/Faultbox/pathbuilder/pkg/spline"
	"github.com/Faultbox/pathbuilder/pkg/taper"
)

// BuildProfile returns the configured cross-section with outward winding.
func (p ProfileConfig) BuildProfile() (profile.Profile, error) {
	if err := p.validate(); err != nil {
		return profile.Profile{}, err
	}

	var (
		prof profile.Profile
		err  error
	)
	switch p.Shape {
	case "circle":
		prof = profile.Circle(p.Radius, p.Segments)
	case "rect":
		prof = profile.Rect(p.Width, p.Height)
	case "rounded_rect":
		prof, err = profile.RoundedRect(p.Width, p.Height, p.CornerRadius, p.Tolerance)
	case "polygon":
		points := make([]pmath.Vec2, len(p.Points))
		for i, pt := range p.Points {
			points[i] = pmath.Vec2{X: pt[0], Y: pt[1]}
		}
		prof, err = profile.FromPoints(points, p.Closed)
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return prof.EnsureCCW(), nil
}

// BuildTaper returns the configured taper curve, or a constant 1 without keys.
func (t TaperConfig) BuildTaper() taper.Evaluator {
	if len(t.Keys) == 0 {
		return taper.Constant(1)
	}
	times := make([]float32, len(t.Keys))
	values := make([]float32, len(t.Keys))
	for i, k := range t.Keys {
		times[i] = k.Time
		values[i] = k.Value
	}
	return taper.Smooth(times, values)
}

func vec3(v [3]float32) pmath.Vec3 {
	return pmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Frame returns the point's vertex frame.
func (p PointConfig) Frame() spline.Frame {
	f := spline.NewFrame(vec3(p.Position))
	if p.Rotation != ([4]float32{}) {
		f.Rotation = pmath.Quat{X: p.Rotation[0], Y: p.Rotation[1], Z: p.Rotation[2], W: p.Rotation[3]}.Normalize()
	}
	if p.Scale != ([3]float32{}) {
		f.Scale = vec3(p.Scale)
	}
	return f
}

// BuildPath returns a builder holding the configured points. Points are
// recorded in order through the builder's origin, then given their tangent
// modes, so auto tangents are solved the same way an editor would. Free
// points get their configured handles, which later solves leave alone.
func (c *Config) BuildPath(log *zap.Logger) (*pathbuilder.Builder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	prof, err := c.Profile.BuildProfile()
	if err != nil {
		return nil, err
	}
	policy, err := spline.ParseEndpointPolicy(c.Path.EndpointPolicy)
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}
	if c.Path.Closed {
		log.Warn("closed paths are not supported, building an open path")
	}

	b := pathbuilder.New(
		pathbuilder.WithLogger(log),
		pathbuilder.WithProfile(prof),
		pathbuilder.WithTaper(c.Taper.BuildTaper()),
		pathbuilder.WithAutoTangents(c.Path.AutoTangents),
		pathbuilder.WithEndpointPolicy(policy),
	)
	for i, p := range c.Points {
		mode, err := spline.ParseTangentMode(p.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidPoint, i, err)
		}
		if mode == spline.TangentFree && !p.HasHandles() {
			return nil, fmt.Errorf("%w %d: mode free needs left and right handles", ErrInvalidPoint, i)
		}
		b.SetOrigin(p.Frame())
		index := b.RecordPoint()
		switch {
		case p.HasHandles():
			b.SetHandles(index, vec3(*p.Left), vec3(*p.Right))
		case mode != spline.TangentAuto:
			b.SetTangentMode(index, mode)
		}
	}
	return b, nil
}
