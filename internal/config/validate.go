package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Faultbox/pathbuilder/pkg/spline"
)

var (
	ErrInvalidSpacing  = errors.New("invalid min_vertex_distance")
	ErrUnknownEditMode = errors.New("unknown edit mode")
	ErrUnknownShape    = errors.New("unknown profile shape")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidPoint    = errors.New("invalid control point")
	ErrInvalidTaper    = errors.New("invalid taper key")
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrUnknownPlane    = errors.New("unknown preview plane")
	ErrInvalidSize     = errors.New("invalid image or window size")
	ErrUnknownLevel    = errors.New("unknown log level")
)

var (
	editModes = []string{"planar", "translate", "rotate", "scale"}
	formats   = []string{"obj", "stl"}
	planes    = []string{"xy", "xz", "zy"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate checks the config for values the builder cannot use. Spacing
// below spline.MinVertexDistanceFloor, zero and negative spacing included,
// is clamped to the floor rather than rejected.
func (c *Config) Validate() error {
	d := c.Path.MinVertexDistance
	if math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpacing, d)
	}
	c.Path.MinVertexDistance = spline.ClampVertexDistance(d)
	if !slices.Contains(editModes, c.Path.EditMode) {
		return fmt.Errorf("%w: %q", ErrUnknownEditMode, c.Path.EditMode)
	}
	if _, err := spline.ParseEndpointPolicy(c.Path.EndpointPolicy); err != nil {
		return fmt.Errorf("path: %w", err)
	}

	for i, p := range c.Points {
		mode, err := spline.ParseTangentMode(p.Mode)
		if err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidPoint, i, err)
		}
		if (p.Left == nil) != (p.Right == nil) {
			return fmt.Errorf("%w %d: left and right handles must be given together", ErrInvalidPoint, i)
		}
		if p.HasHandles() && mode != spline.TangentFree {
			return fmt.Errorf("%w %d: handles need mode free, got %s", ErrInvalidPoint, i, mode)
		}
		if mode == spline.TangentFree && !p.HasHandles() {
			return fmt.Errorf("%w %d: mode free needs left and right handles", ErrInvalidPoint, i)
		}
		if p.Scale != ([3]float32{}) && (p.Scale[0] == 0 || p.Scale[1] == 0 || p.Scale[2] == 0) {
			return fmt.Errorf("%w %d: scale %v has a zero component", ErrInvalidPoint, i, p.Scale)
		}
	}

	if err := c.Profile.validate(); err != nil {
		return err
	}

	for i, k := range c.Taper.Keys {
		if k.Value < 0 || math.IsNaN(float64(k.Value)) || math.IsNaN(float64(k.Time)) {
			return fmt.Errorf("%w %d: time %v value %v", ErrInvalidTaper, i, k.Time, k.Value)
		}
	}

	if !slices.Contains(formats, c.Export.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Export.Format)
	}
	if !slices.Contains(planes, c.Preview.Plane) {
		return fmt.Errorf("%w: %q", ErrUnknownPlane, c.Preview.Plane)
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("%w: preview %dx%d", ErrInvalidSize, c.Preview.Width, c.Preview.Height)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer %dx%d", ErrInvalidSize, c.Viewer.Width, c.Viewer.Height)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, c.Logging.Level)
	}
	return nil
}

func (p ProfileConfig) validate() error {
	switch p.Shape {
	case "circle":
		if p.Radius <= 0 {
			return fmt.Errorf("%w: circle radius %v", ErrInvalidProfile, p.Radius)
		}
		if p.Segments < 3 {
			return fmt.Errorf("%w: circle needs at least 3 segments, got %d", ErrInvalidProfile, p.Segments)
		}
	case "rect", "rounded_rect":
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: %s size %vx%v", ErrInvalidProfile, p.Shape, p.Width, p.Height)
		}
		if p.Shape == "rounded_rect" && (p.CornerRadius < 0 || p.Tolerance <= 0) {
			return fmt.Errorf("%w: corner radius %v tolerance %v", ErrInvalidProfile, p.CornerRadius, p.Tolerance)
		}
	case "polygon":
		if len(p.Points) < 2 {
			return fmt.Errorf("%w: polygon needs at least 2 points, got %d", ErrInvalidProfile, len(p.Points))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, p.Shape)
	}
	return nil
}
