// Package pathbuilder holds an editable sequence of control points and the
// tube mesh derived from it.
//
// Edits never rebuild geometry on their own. Hosts call Recompute when they
// want fresh samples, frames and mesh, which lets interactive editors
// throttle the expensive step. A Builder is not safe for concurrent use.
package pathbuilder

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/pathbuilder/pkg/extrude"
	"github.com/Faultbox/pathbuilder/pkg/math"
	"github.com/Faultbox/pathbuilder/pkg/profile"
	"github.com/Faultbox/pathbuilder/pkg/spline"
	"github.com/Faultbox/pathbuilder/pkg/taper"
)

// Builder owns control points and the buffers derived from them.
type Builder struct {
	log *zap.Logger

	origin       spline.Frame
	points       []spline.ControlPoint
	autoTangents bool
	solve        spline.SolveOptions

	profile profile.Profile
	taper   taper.Evaluator

	// Derived; replaced together by Recompute.
	samples  []math.Vec3
	tangents []math.Vec3
	normals  []math.Vec3
	mesh     *extrude.Mesh
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithProfile sets the cross-section swept by Recompute.
func WithProfile(p profile.Profile) Option {
	return func(b *Builder) { b.profile = p }
}

// WithTaper sets the profile scale curve.
func WithTaper(t taper.Evaluator) Option {
	return func(b *Builder) { b.taper = t }
}

// WithAutoTangents toggles re-solving handles after point edits.
func WithAutoTangents(enabled bool) Option {
	return func(b *Builder) { b.autoTangents = enabled }
}

// WithEndpointPolicy selects which end point handles the solver writes.
func WithEndpointPolicy(p spline.EndpointPolicy) Option {
	return func(b *Builder) { b.solve.Endpoints = p }
}

// New returns an empty builder with a 12-sided circle of radius 0.5 as its
// profile and automatic tangents enabled.
func New(opts ...Option) *Builder {
	b := &Builder{
		log:          zap.NewNop(),
		origin:       spline.IdentityFrame(),
		autoTangents: true,
		profile:      profile.Circle(0.5, 12),
		taper:        taper.Constant(1),
		mesh:         &extrude.Mesh{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Origin returns the frame new points are recorded at.
func (b *Builder) Origin() spline.Frame {
	return b.origin
}

// SetOrigin moves the recording frame.
func (b *Builder) SetOrigin(f spline.Frame) {
	b.origin = f
}

// RecordPoint appends a control point at the origin frame, re-solves all
// tangents and returns the new point's index. Recording always solves; the
// auto-tangent toggle only governs later edits.
func (b *Builder) RecordPoint() int {
	b.points = append(b.points, spline.NewControlPoint(b.origin))
	b.RecalculateTangents()
	index := len(b.points) - 1
	b.log.Debug("recorded control point",
		zap.Int("index", index),
		zap.Stringer("position", b.origin.Position))
	return index
}

// AddPoint appends a copy of cp without touching its handles, except that
// auto points are re-solved when automatic tangents are enabled.
func (b *Builder) AddPoint(cp spline.ControlPoint) int {
	b.points = append(b.points, cp)
	b.afterEdit()
	return len(b.points) - 1
}

// Len returns the number of control points.
func (b *Builder) Len() int {
	return len(b.points)
}

// ControlPoint returns a copy of point i. ok is false when i is out of range.
func (b *Builder) ControlPoint(i int) (cp spline.ControlPoint, ok bool) {
	if i < 0 || i >= len(b.points) {
		return spline.ControlPoint{}, false
	}
	return b.points[i], true
}

// SetControlPoint replaces point i. It panics if i is out of range.
func (b *Builder) SetControlPoint(i int, cp spline.ControlPoint) {
	b.points[i] = cp
}

// ControlPoints returns a copy of the control points.
func (b *Builder) ControlPoints() []spline.ControlPoint {
	out := make([]spline.ControlPoint, len(b.points))
	copy(out, b.points)
	return out
}

// RecalculateTangents runs the tangent solver over all points.
func (b *Builder) RecalculateTangents() {
	spline.SolveTangents(b.points, b.solve)
}

// Recompute rebuilds samples, frames and mesh from the control points.
// minVertexDistance is clamped to spline.MinVertexDistanceFloor.
func (b *Builder) Recompute(minVertexDistance float32) {
	step := spline.ClampVertexDistance(minVertexDistance)

	samples := spline.Sample(b.points, step)
	tangents := spline.ComputeTangents(samples)
	normals := spline.ComputeNormals(samples, tangents)
	mesh := extrude.Extrude(extrude.Input{
		Samples:  samples,
		Tangents: tangents,
		Normals:  normals,
		Profile:  b.profile,
		Taper:    b.taper,
	})

	b.samples, b.tangents, b.normals, b.mesh = samples, tangents, normals, mesh

	b.log.Debug("recomputed path",
		zap.Float32("spacing", step),
		zap.Int("points", len(b.points)),
		zap.Int("samples", len(samples)),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
}

// Clear removes all control points and derived geometry.
func (b *Builder) Clear() {
	b.points = nil
	b.samples = nil
	b.tangents = nil
	b.normals = nil
	b.mesh = &extrude.Mesh{}
}

// Samples returns a copy of the sampled polyline from the last Recompute.
func (b *Builder) Samples() []math.Vec3 { return slices.Clone(b.samples) }

// Tangents returns a copy of the unit tangent per sample.
func (b *Builder) Tangents() []math.Vec3 { return slices.Clone(b.tangents) }

// Normals returns a copy of the rotation-minimizing normal per sample.
func (b *Builder) Normals() []math.Vec3 { return slices.Clone(b.normals) }

// Binormals returns tangent x normal per sample.
func (b *Builder) Binormals() []math.Vec3 {
	return spline.ComputeBinormals(b.tangents, b.normals)
}

// Mesh returns a copy of the swept mesh. It is never nil.
func (b *Builder) Mesh() *extrude.Mesh { return b.mesh.Clone() }

// Profile returns the swept cross-section.
func (b *Builder) Profile() profile.Profile { return b.profile }

// SetProfile replaces the cross-section used by the next Recompute.
func (b *Builder) SetProfile(p profile.Profile) { b.profile = p }

// Taper returns the profile scale curve.
func (b *Builder) Taper() taper.Evaluator { return b.taper }

// SetTaper replaces the scale curve used by the next Recompute. nil means
// no scaling.
func (b *Builder) SetTaper(t taper.Evaluator) { b.taper = t }

// AutoTangents reports whether edits re-solve handles.
func (b *Builder) AutoTangents() bool { return b.autoTangents }

// SetAutoTangents toggles re-solving handles after edits.
func (b *Builder) SetAutoTangents(enabled bool) { b.autoTangents = enabled }

func (b *Builder) afterEdit() {
	if b.autoTangents {
		b.RecalculateTangents()
	}
}
