package pathbuilder

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/pathbuilder/pkg/spline"
)

// Stats summarizes a builder's current state.
type Stats struct {
	Points    int
	Samples   int
	Vertices  int
	Triangles int
	Length    float32
}

// Stats returns counts from the last Recompute.
func (b *Builder) Stats() Stats {
	return Stats{
		Points:    len(b.points),
		Samples:   len(b.samples),
		Vertices:  b.mesh.VertexCount(),
		Triangles: b.mesh.TriangleCount(),
		Length:    spline.PolylineLength(b.samples),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d points, %d samples, %d vertices, %d triangles, length %.3f",
		s.Points, s.Samples, s.Vertices, s.Triangles, s.Length)
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("points", s.Points)
	enc.AddInt("samples", s.Samples)
	enc.AddInt("vertices", s.Vertices)
	enc.AddInt("triangles", s.Triangles)
	enc.AddFloat32("length", s.Length)
	return nil
}

// ClampVertexDistance raises d to the smallest spacing Recompute accepts.
func ClampVertexDistance(d float32) float32 {
	return spline.ClampVertexDistance(d)
}
