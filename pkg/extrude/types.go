// Package extrude sweeps a profile polygon along sampled path frames into a
// triangle mesh.
package extrude

import (
	"slices"

	"github.com/Faultbox/pathbuilder/pkg/math"
	"github.com/Faultbox/pathbuilder/pkg/profile"
	"github.com/Faultbox/pathbuilder/pkg/taper"
)

// Input holds the per-sample frame buffers and the cross-section to sweep.
// Samples, Tangents and Normals must have equal lengths.
type Input struct {
	Samples  []math.Vec3
	Tangents []math.Vec3
	Normals  []math.Vec3
	Profile  profile.Profile
	// Taper scales the profile by normalized sample index; nil means 1.
	Taper taper.Evaluator
}

// Mesh is an indexed triangle mesh with per-vertex attributes.
type Mesh struct {
	Vertices  []math.Vec3
	UVs       []math.Vec2
	Triangles []uint32
	Normals   []math.Vec3
	// Tangents carry bitangent handedness in W.
	Tangents []math.Vec4
	Bounds   Bounds

	// Vertices per swept ring.
	RingSize int
	// Seam is set when the last vertex of every ring duplicates the first.
	Seam bool
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Triangles) / 3
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m.TriangleCount() == 0
}

// Clone returns a deep copy of the mesh. A nil mesh clones to an empty one.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return &Mesh{}
	}
	return &Mesh{
		Vertices:  slices.Clone(m.Vertices),
		UVs:       slices.Clone(m.UVs),
		Triangles: slices.Clone(m.Triangles),
		Normals:   slices.Clone(m.Normals),
		Tangents:  slices.Clone(m.Tangents),
		Bounds:    m.Bounds,
		RingSize:  m.RingSize,
		Seam:      m.Seam,
	}
}

func boundsOf(points []math.Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
