package extrude

import (
	"github.com/Faultbox/pathbuilder/pkg/math"
)

// Extrude sweeps in.Profile along the sample frames.
//
// Each sample i places a ring through the frame (normal, tangent x normal,
// tangent) at the sample position, scaled by Taper(i/S). Closed profiles get a
// duplicate of profile vertex 0 at the end of every ring so the texture seam
// can use v = 1. Normals and tangents are recalculated from the final
// triangles. Mismatched or empty inputs yield an empty mesh.
func Extrude(in Input) *Mesh {
	s := len(in.Samples)
	v := in.Profile.Len()
	if s == 0 || v == 0 || len(in.Tangents) != s || len(in.Normals) != s {
		return &Mesh{}
	}

	closed := in.Profile.Closed
	ring := v
	if closed {
		ring = v + 1
	}

	mesh := &Mesh{
		Vertices: make([]math.Vec3, 0, s*ring),
		UVs:      make([]math.Vec2, 0, s*ring),
		RingSize: ring,
		Seam:     closed,
	}

	vDenom := float32(v)
	if !closed && v > 1 {
		vDenom = float32(v - 1)
	}

	for i, position := range in.Samples {
		tangent := in.Tangents[i]
		normal := in.Normals[i]
		binormal := tangent.Cross(normal)

		u := float32(i) / float32(s)
		scale := float32(1)
		if in.Taper != nil {
			scale = in.Taper.Evaluate(u)
		}
		frame := math.FromBasis(normal.Scale(scale), binormal.Scale(scale), tangent.Scale(scale), position)

		for j, p := range in.Profile.Vertices {
			mesh.Vertices = append(mesh.Vertices, frame.TransformVec3(p))
			mesh.UVs = append(mesh.UVs, math.Vec2{X: u, Y: float32(j) / vDenom})
		}
		if closed {
			mesh.Vertices = append(mesh.Vertices, frame.TransformVec3(in.Profile.Vertices[0]))
			mesh.UVs = append(mesh.UVs, math.Vec2{X: u, Y: 1})
		}
	}

	slots := ring - 1
	if s > 1 && slots > 0 {
		mesh.Triangles = make([]uint32, 0, (s-1)*slots*6)
	}
	for c := 0; c < s-1; c++ {
		for j := range slots {
			cur := uint32(j + c*ring)
			next := uint32(j + (c+1)*ring)
			mesh.Triangles = append(mesh.Triangles,
				next+1, next, cur,
				cur+1, next+1, cur,
			)
		}
	}

	mesh.Bounds = boundsOf(mesh.Vertices)
	mesh.RecalculateNormals()
	mesh.RecalculateTangents()
	return mesh
}
