package extrude

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/pathbuilder/pkg/math"
)

// RecalculateNormals rebuilds per-vertex normals from the triangles.
// Face normals are area weighted. When the mesh has a seam, each ring's
// duplicate vertex shares its normal with the ring's first vertex, so the
// texture seam does not show as a shading crease. No other vertices are
// merged. Vertices without faces get a zero normal.
func (m *Mesh) RecalculateNormals() {
	sums := make([]math.Vec3, len(m.Vertices))
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		a, b, c := m.Triangles[t], m.Triangles[t+1], m.Triangles[t+2]
		pa, pb, pc := m.Vertices[a], m.Vertices[b], m.Vertices[c]
		// Cross product length is twice the triangle area.
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		sums[a] = sums[a].Add(face)
		sums[b] = sums[b].Add(face)
		sums[c] = sums[c].Add(face)
	}

	if m.Seam && m.RingSize > 1 {
		for first := 0; first+m.RingSize <= len(sums); first += m.RingSize {
			dup := first + m.RingSize - 1
			sum := sums[first].Add(sums[dup])
			sums[first], sums[dup] = sum, sum
		}
	}

	m.Normals = make([]math.Vec3, len(m.Vertices))
	for i, sum := range sums {
		m.Normals[i] = sum.Normalize()
	}
}

// RecalculateTangents rebuilds per-vertex tangents from triangle UV
// derivatives. Tangents are orthogonalized against the normals, and W holds
// +1 or -1 for the bitangent handedness. Call after RecalculateNormals.
func (m *Mesh) RecalculateTangents() {
	n := len(m.Vertices)
	if len(m.UVs) != n || len(m.Normals) != n {
		m.Tangents = nil
		return
	}

	tan := make([]math.Vec3, n)
	bitan := make([]math.Vec3, n)
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		a, b, c := m.Triangles[t], m.Triangles[t+1], m.Triangles[t+2]
		e1 := m.Vertices[b].Sub(m.Vertices[a])
		e2 := m.Vertices[c].Sub(m.Vertices[a])
		d1 := m.UVs[b].Sub(m.UVs[a])
		d2 := m.UVs[c].Sub(m.UVs[a])

		det := d1.X*d2.Y - d2.X*d1.Y
		if math32.Abs(det) < 1e-12 {
			continue
		}
		r := 1 / det
		sdir := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(r)
		tdir := e2.Scale(d1.X).Sub(e1.Scale(d2.X)).Scale(r)

		for _, idx := range [3]uint32{a, b, c} {
			tan[idx] = tan[idx].Add(sdir)
			bitan[idx] = bitan[idx].Add(tdir)
		}
	}

	m.Tangents = make([]math.Vec4, n)
	for i := range n {
		normal := m.Normals[i]
		t := tan[i].Sub(normal.Scale(normal.Dot(tan[i]))).Normalize()
		if t.LengthSquared() == 0 {
			t = normal.AnyPerpendicular()
		}
		w := float32(1)
		if normal.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		m.Tangents[i] = math.Vec4{X: t.X, Y: t.Y, Z: t.Z, W: w}
	}
}
