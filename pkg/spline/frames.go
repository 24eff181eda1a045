package spline

import "github.com/Faultbox/pathbuilder/pkg/math"

// ComputeTangents returns a unit tangent per sample: central differences for
// interior samples, one-sided differences at the two ends. Fewer than two
// samples produce no tangents.
func ComputeTangents(samples []math.Vec3) []math.Vec3 {
	n := len(samples)
	if n < 2 {
		return nil
	}

	tangents := make([]math.Vec3, n)
	tangents[0] = samples[1].Sub(samples[0]).Normalize()
	for i := 1; i < n-1; i++ {
		tangents[i] = samples[i+1].Sub(samples[i-1]).Normalize()
	}
	tangents[n-1] = samples[n-1].Sub(samples[n-2]).Normalize()

	return tangents
}

// ComputeNormals propagates a rotation-minimizing normal along the samples
// using the double reflection method (Wang et al. 2008).
//
// The first normal is the normalized change between the first two tangents;
// if that is zero (a straight start) any vector perpendicular to the first
// tangent is used. Steps with zero displacement keep the previous normal.
// Every normal is orthogonalized against its own tangent.
//
// The result is empty if there are fewer than two samples or the tangent
// count differs from the sample count.
func ComputeNormals(samples, tangents []math.Vec3) []math.Vec3 {
	n := len(samples)
	if n < 2 || len(tangents) != n {
		return nil
	}

	normals := make([]math.Vec3, n)
	normals[0] = orthonormal(tangents[1].Sub(tangents[0]), tangents[0])

	for i := 0; i < n-1; i++ {
		ri := normals[i]
		ti := tangents[i]

		v1 := samples[i+1].Sub(samples[i])
		c1 := v1.Dot(v1)
		if c1 == 0 {
			normals[i+1] = orthonormal(ri, tangents[i+1])
			continue
		}

		// Reflect the frame across the plane bisecting the step.
		rL := reflect(ri, v1, c1)
		tL := reflect(ti, v1, c1)

		// Reflect again to line the tangent up with the next one.
		v2 := tangents[i+1].Sub(tL)
		c2 := v2.Dot(v2)
		next := rL
		if c2 != 0 {
			next = reflect(rL, v2, c2)
		}

		normals[i+1] = orthonormal(next, tangents[i+1])
	}

	return normals
}

// Binormal completes the frame: cross(tangent, normal).
func Binormal(tangent, normal math.Vec3) math.Vec3 {
	return tangent.Cross(normal)
}

// ComputeBinormals returns Binormal for each index of the paired slices.
func ComputeBinormals(tangents, normals []math.Vec3) []math.Vec3 {
	n := min(len(tangents), len(normals))
	if n == 0 {
		return nil
	}
	binormals := make([]math.Vec3, n)
	for i := range n {
		binormals[i] = Binormal(tangents[i], normals[i])
	}
	return binormals
}

// reflect applies the Householder reflection r - 2(v.r)/c * v with c = v.v.
func reflect(r, v math.Vec3, c float32) math.Vec3 {
	return r.Sub(v.Scale(2 / c * v.Dot(r)))
}

// orthonormal removes the tangent component of n and normalizes it. A
// degenerate result falls back to an arbitrary perpendicular of tangent.
func orthonormal(n, tangent math.Vec3) math.Vec3 {
	n = n.Sub(tangent.Scale(n.Dot(tangent))).Normalize()
	if n == (math.Vec3{}) || !n.IsFinite() {
		return tangent.AnyPerpendicular()
	}
	return n
}
