package math

// Vec2 is a point in a profile plane or a texture coordinate.
type Vec2 struct {
	X, Y float32
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Cross returns the Z component of the 3D cross product of v and other,
// i.e. twice the signed area of the triangle they span.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Min returns the component-wise minimum.
func (v Vec2) Min(other Vec2) Vec2 {
	return Vec2{min(v.X, other.X), min(v.Y, other.Y)}
}

// Max returns the component-wise maximum.
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{max(v.X, other.X), max(v.Y, other.Y)}
}

// Vec3 lifts v into the XY plane (Z = 0).
func (v Vec2) Vec3() Vec3 {
	return Vec3{v.X, v.Y, 0}
}
