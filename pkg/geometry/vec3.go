// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Vec3 represents a 3D point or vector with floating-point coordinates.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Dot returns the dot product with another vector.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product with another vector.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean length of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector in the same direction.
// Returns false if the vector is too short to normalize.
func (v Vec3) Normalize() (Vec3, bool) {
	n := v.Norm()
	if n < 1e-12 {
		return Vec3{}, false
	}
	return v.Scale(1 / n), true
}

// Distance returns the Euclidean distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Norm()
}

// Centroid computes the centroid (average position) of a set of points.
func Centroid(points []Vec3) Vec3 {
	if len(points) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Transform3 represents a 3x4 affine transformation matrix, row-major.
// [r00 r01 r02 tx]
// [r10 r11 r12 ty]
// [r20 r21 r22 tz]
type Transform3 [3][4]float64

// Identity3 returns the identity transform.
func Identity3() Transform3 {
	return Transform3{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

// Translation3 returns a translation transform.
func Translation3(tx, ty, tz float64) Transform3 {
	t := Identity3()
	t[0][3] = tx
	t[1][3] = ty
	t[2][3] = tz
	return t
}

// Apply applies the transform to a point.
func (t Transform3) Apply(p Vec3) Vec3 {
	return Vec3{
		X: t[0][0]*p.X + t[0][1]*p.Y + t[0][2]*p.Z + t[0][3],
		Y: t[1][0]*p.X + t[1][1]*p.Y + t[1][2]*p.Z + t[1][3],
		Z: t[2][0]*p.X + t[2][1]*p.Y + t[2][2]*p.Z + t[2][3],
	}
}

// IsIdentity returns true if the transform is exactly the identity.
func (t Transform3) IsIdentity() bool {
	return t == Identity3()
}
