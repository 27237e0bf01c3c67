package geometry

import (
	"math"
)

// PerpendicularBasis returns two unit vectors u, v such that (u, v, axis)
// forms a right-handed orthonormal frame. The axis does not need to be
// unit length, only non-degenerate.
func PerpendicularBasis(axis Vec3) (Vec3, Vec3, bool) {
	n, ok := axis.Normalize()
	if !ok {
		return Vec3{}, Vec3{}, false
	}

	// Cross with the world axis least aligned with n to avoid degeneracy.
	ref := Vec3{X: 1}
	if math.Abs(n.X) > math.Abs(n.Y) {
		ref = Vec3{Y: 1}
	}

	u, ok := n.Cross(ref).Normalize()
	if !ok {
		return Vec3{}, Vec3{}, false
	}
	v := n.Cross(u)
	return u, v, true
}

// CirclePoints generates n evenly-spaced points on a 3D circle defined by
// center, axis and radius. Returns nil for a degenerate axis or n < 1.
func CirclePoints(center, axis Vec3, radius float64, n int) []Vec3 {
	if n < 1 {
		return nil
	}
	u, v, ok := PerpendicularBasis(axis)
	if !ok {
		return nil
	}

	points := make([]Vec3, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2.0 * math.Pi / float64(n)
		points[i] = center.
			Add(u.Scale(radius * math.Cos(angle))).
			Add(v.Scale(radius * math.Sin(angle)))
	}
	return points
}
