package hole

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"holescan/pkg/geometry"
)

// maxFitResidual is the least-squares residual sum above which a point set is
// considered too scattered to be a circle.
const maxFitResidual = 5e4

// CircleFit is the result of fitting a circle to a 3D point cloud.
type CircleFit struct {
	Center geometry.Vec3
	Axis   geometry.Vec3 // unit normal of the fitted plane, sign arbitrary
	Radius float64
	Span   float64 // angular extent covered by the samples, radians in [0, 2pi]
}

// FitCircle3D fits a circle to arbitrary 3D point samples.
//
// The best-fit plane is taken from the right singular vectors of the centered
// point matrix (a total-least-squares plane fit, robust to points that are not
// exactly coplanar). The projected 2D points are then fitted to the algebraic
// circle equation x^2+y^2 = a*x + b*y + c by linear least squares.
//
// Returns false for any degenerate input: fewer than minPoints distinct
// points, a collinear point set, a failed decomposition, an excessive
// residual, or a non-positive radius.
func FitCircle3D(points []geometry.Vec3, minPoints int) (CircleFit, bool) {
	pts := dedupePoints(points)
	if len(pts) < minPoints {
		return CircleFit{}, false
	}

	centroid := geometry.Centroid(pts)
	n := len(pts)

	X := mat.NewDense(n, 3, nil)
	for i, p := range pts {
		d := p.Sub(centroid)
		X.Set(i, 0, d.X)
		X.Set(i, 1, d.Y)
		X.Set(i, 2, d.Z)
	}

	var svd mat.SVD
	if !svd.Factorize(X, mat.SVDThin) {
		return CircleFit{}, false
	}

	// A near-zero second singular value means the points span a line, not a
	// plane; the in-plane projection below would be meaningless.
	sv := svd.Values(nil)
	if len(sv) < 3 || sv[1] <= 1e-10*math.Max(1, sv[0]) {
		return CircleFit{}, false
	}

	var v mat.Dense
	svd.VTo(&v)

	xAxis := geometry.Vec3{X: v.At(0, 0), Y: v.At(1, 0), Z: v.At(2, 0)}
	normal := geometry.Vec3{X: v.At(0, 2), Y: v.At(1, 2), Z: v.At(2, 2)}

	yAxis, ok := normal.Cross(xAxis).Normalize()
	if !ok {
		return CircleFit{}, false
	}

	// Project centered points into the fitted plane.
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pts {
		d := p.Sub(centroid)
		xs[i] = d.Dot(xAxis)
		ys[i] = d.Dot(yAxis)
	}

	A := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		A.Set(i, 0, xs[i])
		A.Set(i, 1, ys[i])
		A.Set(i, 2, 1)
		b.SetVec(i, xs[i]*xs[i]+ys[i]*ys[i])
	}

	var qr mat.QR
	qr.Factorize(A)

	var coeffs mat.VecDense
	if err := qr.SolveVecTo(&coeffs, false, b); err != nil {
		return CircleFit{}, false
	}

	ca, cb, cc := coeffs.AtVec(0), coeffs.AtVec(1), coeffs.AtVec(2)

	var residual float64
	for i := 0; i < n; i++ {
		r := b.AtVec(i) - (ca*xs[i] + cb*ys[i] + cc)
		residual += r * r
	}
	if residual > maxFitResidual {
		return CircleFit{}, false
	}

	cx := 0.5 * ca
	cy := 0.5 * cb
	radiusSq := cc + cx*cx + cy*cy
	if radiusSq <= 0 {
		return CircleFit{}, false
	}

	axis, ok := normal.Normalize()
	if !ok {
		return CircleFit{}, false
	}

	return CircleFit{
		Center: centroid.Add(xAxis.Scale(cx)).Add(yAxis.Scale(cy)),
		Axis:   axis,
		Radius: math.Sqrt(radiusSq),
		Span:   arcSpan(xs, ys, cx, cy),
	}, true
}

// dedupePoints removes exact duplicates, preserving first-seen order.
func dedupePoints(points []geometry.Vec3) []geometry.Vec3 {
	seen := make(map[geometry.Vec3]struct{}, len(points))
	out := make([]geometry.Vec3, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// arcSpan computes the angular extent the projected points cover around the
// fitted 2D center. Angles are phase-unwrapped in sample order so that a full
// revolution is not aliased down by the atan2 branch cut; the result is
// clamped to [0, 2pi]. This distinguishes a full circle from a short arc
// fragment.
func arcSpan(xs, ys []float64, cx, cy float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	prev := math.Atan2(ys[0]-cy, xs[0]-cx)
	minA, maxA := prev, prev
	offset := 0.0

	for i := 1; i < len(xs); i++ {
		a := math.Atan2(ys[i]-cy, xs[i]-cx) + offset
		for a-prev > math.Pi {
			a -= 2 * math.Pi
			offset -= 2 * math.Pi
		}
		for a-prev < -math.Pi {
			a += 2 * math.Pi
			offset += 2 * math.Pi
		}
		prev = a
		if a < minA {
			minA = a
		}
		if a > maxA {
			maxA = a
		}
	}

	span := maxA - minA
	if span > 2*math.Pi {
		span = 2 * math.Pi
	}
	return span
}
