package hole

import (
	"math"

	"holescan/internal/kernel"
	"holescan/pkg/geometry"
)

// minSamplePoints is the minimum number of points for a sampling strategy to
// count as a success; fewer cannot constrain a circle fit.
const minSamplePoints = 4

// polygonTolerance is the low tolerance requested for the polygonal fallback.
const polygonTolerance = 0.08

// SampleCurve turns one curve into at most n 3D points.
//
// The primary strategy evaluates the curve at n uniformly spaced parameters
// across its domain, skipping individual evaluation failures. If that yields
// fewer than 4 points, a low-tolerance polygonal approximation is requested
// instead. No kernel failure escapes; an unusable curve yields nil.
func SampleCurve(curve kernel.Curve, n int) []geometry.Vec3 {
	if n < 2 {
		n = 2
	}

	first, last, err := curve.Domain()
	if err == nil && math.Abs(last-first) > 1e-7 {
		points := make([]geometry.Vec3, 0, n)
		step := (last - first) / float64(n-1)
		for i := 0; i < n; i++ {
			p, err := curve.Value(first + step*float64(i))
			if err != nil {
				continue
			}
			points = append(points, p)
		}
		if len(points) >= minSamplePoints {
			return points
		}
	}

	if poly, err := curve.Polygon(polygonTolerance); err == nil && len(poly) >= minSamplePoints {
		return poly
	}
	return nil
}
