package hole

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holescan/pkg/geometry"
)

func TestFitCircle3D(t *testing.T) {
	t.Run("round-trip exact circle", func(t *testing.T) {
		center := geometry.NewVec3(10, 20, 5)
		axis := geometry.NewVec3(0, 0, 1)
		points := geometry.CirclePoints(center, axis, 6.0, 100)
		require.Len(t, points, 100)

		fit, ok := FitCircle3D(points, 4)
		require.True(t, ok)

		assert.InDelta(t, center.X, fit.Center.X, 1e-9)
		assert.InDelta(t, center.Y, fit.Center.Y, 1e-9)
		assert.InDelta(t, center.Z, fit.Center.Z, 1e-9)
		assert.InDelta(t, 6.0, fit.Radius, 1e-9)

		// Axis sign is arbitrary.
		assert.InDelta(t, 1.0, math.Abs(fit.Axis.Dot(axis)), 1e-9)

		// Full revolution, minus the sampling gap before closing.
		assert.InDelta(t, 2*math.Pi, fit.Span, 0.1)
	})

	t.Run("tilted circle", func(t *testing.T) {
		axis, ok := geometry.NewVec3(0.2, 0.1, 1).Normalize()
		require.True(t, ok)
		center := geometry.NewVec3(-3, 7, 12)
		points := geometry.CirclePoints(center, axis, 4.5, 80)

		fit, fitted := FitCircle3D(points, 4)
		require.True(t, fitted)
		assert.InDelta(t, 4.5, fit.Radius, 1e-9)
		assert.InDelta(t, center.Distance(fit.Center), 0, 1e-9)
		assert.InDelta(t, 1.0, math.Abs(fit.Axis.Dot(axis)), 1e-9)
	})

	t.Run("short arc reports its span", func(t *testing.T) {
		points := make([]geometry.Vec3, 0, 20)
		for i := 0; i < 20; i++ {
			angle := 0.5 * float64(i) / 19 // 0.5 rad arc
			points = append(points, geometry.NewVec3(6*math.Cos(angle), 6*math.Sin(angle), 0))
		}

		fit, ok := FitCircle3D(points, 4)
		require.True(t, ok)
		assert.InDelta(t, 6.0, fit.Radius, 1e-6)
		assert.InDelta(t, 0.5, fit.Span, 1e-6)
	})

	t.Run("not coplanar still fits", func(t *testing.T) {
		// Points on a circle with small alternating z jitter.
		points := geometry.CirclePoints(geometry.NewVec3(0, 0, 0), geometry.NewVec3(0, 0, 1), 8, 60)
		for i := range points {
			if i%2 == 0 {
				points[i].Z += 0.01
			} else {
				points[i].Z -= 0.01
			}
		}

		fit, ok := FitCircle3D(points, 4)
		require.True(t, ok)
		assert.InDelta(t, 8.0, fit.Radius, 0.05)
		assert.InDelta(t, 1.0, math.Abs(fit.Axis.Z), 1e-3)
	})

	t.Run("too few distinct points", func(t *testing.T) {
		p1 := geometry.NewVec3(1, 0, 0)
		p2 := geometry.NewVec3(0, 1, 0)
		p3 := geometry.NewVec3(0, 0, 1)
		points := []geometry.Vec3{p1, p2, p3, p1, p2, p3}

		_, ok := FitCircle3D(points, 4)
		assert.False(t, ok)
	})

	t.Run("collinear points", func(t *testing.T) {
		points := make([]geometry.Vec3, 10)
		for i := range points {
			points[i] = geometry.NewVec3(float64(i), 0, 0)
		}

		_, ok := FitCircle3D(points, 4)
		assert.False(t, ok)
	})

	t.Run("too scattered to be a circle", func(t *testing.T) {
		// Two wildly different concentric rings push the algebraic residual
		// far past the acceptance threshold.
		points := geometry.CirclePoints(geometry.NewVec3(0, 0, 0), geometry.NewVec3(0, 0, 1), 10, 30)
		points = append(points,
			geometry.CirclePoints(geometry.NewVec3(0, 0, 0), geometry.NewVec3(0, 0, 1), 1000, 30)...)

		_, ok := FitCircle3D(points, 4)
		assert.False(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := FitCircle3D(nil, 4)
		assert.False(t, ok)
	})
}

func TestArcSpanUnwrap(t *testing.T) {
	// Angles crossing the atan2 branch cut must not alias the span.
	xs := make([]float64, 0, 10)
	ys := make([]float64, 0, 10)
	for i := 0; i < 10; i++ {
		angle := math.Pi - 0.4 + 0.8*float64(i)/9 // straddles +pi
		xs = append(xs, math.Cos(angle))
		ys = append(ys, math.Sin(angle))
	}

	span := arcSpan(xs, ys, 0, 0)
	assert.InDelta(t, 0.8, span, 1e-9)
}
