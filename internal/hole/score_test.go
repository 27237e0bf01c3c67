package hole

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidatesOf(sources ...SourceKind) []CandidateCircle {
	group := make([]CandidateCircle, len(sources))
	for i, s := range sources {
		group[i] = CandidateCircle{Source: s, Radius: 6, Axis: up()}
	}
	return group
}

func TestScore(t *testing.T) {
	params := DefaultParams()

	t.Run("bounded for any composition", func(t *testing.T) {
		groups := [][]CandidateCircle{
			candidatesOf(SourceFittedEdge),
			candidatesOf(SourceAnalyticEdge, SourceCylindricalFace),
			candidatesOf(SourceAnalyticEdge, SourceCylindricalFace, SourceFittedEdge, SourceFittedEdge),
			nil,
		}
		radii := []float64{0, 0.1, 5.5, 100, 1e6}
		alignments := []float64{0, 0.1, 0.15, 0.5, 1}

		for _, g := range groups {
			for _, r := range radii {
				for _, a := range alignments {
					s := Score(g, r, a, params)
					assert.GreaterOrEqual(t, s, 0.0)
					assert.LessOrEqual(t, s, 100.0)
				}
			}
		}
	})

	t.Run("support term steps", func(t *testing.T) {
		base := func(n int) float64 {
			group := make([]CandidateCircle, n)
			for i := range group {
				group[i] = CandidateCircle{Source: SourceFittedEdge}
			}
			return Score(group, 5.5, 0.15, params)
		}

		// radius term 25 at the ideal radius, alignment term 0 at the minimum;
		// fitted bonus 3 for one member, 5 for two or more.
		assert.InDelta(t, 25+15+3, base(1), 1e-9)
		assert.InDelta(t, 25+24+5, base(2), 1e-9)
		assert.InDelta(t, 25+32+5, base(3), 1e-9)
		assert.InDelta(t, 25+40+5, base(4), 1e-9)
		assert.InDelta(t, 25+40+5, base(7), 1e-9)
	})

	t.Run("source bonuses are additive", func(t *testing.T) {
		all := Score(candidatesOf(SourceAnalyticEdge, SourceCylindricalFace, SourceFittedEdge), 5.5, 0.15, params)
		// 25 radius + 32 support + 15 cylinder + 10 analytic + 5 fitted
		assert.InDelta(t, 87, all, 1e-9)
	})

	t.Run("radius deviation penalized", func(t *testing.T) {
		near := Score(candidatesOf(SourceAnalyticEdge), 5.5, 1, params)
		far := Score(candidatesOf(SourceAnalyticEdge), 15.5, 1, params)
		assert.InDelta(t, 15.0, near-far, 1e-9) // 10 units off at 1.5/unit, floored at 0

		veryFar := Score(candidatesOf(SourceAnalyticEdge), 1000, 1, params)
		assert.InDelta(t, 25.0, near-veryFar, 1e-9)
	})

	t.Run("alignment below minimum adds nothing", func(t *testing.T) {
		low := Score(candidatesOf(SourceAnalyticEdge), 5.5, 0.1, params)
		atMin := Score(candidatesOf(SourceAnalyticEdge), 5.5, 0.15, params)
		full := Score(candidatesOf(SourceAnalyticEdge), 5.5, 1, params)

		assert.Equal(t, low, atMin)
		assert.InDelta(t, 15.0, full-atMin, 1e-9)
	})

	t.Run("perfect cluster clamps at 100", func(t *testing.T) {
		group := candidatesOf(SourceAnalyticEdge, SourceCylindricalFace, SourceFittedEdge, SourceFittedEdge)
		// 25 + 15 + 40 + 15 + 10 + 5 = 110 before clamping
		assert.Equal(t, 100.0, Score(group, 5.5, 1, params))
	})
}
