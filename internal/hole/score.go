package hole

import (
	"math"
)

// idealRadius is the expected fastener-hole radius; deviation is penalized.
const idealRadius = 5.5

// radiusPenalty is the score lost per unit of radius deviation.
const radiusPenalty = 1.5

// Score computes the confidence score for one cluster of candidates,
// bounded to [0, 100].
//
// The score rewards radii near the ideal fastener size (up to 25), vertical
// axis alignment (up to 15), multi-candidate support (15-40), and source
// diversity (cylindrical faces and analytic edges add fixed bonuses; fitted
// edges add a small bonus that grows with corroboration). The bonuses are
// additive, not mutually exclusive.
func Score(group []CandidateCircle, avgRadius, alignment float64, p Params) float64 {
	score := math.Max(0, 25-math.Abs(avgRadius-idealRadius)*radiusPenalty)

	if alignment >= p.MinVerticalAlignment {
		score += (alignment - p.MinVerticalAlignment) / (1 - p.MinVerticalAlignment) * 15
	}

	n := len(group)
	switch {
	case n >= 4:
		score += 40
	case n == 3:
		score += 32
	case n == 2:
		score += 24
	default:
		score += 15
	}

	var hasCylinder, hasAnalytic, hasFitted bool
	for _, c := range group {
		switch c.Source {
		case SourceCylindricalFace:
			hasCylinder = true
		case SourceAnalyticEdge:
			hasAnalytic = true
		case SourceFittedEdge:
			hasFitted = true
		}
	}
	if hasCylinder {
		score += 15
	}
	if hasAnalytic {
		score += 10
	}
	if hasFitted {
		if n >= 2 {
			score += 5
		} else {
			score += 3
		}
	}

	return math.Max(0, math.Min(100, score))
}
