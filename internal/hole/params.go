package hole

// Params holds tunable thresholds for hole detection.
type Params struct {
	// Radius window for accepted circles (model units, typically mm)
	RadiusMin float64
	RadiusMax float64

	// Spatial clustering
	GroupingDistance float64 // in-plane radius for merging duplicate observations
	ZTolerance       float64 // allowed vertical spread within one hole (counterbores, through-holes)

	// Axis filtering
	MinVerticalAlignment float64 // minimum |axis.Z| for a hole axis

	// Ranking
	MinScore      float64 // holes scoring below this are dropped
	MaxCandidates int     // hard cap on reported holes

	// Fitted-edge extraction
	ArcMinSpan  float64 // minimum fitted arc span (radians); shorter fragments are unreliable
	EdgeSamples int     // samples per edge for circle fitting
}

// DefaultParams returns default hole detection parameters.
// These are tuned for fastener-sized holes in millimeter models.
func DefaultParams() Params {
	return Params{
		RadiusMin: 1.5,
		RadiusMax: 20.0,

		GroupingDistance: 4.0,
		ZTolerance:       12.0,

		// 0.15 admits holes up to ~81 degrees off vertical; steeper axes are
		// usually side features, not drill holes.
		MinVerticalAlignment: 0.15,

		MinScore:      20,
		MaxCandidates: 800,

		ArcMinSpan:  1.0,
		EdgeSamples: 120,
	}
}

// WithRadiusRange returns a copy of params with a custom radius window.
func (p Params) WithRadiusRange(min, max float64) Params {
	p.RadiusMin = min
	p.RadiusMax = max
	return p
}

// WithGrouping returns a copy of params with custom clustering tolerances.
func (p Params) WithGrouping(distance, zTolerance float64) Params {
	p.GroupingDistance = distance
	p.ZTolerance = zTolerance
	return p
}

// WithMinScore returns a copy of params with a custom score threshold.
func (p Params) WithMinScore(score float64) Params {
	p.MinScore = score
	return p
}
