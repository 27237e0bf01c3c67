// Package hole provides circular/cylindrical hole inference for solid models.
// Candidate circles are gathered from three independent evidence sources,
// fused by anisotropic spatial clustering and ranked by a bounded confidence
// score.
package hole

import (
	"fmt"

	"holescan/pkg/geometry"
)

// SourceKind indicates which extractor observed a candidate circle.
type SourceKind int

const (
	// SourceAnalyticEdge indicates an edge whose curve is an exact circle.
	SourceAnalyticEdge SourceKind = iota
	// SourceCylindricalFace indicates a face whose surface is an exact cylinder.
	SourceCylindricalFace
	// SourceFittedEdge indicates a circle fitted numerically to edge samples.
	SourceFittedEdge
)

func (s SourceKind) String() string {
	switch s {
	case SourceAnalyticEdge:
		return "analytic_edge"
	case SourceCylindricalFace:
		return "cylindrical_face"
	case SourceFittedEdge:
		return "fitted_edge"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the source as its wire name.
func (s SourceKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses a source wire name.
func (s *SourceKind) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"analytic_edge"`:
		*s = SourceAnalyticEdge
	case `"cylindrical_face"`:
		*s = SourceCylindricalFace
	case `"fitted_edge"`:
		*s = SourceFittedEdge
	default:
		return fmt.Errorf("unknown source kind %s", data)
	}
	return nil
}

// CandidateCircle is one raw, single-source observation of a possibly-circular
// feature, before fusion. The axis sign is arbitrary.
type CandidateCircle struct {
	Source  SourceKind    `json:"source"`
	Center  geometry.Vec3 `json:"center"`
	Radius  float64       `json:"radius"`
	Axis    geometry.Vec3 `json:"axis"`
	ArcSpan float64       `json:"arc_span,omitempty"` // radians, fitted edges only
}

// Hole is a fused, scored estimate of one physical hole, aggregated from one
// or more candidate circles. IDs are dense 1..N in final rank order and are
// not stable across re-runs.
type Hole struct {
	ID                uint32        `json:"id"`
	Center            geometry.Vec3 `json:"center"`
	Radius            float64       `json:"radius"` // median of supporting candidates
	NumCircles        int           `json:"num_circles"`
	ZDepth            float64       `json:"z_depth"` // spread of supporting centers along Z
	VerticalAlignment float64       `json:"vertical_alignment"`
	Score             float64       `json:"score"`
	Sources           []SourceKind  `json:"sources"`
}

// HasSource returns true if any supporting candidate came from the given source.
func (h Hole) HasSource(s SourceKind) bool {
	for _, src := range h.Sources {
		if src == s {
			return true
		}
	}
	return false
}
