package hole

import (
	"math"

	"holescan/internal/kernel"
	"holescan/pkg/geometry"
)

// Detect runs all three extractors over the shape and aggregates the pooled
// candidates into ranked holes.
func Detect(shape kernel.Shape, p Params) []Hole {
	candidates := AnalyticEdgeCircles(shape, p)
	candidates = append(candidates, CylindricalFaceCircles(shape, p)...)
	candidates = append(candidates, FittedEdgeCircles(shape, p)...)
	return Aggregate(candidates, p)
}

// AnalyticEdgeCircles scans the shape's edges for exact analytic circles.
// This is the most trusted edge source: center, axis and radius are read
// directly from the curve parameters. Elements the kernel fails on are skipped.
func AnalyticEdgeCircles(shape kernel.Shape, p Params) []CandidateCircle {
	var circles []CandidateCircle
	for _, edge := range shape.Edges() {
		curve, err := edge.Curve()
		if err != nil || curve.Kind() != kernel.CurveCircle {
			continue
		}
		params, err := curve.Circle()
		if err != nil {
			continue
		}
		if !p.radiusInWindow(params.Radius) || !p.axisAligned(params.Axis) {
			continue
		}
		circles = append(circles, CandidateCircle{
			Source: SourceAnalyticEdge,
			Center: params.Center,
			Radius: params.Radius,
			Axis:   params.Axis,
		})
	}
	return circles
}

// CylindricalFaceCircles scans the shape's faces for exact analytic cylinders.
// Equally trusted as analytic edges, and the only source implying a solid
// boundary rather than just an edge.
func CylindricalFaceCircles(shape kernel.Shape, p Params) []CandidateCircle {
	var circles []CandidateCircle
	for _, face := range shape.Faces() {
		surf, err := face.Surface()
		if err != nil || surf.Kind() != kernel.SurfaceCylinder {
			continue
		}
		params, err := surf.Cylinder()
		if err != nil {
			continue
		}
		if !p.radiusInWindow(params.Radius) || !p.axisAligned(params.Axis) {
			continue
		}
		circles = append(circles, CandidateCircle{
			Source: SourceCylindricalFace,
			Center: params.Location,
			Radius: params.Radius,
			Axis:   params.Axis,
		})
	}
	return circles
}

// FittedEdgeCircles samples every non-circular edge and fits a circle to the
// samples. The least trusted source; it catches holes bounded by approximated
// or spline edges. Fragments spanning less than ArcMinSpan are discarded as
// unreliable.
func FittedEdgeCircles(shape kernel.Shape, p Params) []CandidateCircle {
	var circles []CandidateCircle
	for _, edge := range shape.Edges() {
		curve, err := edge.Curve()
		if err != nil || curve.Kind() == kernel.CurveCircle {
			continue
		}

		points := SampleCurve(curve, p.EdgeSamples)
		if len(points) < minSamplePoints {
			continue
		}

		fit, ok := FitCircle3D(points, minSamplePoints)
		if !ok {
			continue
		}
		if !p.radiusInWindow(fit.Radius) || fit.Span < p.ArcMinSpan || !p.axisAligned(fit.Axis) {
			continue
		}

		circles = append(circles, CandidateCircle{
			Source:  SourceFittedEdge,
			Center:  fit.Center,
			Radius:  fit.Radius,
			Axis:    fit.Axis,
			ArcSpan: fit.Span,
		})
	}
	return circles
}

func (p Params) radiusInWindow(radius float64) bool {
	return radius >= p.RadiusMin && radius <= p.RadiusMax
}

func (p Params) axisAligned(axis geometry.Vec3) bool {
	return math.Abs(axis.Z) >= p.MinVerticalAlignment
}
