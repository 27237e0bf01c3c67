package hole

import (
	"sort"

	"holescan/pkg/geometry"
)

// axis fusion weights, reflecting source trust order
const (
	weightCylindricalFace = 3.0
	weightAnalyticEdge    = 2.0
	weightFittedEdge      = 1.0
)

// Aggregate merges candidate circles into ranked holes.
//
// Candidates are clustered in an anisotropically rescaled space: X/Y keep
// model units (grouping radius GroupingDistance) while Z is compressed by
// ZTolerance/GroupingDistance, so observations of one hole taken at different
// depths (counterbores, through-holes) still land in one cluster. Clustering
// is single-linkage agglomeration at the grouping radius: every candidate
// belongs to some cluster, there is no noise label.
//
// Each cluster is fused into one Hole (median center and radius, trust-
// weighted axis average), filtered by vertical alignment and score, ranked
// descending by score with discovery order breaking ties, truncated to
// MaxCandidates, and assigned dense 1-based ids.
//
// Empty input or fully filtered input yields an empty result, not an error.
func Aggregate(candidates []CandidateCircle, p Params) []Hole {
	filtered := make([]CandidateCircle, 0, len(candidates))
	for _, c := range candidates {
		if p.radiusInWindow(c.Radius) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	zScale := p.ZTolerance / p.GroupingDistance
	features := make([]geometry.Vec3, len(filtered))
	for i, c := range filtered {
		features[i] = geometry.Vec3{X: c.Center.X, Y: c.Center.Y, Z: c.Center.Z / zScale}
	}

	var holes []Hole
	for _, cluster := range clusterByDistance(features, p.GroupingDistance) {
		group := make([]CandidateCircle, len(cluster))
		for i, idx := range cluster {
			group[i] = filtered[idx]
		}
		if h, ok := fuseCluster(group, p); ok {
			h.ID = uint32(len(holes) + 1)
			holes = append(holes, h)
		}
	}

	// Stable sort keeps cluster discovery order for equal scores.
	sort.SliceStable(holes, func(i, j int) bool {
		return holes[i].Score > holes[j].Score
	})

	ranked := holes[:0]
	for _, h := range holes {
		if h.Score >= p.MinScore {
			ranked = append(ranked, h)
		}
	}
	if len(ranked) > p.MaxCandidates {
		ranked = ranked[:p.MaxCandidates]
	}
	for i := range ranked {
		ranked[i].ID = uint32(i + 1)
	}
	return ranked
}

// fuseCluster combines one cluster of candidates into a hole estimate.
// Returns false when the fused axis is not vertical enough; a cluster
// dominated by poorly-aligned fragments should not become a hole.
func fuseCluster(group []CandidateCircle, p Params) (Hole, bool) {
	centers := make([]geometry.Vec3, len(group))
	radii := make([]float64, len(group))
	for i, c := range group {
		centers[i] = c.Center
		radii[i] = c.Radius
	}

	// Component-wise median is robust to one outlier source.
	center := medianVec3(centers)
	radius := medianFloat(radii)

	var axisSum geometry.Vec3
	for _, c := range group {
		w := weightFittedEdge
		switch c.Source {
		case SourceCylindricalFace:
			w = weightCylindricalFace
		case SourceAnalyticEdge:
			w = weightAnalyticEdge
		}
		axisSum = axisSum.Add(c.Axis.Scale(w))
	}
	axis := axisSum.Scale(1 / (axisSum.Norm() + 1e-10))

	alignment := axis.Z
	if alignment < 0 {
		alignment = -alignment
	}
	if alignment < p.MinVerticalAlignment {
		return Hole{}, false
	}

	zMin, zMax := centers[0].Z, centers[0].Z
	for _, c := range centers[1:] {
		if c.Z < zMin {
			zMin = c.Z
		}
		if c.Z > zMax {
			zMax = c.Z
		}
	}

	return Hole{
		Center:            center,
		Radius:            radius,
		NumCircles:        len(group),
		ZDepth:            zMax - zMin,
		VerticalAlignment: alignment,
		Score:             Score(group, radius, alignment, p),
		Sources:           uniqueSources(group),
	}, true
}

// clusterByDistance groups points into connected components of the graph
// where two points are adjacent when within eps of each other. Components are
// emitted in order of their lowest member index, members in index order.
func clusterByDistance(points []geometry.Vec3, eps float64) [][]int {
	n := len(points)
	visited := make([]bool, n)
	epsSq := eps * eps

	var clusters [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		member := []int{start}
		for head := 0; head < len(member); head++ {
			p := points[member[head]]
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				d := p.Sub(points[j])
				if d.Dot(d) <= epsSq {
					visited[j] = true
					member = append(member, j)
				}
			}
		}
		sort.Ints(member)
		clusters = append(clusters, member)
	}
	return clusters
}

func uniqueSources(group []CandidateCircle) []SourceKind {
	var present [3]bool
	for _, c := range group {
		if c.Source >= 0 && int(c.Source) < len(present) {
			present[c.Source] = true
		}
	}
	var sources []SourceKind
	for kind, ok := range present {
		if ok {
			sources = append(sources, SourceKind(kind))
		}
	}
	return sources
}

func medianFloat(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func medianVec3(points []geometry.Vec3) geometry.Vec3 {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return geometry.Vec3{X: medianFloat(xs), Y: medianFloat(ys), Z: medianFloat(zs)}
}
