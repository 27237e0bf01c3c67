// Package export serializes selected holes into the downstream reposition
// point schema. The field names, rounding and corner-point order are a
// contract with an external consumer and must not change.
package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"holescan/internal/hole"
)

// cornerOffsetFactor scales the hole radius into the half-width of the square
// of corner points emitted per hole.
const cornerOffsetFactor = 0.7

// Document is the exported file layout.
type Document struct {
	RepositionPointDataArray []Record `json:"repositionPointDataArray"`
}

// Record is one exported hole.
type Record struct {
	HoleID     string  `json:"HoleID"`
	Shape      int     `json:"Shape"`
	Group      int     `json:"group"`
	Radius     float64 `json:"radius"`
	NumCircles int     `json:"num_circles"`
	Score      float64 `json:"score"`
	Point1     Point   `json:"point1"`
	Point2     Point   `json:"point2"`
	Point3     Point   `json:"point3"`
	Point4     Point   `json:"point4"`
}

// Point is one corner point, rounded to 2 decimals.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Build filters holes by the selection set and produces the export document
// plus its file name. Selected holes are emitted in rank order with fresh
// 1-based labels. Corner points form a square of half-width radius*0.7 at the
// hole's z, in (+,+), (-,+), (-,-), (+,-) order.
func Build(holes []hole.Hole, selected map[uint32]struct{}, uid string) (Document, string) {
	doc := Document{RepositionPointDataArray: []Record{}}

	n := 0
	for _, h := range holes {
		if _, ok := selected[h.ID]; !ok {
			continue
		}
		n++

		cx, cy, cz := h.Center.X, h.Center.Y, h.Center.Z
		off := h.Radius * cornerOffsetFactor

		doc.RepositionPointDataArray = append(doc.RepositionPointDataArray, Record{
			HoleID:     fmt.Sprintf("BS-%d", n),
			Shape:      2,
			Group:      0,
			Radius:     round(h.Radius, 4),
			NumCircles: h.NumCircles,
			Score:      round(h.Score, 2),
			Point1:     Point{X: round(cx+off, 2), Y: round(cy+off, 2), Z: round(cz, 2)},
			Point2:     Point{X: round(cx-off, 2), Y: round(cy+off, 2), Z: round(cz, 2)},
			Point3:     Point{X: round(cx-off, 2), Y: round(cy-off, 2), Z: round(cz, 2)},
			Point4:     Point{X: round(cx+off, 2), Y: round(cy-off, 2), Z: round(cz, 2)},
		})
	}

	return doc, fmt.Sprintf("holes_export_%s.json", uid)
}

// Write builds the export document and saves it under dir.
// Returns the document and its file name.
func Write(dir string, holes []hole.Hole, selected map[uint32]struct{}, uid string) (Document, string, error) {
	doc, filename := Build(holes, selected, uid)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Document{}, "", err
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return Document{}, "", err
	}
	return doc, filename, nil
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
