package kernel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"holescan/pkg/geometry"
)

// JSONLoader loads shapes from JSON shape dumps: a model pre-classified into
// analytic edges/faces plus an optional pre-triangulated mesh. It backs the
// CLI and tests without requiring a native CAD kernel; the triangulation
// quality parameter is accepted but ignored since dump meshes are fixed.
type JSONLoader struct{}

// Load reads a shape dump from path.
func (JSONLoader) Load(path string) (Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc shapeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid shape dump: %w", err)
	}

	shape := &jsonShape{mesh: make([]FaceMesh, 0, len(doc.Mesh))}
	for i, e := range doc.Edges {
		edge, err := buildEdge(e)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		shape.edges = append(shape.edges, edge)
	}
	for _, f := range doc.Faces {
		shape.faces = append(shape.faces, jsonFace{doc: f})
	}
	for _, m := range doc.Mesh {
		fm := FaceMesh{
			Nodes:     m.Nodes,
			Triangles: m.Triangles,
			Transform: geometry.Identity3(),
		}
		if m.Translate != nil {
			fm.Transform = geometry.Translation3(m.Translate.X, m.Translate.Y, m.Translate.Z)
		}
		shape.mesh = append(shape.mesh, fm)
	}
	return shape, nil
}

type shapeDoc struct {
	Edges []edgeDoc     `json:"edges"`
	Faces []faceDoc     `json:"faces"`
	Mesh  []faceMeshDoc `json:"mesh,omitempty"`
}

type edgeDoc struct {
	Type   string          `json:"type"`
	Center *geometry.Vec3  `json:"center,omitempty"`
	Axis   *geometry.Vec3  `json:"axis,omitempty"`
	Radius float64         `json:"radius,omitempty"`
	Points []geometry.Vec3 `json:"points,omitempty"`
}

type faceDoc struct {
	Type     string         `json:"type"`
	Location *geometry.Vec3 `json:"location,omitempty"`
	Axis     *geometry.Vec3 `json:"axis,omitempty"`
	Radius   float64        `json:"radius,omitempty"`
}

type faceMeshDoc struct {
	Nodes     []geometry.Vec3 `json:"nodes"`
	Triangles [][3]int        `json:"triangles"`
	Translate *geometry.Vec3  `json:"translate,omitempty"`
}

func buildEdge(doc edgeDoc) (Edge, error) {
	switch doc.Type {
	case "circle":
		if doc.Center == nil || doc.Axis == nil {
			return nil, fmt.Errorf("circle edge needs center and axis")
		}
		return jsonEdge{curve: &circleCurve{
			params: CircleParams{Center: *doc.Center, Axis: *doc.Axis, Radius: doc.Radius},
		}}, nil
	case "line":
		return jsonEdge{curve: &polylineCurve{kind: CurveLine, points: doc.Points}}, nil
	case "polyline":
		return jsonEdge{curve: &polylineCurve{kind: CurveOther, points: doc.Points}}, nil
	case "broken":
		return jsonEdge{err: fmt.Errorf("edge geometry unavailable")}, nil
	default:
		return nil, fmt.Errorf("unknown edge type %q", doc.Type)
	}
}

type jsonShape struct {
	edges []Edge
	faces []Face
	mesh  []FaceMesh
}

func (s *jsonShape) Edges() []Edge { return s.edges }
func (s *jsonShape) Faces() []Face { return s.faces }

func (s *jsonShape) Triangulate(quality float64) ([]FaceMesh, error) {
	if quality <= 0 {
		return nil, fmt.Errorf("triangulation quality must be positive, got %g", quality)
	}
	return s.mesh, nil
}

type jsonEdge struct {
	curve Curve
	err   error
}

func (e jsonEdge) Curve() (Curve, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.curve, nil
}

type jsonFace struct {
	doc faceDoc
}

func (f jsonFace) Surface() (Surface, error) {
	switch f.doc.Type {
	case "cylinder":
		if f.doc.Location == nil || f.doc.Axis == nil {
			return nil, fmt.Errorf("cylinder face needs location and axis")
		}
		return jsonSurface{
			kind: SurfaceCylinder,
			cylinder: CylinderParams{
				Location: *f.doc.Location,
				Axis:     *f.doc.Axis,
				Radius:   f.doc.Radius,
			},
		}, nil
	case "plane":
		return jsonSurface{kind: SurfacePlane}, nil
	case "broken":
		return nil, fmt.Errorf("face geometry unavailable")
	default:
		return jsonSurface{kind: SurfaceOther}, nil
	}
}

type jsonSurface struct {
	kind     SurfaceKind
	cylinder CylinderParams
}

func (s jsonSurface) Kind() SurfaceKind { return s.kind }

func (s jsonSurface) Cylinder() (CylinderParams, error) {
	if s.kind != SurfaceCylinder {
		return CylinderParams{}, fmt.Errorf("surface is %s, not a cylinder", s.kind)
	}
	return s.cylinder, nil
}

// circleCurve evaluates an analytic circle parametrically over [0, 2pi].
type circleCurve struct {
	params CircleParams
}

func (c *circleCurve) Kind() CurveKind { return CurveCircle }

func (c *circleCurve) Circle() (CircleParams, error) { return c.params, nil }

func (c *circleCurve) Domain() (float64, float64, error) { return 0, 2 * math.Pi, nil }

func (c *circleCurve) Value(t float64) (geometry.Vec3, error) {
	u, v, ok := geometry.PerpendicularBasis(c.params.Axis)
	if !ok {
		return geometry.Vec3{}, fmt.Errorf("degenerate circle axis")
	}
	return c.params.Center.
		Add(u.Scale(c.params.Radius * math.Cos(t))).
		Add(v.Scale(c.params.Radius * math.Sin(t))), nil
}

func (c *circleCurve) Polygon(tolerance float64) ([]geometry.Vec3, error) {
	return geometry.CirclePoints(c.params.Center, c.params.Axis, c.params.Radius, 36), nil
}

// polylineCurve evaluates a point sequence with linear interpolation over [0, 1].
type polylineCurve struct {
	kind   CurveKind
	points []geometry.Vec3
}

func (c *polylineCurve) Kind() CurveKind { return c.kind }

func (c *polylineCurve) Circle() (CircleParams, error) {
	return CircleParams{}, fmt.Errorf("curve is %s, not a circle", c.kind)
}

func (c *polylineCurve) Domain() (float64, float64, error) {
	if len(c.points) < 2 {
		return 0, 0, fmt.Errorf("polyline has no parametric domain")
	}
	return 0, 1, nil
}

func (c *polylineCurve) Value(t float64) (geometry.Vec3, error) {
	if len(c.points) < 2 {
		return geometry.Vec3{}, fmt.Errorf("polyline too short to evaluate")
	}
	if t < 0 || t > 1 {
		return geometry.Vec3{}, fmt.Errorf("parameter %g outside [0,1]", t)
	}
	s := t * float64(len(c.points)-1)
	i := int(s)
	if i >= len(c.points)-1 {
		return c.points[len(c.points)-1], nil
	}
	frac := s - float64(i)
	return c.points[i].Add(c.points[i+1].Sub(c.points[i]).Scale(frac)), nil
}

func (c *polylineCurve) Polygon(tolerance float64) ([]geometry.Vec3, error) {
	if len(c.points) == 0 {
		return nil, fmt.Errorf("polyline has no points")
	}
	return c.points, nil
}
