// Package kernel defines the boundary to the CAD kernel that parses a model
// file into topological elements. The pipeline consumes only this interface;
// kernel calls may fail per element and callers are expected to skip failed
// elements rather than abort the scan.
package kernel

import (
	"holescan/pkg/geometry"
)

// CurveKind classifies the curve underlying an edge.
type CurveKind int

const (
	// CurveCircle indicates an exact analytic circle.
	CurveCircle CurveKind = iota
	// CurveLine indicates a straight line segment.
	CurveLine
	// CurveOther indicates any other curve type (spline, polyline, ...).
	CurveOther
)

func (k CurveKind) String() string {
	switch k {
	case CurveCircle:
		return "Circle"
	case CurveLine:
		return "Line"
	default:
		return "Other"
	}
}

// SurfaceKind classifies the surface underlying a face.
type SurfaceKind int

const (
	// SurfaceCylinder indicates an exact analytic cylinder.
	SurfaceCylinder SurfaceKind = iota
	// SurfacePlane indicates a planar face.
	SurfacePlane
	// SurfaceOther indicates any other surface type.
	SurfaceOther
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceCylinder:
		return "Cylinder"
	case SurfacePlane:
		return "Plane"
	default:
		return "Other"
	}
}

// CircleParams holds the analytic parameters of a circular curve.
type CircleParams struct {
	Center geometry.Vec3
	Axis   geometry.Vec3
	Radius float64
}

// CylinderParams holds the analytic parameters of a cylindrical surface.
type CylinderParams struct {
	Location geometry.Vec3
	Axis     geometry.Vec3
	Radius   float64
}

// FaceMesh is the triangulation of one face: a node list, triangle indices
// into that list (0-based), and a transform to apply to each node.
type FaceMesh struct {
	Nodes     []geometry.Vec3
	Triangles [][3]int
	Transform geometry.Transform3
}

// Shape is an enumerable set of topological elements.
type Shape interface {
	Edges() []Edge
	Faces() []Face
	// Triangulate meshes the whole shape at the given quality and returns
	// one FaceMesh per triangulable face.
	Triangulate(quality float64) ([]FaceMesh, error)
}

// Edge is one topological edge of a shape.
type Edge interface {
	Curve() (Curve, error)
}

// Face is one topological face of a shape.
type Face interface {
	Surface() (Surface, error)
}

// Curve exposes the geometry underlying an edge.
type Curve interface {
	Kind() CurveKind
	// Circle returns the analytic parameters; valid only when Kind is CurveCircle.
	Circle() (CircleParams, error)
	// Domain returns the parametric range [first, last] of the curve.
	Domain() (first, last float64, err error)
	// Value evaluates the curve at parameter t.
	Value(t float64) (geometry.Vec3, error)
	// Polygon returns a polygonal approximation of the curve at the given
	// tolerance, already transformed into model space.
	Polygon(tolerance float64) ([]geometry.Vec3, error)
}

// Surface exposes the geometry underlying a face.
type Surface interface {
	Kind() SurfaceKind
	// Cylinder returns the analytic parameters; valid only when Kind is SurfaceCylinder.
	Cylinder() (CylinderParams, error)
}

// Loader parses a model file into a Shape.
type Loader interface {
	Load(path string) (Shape, error)
}
