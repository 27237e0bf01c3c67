// Package mesh builds a deduplicated triangulated surface from the kernel's
// per-face triangulation.
package mesh

import (
	"encoding/json"
	"os"

	"holescan/internal/kernel"
	"holescan/pkg/geometry"
)

// Mesh is a deduplicated triangle mesh: unique vertices plus triangle index
// triples into the vertex list.
type Mesh struct {
	Vertices []geometry.Vec3 `json:"vertices"`
	Faces    [][3]uint32     `json:"faces"`
}

// Empty returns true if the mesh holds no renderable geometry.
func (m *Mesh) Empty() bool {
	return len(m.Vertices) == 0 || len(m.Faces) == 0
}

// Save writes the mesh document to path as JSON.
func (m *Mesh) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// FromShape triangulates the shape at the given quality and merges the
// per-face meshes into one deduplicated mesh.
//
// Vertices are deduplicated by exact coordinate equality, no tolerance: the
// kernel already shares coincident nodes within one face, so this only prunes
// exact duplicates across independently-triangulated faces. Triangulation
// failure degrades to an empty mesh rather than an error; a model with no
// triangulable faces can still yield valid hole detections from edges alone.
func FromShape(shape kernel.Shape, quality float64) *Mesh {
	faceMeshes, err := shape.Triangulate(quality)
	if err != nil {
		return &Mesh{}
	}

	var rawVertices []geometry.Vec3
	var rawFaces [][3]int
	for _, fm := range faceMeshes {
		base := len(rawVertices)
		for _, node := range fm.Nodes {
			rawVertices = append(rawVertices, fm.Transform.Apply(node))
		}
		for _, tri := range fm.Triangles {
			rawFaces = append(rawFaces, [3]int{base + tri[0], base + tri[1], base + tri[2]})
		}
	}
	if len(rawVertices) == 0 || len(rawFaces) == 0 {
		return &Mesh{}
	}

	index := make(map[geometry.Vec3]uint32, len(rawVertices))
	m := &Mesh{}
	for _, v := range rawVertices {
		if _, ok := index[v]; !ok {
			index[v] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, v)
		}
	}

	for _, f := range rawFaces {
		if f[0] < 0 || f[1] < 0 || f[2] < 0 ||
			f[0] >= len(rawVertices) || f[1] >= len(rawVertices) || f[2] >= len(rawVertices) {
			continue
		}
		m.Faces = append(m.Faces, [3]uint32{
			index[rawVertices[f[0]]],
			index[rawVertices[f[1]]],
			index[rawVertices[f[2]]],
		})
	}
	return m
}
