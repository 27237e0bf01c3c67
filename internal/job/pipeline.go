package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"holescan/internal/hole"
	"holescan/internal/kernel"
	"holescan/internal/mesh"
)

// DefaultMeshQuality is the triangulation quality used when none is configured.
const DefaultMeshQuality = 1.5

// Pipeline orchestrates one job's processing: model load, hole detection,
// mesh triangulation and artifact persistence. One Run executes per uid, in
// its own goroutine, with no intra-job parallelism.
type Pipeline struct {
	Loader      kernel.Loader
	Registry    *Registry
	OutputDir   string
	MeshQuality float64
	Params      hole.Params

	// StageDelay is a short pause after the 40% milestone so fast inputs
	// still show an observable progress sequence to pollers. Cosmetic only;
	// tests set it to zero.
	StageDelay time.Duration
}

// MeshFileName returns the mesh artifact name for a uid.
func MeshFileName(uid string) string { return "mesh_" + uid + ".json" }

// HolesFileName returns the holes artifact name for a uid.
func HolesFileName(uid string) string { return "holes_" + uid + ".json" }

// Run processes one uploaded model to completion. All failures are absorbed
// here: the job always ends at 100%, with an "Error: ..." status when the
// model could not be processed. Errors never propagate to other jobs or the
// host process.
func (p *Pipeline) Run(uid, modelPath string) {
	p.Registry.SetProgress(uid, 5, "Loading model")
	shape, err := p.Loader.Load(modelPath)
	if err != nil {
		p.fail(uid, err)
		return
	}

	p.Registry.SetProgress(uid, 15, "Detecting holes")
	holes := hole.Detect(shape, p.Params)

	p.Registry.SetProgress(uid, 40, fmt.Sprintf("Found %d holes, triangulating mesh", len(holes)))
	if p.StageDelay > 0 {
		time.Sleep(p.StageDelay)
	}

	quality := p.MeshQuality
	if quality <= 0 {
		quality = DefaultMeshQuality
	}
	m := mesh.FromShape(shape, quality)
	if m.Empty() {
		p.Registry.SetResult(uid, holes, "")
		p.Registry.SetProgress(uid, 100, "No mesh produced")
		return
	}

	p.Registry.SetProgress(uid, 75, "Saving data")

	meshPath := filepath.Join(p.OutputDir, MeshFileName(uid))
	if err := m.Save(meshPath); err != nil {
		p.fail(uid, err)
		return
	}
	if err := saveHoles(filepath.Join(p.OutputDir, HolesFileName(uid)), holes); err != nil {
		p.fail(uid, err)
		return
	}

	p.Registry.SetResult(uid, holes, meshPath)
	p.Registry.SetProgress(uid, 100, fmt.Sprintf("Done - %d holes detected", len(holes)))
}

func (p *Pipeline) fail(uid string, err error) {
	p.Registry.SetResult(uid, nil, "")
	p.Registry.SetProgress(uid, 100, fmt.Sprintf("Error: %v", err))
}

func saveHoles(path string, holes []hole.Hole) error {
	if holes == nil {
		holes = []hole.Hole{}
	}
	data, err := json.Marshal(holes)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
