// Package service exposes the job lifecycle operations consumed by the
// transport layer: submit, progress polling, selection, export and deletion.
package service

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"holescan/internal/config"
	"holescan/internal/export"
	"holescan/internal/hole"
	"holescan/internal/job"
	"holescan/internal/kernel"
)

// Service ties the job registry, the processing pipeline and the export
// writer together. All methods are safe for concurrent use.
type Service struct {
	registry  *job.Registry
	pipeline  *job.Pipeline
	outputDir string
}

// New creates a service using the given kernel loader and configuration.
func New(loader kernel.Loader, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	registry := job.NewRegistry()
	return &Service{
		registry: registry,
		pipeline: &job.Pipeline{
			Loader:      loader,
			Registry:    registry,
			OutputDir:   cfg.OutputDir,
			MeshQuality: cfg.MeshQuality,
			Params:      cfg.Params(),
			StageDelay:  100 * time.Millisecond,
		},
		outputDir: cfg.OutputDir,
	}
}

// SetStageDelay overrides the pipeline's cosmetic progress delay.
func (s *Service) SetStageDelay(d time.Duration) {
	s.pipeline.StageDelay = d
}

// Submit registers a new job for the model file at path and starts its worker.
// Returns the job uid immediately; processing runs in the background and is
// observed via Progress. An unreadable or unsupported file is reported as the
// job's terminal error status, not here.
func (s *Service) Submit(path string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", err
	}

	u := uuid.New()
	uid := hex.EncodeToString(u[:])

	s.registry.Create(uid)
	go s.pipeline.Run(uid, path)
	return uid, nil
}

// Progress returns the job's current progress, or job.ErrNotFound.
func (s *Service) Progress(uid string) (job.Progress, error) {
	return s.registry.Progress(uid)
}

// Holes returns the job's detected holes, or job.ErrNotFound.
func (s *Service) Holes(uid string) ([]hole.Hole, error) {
	return s.registry.Holes(uid)
}

// MeshPath returns the path of the job's persisted mesh document ("" when the
// job produced no mesh), or job.ErrNotFound.
func (s *Service) MeshPath(uid string) (string, error) {
	return s.registry.MeshPath(uid)
}

// Toggle flips holeID in the job's selection set and returns the resulting
// selection, sorted. holeID 0 reads the current selection without toggling.
func (s *Service) Toggle(uid string, holeID uint32) ([]uint32, error) {
	return s.registry.Toggle(uid, holeID)
}

// Export writes the export document for the job's selected holes and returns
// the record count and file name.
func (s *Service) Export(uid string) (int, string, error) {
	holes, err := s.registry.Holes(uid)
	if err != nil {
		return 0, "", err
	}
	selected, err := s.registry.Selected(uid)
	if err != nil {
		return 0, "", err
	}

	doc, filename, err := export.Write(s.outputDir, holes, selected, uid)
	if err != nil {
		return 0, "", err
	}
	return len(doc.RepositionPointDataArray), filename, nil
}

// Delete removes the job's registry entry and persisted artifacts. Deleting
// an unknown uid is a no-op; an in-flight worker is not interrupted, it just
// finishes into a removed entry.
func (s *Service) Delete(uid string) {
	s.registry.Delete(uid)
	os.Remove(filepath.Join(s.outputDir, job.MeshFileName(uid)))
	os.Remove(filepath.Join(s.outputDir, job.HolesFileName(uid)))
}
