// Package job provides the per-upload processing state: a concurrency-safe
// registry of jobs plus the worker pipeline that fills them in.
package job

import (
	"errors"
	"sort"
	"sync"

	"holescan/internal/hole"
)

// ErrNotFound is returned when a uid has no registry entry: the job was never
// created, or was deleted. Callers treat this as a normal "not found", not a
// failure.
var ErrNotFound = errors.New("job not found")

// Progress reports how far a job has advanced. Percent is monotonically
// non-decreasing and 100 is terminal for both success and error; the status
// string carries the distinction (errors are prefixed "Error: ").
type Progress struct {
	Percent int    `json:"percent"`
	Status  string `json:"status"`
}

// Registry is the shared store of all jobs, keyed by uid. A given uid's entry
// is written only by its single worker during processing, and by
// selection/export/delete operations afterwards; reads may happen
// concurrently at any time.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*entry
}

type entry struct {
	progress Progress
	holes    []hole.Hole
	meshPath string
	selected map[uint32]struct{}
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*entry)}
}

// Create registers a new job in the queued state.
func (r *Registry) Create(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[uid] = &entry{
		progress: Progress{Percent: 0, Status: "Queued"},
		selected: make(map[uint32]struct{}),
	}
}

// SetProgress updates a job's progress. Decreasing percent values are
// ignored so the reported sequence stays monotonic.
func (r *Registry) SetProgress(uid string, percent int, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[uid]
	if !ok || percent < e.progress.Percent {
		return
	}
	e.progress = Progress{Percent: percent, Status: status}
}

// Progress returns a job's current progress.
func (r *Registry) Progress(uid string) (Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[uid]
	if !ok {
		return Progress{}, ErrNotFound
	}
	return e.progress, nil
}

// SetResult stores the detected holes and mesh artifact path for a completed
// job. An empty meshPath means no mesh was produced.
func (r *Registry) SetResult(uid string, holes []hole.Hole, meshPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[uid]
	if !ok {
		return
	}
	e.holes = holes
	e.meshPath = meshPath
}

// Holes returns the detected holes for a job.
func (r *Registry) Holes(uid string) ([]hole.Hole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return e.holes, nil
}

// MeshPath returns the path of a job's persisted mesh document, or "" when
// the job produced no mesh.
func (r *Registry) MeshPath(uid string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[uid]
	if !ok {
		return "", ErrNotFound
	}
	return e.meshPath, nil
}

// Toggle flips membership of holeID in the job's selection set and returns
// the resulting selection, sorted. holeID 0 is a sentinel: it reads the
// current selection without modifying it. The read-modify-write is atomic
// per registry, so concurrent toggles never lose updates.
func (r *Registry) Toggle(uid string, holeID uint32) ([]uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[uid]
	if !ok {
		return nil, ErrNotFound
	}

	if holeID != 0 {
		if _, ok := e.selected[holeID]; ok {
			delete(e.selected, holeID)
		} else {
			e.selected[holeID] = struct{}{}
		}
	}

	selected := make([]uint32, 0, len(e.selected))
	for id := range e.selected {
		selected = append(selected, id)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i] < selected[j] })
	return selected, nil
}

// Selected returns the job's current selection set.
func (r *Registry) Selected(uid string) (map[uint32]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[uid]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(map[uint32]struct{}, len(e.selected))
	for id := range e.selected {
		out[id] = struct{}{}
	}
	return out, nil
}

// Delete removes a job's registry entry. Returns false if the uid was not
// present. Deletion does not interrupt an in-flight worker; a worker whose
// entry disappeared simply writes into the void.
func (r *Registry) Delete(uid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[uid]; !ok {
		return false
	}
	delete(r.jobs, uid)
	return true
}
