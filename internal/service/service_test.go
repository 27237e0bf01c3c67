package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holescan/internal/config"
	"holescan/internal/job"
	"holescan/internal/kernel"
)

const holeShapeDump = `{
	"edges": [
		{"type": "circle", "center": {"x": 10, "y": 20, "z": 5}, "axis": {"x": 0, "y": 0, "z": 1}, "radius": 6}
	],
	"faces": [
		{"type": "cylinder", "location": {"x": 10.2, "y": 20.1, "z": 2}, "axis": {"x": 0, "y": 0, "z": 1}, "radius": 6}
	],
	"mesh": [
		{
			"nodes": [{"x": 0, "y": 0, "z": 0}, {"x": 1, "y": 0, "z": 0}, {"x": 0, "y": 1, "z": 0}],
			"triangles": [[0, 1, 2]]
		}
	]
}`

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	svc := New(kernel.JSONLoader{}, cfg)
	svc.SetStageDelay(0)
	return svc
}

func submitAndWait(t *testing.T, svc *Service, path string) string {
	t.Helper()
	uid, err := svc.Submit(path)
	require.NoError(t, err)
	require.Len(t, uid, 32)

	require.Eventually(t, func() bool {
		p, err := svc.Progress(uid)
		return err == nil && p.Percent == 100
	}, 5*time.Second, 5*time.Millisecond)
	return uid
}

func TestServiceLifecycle(t *testing.T) {
	svc := newTestService(t)
	model := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(model, []byte(holeShapeDump), 0o644))

	uid := submitAndWait(t, svc, model)

	p, err := svc.Progress(uid)
	require.NoError(t, err)
	assert.Equal(t, "Done - 1 holes detected", p.Status)

	holes, err := svc.Holes(uid)
	require.NoError(t, err)
	require.Len(t, holes, 1)
	assert.Equal(t, uint32(1), holes[0].ID)

	meshPath, err := svc.MeshPath(uid)
	require.NoError(t, err)
	assert.FileExists(t, meshPath)

	t.Run("toggle selection", func(t *testing.T) {
		sel, err := svc.Toggle(uid, 1)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1}, sel)

		// Sentinel id reads without flipping.
		sel, err = svc.Toggle(uid, 0)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1}, sel)

		sel, err = svc.Toggle(uid, 1)
		require.NoError(t, err)
		assert.Empty(t, sel)

		_, err = svc.Toggle(uid, 1)
		require.NoError(t, err)
	})

	t.Run("export selected holes", func(t *testing.T) {
		count, filename, err := svc.Export(uid)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "holes_export_"+uid+".json", filename)

		data, err := os.ReadFile(filepath.Join(svc.outputDir, filename))
		require.NoError(t, err)

		var doc struct {
			Records []struct {
				HoleID string `json:"HoleID"`
			} `json:"repositionPointDataArray"`
		}
		require.NoError(t, json.Unmarshal(data, &doc))
		require.Len(t, doc.Records, 1)
		assert.Equal(t, "BS-1", doc.Records[0].HoleID)
	})

	t.Run("delete removes entry and artifacts", func(t *testing.T) {
		svc.Delete(uid)

		_, err := svc.Progress(uid)
		assert.ErrorIs(t, err, job.ErrNotFound)
		assert.NoFileExists(t, filepath.Join(svc.outputDir, job.MeshFileName(uid)))
		assert.NoFileExists(t, filepath.Join(svc.outputDir, job.HolesFileName(uid)))

		// Deleting again is a no-op.
		svc.Delete(uid)
	})
}

func TestServiceSubmitBadModel(t *testing.T) {
	svc := newTestService(t)

	uid := submitAndWait(t, svc, filepath.Join(t.TempDir(), "missing.json"))

	p, err := svc.Progress(uid)
	require.NoError(t, err)
	assert.Contains(t, p.Status, "Error:")

	_, err = svc.Holes(uid)
	require.NoError(t, err)
}

func TestServiceUnknownUID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Progress("deadbeef")
	assert.ErrorIs(t, err, job.ErrNotFound)

	_, err = svc.Holes("deadbeef")
	assert.ErrorIs(t, err, job.ErrNotFound)

	_, err = svc.Toggle("deadbeef", 1)
	assert.ErrorIs(t, err, job.ErrNotFound)

	_, _, err = svc.Export("deadbeef")
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestServiceConcurrentJobs(t *testing.T) {
	svc := newTestService(t)
	model := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(model, []byte(holeShapeDump), 0o644))

	uids := make([]string, 4)
	for i := range uids {
		uid, err := svc.Submit(model)
		require.NoError(t, err)
		uids[i] = uid
	}

	for _, uid := range uids {
		uid := uid
		require.Eventually(t, func() bool {
			p, err := svc.Progress(uid)
			return err == nil && p.Percent == 100
		}, 5*time.Second, 5*time.Millisecond)

		holes, err := svc.Holes(uid)
		require.NoError(t, err)
		assert.Len(t, holes, 1)
	}
}
