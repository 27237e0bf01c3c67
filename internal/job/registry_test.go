package job

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holescan/internal/hole"
	"holescan/pkg/geometry"
)

func TestRegistry(t *testing.T) {
	t.Run("unknown uid is not found", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Progress("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = r.Holes("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = r.MeshPath("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = r.Toggle("missing", 1)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = r.Selected("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, r.Delete("missing"))
	})

	t.Run("create starts queued", func(t *testing.T) {
		r := NewRegistry()
		r.Create("job1")

		prog, err := r.Progress("job1")
		require.NoError(t, err)
		assert.Equal(t, Progress{Percent: 0, Status: "Queued"}, prog)
	})

	t.Run("progress is monotonic", func(t *testing.T) {
		r := NewRegistry()
		r.Create("job1")

		r.SetProgress("job1", 40, "Clustering")
		r.SetProgress("job1", 15, "Detecting holes") // stale write, ignored

		prog, err := r.Progress("job1")
		require.NoError(t, err)
		assert.Equal(t, 40, prog.Percent)
		assert.Equal(t, "Clustering", prog.Status)
	})

	t.Run("result round-trip", func(t *testing.T) {
		r := NewRegistry()
		r.Create("job1")

		holes := []hole.Hole{{ID: 1, Center: geometry.NewVec3(1, 2, 3), Radius: 6}}
		r.SetResult("job1", holes, "/tmp/mesh_job1.json")

		got, err := r.Holes("job1")
		require.NoError(t, err)
		assert.Equal(t, holes, got)

		path, err := r.MeshPath("job1")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/mesh_job1.json", path)
	})

	t.Run("toggle flips membership and sorts", func(t *testing.T) {
		r := NewRegistry()
		r.Create("job1")

		sel, err := r.Toggle("job1", 2)
		require.NoError(t, err)
		assert.Equal(t, []uint32{2}, sel)

		sel, err = r.Toggle("job1", 1)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2}, sel)

		// Sentinel 0 reads without toggling.
		sel, err = r.Toggle("job1", 0)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2}, sel)

		sel, err = r.Toggle("job1", 2)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1}, sel)
	})

	t.Run("concurrent toggles lose no updates", func(t *testing.T) {
		r := NewRegistry()
		r.Create("job1")

		var wg sync.WaitGroup
		for i := 1; i <= 100; i++ {
			wg.Add(1)
			go func(id uint32) {
				defer wg.Done()
				_, err := r.Toggle("job1", id)
				assert.NoError(t, err)
			}(uint32(i))
		}
		wg.Wait()

		sel, err := r.Toggle("job1", 0)
		require.NoError(t, err)
		assert.Len(t, sel, 100)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		r := NewRegistry()
		r.Create("job1")

		assert.True(t, r.Delete("job1"))
		assert.False(t, r.Delete("job1"))

		_, err := r.Progress("job1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("jobs are independent", func(t *testing.T) {
		r := NewRegistry()
		r.Create("a")
		r.Create("b")

		r.SetProgress("a", 100, "Error: model unreadable")

		prog, err := r.Progress("b")
		require.NoError(t, err)
		assert.Equal(t, 0, prog.Percent)
	})
}
