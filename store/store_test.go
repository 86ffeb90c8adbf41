package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwire/taskwire/task"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	first := task.New[task.TW26]("first task")
	second := task.New[task.TW26]("second task")
	second.Status = task.Completed

	require.NoError(t, s.Record([]task.Task[task.TW26]{first, second}))

	rows, err := s.Recent(time.Hour)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byUUID := map[string]Snapshot{}
	for _, row := range rows {
		byUUID[row.UUID] = row
	}
	got, ok := byUUID[first.UUID.String()]
	require.True(t, ok)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "first task", got.Description)
	assert.Contains(t, got.Payload, `"description":"first task"`)

	got, ok = byUUID[second.UUID.String()]
	require.True(t, ok)
	assert.Equal(t, "completed", got.Status)
}

func TestRecordEmptyBatchIsANoop(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Record(nil))

	rows, err := s.Recent(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecentRejectsNonPositiveWindow(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Recent(0)
	assert.Error(t, err)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Record([]task.Task[task.TW26]{task.New[task.TW26]("fresh")}))

	// Nothing is older than a day yet.
	n, err := s.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	rows, err := s.Recent(time.Hour)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = s.Prune(0)
	assert.Error(t, err)
}
