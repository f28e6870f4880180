package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliosmart/bibliosmart/internal/entities"
	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/storage"
)

func setupSnapshotStore(t *testing.T) (*library.Store, func()) {
	t.Helper()

	dbPath := "./test_snapshot_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := storage.NewDatabase(dbPath)
	require.NoError(t, err)

	store, err := library.NewStore(db)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return store, cleanup
}

func TestWriteSnapshot(t *testing.T) {
	store, cleanup := setupSnapshotStore(t)
	defer cleanup()

	require.NoError(t, store.ReplaceBooks([]entities.Book{
		{ID: "b1", Title: "Dom Casmurro", Author: "Machado de Assis", Status: entities.BookStatusAvailable},
	}))

	dir := t.TempDir()
	path, err := WriteSnapshot(store, dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "snapshot-"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap library.Snapshot
	require.NoError(t, jsoniter.Unmarshal(data, &snap))
	require.Len(t, snap.Books, 1)
	assert.Equal(t, "Dom Casmurro", snap.Books[0].Title)
	assert.False(t, snap.ExportedAt.IsZero())
}

func TestWriteSnapshot_CreatesDirectory(t *testing.T) {
	store, cleanup := setupSnapshotStore(t)
	defer cleanup()

	dir := filepath.Join(t.TempDir(), "nested", "backups")
	path, err := WriteSnapshot(store, dir)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSnapshotScheduler_RejectsBadSchedule(t *testing.T) {
	store, cleanup := setupSnapshotStore(t)
	defer cleanup()

	s := NewSnapshotScheduler(store, t.TempDir(), "not a cron expression")
	err := s.Start(context.Background())
	assert.Error(t, err)
}
