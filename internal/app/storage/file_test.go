package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
	"github.com/ilya-burinskiy/webapis/internal/app/storage"
)

func TestFileStorageSnapshotOfMissingFile(t *testing.T) {
	fs := storage.NewFileStorage(filepath.Join(t.TempDir(), "storage.json"))

	snapshot, err := fs.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot{}, snapshot)
}

func TestFileStorageSnapshotOfBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0666))
	fs := storage.NewFileStorage(path)

	_, err := fs.Snapshot()
	assert.Error(t, err)
}

func TestMapStorageDumpRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewFileStorage(filepath.Join(t.TempDir(), "storage.json"))
	ms := storage.NewMapStorage(fs)
	_, err := ms.FindOrCreateShortURL(ctx, "https://example.com")
	require.NoError(t, err)
	user, err := ms.CreateUser(ctx, "erin")
	require.NoError(t, err)
	_, err = ms.AddExercise(ctx, models.Exercise{UserID: user.ID, Description: "bike", Duration: 45, Date: date("2024-03-03")})
	require.NoError(t, err)

	require.NoError(t, ms.Dump())

	snapshot, err := fs.Snapshot()
	require.NoError(t, err)
	restored := storage.NewMapStorage(fs)
	restored.Restore(snapshot)

	shortURL, err := restored.FindShortURL(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", shortURL.OriginalURL)

	exercises, err := restored.FindExercises(ctx, user.ID, models.LogQuery{})
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Sun Mar 03 2024", exercises[0].FormattedDate())
}
