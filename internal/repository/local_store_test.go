package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"courseforge/internal/model"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	record := &model.CourseRecord{
		ID:        "abc123",
		Title:     "Mon Cours",
		Data:      model.DefaultCourse(),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Write(record))

	got, err := store.Read()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, record.ID, got.ID)
	require.Equal(t, record.Data.Title, got.Data.Title)
	require.Len(t, got.Data.Outline, 1)
}

func TestLocalStoreReadMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	got, err := store.Read()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLocalStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewLocalStore(dir)

	require.NoError(t, store.Write(&model.CourseRecord{Title: "x"}))

	_, err := os.Stat(filepath.Join(dir, "course_backup.json"))
	require.NoError(t, err)
}

func TestLocalStoreOverwrites(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Write(&model.CourseRecord{Title: "first"}))
	require.NoError(t, store.Write(&model.CourseRecord{Title: "second"}))

	got, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, "second", got.Title)
}
