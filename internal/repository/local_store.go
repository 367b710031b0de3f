package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"courseforge/internal/model"
)

const backupFileName = "course_backup.json"

// LocalStore keeps a whole-document JSON backup at a fixed path. It is
// written on every explicit save regardless of the backend outcome and read
// once when the backend yields nothing, so edits are never silently lost.
type LocalStore struct {
	path string
}

// NewLocalStore creates a local backup store under dataDir.
func NewLocalStore(dataDir string) *LocalStore {
	return &LocalStore{path: filepath.Join(dataDir, backupFileName)}
}

// Write replaces the backup with the given record.
func (s *LocalStore) Write(record *model.CourseRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Read returns the backup record, or nil if none has been written.
func (s *LocalStore) Read() (*model.CourseRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record model.CourseRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
