package store

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore keeps the snapshot in a single JSON file. It is the default
// backend and needs no external services.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = SnapshotKey + ".json"
	}
	return &FileStore{path: path}
}

// Save writes to a temp file and renames it over the target, so a crash
// mid-write never leaves a truncated document behind.
func (s *FileStore) Save(_ context.Context, doc []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".pos-state-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	doc, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return doc, nil
}
