package models

import (
	"io"
	"os"
	"path/filepath"
)

// SnapshotStore persists a single opaque snapshot blob
type SnapshotStore interface {
	ReadSnapshot() ([]byte, error)
	WriteSnapshot(data []byte) error
}

// FileSnapshotStore keeps the snapshot in one file on the local disk
type FileSnapshotStore struct {
	Path string
}

// NewFileSnapshotStore returns a store that keeps the snapshot at path
func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{Path: path}
}

// WriteSnapshot replaces the snapshot file. The data is written to a temporary
// file in the same directory and renamed over the old snapshot, so a failed
// write never leaves a truncated snapshot behind.
func (s *FileSnapshotStore) WriteSnapshot(data []byte) (err error) {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.Path)
}

// ReadSnapshot returns the raw contents of the snapshot file
func (s *FileSnapshotStore) ReadSnapshot() ([]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// Exists reports whether a snapshot has been written yet
func (s *FileSnapshotStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}
