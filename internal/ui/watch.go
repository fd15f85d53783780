package ui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// SnapshotWatcher reports changes to the snapshot file. The parent directory
// is watched because snapshots are replaced by rename.
type SnapshotWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewSnapshotWatcher starts watching the directory holding path
func NewSnapshotWatcher(path string) (*SnapshotWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	return &SnapshotWatcher{watcher: w, path: abs}, nil
}

// Wait returns a command that blocks until the snapshot is written, created,
// renamed or removed
func (s *SnapshotWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-s.watcher.Events:
				if !ok {
					return nil
				}
				if s.relevant(event) {
					return snapshotChangedMsg{}
				}
			case err, ok := <-s.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrorMsg(fmt.Sprintf("Error watching snapshot: %v", err))
			}
		}
	}
}

func (s *SnapshotWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != s.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// Close stops watching
func (s *SnapshotWatcher) Close() error {
	return s.watcher.Close()
}
