package ui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyarch/internal/models"
)

func fixedLoader(own, shared map[int]*models.Project, err error) LoadFunc {
	return func() (map[int]*models.Project, map[int]*models.Project, error) {
		return own, shared, err
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_LoadsProjects(t *testing.T) {
	own := map[int]*models.Project{
		1: {ID: 1, Name: "trip", Creator: "alice", Description: "road trip", CreatedDate: time.Now()},
	}
	shared := map[int]*models.Project{
		2: {ID: 2, Name: "comic", Creator: "bob", CreatedDate: time.Now(), TeamMembers: []string{"alice"}},
	}
	m := NewModel("alice", fixedLoader(own, shared, nil), nil)
	assert.True(t, m.IsLoading)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.True(t, m.Ready)

	msg := loadProjects(m.Load)()
	m, _ = update(t, m, msg)

	assert.False(t, m.IsLoading)
	assert.Equal(t, "1 own, 1 shared", m.StatusMessage)
	require.Len(t, m.List.Items, 2)

	view := m.View()
	assert.Contains(t, view, "StoryArch - alice")
	assert.Contains(t, view, "road trip")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel("alice", fixedLoader(nil, nil, errors.New("boom")), nil)

	m, _ = update(t, m, loadProjects(m.Load)())
	assert.False(t, m.IsLoading)
	assert.Equal(t, "Error", m.StatusMessage)
	assert.Contains(t, m.ErrorMessage, "boom")
}

func TestModel_Keys(t *testing.T) {
	m := NewModel("alice", fixedLoader(nil, nil, nil), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.True(t, m.IsLoading)
	require.NotNil(t, cmd)
	_, ok := cmd().(projectsLoadedMsg)
	assert.True(t, ok)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_SnapshotChangedReloads(t *testing.T) {
	m := NewModel("alice", fixedLoader(nil, nil, nil), nil)

	m, cmd := update(t, m, snapshotChangedMsg{})
	assert.True(t, m.IsLoading)
	assert.NotNil(t, cmd)
}

func TestModel_WatchErrorKeepsWatching(t *testing.T) {
	w, err := NewSnapshotWatcher(filepath.Join(t.TempDir(), "projects.json"))
	require.NoError(t, err)
	defer w.Close()

	m := NewModel("alice", fixedLoader(nil, nil, nil), w)
	m.IsLoading = false

	m, cmd := update(t, m, watchErrorMsg("Error watching snapshot: overflow"))
	assert.Contains(t, m.ErrorMessage, "overflow")
	assert.False(t, m.IsLoading)
	assert.NotNil(t, cmd, "watcher must be re-armed")
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := NewModel("alice", fixedLoader(nil, nil, nil), nil)
	assert.Equal(t, "Initializing...", m.View())
}
