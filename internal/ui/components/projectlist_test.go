package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyarch/internal/models"
)

var created = time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

func project(id int, name, creator string) *models.Project {
	return &models.Project{ID: id, Name: name, Creator: creator, CreatedDate: created}
}

func TestProjectItem(t *testing.T) {
	own := ProjectItem{Project: project(42, "trip", "alice")}
	assert.Equal(t, "trip", own.Title())
	assert.Equal(t, "trip", own.FilterValue())
	assert.Equal(t, "Own - 0000042 - 2024-03-14", own.Description())

	shared := ProjectItem{Project: project(7, "comic", "bob"), Shared: true}
	assert.Equal(t, "Shared by bob - 0000007 - 2024-03-14", shared.Description())
}

func TestProjectListModel_SetProjects(t *testing.T) {
	m := NewProjectListModel(80, 20)

	m.SetProjects(
		map[int]*models.Project{
			2: project(2, "zebra", "alice"),
			1: project(1, "apple", "alice"),
		},
		map[int]*models.Project{
			3: project(3, "aardvark", "bob"),
		},
	)

	require.Len(t, m.Items, 3)
	assert.Equal(t, "apple", m.Items[0].Project.Name)
	assert.Equal(t, "zebra", m.Items[1].Project.Name)
	assert.Equal(t, "aardvark", m.Items[2].Project.Name)
	assert.True(t, m.Items[2].Shared)

	require.NotNil(t, m.Selected)
	assert.Equal(t, 1, m.Selected.Project.ID)
}

func TestProjectListModel_Navigation(t *testing.T) {
	m := NewProjectListModel(80, 20)
	m.SetProjects(map[int]*models.Project{
		1: project(1, "a", "alice"),
		2: project(2, "b", "alice"),
	}, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, m.Selected)
	assert.Equal(t, 2, m.Selected.Project.ID)
}

func TestProjectListModel_Empty(t *testing.T) {
	m := NewProjectListModel(80, 20)
	m.SetProjects(nil, nil)

	assert.Empty(t, m.Items)
	assert.Nil(t, m.Selected)
}
