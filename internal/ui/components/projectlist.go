package components

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storyarch/internal/models"
	"storyarch/internal/util"
)

// ProjectItem represents a project item in the list
type ProjectItem struct {
	Project *models.Project
	Shared  bool
}

// FilterValue returns the filter value for the project item
func (i ProjectItem) FilterValue() string {
	return i.Project.Name
}

// Title returns the title for the project item
func (i ProjectItem) Title() string {
	return i.Project.Name
}

// Description returns the description for the project item
func (i ProjectItem) Description() string {
	owner := "Own"
	if i.Shared {
		owner = "Shared by " + i.Project.Creator
	}

	return fmt.Sprintf("%s - %s - %s", owner, util.FormatID(i.Project.ID), i.Project.CreatedDate.Format(util.DateLayout))
}

// ProjectListModel represents the project list model
type ProjectListModel struct {
	List     list.Model
	Items    []ProjectItem
	Selected *ProjectItem
}

// NewProjectListModel creates a new project list model
func NewProjectListModel(width, height int) ProjectListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Projects"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return ProjectListModel{
		List:  listModel,
		Items: []ProjectItem{},
	}
}

// SetProjects replaces the list content with the user's own and shared projects
func (m *ProjectListModel) SetProjects(own, shared map[int]*models.Project) {
	items := make([]ProjectItem, 0, len(own)+len(shared))
	for _, p := range own {
		items = append(items, ProjectItem{Project: p})
	}
	for _, p := range shared {
		items = append(items, ProjectItem{Project: p, Shared: true})
	}

	// Order: own before shared, then by name and id
	sort.Slice(items, func(i, j int) bool {
		if items[i].Shared != items[j].Shared {
			return !items[i].Shared
		}
		if items[i].Project.Name != items[j].Project.Name {
			return items[i].Project.Name < items[j].Project.Name
		}
		return items[i].Project.ID < items[j].Project.ID
	})
	m.Items = items

	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	m.List.SetItems(listItems)
	m.syncSelected()
}

// Update handles project list updates
func (m ProjectListModel) Update(msg tea.Msg) (ProjectListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	m.syncSelected()
	return m, cmd
}

func (m *ProjectListModel) syncSelected() {
	if item, ok := m.List.SelectedItem().(ProjectItem); ok {
		m.Selected = &item
	} else {
		m.Selected = nil
	}
}

// View renders the project list
func (m ProjectListModel) View() string {
	return m.List.View()
}
