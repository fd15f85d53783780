package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storyarch/internal/models"
	"storyarch/internal/ui/components"
	"storyarch/internal/util"
)

// LoadFunc returns the projects created by and shared with the browsing user
type LoadFunc func() (own, shared map[int]*models.Project, err error)

// Model represents the UI model
type Model struct {
	List          components.ProjectListModel
	Spinner       spinner.Model
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	User          string
	Load          LoadFunc
	Watcher       *SnapshotWatcher
	Width         int
	Height        int
	Ready         bool
}

// NewModel creates a new UI model. watcher may be nil.
func NewModel(user string, load LoadFunc, watcher *SnapshotWatcher) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		List:          components.NewProjectListModel(0, 0),
		Spinner:       s,
		IsLoading:     true,
		StatusMessage: "Loading projects...",
		User:          user,
		Load:          load,
		Watcher:       watcher,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Spinner.Tick, loadProjects(m.Load)}
	if m.Watcher != nil {
		cmds = append(cmds, m.Watcher.Wait())
	}
	return tea.Batch(cmds...)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keys belong to the filter input while the user is typing one
		if m.List.List.FilterState() != list.Filtering {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "r":
				m.IsLoading = true
				m.StatusMessage = "Refreshing projects..."
				return m, loadProjects(m.Load)
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.List.SetSize(msg.Width, listHeight(msg.Height))
		m.Ready = true
		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		return m, spinnerCmd

	case projectsLoadedMsg:
		m.IsLoading = false
		m.ErrorMessage = ""
		m.StatusMessage = fmt.Sprintf("%d own, %d shared", len(msg.own), len(msg.shared))
		m.List.SetProjects(msg.own, msg.shared)
		return m, nil

	case snapshotChangedMsg:
		m.IsLoading = true
		m.StatusMessage = "Snapshot changed, reloading..."
		cmds = append(cmds, loadProjects(m.Load))
		if m.Watcher != nil {
			cmds = append(cmds, m.Watcher.Wait())
		}
		return m, tea.Batch(cmds...)

	case watchErrorMsg:
		// Report the failure and keep listening for later changes
		m.ErrorMessage = string(msg)
		if m.Watcher != nil {
			return m, m.Watcher.Wait()
		}
		return m, nil

	case errorMsg:
		m.IsLoading = false
		m.ErrorMessage = string(msg)
		m.StatusMessage = "Error"
		return m, nil
	}

	var listCmd tea.Cmd
	m.List, listCmd = m.List.Update(msg)
	cmds = append(cmds, listCmd)

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var status string
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	} else {
		status = m.StatusMessage
	}

	statusBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(status)

	titleBar := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Padding(0, 1).
		Render(fmt.Sprintf("StoryArch - %s", m.User))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render("Press q to quit, r to refresh, / to filter")

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(m.ErrorMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		statusBar,
		m.List.View(),
		renderDetails(m.List.Selected),
		errorView,
		help,
	)
}

// Messages
type projectsLoadedMsg struct {
	own    map[int]*models.Project
	shared map[int]*models.Project
}
type snapshotChangedMsg struct{}
type errorMsg string
type watchErrorMsg string

// Commands
func loadProjects(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		own, shared, err := load()
		if err != nil {
			return errorMsg(fmt.Sprintf("Error loading projects: %v", err))
		}
		return projectsLoadedMsg{own: own, shared: shared}
	}
}

// Helper functions

// listHeight leaves room for the title, status, details and help lines
func listHeight(total int) int {
	h := total - 12
	if h < 3 {
		return 3
	}
	return h
}

func renderDetails(item *components.ProjectItem) string {
	if item == nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Padding(0, 1).
			Render("No projects. Use 'storyarch project create' to add one.")
	}

	p := item.Project
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	lines := []string{
		label.Render("Description: ") + p.Description,
		label.Render("Creator: ") + p.Creator,
		label.Render("Services: ") + util.FormatServices(p.IllustrationServices),
		label.Render("Team: ") + util.FormatMembers(p.TeamMembers),
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
