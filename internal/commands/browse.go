package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storyarch/internal/models"
	"storyarch/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse your projects interactively",
	Long:  `Open an interactive view of the projects you created and the projects shared with you.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser()
		if err != nil {
			return err
		}

		var watcher *ui.SnapshotWatcher
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			watcher, err = ui.NewSnapshotWatcher(globalConfig.SnapshotPath)
			if err != nil {
				return fmt.Errorf("error watching snapshot: %w", err)
			}
			defer watcher.Close()
		}

		model := ui.NewModel(user, userProjectsLoader(user), watcher)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("error running browser: %w", err)
		}
		return nil
	},
}

// userProjectsLoader reloads the snapshot on every call so the browser always
// shows what is on disk
func userProjectsLoader(user string) ui.LoadFunc {
	return func() (map[int]*models.Project, map[int]*models.Project, error) {
		registry, err := openRegistry()
		if err != nil {
			return nil, nil, err
		}

		own := registry.ProjectsByCreator(user)
		shared := registry.SharedProjects(user)
		logger.Debug("projects loaded for browser",
			zap.String("user", user),
			zap.Int("own", len(own)),
			zap.Int("shared", len(shared)),
		)
		return own, shared, nil
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().Bool("watch", false, "Reload when the snapshot file changes")
}
