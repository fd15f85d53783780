package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storyarch/internal/config"
	"storyarch/internal/logging"
	"storyarch/internal/models"
)

var (
	globalConfig *config.Config
	logger       = zap.NewNop()

	// Variables to hold persistent flag values
	configPath string
	actingUser string
)

var rootCmd = &cobra.Command{
	Use:   "storyarch",
	Short: "StoryArch - manage storyboard projects",
	Long: `StoryArch is a command-line tool for creating, sharing and opening storyboard projects.
Projects are kept in a local snapshot file and can be shared with team members.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			path, err = config.GetGlobalConfigPath()
			if err != nil {
				return err
			}
		}

		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		globalConfig = cfg

		l, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		logger = l.With(zap.String("config", path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// currentUser returns the acting user from --user or the configuration
func currentUser() (string, error) {
	if actingUser != "" {
		return actingUser, nil
	}
	if globalConfig != nil && globalConfig.User != "" {
		return globalConfig.User, nil
	}
	return "", fmt.Errorf("no user given: pass --user or run 'storyarch config set --set-user <name>'")
}

// openRegistry builds a registry over the configured snapshot and loads it.
// A snapshot that was never written is treated as an empty registry.
func openRegistry() (*models.Registry, error) {
	store := models.NewFileSnapshotStore(globalConfig.SnapshotPath)
	registry := models.NewRegistry(store, models.WithLogger(logger))

	if !store.Exists() {
		logger.Debug("no snapshot yet, starting empty", zap.String("path", store.Path))
		return registry, nil
	}

	if err := registry.LoadSnapshot(); err != nil {
		return nil, fmt.Errorf("error loading projects from %s: %w", filepath.Clean(store.Path), err)
	}
	return registry, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.storyarch/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&actingUser, "user", "u", "", "Act as this user")
}
