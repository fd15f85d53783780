package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"storyarch/internal/config"
)

var (
	// Variables to hold flag values
	setSnapshotPath string
	setUser         string
	setLogLevel     string
	setLogFormat    string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage StoryArch configuration",
	Long:  "View and update StoryArch configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display specific configuration value or all configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := globalConfig
		out := cmd.OutOrStdout()

		// If no argument is provided, show all config
		if len(args) == 0 {
			fmt.Fprintln(out, "Current configuration:")
			fmt.Fprintf(out, "Snapshot path: %s\n", cfg.SnapshotPath)
			if cfg.User != "" {
				fmt.Fprintf(out, "User: %s\n", cfg.User)
			}
			fmt.Fprintf(out, "Log level: %s\n", cfg.Log.Level)
			fmt.Fprintf(out, "Log format: %s\n", cfg.Log.Format)
			return nil
		}

		// Show specific config value
		switch args[0] {
		case "snapshot-path":
			fmt.Fprintln(out, cfg.SnapshotPath)
		case "user":
			fmt.Fprintln(out, cfg.User)
		case "log-level":
			fmt.Fprintln(out, cfg.Log.Level)
		case "log-format":
			fmt.Fprintln(out, cfg.Log.Format)
		default:
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  "Update configuration settings like the snapshot location or acting user",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}

		cfg := *globalConfig
		out := cmd.OutOrStdout()

		// Update configuration based on provided flags
		configUpdated := false

		if setSnapshotPath != "" {
			fmt.Fprintf(out, "Snapshot path updated: %s -> %s\n", cfg.SnapshotPath, setSnapshotPath)
			cfg.SnapshotPath = setSnapshotPath
			configUpdated = true
		}
		if setUser != "" {
			fmt.Fprintf(out, "User updated: %s -> %s\n", cfg.User, setUser)
			cfg.User = setUser
			configUpdated = true
		}
		if setLogLevel != "" {
			cfg.Log.Level = setLogLevel
			configUpdated = true
		}
		if setLogFormat != "" {
			cfg.Log.Format = setLogFormat
			configUpdated = true
		}

		if !configUpdated {
			fmt.Fprintln(out, "No changes were made to the configuration.")
			return nil
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		globalConfig = &cfg

		successColor.Fprintln(out, "Configuration updated successfully.")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		// Check if config file exists
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintln(out, "Configuration file already exists.")
			fmt.Fprintln(out, "Use 'storyarch config set' to modify existing configuration.")
			return nil
		}

		// Create default configuration
		cfg := config.Default(filepath.Dir(path))

		// Override defaults with provided flags
		if setSnapshotPath != "" {
			cfg.SnapshotPath = setSnapshotPath
		}
		if setUser != "" {
			cfg.User = setUser
		}

		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		successColor.Fprintln(out, "Configuration initialized successfully.")
		fmt.Fprintf(out, "Configuration file created at: %s\n", path)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display paths to the configuration and snapshot files",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Paths:")
		fmt.Fprintf(out, "- Config file: %s\n", path)
		fmt.Fprintf(out, "- Snapshot file: %s\n", globalConfig.SnapshotPath)

		// Check existence
		fmt.Fprintln(out, "\nExistence status:")
		for _, entry := range []struct{ label, path string }{
			{"Config file", path},
			{"Snapshot file", globalConfig.SnapshotPath},
		} {
			if _, err := os.Stat(entry.path); os.IsNotExist(err) {
				fmt.Fprintf(out, "- %s: Does not exist\n", entry.label)
			} else {
				fmt.Fprintf(out, "- %s: Exists\n", entry.label)
			}
		}

		return nil
	},
}

// resolvedConfigPath returns --config or the default global config path
func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetGlobalConfigPath()
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	configSetCmd.Flags().StringVar(&setSnapshotPath, "snapshot-path", "", "Set snapshot file location")
	configSetCmd.Flags().StringVar(&setUser, "set-user", "", "Set the default acting user")
	configSetCmd.Flags().StringVar(&setLogLevel, "log-level", "", "Set log level (debug, info, warn, error)")
	configSetCmd.Flags().StringVar(&setLogFormat, "log-format", "", "Set log format (console, json)")

	configInitCmd.Flags().StringVar(&setSnapshotPath, "snapshot-path", "", "Set snapshot file location")
	configInitCmd.Flags().StringVar(&setUser, "set-user", "", "Set the default acting user")
}
