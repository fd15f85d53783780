package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"storyarch/internal/commands"
	"storyarch/internal/config"
)

func main() {
	// Create config directory if it doesn't exist
	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	// Execute root command
	if err := commands.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
