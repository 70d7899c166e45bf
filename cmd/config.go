package cmd

import "github.com/spf13/cobra"

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jiramcp configuration",
	Long:  `Provides commands to initialize, show, locate and store secrets for the jiramcp configuration.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
