package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/karolswdev/jiramcp/internal/config"
)

func configLocateRunE(cfgProvider ConfigProvider, out io.Writer) error {
	configDir, err := cfgProvider.EnsureConfigDir()
	if err != nil {
		return fmt.Errorf("error ensuring config directory: %w", err)
	}

	fmt.Fprintf(out, "Configuration directory: %s\n", configDir)
	fmt.Fprintln(out, "Expected configuration files:")
	for _, name := range []string{config.DefaultConfigFileName, config.DefaultLinksFileName, config.DefaultPromptFileName, config.DefaultContextFileName} {
		fmt.Fprintf(out, "- %s\n", filepath.Join(configDir, name))
	}
	return nil
}

var configLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the configuration directory and file paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configLocateRunE(GetProvider().Config, cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configLocateCmd)
}
