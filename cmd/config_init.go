package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func configInitRunE(configProvider ConfigProvider, writer io.Writer) error {
	log.Info().Msg("Initializing configuration...")
	if err := configProvider.CreateDefaultConfigFiles(""); err != nil {
		log.Error().Err(err).Msg("Failed to initialize configuration files")
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	log.Info().Msg("Configuration initialization complete.")
	fmt.Fprintln(writer, "Configuration directory and default files ensured.")
	return nil
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration directory and default files",
	Long: `Creates the configuration directory and default config.yaml, links.yaml,
system_prompt.txt and context.md. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitRunE(GetProvider().Config, cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
