package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/karolswdev/jiramcp/internal/config"
)

// configSetKeyRun stores secret in the keychain under the Jira token or LLM key entry.
func configSetKeyRun(kc KeyringClient, writer io.Writer, secret string, jira bool) error {
	if secret == "" {
		return ErrEmptySecret
	}
	user, label := config.KeyringLLMUser, "API key"
	if jira {
		user, label = config.KeyringJiraUser, "Jira API token"
	}

	log.Info().Msgf("Attempting to store %s in keychain for service '%s'...", label, config.KeyringService)
	if err := kc.Set(config.KeyringService, user, secret); err != nil {
		log.Error().Err(err).Msgf("Failed to store %s in keychain", label)
		return fmt.Errorf("%w: %w", config.ErrKeyringSet, err)
	}
	fmt.Fprintf(writer, "%s stored successfully.\n", label)
	return nil
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [secret]",
	Short: "Store the LLM API key or Jira API token in the OS keychain",
	Long: `Stores a secret in the operating system's keychain under the service 'jiramcp'.
Without flags the LLM API key is stored; with --jira the Jira API token is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jira, _ := cmd.Flags().GetBool("jira")
		return configSetKeyRun(GetProvider().Keyring, cmd.OutOrStdout(), args[0], jira)
	},
}

func init() {
	configSetKeyCmd.Flags().Bool("jira", false, "Store the Jira API token instead of the LLM API key")
	configCmd.AddCommand(configSetKeyCmd)
}
