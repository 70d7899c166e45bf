package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	keyring "github.com/zalando/go-keyring"

	"github.com/karolswdev/jiramcp/internal/config"
)

// secretStatus describes whether a secret is available without revealing it.
func secretStatus(kc KeyringClient, user, setCmd string, fromEnv func() (string, error)) string {
	if _, err := kc.Get(config.KeyringService, user); err == nil {
		return fmt.Sprintf("Set in keychain (use '%s' to change)", setCmd)
	} else if !errors.Is(err, keyring.ErrNotFound) {
		Log.Debug().Err(err).Str("user", user).Msg("Keychain lookup failed")
	}
	if _, err := fromEnv(); err == nil {
		return "Set via environment"
	}
	return fmt.Sprintf("Not Set (use '%s' to set)", setCmd)
}

func configShowRunE(cfgProvider ConfigProvider, keyringClient KeyringClient, writer io.Writer) error {
	cfg, err := cfgProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	orUnset := func(s string) string {
		if s == "" {
			return "(not set)"
		}
		return s
	}

	fmt.Fprintln(writer, "Current jiramcp Configuration:")
	fmt.Fprintf(writer, "  Jira Base URL:    %s\n", orUnset(cfg.Jira.BaseURL))
	fmt.Fprintf(writer, "  Jira Email:       %s\n", orUnset(cfg.Jira.Email))
	fmt.Fprintf(writer, "  Default Project:  %s\n", orUnset(cfg.Jira.ProjectKey))
	fmt.Fprintf(writer, "  Request Timeout:  %s\n", cfg.Jira.RequestTimeout)
	fmt.Fprintf(writer, "  Jira API Token:   %s\n", secretStatus(keyringClient, config.KeyringJiraUser, "jiramcp config set-key --jira", cfgProvider.GetJiraToken))
	fmt.Fprintf(writer, "  LLM Provider:     %s\n", cfg.LLM.Provider)
	switch cfg.LLM.Provider {
	case "openai":
		fmt.Fprintf(writer, "    OpenAI Model:   %s\n", cfg.LLM.OpenAI.ModelName)
		if cfg.LLM.OpenAI.BaseURL != "" {
			fmt.Fprintf(writer, "    OpenAI BaseURL: %s\n", cfg.LLM.OpenAI.BaseURL)
		}
	default:
		fmt.Fprintf(writer, "    (No specific settings shown for provider '%s')\n", cfg.LLM.Provider)
	}
	fmt.Fprintf(writer, "  LLM API Key:      %s\n", secretStatus(keyringClient, config.KeyringLLMUser, "jiramcp config set-key", cfgProvider.GetAPIKey))
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Displays the configuration loaded from config.yaml and the environment.
Secrets are reported as set or not set, never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := GetProvider()
		return configShowRunE(provider.Config, provider.Keyring, cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
