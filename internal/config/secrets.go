package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the OS keychain service every secret is stored under.
	KeyringService = "jiramcp"
	// KeyringLLMUser names the drafting model API key entry.
	KeyringLLMUser = "llm_api_key"
	// KeyringJiraUser names the Jira API token entry.
	KeyringJiraUser = "jira_api_token"

	// EnvAPIKeyName is the fallback variable for the drafting model API key.
	EnvAPIKeyName = "JIRAMCP_LLM_API_KEY"
	// EnvJiraTokenName is the fallback variable for the Jira API token.
	EnvJiraTokenName = "JIRA_API_KEY"
)

// GetAPIKey retrieves the drafting model API key from the OS keychain, falling back to
// JIRAMCP_LLM_API_KEY. It returns ErrAPIKeyNotFound when neither holds a value.
func GetAPIKey() (string, error) {
	return getSecret(KeyringLLMUser, EnvAPIKeyName, ErrAPIKeyNotFound)
}

// SetAPIKey stores the drafting model API key in the OS keychain.
func SetAPIKey(apiKey string) error {
	return setSecret(KeyringLLMUser, apiKey)
}

// GetJiraToken retrieves the Jira API token from the OS keychain, falling back to
// JIRA_API_KEY. It returns ErrJiraTokenNotFound when neither holds a value.
func GetJiraToken() (string, error) {
	return getSecret(KeyringJiraUser, EnvJiraTokenName, ErrJiraTokenNotFound)
}

// SetJiraToken stores the Jira API token in the OS keychain.
func SetJiraToken(token string) error {
	return setSecret(KeyringJiraUser, token)
}

func getSecret(user, envVar string, notFound error) (string, error) {
	key, err := keyring.Get(KeyringService, user)
	if err == nil {
		log.Debug().Str("user", user).Msg("Secret retrieved from keychain")
		return key, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		// A headless host without a secret service still has the env fallback.
		log.Debug().Err(err).Str("service", KeyringService).Str("user", user).Msg("Keychain unavailable, checking environment")
	}

	if key = os.Getenv(envVar); key != "" {
		log.Debug().Str("env_var", envVar).Msg("Secret retrieved from environment variable")
		return key, nil
	}

	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: %w", ErrKeyringGet, err)
	}
	return "", notFound
}

func setSecret(user, value string) error {
	if err := keyring.Set(KeyringService, user, value); err != nil {
		log.Error().Err(err).Str("service", KeyringService).Str("user", user).Msg("Failed to store secret in keychain")
		return fmt.Errorf("%w: %w", ErrKeyringSet, err)
	}
	log.Info().Str("service", KeyringService).Str("user", user).Msg("Secret stored in keychain")
	return nil
}
