package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFileName is the standard name for the main configuration file.
	DefaultConfigFileName = "config.yaml"
	// DefaultLinksFileName is the standard name for the project links file.
	DefaultLinksFileName = "links.yaml"
	// DefaultPromptFileName is the standard name for the drafting system prompt file.
	DefaultPromptFileName = "system_prompt.txt"
	// DefaultContextFileName is the standard name for the drafting context file.
	DefaultContextFileName = "context.md"
	// DefaultConfigDirName is the configuration directory within the user's home directory.
	DefaultConfigDirName = ".jiramcp"
	// ConfigDirEnvVar overrides the configuration directory path.
	ConfigDirEnvVar = "JIRAMCP_CONFIG_DIR"

	// EnvJiraBaseURL is the conventional variable holding the Jira REST base URL.
	EnvJiraBaseURL = "JIRA_PROJECT_URL"
	// EnvJiraEmail is the conventional variable holding the authenticating account email.
	EnvJiraEmail = "JIRA_USER_EMAIL"
	// EnvJiraProjectKey is the conventional variable holding the default project key.
	EnvJiraProjectKey = "JIRA_PROJECT_KEY"

	// DefaultRequestTimeout bounds every remote Jira call.
	DefaultRequestTimeout = 30 * time.Second
)

// EnsureConfigDir checks if the configuration directory exists, creating it if necessary.
// It prioritizes baseDir if provided, then JIRAMCP_CONFIG_DIR, then ~/.jiramcp.
// The directory is created with 0700 permissions.
func EnsureConfigDir(baseDir string) (string, error) {
	var configDirPath string

	if baseDir != "" {
		configDirPath = baseDir
		log.Debug().Str("path", configDirPath).Msg("Using provided base directory path")
	} else if envDir := os.Getenv(ConfigDirEnvVar); envDir != "" {
		configDirPath = envDir
		log.Debug().Str("path", configDirPath).Str("env_var", ConfigDirEnvVar).Msg("Using config directory path from environment variable")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDirPath = filepath.Join(homeDir, DefaultConfigDirName)
		log.Debug().Str("path", configDirPath).Msg("Using default config directory path")
	}

	info, err := os.Stat(configDirPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", configDirPath).Msg("Config directory does not exist, attempting to create")
			if mkdirErr := os.MkdirAll(configDirPath, 0700); mkdirErr != nil {
				log.Error().Err(mkdirErr).Str("path", configDirPath).Msg("Failed to create config directory")
				return "", fmt.Errorf("%w: %w", ErrConfigDirCreate, mkdirErr)
			}
			return configDirPath, nil
		}
		log.Error().Err(err).Str("path", configDirPath).Msg("Failed to stat config directory path")
		return "", fmt.Errorf("%w: %w", ErrConfigDirStat, err)
	}

	if !info.IsDir() {
		log.Error().Str("path", configDirPath).Msg("Config path exists but is not a directory")
		return "", ErrConfigDirNotDir
	}

	return configDirPath, nil
}

// JiraConfig holds the connection settings for the Jira REST API.
// The API token is not part of it; see GetJiraToken.
type JiraConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Email          string        `mapstructure:"email"`
	ProjectKey     string        `mapstructure:"project_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// OpenAIConfig holds configuration specific to the OpenAI provider.
type OpenAIConfig struct {
	ModelName string `mapstructure:"model_name"`
	BaseURL   string `mapstructure:"base_url"`
}

// LLMConfig selects the drafting model provider.
type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

// AppConfig holds the overall application configuration.
type AppConfig struct {
	Jira JiraConfig `mapstructure:"jira"`
	LLM  LLMConfig  `mapstructure:"llm"`
}

// LoadConfig loads the application configuration from baseDir/config.yaml (or the default
// directory), JIRAMCP_* environment variables and the conventional JIRA_* variables.
// A missing config file is not an error.
func LoadConfig(baseDir string) (*AppConfig, error) {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure config directory: %w", err)
	}

	v := viper.New()

	v.SetDefault("jira.base_url", "")
	v.SetDefault("jira.email", "")
	v.SetDefault("jira.project_key", "")
	v.SetDefault("jira.request_timeout", DefaultRequestTimeout)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.openai.model_name", "gpt-4o")
	v.SetDefault("llm.openai.base_url", "")

	configPath := filepath.Join(configDir, DefaultConfigFileName)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	log.Debug().Str("path", configPath).Msg("Attempting to load config file")

	v.SetEnvPrefix("JIRAMCP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The JIRA_* names are shared with other Jira tooling, so they are bound explicitly.
	bindings := map[string]string{
		"jira.base_url":    EnvJiraBaseURL,
		"jira.email":       EnvJiraEmail,
		"jira.project_key": EnvJiraProjectKey,
	}
	for key, env := range bindings {
		prefixed := "JIRAMCP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
		}
	}

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Debug().Str("path", configPath).Msg("Config file not found. Using defaults and environment variables.")
		} else {
			log.Error().Err(err).Str("path", configPath).Msg("Failed to read config file")
			return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("Failed to unmarshal config file")
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	if cfg.Jira.RequestTimeout <= 0 {
		cfg.Jira.RequestTimeout = DefaultRequestTimeout
	}
	log.Debug().Str("base_url", cfg.Jira.BaseURL).Str("project_key", cfg.Jira.ProjectKey).Dur("request_timeout", cfg.Jira.RequestTimeout).Msg("Loaded config")

	return &cfg, nil
}

// ProjectLink maps a user-friendly alias to a Jira project key.
type ProjectLink struct {
	Name             string `yaml:"name"`
	Key              string `yaml:"key"`
	DefaultIssueType string `yaml:"default_issue_type,omitempty"`
}

// LinksConfig holds the list of project links.
type LinksConfig struct {
	Projects []ProjectLink `yaml:"projects"`
}

// FindProject returns the link whose alias matches name case-insensitively.
// A nil LinksConfig never matches.
func (l *LinksConfig) FindProject(name string) (*ProjectLink, bool) {
	if l == nil || name == "" {
		return nil, false
	}
	for i := range l.Projects {
		if strings.EqualFold(l.Projects[i].Name, name) {
			return &l.Projects[i], true
		}
	}
	return nil, false
}

// LoadLinks loads project aliases from links.yaml. A missing file yields an empty LinksConfig.
func LoadLinks(baseDir string) (LinksConfig, error) {
	var cfg LinksConfig

	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return cfg, fmt.Errorf("failed to ensure config directory for links: %w", err)
	}

	linksPath := filepath.Join(configDir, DefaultLinksFileName)
	fileBytes, err := os.ReadFile(linksPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", linksPath).Msg("Links file not found, returning empty links config")
			cfg.Projects = []ProjectLink{}
			return cfg, nil
		}
		log.Error().Err(err).Str("path", linksPath).Msg("Failed to read links file")
		return cfg, fmt.Errorf("%w: %w", ErrLinksRead, err)
	}

	if err := yaml.Unmarshal(fileBytes, &cfg); err != nil {
		log.Error().Err(err).Str("path", linksPath).Msg("Failed to parse links file")
		return cfg, fmt.Errorf("%w: %w", ErrLinksParse, err)
	}
	log.Debug().Str("path", linksPath).Int("projects", len(cfg.Projects)).Msg("Parsed links file successfully")

	if cfg.Projects == nil {
		cfg.Projects = []ProjectLink{}
	}
	return cfg, nil
}

// LoadSystemPrompt loads the drafting system prompt. A missing file yields "".
func LoadSystemPrompt(baseDir string) (string, error) {
	return readOptionalFile(baseDir, DefaultPromptFileName, ErrSystemPromptRead)
}

// LoadContext loads the drafting context file. A missing file yields "".
func LoadContext(baseDir string) (string, error) {
	return readOptionalFile(baseDir, DefaultContextFileName, ErrContextRead)
}

func readOptionalFile(baseDir, name string, readErr error) (string, error) {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to ensure config directory for %s: %w", name, err)
	}

	path := filepath.Join(configDir, name)
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("Optional file not found, returning empty string")
			return "", nil
		}
		log.Error().Err(err).Str("path", path).Msg("Failed to read file")
		return "", fmt.Errorf("%w: %w", readErr, err)
	}
	return string(fileBytes), nil
}

// writeFileIfNotExists writes content to filePath unless the file already exists.
func writeFileIfNotExists(filePath string, content string, perm os.FileMode) error {
	_, err := os.Stat(filePath)
	if err == nil {
		log.Debug().Str("path", filePath).Msg("File already exists, no action needed")
		return nil
	}
	if !os.IsNotExist(err) {
		log.Error().Err(err).Str("path", filePath).Msg("Failed to stat file path")
		return fmt.Errorf("%w: %w", ErrDefaultFileStat, err)
	}

	if errWrite := os.WriteFile(filePath, []byte(content), perm); errWrite != nil {
		log.Error().Err(errWrite).Str("path", filePath).Msg("Failed to write default file content")
		return fmt.Errorf("%w: %w", ErrDefaultFileWrite, errWrite)
	}
	log.Info().Str("path", filePath).Msg("Wrote default file")
	return nil
}

// CreateDefaultConfigFiles creates config.yaml, links.yaml, system_prompt.txt and context.md
// in the configuration directory, leaving existing files untouched.
func CreateDefaultConfigFiles(baseDir string) error {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	filesToCreate := []struct {
		name    string
		content string
		perm    os.FileMode
	}{
		{DefaultConfigFileName, defaultConfigYAML, 0600},
		{DefaultLinksFileName, defaultLinksYAML, 0600},
		{DefaultPromptFileName, defaultSystemPromptTXT, 0644},
		{DefaultContextFileName, defaultContextMD, 0644},
	}

	for _, file := range filesToCreate {
		if err := writeFileIfNotExists(filepath.Join(configDir, file.name), file.content, file.perm); err != nil {
			return err
		}
	}
	return nil
}
