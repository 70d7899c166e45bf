package cmd

import (
	"context"
	"encoding/json"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/karolswdev/jiramcp/internal/dispatch"
)

// ConfigProvider loads the configuration files and secrets the commands need.
// Commands take it as a parameter so tests can substitute a mock.
type ConfigProvider interface {
	LoadConfig() (*config.AppConfig, error)
	LoadLinks() (*config.LinksConfig, error)
	LoadSystemPrompt() (string, error)
	LoadContext() (string, error)
	GetAPIKey() (string, error)
	GetJiraToken() (string, error)
	CreateDefaultConfigFiles(configDir string) error
	EnsureConfigDir() (string, error)
}

// ToolDispatcher lists the registered tools and runs calls against them.
// It is satisfied by *dispatch.Dispatcher and accepted by mcpserver.Serve.
type ToolDispatcher interface {
	List() []dispatch.Descriptor
	Dispatch(ctx context.Context, name string, args json.RawMessage) *dispatch.Result
}

// ProjectMapper maps a drafted project alias to a Jira project key using links.yaml.
type ProjectMapper interface {
	MapSuggestionToKey(suggestion string, links *config.LinksConfig) (projectKey string, matchedLink *config.ProjectLink, err error)
}

// IssueTypeResolver picks the issue type for a drafted issue from the --type flag,
// the matched project link and the draft itself.
type IssueTypeResolver interface {
	Resolve(flagType string, projectLink *config.ProjectLink, draftedType string) string
}

// KeyringClient reads and writes secrets in the OS keychain.
type KeyringClient interface {
	Set(service, user, password string) error
	Get(service, user string) (string, error)
}
