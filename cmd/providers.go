package cmd

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	keyring "github.com/zalando/go-keyring"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/issues"
	"github.com/karolswdev/jiramcp/internal/jira"
	"github.com/karolswdev/jiramcp/internal/llm"
)

// DefaultConfigProvider implements ConfigProvider with the config package.
type DefaultConfigProvider struct{}

func (p *DefaultConfigProvider) LoadConfig() (*config.AppConfig, error) {
	return config.LoadConfig("")
}

func (p *DefaultConfigProvider) LoadLinks() (*config.LinksConfig, error) {
	links, err := config.LoadLinks("")
	if err != nil {
		return nil, err
	}
	return &links, nil
}

func (p *DefaultConfigProvider) LoadSystemPrompt() (string, error) {
	return config.LoadSystemPrompt("")
}

func (p *DefaultConfigProvider) LoadContext() (string, error) {
	return config.LoadContext("")
}

func (p *DefaultConfigProvider) GetAPIKey() (string, error) {
	return config.GetAPIKey()
}

func (p *DefaultConfigProvider) GetJiraToken() (string, error) {
	return config.GetJiraToken()
}

// CreateDefaultConfigFiles ignores configDir; the config package resolves the directory.
func (p *DefaultConfigProvider) CreateDefaultConfigFiles(configDir string) error {
	return config.CreateDefaultConfigFiles("")
}

func (p *DefaultConfigProvider) EnsureConfigDir() (string, error) {
	return config.EnsureConfigDir("")
}

type defaultKeyringClient struct{}

func (k *defaultKeyringClient) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

func (k *defaultKeyringClient) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

// Provider aggregates the dependencies the commands share. Tools and LLM are built on
// first use so commands that need neither never touch Jira or the model.
type Provider struct {
	Config  ConfigProvider
	Keyring KeyringClient
	Tools   ToolDispatcher
	LLM     llm.Drafter
}

// GetProvider returns a Provider backed by the real config package and OS keychain.
func GetProvider() *Provider {
	return &Provider{
		Config:  &DefaultConfigProvider{},
		Keyring: &defaultKeyringClient{},
	}
}

// ToolDispatcher returns p.Tools, building the Jira client and tool registry from
// configuration when it is not set yet.
func (p *Provider) ToolDispatcher() (ToolDispatcher, error) {
	if p.Tools != nil {
		return p.Tools, nil
	}
	d, err := newToolDispatcher(p.Config)
	if err != nil {
		return nil, err
	}
	p.Tools = d
	return d, nil
}

// Drafter returns p.LLM, building it from configuration when it is not set yet.
func (p *Provider) Drafter() (llm.Drafter, error) {
	if p.LLM != nil {
		return p.LLM, nil
	}
	cfg, err := p.Config.LoadConfig()
	if err != nil {
		return nil, err
	}
	d, err := newDrafter(cfg, p.Config)
	if err != nil {
		return nil, err
	}
	p.LLM = d
	return d, nil
}

func newToolDispatcher(cp ConfigProvider) (*dispatch.Dispatcher, error) {
	cfg, err := cp.LoadConfig()
	if err != nil {
		return nil, err
	}
	token, err := cp.GetJiraToken()
	if err != nil {
		return nil, err
	}
	client, err := jira.New(jira.Options{
		BaseURL: cfg.Jira.BaseURL,
		Email:   cfg.Jira.Email,
		Token:   token,
		Timeout: cfg.Jira.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	links, err := cp.LoadLinks()
	if err != nil {
		Log.Warn().Err(err).Msg("Failed to load links.yaml, project aliases are disabled")
		links = nil
	}

	registry := dispatch.NewRegistry(issues.Tools(client, issues.Options{
		DefaultProjectKey: cfg.Jira.ProjectKey,
		Links:             links,
	})...)
	Log.Debug().Str("base_url", cfg.Jira.BaseURL).Int("tools", len(registry.List())).Msg("Tool registry initialized")
	return dispatch.NewDispatcher(registry), nil
}

func newDrafter(cfg *config.AppConfig, cp ConfigProvider) (llm.Drafter, error) {
	switch cfg.LLM.Provider {
	case "openai":
		apiKey, err := cp.GetAPIKey()
		if err != nil {
			return nil, err
		}
		openAIConfig := openai.DefaultConfig(apiKey)
		if cfg.LLM.OpenAI.BaseURL != "" {
			openAIConfig.BaseURL = cfg.LLM.OpenAI.BaseURL
			Log.Debug().Str("base_url", openAIConfig.BaseURL).Msg("Using custom OpenAI BaseURL")
		}
		return llm.NewOpenAIDrafter(openai.NewClientWithConfig(openAIConfig), cfg.LLM.OpenAI.ModelName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.LLM.Provider)
	}
}
