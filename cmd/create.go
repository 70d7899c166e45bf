package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/karolswdev/jiramcp/internal/llm"
)

// DefaultProjectMapper implements ProjectMapper. Exported for tests.
type DefaultProjectMapper struct{}

// MapSuggestionToKey matches suggestion against link names, then link keys, ignoring case.
func (m *DefaultProjectMapper) MapSuggestionToKey(suggestion string, linksCfg *config.LinksConfig) (string, *config.ProjectLink, error) {
	if link, ok := linksCfg.FindProject(suggestion); ok {
		Log.Debug().Str("suggestion", suggestion).Str("key", link.Key).Msg("Mapped project alias to key")
		return link.Key, link, nil
	}
	if linksCfg != nil {
		for i := range linksCfg.Projects {
			link := &linksCfg.Projects[i]
			if strings.EqualFold(suggestion, link.Key) {
				return link.Key, link, nil
			}
		}
	}
	Log.Error().Str("suggestion", suggestion).Msg("Mapping failed")
	return "", nil, config.ErrProjectMappingFailed
}

// DefaultIssueTypeResolver implements IssueTypeResolver. Exported for tests.
type DefaultIssueTypeResolver struct{}

const defaultIssueType = "Task"

// Resolve prefers the --type flag, then the link default, then the drafted type, then Task.
func (r *DefaultIssueTypeResolver) Resolve(flagType string, link *config.ProjectLink, draftedType string) string {
	switch {
	case flagType != "":
		Log.Debug().Str("issue_type", flagType).Msg("Using issue type from --type flag")
		return flagType
	case link != nil && link.DefaultIssueType != "":
		Log.Debug().Str("project_key", link.Key).Str("issue_type", link.DefaultIssueType).Msg("Using default issue type from links.yaml")
		return link.DefaultIssueType
	case draftedType != "":
		Log.Debug().Str("issue_type", draftedType).Msg("Using drafted issue type")
		return draftedType
	default:
		return defaultIssueType
	}
}

// createArgs mirrors the create_issue input contract for the members the command sets.
type createArgs struct {
	Fields createArgFields `json:"fields"`
}

type createArgFields struct {
	Summary     string      `json:"summary"`
	Description string      `json:"description,omitempty"`
	IssueType   *namedRef   `json:"issuetype,omitempty"`
	Project     *projectKey `json:"project,omitempty"`
}

type namedRef struct {
	Name string `json:"name"`
}

type projectKey struct {
	Key string `json:"key"`
}

// loadedConfigs holds the files the drafting path reads.
type loadedConfigs struct {
	linksConfig  *config.LinksConfig
	systemPrompt string
	contextData  string
}

func loadDraftingConfigs(cp ConfigProvider) (*loadedConfigs, error) {
	linksCfg, err := cp.LoadLinks()
	if err != nil {
		Log.Error().Err(err).Msg("Failed to load links configuration file (links.yaml)")
		return nil, err
	}
	systemPrompt, err := cp.LoadSystemPrompt()
	if err != nil {
		Log.Error().Err(err).Msg("Failed to load system prompt file (system_prompt.txt)")
		return nil, err
	}
	contextData, err := cp.LoadContext()
	if err != nil {
		Log.Error().Err(err).Msg("Failed to load context data file (context.md)")
		return nil, err
	}
	return &loadedConfigs{linksConfig: linksCfg, systemPrompt: systemPrompt, contextData: contextData}, nil
}

// confirm shows the issue about to be created and reads a y/N answer from in.
func confirm(in io.Reader, out io.Writer, fields createArgFields) (bool, error) {
	project := "(default project)"
	if fields.Project != nil {
		project = fields.Project.Key
	}
	fmt.Fprintln(out, "\n--- Issue Details ---")
	fmt.Fprintf(out, "Project Key: %s\n", project)
	fmt.Fprintf(out, "Issue Type:  %s\n", fields.IssueType.Name)
	fmt.Fprintf(out, "Summary:     %s\n", fields.Summary)
	fmt.Fprintf(out, "Description:\n%s\n", fields.Description)
	fmt.Fprintln(out, "---------------------")
	fmt.Fprint(out, "Create this issue? [y/N]: ")

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		Log.Error().Err(err).Msg("Failed to read user input for confirmation")
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes", nil
}

// createCmdRunner holds the dependencies of the create command.
type createCmdRunner struct {
	configProvider    ConfigProvider
	drafter           llm.Drafter
	tools             ToolDispatcher
	projectMapper     ProjectMapper
	issueTypeResolver IssueTypeResolver
}

// Run drafts an issue from args, resolves its project and type, and dispatches create_issue.
func (r *createCmdRunner) Run(cmd *cobra.Command, args []string) error {
	errOut := cmd.ErrOrStderr()
	out := cmd.OutOrStdout()

	loaded, err := loadDraftingConfigs(r.configProvider)
	if err != nil {
		printSetupHint(errOut, err)
		return err
	}

	request := strings.Join(args, " ")
	draft, err := r.drafter.Draft(cmd.Context(), request, loaded.systemPrompt, loaded.contextData)
	if err != nil {
		Log.Error().Err(err).Msg("Drafting failed")
		printSetupHint(errOut, err)
		return err
	}
	Log.Info().Str("summary", draft.Summary).Msg("Issue drafted")

	projectFlag, _ := cmd.Flags().GetString("project")
	typeFlag, _ := cmd.Flags().GetString("type")

	fields := createArgFields{Summary: draft.Summary, Description: draft.Description}
	var link *config.ProjectLink
	suggestion := projectFlag
	if suggestion == "" {
		suggestion = draft.ProjectAlias
	}
	if suggestion != "" {
		key, matched, err := r.projectMapper.MapSuggestionToKey(suggestion, loaded.linksConfig)
		switch {
		case err == nil:
			fields.Project = &projectKey{Key: key}
			link = matched
		case projectFlag != "":
			// An explicit --project that is not an alias is taken as a key.
			fields.Project = &projectKey{Key: projectFlag}
		default:
			fmt.Fprintf(errOut, "Error: Could not map the drafted project '%s' to a known project key.\n", suggestion)
			fmt.Fprintln(errOut, "Check links.yaml ('jiramcp config locate') or pass --project.")
			return fmt.Errorf("%w: %q", err, suggestion)
		}
	}
	fields.IssueType = &namedRef{Name: r.issueTypeResolver.Resolve(typeFlag, link, draft.IssueType)}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		proceed, err := confirm(cmd.InOrStdin(), out, fields)
		if err != nil {
			return err
		}
		if !proceed {
			Log.Info().Msg("User aborted issue creation.")
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	callArgs, err := json.Marshal(createArgs{Fields: fields})
	if err != nil {
		return fmt.Errorf("failed to encode create_issue arguments: %w", err)
	}
	outputFormat, _ := cmd.Flags().GetString("output")
	return toolsCallRunE(cmd.Context(), r.tools, "create_issue", callArgs, outputFormat, out)
}

// addCreateFlags defines the create flags on c.
func addCreateFlags(c *cobra.Command) {
	c.Flags().StringP("type", "t", "", "Issue type (overrides links.yaml and the draft)")
	c.Flags().StringP("project", "p", "", "Project alias or key (overrides the draft)")
	c.Flags().BoolP("interactive", "i", false, "Confirm the drafted issue before creating it")
}

var createCmd = &cobra.Command{
	Use:   "create [your issue description here...]",
	Short: "Draft and create a Jira issue from a description",
	Long: `Drafts a Jira issue from a short natural-language description with the
configured LLM, maps its project through links.yaml and creates it with
the create_issue tool.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := GetProvider()
		drafter, err := provider.Drafter()
		if err != nil {
			printSetupHint(cmd.ErrOrStderr(), err)
			return err
		}
		tools, err := provider.ToolDispatcher()
		if err != nil {
			printSetupHint(cmd.ErrOrStderr(), err)
			return err
		}
		runner := &createCmdRunner{
			configProvider:    provider.Config,
			drafter:           drafter,
			tools:             tools,
			projectMapper:     &DefaultProjectMapper{},
			issueTypeResolver: &DefaultIssueTypeResolver{},
		}
		return runner.Run(cmd, args)
	},
}

func init() {
	addCreateFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}
