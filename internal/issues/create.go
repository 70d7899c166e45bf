package issues

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/format"
	"github.com/karolswdev/jiramcp/internal/jira"
)

type idRef struct {
	ID string `json:"id"`
}

type issueTypeRef struct {
	Name string `json:"name" jsonschema_description:"Issue type name, e.g. Task or Bug"`
}

type projectRef struct {
	Key string `json:"key" jsonschema_description:"Project key or a configured project alias"`
}

type createFields struct {
	Summary     string          `json:"summary,omitempty"`
	IssueType   *issueTypeRef   `json:"issuetype,omitempty" jsonschema_description:"Defaults to the alias default issue type when the project is an alias"`
	Project     *projectRef     `json:"project,omitempty" jsonschema_description:"Defaults to the configured project"`
	Description json.RawMessage `json:"description,omitempty" jsonschema:"oneof_type=string;object" jsonschema_description:"Plain text or an Atlassian Document Format document"`
	Labels      []string        `json:"labels,omitempty"`
	DueDate     string          `json:"duedate,omitempty" jsonschema_description:"Due date as YYYY-MM-DD"`
	Assignee    *idRef          `json:"assignee,omitempty"`
	Components  []idRef         `json:"components,omitempty"`
	FixVersions []idRef         `json:"fixVersions,omitempty"`
}

type createInput struct {
	Fields createFields `json:"fields" jsonschema_description:"The fields of the new issue"`
}

func (in *createInput) Validate() error {
	f := &in.Fields
	if f.DueDate != "" {
		if _, err := time.Parse(time.DateOnly, f.DueDate); err != nil {
			return fmt.Errorf("%w: duedate must be YYYY-MM-DD", ErrInvalidValue)
		}
	}
	if f.Assignee != nil && strings.TrimSpace(f.Assignee.ID) == "" {
		return fmt.Errorf("%w: assignee.id", ErrMissingField)
	}
	trimmed := bytes.TrimSpace(f.Description)
	if len(trimmed) > 0 && trimmed[0] != '"' && trimmed[0] != '{' && !bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%w: description must be a string or a document object", ErrInvalidValue)
	}
	return nil
}

// resolve fills the project and issue type from aliases and defaults, then checks that
// both are known.
func (h *handlers) resolve(in *createInput) error {
	f := &in.Fields
	if f.Project == nil || strings.TrimSpace(f.Project.Key) == "" {
		f.Project = &projectRef{Key: h.opts.DefaultProjectKey}
	}
	if link, ok := h.opts.Links.FindProject(f.Project.Key); ok {
		log.Debug().Str("alias", f.Project.Key).Str("key", link.Key).Msg("Resolved project alias")
		f.Project.Key = link.Key
		if (f.IssueType == nil || f.IssueType.Name == "") && link.DefaultIssueType != "" {
			f.IssueType = &issueTypeRef{Name: link.DefaultIssueType}
		}
	}
	if strings.TrimSpace(f.Project.Key) == "" {
		return fmt.Errorf("%w: fields.project.key (no default project is configured)", ErrMissingField)
	}
	if f.IssueType == nil || strings.TrimSpace(f.IssueType.Name) == "" {
		return fmt.Errorf("%w: fields.issuetype.name", ErrMissingField)
	}
	return nil
}

// payload merges the caller's fields over the defaults.
func (h *handlers) payload(in *createInput) (json.RawMessage, error) {
	f := in.Fields
	defaults := map[string]any{"project": map[string]string{"key": h.opts.DefaultProjectKey}}

	description := bytes.TrimSpace(f.Description)
	switch {
	case len(description) == 0 || bytes.Equal(description, []byte("null")):
		f.Description = nil
	case description[0] == '"':
		var text string
		if err := json.Unmarshal(description, &text); err != nil {
			return nil, err
		}
		f.Description = format.DocumentFromText(text)
	default:
		defaults["description"] = map[string]any{"type": "doc", "version": 1}
	}

	base, err := json.Marshal(map[string]any{"fields": defaults})
	if err != nil {
		return nil, err
	}
	patch, err := json.Marshal(createInput{Fields: f})
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(base, patch)
}

func (h *handlers) createIssue(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in createInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}
	if err := h.resolve(&in); err != nil {
		return parseError(err), nil
	}

	body, err := h.payload(&in)
	if err != nil {
		return dispatch.ErrorResultf("Error creating issue. Error: %s", err), nil
	}

	created, err := h.client.CreateIssue(ctx, body)
	if err != nil {
		log.Error().Err(err).Str("project", in.Fields.Project.Key).Msg("Failed to create issue")
		return dispatch.ErrorResultf("Error creating issue. Error: %s", jira.Detail(err)), nil
	}
	log.Info().Str("key", created.Key).Msg("Issue created")
	return dispatch.TextResultf("Issue created successfully. %s", h.client.BrowseURL(created.Key)), nil
}
