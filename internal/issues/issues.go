// Package issues implements the Jira issue tools: their descriptors, input contracts and
// handlers.
package issues

import (
	"context"
	"encoding/json"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/jira"
)

// JiraAPI is the part of the Jira client the handlers use.
type JiraAPI interface {
	GetIssue(ctx context.Context, key string) (*jira.Issue, error)
	GetIssueByURL(ctx context.Context, self string) (*jira.Issue, error)
	SearchJQL(ctx context.Context, req jira.SearchRequest) (*jira.SearchResult, error)
	CreateIssue(ctx context.Context, payload json.RawMessage) (*jira.CreatedIssue, error)
	SearchUsers(ctx context.Context, query string) ([]jira.User, error)
	SetAssignee(ctx context.Context, key, accountID string) error
	UpdateIssue(ctx context.Context, key string, payload any) error
	GetTransitions(ctx context.Context, key string) ([]jira.Transition, error)
	DoTransition(ctx context.Context, key, transitionID string) error
	ListFields(ctx context.Context) ([]jira.Field, error)
	ArchiveIssues(ctx context.Context, idsOrKeys []string) (*jira.ArchiveResult, error)
	BrowseURL(key string) string
}

// Options carries the configuration the handlers need beyond the client.
type Options struct {
	// DefaultProjectKey fills project.key on create_issue when the caller omits it.
	DefaultProjectKey string
	// Links maps project aliases to keys for create_issue. May be nil.
	Links *config.LinksConfig
}

type handlers struct {
	client JiraAPI
	opts   Options
}

// Tools returns every issue tool in registration order.
func Tools(client JiraAPI, opts Options) []dispatch.Tool {
	h := &handlers{client: client, opts: opts}
	return []dispatch.Tool{
		{
			Descriptor: dispatch.Descriptor{
				Name:        "get_issue_by_key",
				Description: "Get an issue by key",
				InputSchema: inputSchema(&getIssueInput{}),
			},
			Handler: h.getIssue,
		},
		{
			Descriptor: dispatch.Descriptor{
				Name:        "search_issues",
				Description: "Search for issues using JQL",
				InputSchema: inputSchema(&searchInput{}),
			},
			Handler: h.searchIssues,
		},
		{
			Descriptor: dispatch.Descriptor{
				Name:        "create_issue",
				Description: "Create a new issue",
				InputSchema: inputSchema(&createInput{}),
			},
			Handler: h.createIssue,
		},
		{
			Descriptor: dispatch.Descriptor{
				Name:        "assign_issue",
				Description: "Assign an issue to a user.",
				InputSchema: inputSchema(&assignInput{}),
			},
			Handler: h.assignIssue,
		},
		{
			Descriptor: dispatch.Descriptor{
				Name:        "unassign_issue",
				Description: "Unassign an issue.",
				InputSchema: inputSchema(&unassignInput{}),
			},
			Handler: h.unassignIssue,
		},
		{
			Descriptor: dispatch.Descriptor{
				Name:        "edit_issue",
				Description: "Edit the fields of an issue.",
				InputSchema: inputSchema(&editInput{}),
			},
			Handler: h.editIssue,
		},
		{
			Descriptor: dispatch.Descriptor{
				Name:        "transition_issue",
				Description: "Transition an issue to another status.",
				InputSchema: inputSchema(&transitionInput{}),
			},
			Handler: h.transitionIssue,
		},
		{
			Descriptor: dispatch.Descriptor{
				Name:        "archive_issues",
				Description: "Archive issues by id or key.",
				InputSchema: inputSchema(&archiveInput{}),
			},
			Handler: h.archiveIssues,
		},
	}
}
