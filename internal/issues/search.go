package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/format"
	"github.com/karolswdev/jiramcp/internal/jira"
)

// DefaultMaxResults is the page size used when search_issues omits maxResults.
const DefaultMaxResults = 50

const maxResultsLimit = 5000

type searchInput struct {
	JQL             string   `json:"jql" jsonschema_description:"The JQL query"`
	MaxResults      *int     `json:"maxResults,omitempty" jsonschema:"minimum=1,maximum=5000,default=50"`
	Fields          []string `json:"fields,omitempty" jsonschema_description:"Fields to return for each issue"`
	Expand          string   `json:"expand,omitempty"`
	NextPageToken   string   `json:"nextPageToken,omitempty" jsonschema_description:"Token of the page to fetch, from a previous search"`
	FieldsByKeys    bool     `json:"fieldsByKeys,omitempty"`
	ReconcileIssues []int64  `json:"reconcileIssues,omitempty"`
}

func (in *searchInput) Validate() error {
	if strings.TrimSpace(in.JQL) == "" {
		return fmt.Errorf("%w: jql", ErrMissingField)
	}
	if in.MaxResults != nil && (*in.MaxResults < 1 || *in.MaxResults > maxResultsLimit) {
		return fmt.Errorf("%w: maxResults must be between 1 and %d", ErrInvalidValue, maxResultsLimit)
	}
	return nil
}

func (in *searchInput) request() jira.SearchRequest {
	maxResults := DefaultMaxResults
	if in.MaxResults != nil {
		maxResults = *in.MaxResults
	}
	return jira.SearchRequest{
		JQL:             in.JQL,
		MaxResults:      maxResults,
		Fields:          in.Fields,
		Expand:          in.Expand,
		NextPageToken:   in.NextPageToken,
		FieldsByKeys:    in.FieldsByKeys,
		ReconcileIssues: in.ReconcileIssues,
	}
}

func (h *handlers) searchIssues(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in searchInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}

	result, err := h.client.SearchJQL(ctx, in.request())
	if err != nil {
		log.Error().Err(err).Str("jql", in.JQL).Msg("Issue search failed")
		return dispatch.ErrorResultf("Error searching issues. Error: %s", jira.Detail(err)), nil
	}
	if len(result.SelfLinks) == 0 {
		return dispatch.ErrorResult("No issues found for query."), nil
	}

	blocks := make([]string, 0, len(result.SelfLinks))
	for _, self := range result.SelfLinks {
		issue, err := h.client.GetIssueByURL(ctx, self)
		if err != nil {
			log.Error().Err(err).Str("self", self).Msg("Failed to rehydrate search result")
			return dispatch.ErrorResultf("Error retrieving issue %s. Error: %s", self, jira.Detail(err)), nil
		}
		blocks = append(blocks, format.Issue(issue))
	}
	log.Debug().Int("count", len(blocks)).Msg("Search results formatted")

	text := strings.Join(blocks, "\n\n")
	if result.NextPageToken != "" && !result.IsLast {
		text += "\n\nMore results are available. nextPageToken: " + result.NextPageToken
	}
	return dispatch.TextResult(text), nil
}
