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

type getIssueInput struct {
	Key string `json:"key" jsonschema_description:"The key of the issue (e.g. ABC-1)"`
}

func (in *getIssueInput) Validate() error {
	in.Key = strings.TrimSpace(in.Key)
	if in.Key == "" {
		return fmt.Errorf("%w: key", ErrMissingField)
	}
	return nil
}

func (h *handlers) getIssue(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in getIssueInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}

	issue, err := h.client.GetIssue(ctx, in.Key)
	if err != nil {
		log.Error().Err(err).Str("key", in.Key).Msg("Failed to retrieve issue")
		return dispatch.ErrorResultf("Error retrieving issue. Error: %s", jira.Detail(err)), nil
	}
	return dispatch.TextResultf("Issue %s:\n\n%s", in.Key, format.Issue(issue)), nil
}
