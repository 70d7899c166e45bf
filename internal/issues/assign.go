package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/jira"
)

type assignInput struct {
	IssueKey  string `json:"issueKey" jsonschema_description:"The key of the issue (e.g. ABC-1)"`
	UserQuery string `json:"userQuery" jsonschema_description:"Name or email used to look up the user"`
}

func (in *assignInput) Validate() error {
	in.IssueKey = strings.TrimSpace(in.IssueKey)
	if in.IssueKey == "" {
		return fmt.Errorf("%w: issueKey", ErrMissingField)
	}
	if strings.TrimSpace(in.UserQuery) == "" {
		return fmt.Errorf("%w: userQuery", ErrMissingField)
	}
	return nil
}

type unassignInput struct {
	IssueKey string `json:"issueKey" jsonschema_description:"The key of the issue (e.g. ABC-1)"`
}

func (in *unassignInput) Validate() error {
	in.IssueKey = strings.TrimSpace(in.IssueKey)
	if in.IssueKey == "" {
		return fmt.Errorf("%w: issueKey", ErrMissingField)
	}
	return nil
}

func (h *handlers) assignIssue(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in assignInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}

	users, err := h.client.SearchUsers(ctx, in.UserQuery)
	if err != nil {
		log.Error().Err(err).Str("query", in.UserQuery).Msg("User search failed")
		return dispatch.ErrorResultf("There was an error locating a user. Error: %s", jira.Detail(err)), nil
	}
	if len(users) == 0 {
		return dispatch.ErrorResultf("No user found for %s", in.UserQuery), nil
	}

	user := users[0]
	if err := h.client.SetAssignee(ctx, in.IssueKey, user.AccountID); err != nil {
		log.Error().Err(err).Str("key", in.IssueKey).Msg("Failed to assign issue")
		return dispatch.ErrorResultf("There was an error assigning %s to %s. Error: %s", in.IssueKey, user.DisplayName, jira.Detail(err)), nil
	}
	log.Info().Str("key", in.IssueKey).Str("account_id", user.AccountID).Msg("Issue assigned")
	return dispatch.TextResultf("Issue %s assigned to %s", in.IssueKey, user.DisplayName), nil
}

func (h *handlers) unassignIssue(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in unassignInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}

	if err := h.client.SetAssignee(ctx, in.IssueKey, jira.UnassignedAccountID); err != nil {
		log.Error().Err(err).Str("key", in.IssueKey).Msg("Failed to unassign issue")
		return dispatch.ErrorResultf("Error unassigning issue. Error: %s", jira.Detail(err)), nil
	}
	return dispatch.TextResultf("Issue %s successfully unassigned.", in.IssueKey), nil
}
