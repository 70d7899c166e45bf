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

type transitionInput struct {
	IssueKey   string `json:"issueKey" jsonschema_description:"The key of the issue (e.g. ABC-1)"`
	Transition string `json:"transition" jsonschema_description:"Name of the transition, matched case-insensitively"`
}

func (in *transitionInput) Validate() error {
	in.IssueKey = strings.TrimSpace(in.IssueKey)
	if in.IssueKey == "" {
		return fmt.Errorf("%w: issueKey", ErrMissingField)
	}
	if strings.TrimSpace(in.Transition) == "" {
		return fmt.Errorf("%w: transition", ErrMissingField)
	}
	return nil
}

// matchTransition returns the first transition named name, ignoring case.
func matchTransition(transitions []jira.Transition, name string) (jira.Transition, bool) {
	for _, t := range transitions {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return jira.Transition{}, false
}

func transitionNames(transitions []jira.Transition) []string {
	names := make([]string, 0, len(transitions))
	for _, t := range transitions {
		names = append(names, t.Name)
	}
	return names
}

func (h *handlers) transitionIssue(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in transitionInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}

	transitions, err := h.client.GetTransitions(ctx, in.IssueKey)
	if err != nil {
		log.Error().Err(err).Str("key", in.IssueKey).Msg("Failed to list transitions")
		return dispatch.ErrorResultf("Error retrieving transitions for %s. Error: %s", in.IssueKey, jira.Detail(err)), nil
	}

	match, ok := matchTransition(transitions, in.Transition)
	if !ok {
		available := "none"
		if len(transitions) > 0 {
			available = strings.Join(transitionNames(transitions), ", ")
		}
		return dispatch.ErrorResultf("Transition %q is not available for %s. Available transitions: %s", in.Transition, in.IssueKey, available), nil
	}

	if err := h.client.DoTransition(ctx, in.IssueKey, match.ID); err != nil {
		log.Error().Err(err).Str("key", in.IssueKey).Str("transition", match.Name).Msg("Failed to transition issue")
		return dispatch.ErrorResultf("Error transitioning issue. Error: %s", jira.Detail(err)), nil
	}
	log.Info().Str("key", in.IssueKey).Str("transition", match.Name).Msg("Issue transitioned")
	return dispatch.TextResultf("Issue %s transitioned to %s", in.IssueKey, match.Name), nil
}
