package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/jira"
)

const maxArchiveBatch = 1000

type archiveInput struct {
	IssueIDsOrKeys []string `json:"issueIdsOrKeys" jsonschema:"minItems=1,maxItems=1000" jsonschema_description:"An array of issue ids or keys"`
}

func (in *archiveInput) Validate() error {
	if len(in.IssueIDsOrKeys) == 0 {
		return fmt.Errorf("%w: issueIdsOrKeys", ErrMissingField)
	}
	if len(in.IssueIDsOrKeys) > maxArchiveBatch {
		return fmt.Errorf("%w: at most %d issues can be archived at once", ErrInvalidValue, maxArchiveBatch)
	}
	for i, id := range in.IssueIDsOrKeys {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: issueIdsOrKeys[%d]", ErrMissingField, i)
		}
	}
	return nil
}

func (h *handlers) archiveIssues(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in archiveInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}

	result, err := h.client.ArchiveIssues(ctx, in.IssueIDsOrKeys)
	if err != nil {
		log.Error().Err(err).Int("count", len(in.IssueIDsOrKeys)).Msg("Failed to archive issues")
		return dispatch.ErrorResultf("Error archiving issues. Error: %s", jira.Detail(err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Archived %d issue(s).", result.NumberOfIssuesUpdated)
	failed := archiveFailures(result.Errors)
	if len(failed) > 0 && result.NumberOfIssuesUpdated > 0 {
		b.WriteString(" Partial archive: some issues could not be archived.")
	}
	for _, line := range failed {
		b.WriteString("\n")
		b.WriteString(line)
	}
	log.Info().Int("archived", result.NumberOfIssuesUpdated).Int("error_groups", len(failed)).Msg("Archive finished")

	if len(failed) > 0 && result.NumberOfIssuesUpdated == 0 {
		return dispatch.ErrorResult(b.String()), nil
	}
	return dispatch.TextResult(b.String()), nil
}

// archiveFailures renders each non-empty error group, sorted by group name.
func archiveFailures(groups map[string]jira.ArchiveError) []string {
	names := make([]string, 0, len(groups))
	for name, group := range groups {
		if group.Count > 0 || len(group.IssueIDsOrKeys) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		group := groups[name]
		lines = append(lines, fmt.Sprintf("%s (%d): %s: %s", name, group.Count, group.Message, strings.Join(group.IssueIDsOrKeys, ", ")))
	}
	return lines
}
