package issues

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/dispatch"
	"github.com/karolswdev/jiramcp/internal/fieldschema"
	"github.com/karolswdev/jiramcp/internal/jira"
)

type editItem struct {
	FieldName string `json:"fieldName" jsonschema_description:"Display name of the field, matched case-insensitively"`
	Operation string `json:"operation" jsonschema:"enum=set,enum=add,enum=remove"`
	Value     any    `json:"value" jsonschema:"oneof_type=string;number;boolean;null" jsonschema_description:"New value; an account id for user fields, empty to clear a single user field"`
}

type editInput struct {
	IssueKey       string     `json:"issueKey" jsonschema_description:"The key of the issue (e.g. ABC-1)"`
	FieldsToUpdate []editItem `json:"fieldsToUpdate" jsonschema:"minItems=1"`
}

func (in *editInput) Validate() error {
	in.IssueKey = strings.TrimSpace(in.IssueKey)
	if in.IssueKey == "" {
		return fmt.Errorf("%w: issueKey", ErrMissingField)
	}
	if len(in.FieldsToUpdate) == 0 {
		return fmt.Errorf("%w: fieldsToUpdate", ErrMissingField)
	}
	for i := range in.FieldsToUpdate {
		item := &in.FieldsToUpdate[i]
		if strings.TrimSpace(item.FieldName) == "" {
			return fmt.Errorf("%w: fieldsToUpdate[%d].fieldName", ErrMissingField, i)
		}
		op, err := fieldschema.ParseOperation(item.Operation)
		if err != nil {
			return fmt.Errorf("fieldsToUpdate[%d].operation: %w", i, err)
		}
		item.Operation = string(op)
		switch item.Value.(type) {
		case nil, string, float64, bool:
		default:
			return fmt.Errorf("%w: fieldsToUpdate[%d].value must be a string, number, boolean or null", ErrInvalidValue, i)
		}
	}
	return nil
}

func (in *editInput) items() ([]fieldschema.UpdateItem, []string) {
	items := make([]fieldschema.UpdateItem, 0, len(in.FieldsToUpdate))
	names := make([]string, 0, len(in.FieldsToUpdate))
	for _, item := range in.FieldsToUpdate {
		items = append(items, fieldschema.UpdateItem{
			FieldName: item.FieldName,
			Operation: fieldschema.Operation(item.Operation),
			Value:     item.Value,
		})
		names = append(names, item.FieldName)
	}
	return items, names
}

// buildUpdate fetches the live catalog and turns the edit items into a validated payload.
func (h *handlers) buildUpdate(ctx context.Context, in *editInput) (*fieldschema.BuildResult, error) {
	items, names := in.items()
	catalog, err := fieldschema.FetchCatalog(ctx, h.client)
	if err != nil {
		return nil, err
	}
	matched, err := fieldschema.FindByNames(catalog, names)
	if err != nil {
		return nil, err
	}
	return fieldschema.Build(matched, items)
}

func (h *handlers) editIssue(ctx context.Context, args json.RawMessage) (*dispatch.Result, error) {
	var in editInput
	if err := decodeArgs(args, &in); err != nil {
		return parseError(err), nil
	}

	built, err := h.buildUpdate(ctx, &in)
	if err != nil {
		log.Warn().Err(err).Str("key", in.IssueKey).Msg("Unable to build update payload")
		return dispatch.ErrorResultf("Unable to build update payload: %s", err), nil
	}

	if err := h.client.UpdateIssue(ctx, in.IssueKey, built.Payload); err != nil {
		log.Error().Err(err).Str("key", in.IssueKey).Msg("Failed to update issue")
		return dispatch.ErrorResultf("Error updating issue %s. Error: %s", in.IssueKey, jira.Detail(err)), nil
	}
	log.Info().Str("key", in.IssueKey).Int("fields", len(built.Payload.Update)).Msg("Issue updated")

	text := fmt.Sprintf("Issue %s updated successfully.", in.IssueKey)
	if built.Partial() {
		text += fmt.Sprintf("\nPartial application: no field matched %s, so those items were skipped.", strings.Join(built.Skipped, ", "))
	}
	return dispatch.TextResult(text), nil
}
