package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Draft is the issue proposal returned by the model.
type Draft struct {
	ProjectAlias string `json:"project_alias"`
	Summary      string `json:"summary"`
	Description  string `json:"description"`
	IssueType    string `json:"issue_type"`
}

// fencedJSON matches a JSON object inside a markdown code fence, with or without a json tag.
var fencedJSON = regexp.MustCompile("(?s)`{3,}(?:[jJ][sS][oO][nN])?\\s*(\\{.*\\})\\s*`{3,}")

// ParseDraft extracts the JSON object from a completion, fenced or bare, and decodes it.
// Summary is the only required member; the caller fills the others from flags or config.
func ParseDraft(raw string) (Draft, error) {
	var jsonStr string
	if match := fencedJSON.FindStringSubmatch(raw); len(match) == 2 {
		jsonStr = match[1]
	} else {
		trimmed := strings.TrimSpace(raw)
		if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
			log.Error().Str("raw_response", raw).Msg("No JSON object in LLM response")
			return Draft{}, ErrJSONNotFound
		}
		jsonStr = trimmed
	}

	var draft Draft
	if err := json.Unmarshal([]byte(strings.TrimSpace(jsonStr)), &draft); err != nil {
		log.Error().Err(err).Str("json", jsonStr).Msg("Failed to unmarshal LLM response JSON")
		return Draft{}, fmt.Errorf("%w: %w", ErrJSONUnmarshal, err)
	}

	draft.Summary = strings.TrimSpace(draft.Summary)
	draft.ProjectAlias = strings.TrimSpace(draft.ProjectAlias)
	draft.IssueType = strings.TrimSpace(draft.IssueType)
	if draft.Summary == "" {
		return draft, fmt.Errorf("%w: summary", ErrMissingField)
	}
	log.Debug().Interface("draft", draft).Msg("Parsed LLM draft")
	return draft, nil
}
