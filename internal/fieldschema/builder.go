package fieldschema

import (
	"github.com/rs/zerolog/log"
)

// UpdateItem is one caller-supplied edit.
type UpdateItem struct {
	FieldName string    `json:"fieldName"`
	Operation Operation `json:"operation"`
	Value     any       `json:"value"`
}

// BuildResult is a validated payload plus the item names that resolved to no field.
type BuildResult struct {
	Payload UpdatePayload
	Skipped []string
}

// Partial reports whether some items were left out of the payload.
func (r *BuildResult) Partial() bool { return len(r.Skipped) > 0 }

// Build maps items onto matched fields and validates the result against the schema
// synthesized from matched. Items naming no matched field are skipped and reported.
// On validation failure no payload is returned.
func Build(matched []FieldDescriptor, items []UpdateItem) (*BuildResult, error) {
	schema := Synthesize(matched)
	result := &BuildResult{Payload: UpdatePayload{Update: make(map[string][]Entry)}}

	for _, item := range items {
		field, ok := resolve(matched, item.FieldName)
		if !ok {
			log.Debug().Str("field", item.FieldName).Msg("Skipping update item with no matching field")
			result.Skipped = append(result.Skipped, item.FieldName)
			continue
		}
		result.Payload.Update[field.ID] = append(result.Payload.Update[field.ID], entryFor(field.Shape, item))
	}

	if err := schema.Validate(result.Payload); err != nil {
		return nil, err
	}
	return result, nil
}

func entryFor(shape Shape, item UpdateItem) Entry {
	switch shape.Kind {
	case ShapeUser:
		if isFalsy(item.Value) {
			return Entry{Operation: OpSet, Value: ClearUser}
		}
		return Entry{Operation: item.Operation, Value: accountRef(item.Value)}
	case ShapeArray:
		if shape.Elem != nil && shape.Elem.Kind == ShapeUser {
			return Entry{Operation: item.Operation, Value: accountRef(item.Value)}
		}
	}
	return Entry{Operation: item.Operation, Value: item.Value}
}

// accountRef wraps string ids; anything else is left for the validator to reject.
func accountRef(value any) any {
	if s, ok := value.(string); ok {
		return AccountRef{AccountID: s}
	}
	return value
}

func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	}
	return false
}
