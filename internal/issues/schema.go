package issues

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/karolswdev/jiramcp/internal/dispatch"
)

var reflector = &jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
	ExpandedStruct:            true,
	Anonymous:                 true,
}

// inputSchema reflects the JSON Schema of an input struct. It runs once per tool at
// startup, so a marshal failure is a programming error.
func inputSchema(v any) json.RawMessage {
	schema := reflector.Reflect(v)
	schema.Version = ""
	raw, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("reflect input schema for %T: %v", v, err))
	}
	return raw
}

type validator interface {
	Validate() error
}

// decodeArgs strictly decodes args into v and validates it. Empty and null arguments
// decode as an empty object.
func decodeArgs(args json.RawMessage, v validator) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return nil
}

func parseError(err error) *dispatch.Result {
	return dispatch.ErrorResultf("Error parsing parameters. Error: %s", err)
}
