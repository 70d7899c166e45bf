package fieldschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Entry is a single {operation: value} element of an update payload.
type Entry struct {
	Operation Operation
	Value     any
}

// MarshalJSON renders the entry as a one-member object.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{string(e.Operation): e.Value})
}

// UpdatePayload is the body of PUT /issue/{key}: field id to ordered operations.
type UpdatePayload struct {
	Update map[string][]Entry `json:"update"`
}

// FieldContract is the synthesized contract of one field: a validator per legal operation.
type FieldContract struct {
	Field      FieldDescriptor
	Validators map[Operation]ValueValidator
}

// Operations lists the legal verbs of the field in canonical order.
func (c FieldContract) Operations() []Operation {
	var ops []Operation
	for _, op := range Operations {
		if _, ok := c.Validators[op]; ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Check validates one entry against the contract.
func (c FieldContract) Check(e Entry) error {
	validate, ok := c.Validators[e.Operation]
	if !ok {
		return fmt.Errorf("%w: %q (%s, %s) does not accept %q", ErrOperationNotAllowed, c.Field.Name, c.Field.ID, c.Field.Shape, e.Operation)
	}
	if err := validate(e.Value); err != nil {
		return fmt.Errorf("%q %s: %w", c.Field.Name, e.Operation, err)
	}
	return nil
}

// Schema is the composite update contract synthesized from a set of fields.
type Schema struct {
	contracts map[string]FieldContract
}

// Synthesize derives a contract for every field from its shape. Fields with no legal
// operations get an empty contract, so any entry targeting them fails validation.
func Synthesize(fields []FieldDescriptor) *Schema {
	s := &Schema{contracts: make(map[string]FieldContract, len(fields))}
	for _, f := range fields {
		if _, seen := s.contracts[f.ID]; seen {
			continue
		}
		validators := make(map[Operation]ValueValidator)
		for _, op := range LegalOperations(f.Shape) {
			validators[op] = ValueContract(f.Shape, op)
		}
		s.contracts[f.ID] = FieldContract{Field: f, Validators: validators}
	}
	return s
}

// Contract returns the contract of a field id.
func (s *Schema) Contract(fieldID string) (FieldContract, bool) {
	c, ok := s.contracts[fieldID]
	return c, ok
}

// Validate checks every entry of p. All failures are reported, joined, under ErrPayloadInvalid.
func (s *Schema) Validate(p UpdatePayload) error {
	ids := make([]string, 0, len(p.Update))
	for id := range p.Update {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	for _, id := range ids {
		contract, ok := s.contracts[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrStaleField, id))
			continue
		}
		for _, e := range p.Update[id] {
			if err := contract.Check(e); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrPayloadInvalid, errors.Join(errs...))
	}
	return nil
}
