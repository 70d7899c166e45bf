package fieldschema

import (
	"fmt"
	"strings"
	"time"
)

// Operation is an update verb applied to one field value.
type Operation string

const (
	OpSet    Operation = "set"
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
)

// Operations lists every verb in canonical order.
var Operations = []Operation{OpSet, OpAdd, OpRemove}

// ParseOperation accepts set, add or remove in any case.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	switch op {
	case OpSet, OpAdd, OpRemove:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// ClearUser is the set value that empties a single user field.
const ClearUser = "-1"

// AccountRef is the wire form of a user reference inside an update operation.
type AccountRef struct {
	AccountID string `json:"accountId"`
}

// LegalOperations returns the verbs a shape accepts, in canonical order. Unknown shapes
// and arrays of unknown elements accept none.
func LegalOperations(shape Shape) []Operation {
	switch shape.Kind {
	case ShapeScalar, ShapeUser:
		return []Operation{OpSet}
	case ShapeArray:
		if shape.Elem != nil && (shape.Elem.Kind == ShapeUser || shape.Elem.Kind == ShapeScalar) {
			return []Operation{OpSet, OpAdd, OpRemove}
		}
	}
	return nil
}

// IsLegal reports whether op is among LegalOperations(shape).
func IsLegal(shape Shape, op Operation) bool {
	for _, legal := range LegalOperations(shape) {
		if legal == op {
			return true
		}
	}
	return false
}

// ValueValidator checks the wire value of one operation.
type ValueValidator func(value any) error

// ValueContract returns the validator for op on shape, or nil when op is not legal.
func ValueContract(shape Shape, op Operation) ValueValidator {
	if !IsLegal(shape, op) {
		return nil
	}
	switch shape.Kind {
	case ShapeScalar:
		return scalarValidator(shape.Scalar)
	case ShapeUser:
		return func(value any) error {
			if s, ok := value.(string); ok && s == ClearUser {
				return nil
			}
			return validateAccountRef(value)
		}
	case ShapeArray:
		if shape.Elem.Kind == ShapeUser {
			return validateAccountRef
		}
		return scalarValidator(shape.Elem.Scalar)
	}
	return nil
}

func validateAccountRef(value any) error {
	ref, ok := value.(AccountRef)
	if !ok {
		return fmt.Errorf("%w: expected an account reference, got %s", ErrValueShape, describe(value))
	}
	if strings.TrimSpace(ref.AccountID) == "" {
		return fmt.Errorf("%w: account id must not be empty", ErrValueShape)
	}
	return nil
}

var dateTimeLayouts = []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05.000-0700"}

func scalarValidator(kind ScalarKind) ValueValidator {
	return func(value any) error {
		switch kind {
		case ScalarString:
			if _, ok := value.(string); ok {
				return nil
			}
		case ScalarNumber:
			if isNumber(value) {
				return nil
			}
		case ScalarBoolean:
			if _, ok := value.(bool); ok {
				return nil
			}
		case ScalarIdentifier:
			if _, ok := value.(string); ok || isNumber(value) {
				return nil
			}
		case ScalarDate:
			if s, ok := value.(string); ok {
				if _, err := time.Parse(time.DateOnly, s); err != nil {
					return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrValueShape, s)
				}
				return nil
			}
		case ScalarDateTime:
			if s, ok := value.(string); ok {
				for _, layout := range dateTimeLayouts {
					if _, err := time.Parse(layout, s); err == nil {
						return nil
					}
				}
				return fmt.Errorf("%w: %q is not an ISO 8601 date-time", ErrValueShape, s)
			}
		}
		return fmt.Errorf("%w: expected %s, got %s", ErrValueShape, kind, describe(value))
	}
}

func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return true
	}
	return false
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case AccountRef:
		return "account reference"
	}
	if isNumber(value) {
		return "number"
	}
	return fmt.Sprintf("%T", value)
}
