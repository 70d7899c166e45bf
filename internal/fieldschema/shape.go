// Package fieldschema turns the live Jira field catalog into per-field update contracts
// and builds validated update payloads from caller-supplied edits.
package fieldschema

import "fmt"

// ShapeKind tags the variant held by a Shape.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapeScalar
	ShapeUser
	ShapeArray
)

// ScalarKind is the value type of a scalar shape.
type ScalarKind string

const (
	ScalarString   ScalarKind = "string"
	ScalarNumber   ScalarKind = "number"
	ScalarBoolean  ScalarKind = "boolean"
	ScalarDateTime ScalarKind = "datetime"
	ScalarDate     ScalarKind = "date"
	// ScalarIdentifier is an option, component or version reference given as string or number.
	ScalarIdentifier ScalarKind = "identifier"
)

// Shape describes the value a field holds: a scalar, a user reference, an array of
// another shape, or something unrecognised.
type Shape struct {
	Kind   ShapeKind
	Scalar ScalarKind
	Elem   *Shape
	// Remote is the schema type reported by Jira, kept for messages.
	Remote string
}

// Scalar returns a scalar shape.
func Scalar(kind ScalarKind) Shape { return Shape{Kind: ShapeScalar, Scalar: kind, Remote: string(kind)} }

// UserRef returns the single user reference shape.
func UserRef() Shape { return Shape{Kind: ShapeUser, Remote: "user"} }

// ArrayOf returns an array shape with the given element shape.
func ArrayOf(elem Shape) Shape {
	return Shape{Kind: ShapeArray, Elem: &elem, Remote: "array"}
}

// Unknown returns the shape of a field type nothing can be built for.
func Unknown(remote string) Shape { return Shape{Kind: ShapeUnknown, Remote: remote} }

func (s Shape) String() string {
	switch s.Kind {
	case ShapeScalar:
		return string(s.Scalar)
	case ShapeUser:
		return "user"
	case ShapeArray:
		if s.Elem == nil {
			return "array"
		}
		return "array<" + s.Elem.String() + ">"
	default:
		if s.Remote == "" {
			return "unknown"
		}
		return fmt.Sprintf("unknown(%s)", s.Remote)
	}
}

// ParseShape maps a catalog schema (type, items) onto a Shape.
func ParseShape(schemaType, items string) Shape {
	if schemaType == "array" {
		switch items {
		case "user":
			return ArrayOf(UserRef())
		case "string", "number", "boolean", "datetime", "date":
			return ArrayOf(Scalar(ScalarKind(items)))
		default:
			return ArrayOf(Scalar(ScalarIdentifier))
		}
	}
	switch schemaType {
	case "string", "number", "boolean", "datetime", "date":
		return Scalar(ScalarKind(schemaType))
	case "user":
		return UserRef()
	default:
		return Unknown(schemaType)
	}
}
