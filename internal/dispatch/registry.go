package dispatch

import (
	"context"
	"encoding/json"
)

// Descriptor advertises one tool: its unique name, a description and the JSON Schema of
// its arguments.
type Descriptor struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	InputSchema json.RawMessage `json:"inputSchema" yaml:"-"`
}

// Handler runs one tool against raw arguments. Argument validation is the handler's job.
type Handler func(ctx context.Context, args json.RawMessage) (*Result, error)

// Tool bundles a descriptor with its handler.
type Tool struct {
	Descriptor
	Handler Handler
}

// Registry is the immutable set of tools built at startup.
type Registry struct {
	tools []Tool
}

// NewRegistry builds a registry from tools in the given order. Duplicate names are kept;
// lookups return the first.
func NewRegistry(tools ...Tool) *Registry {
	copied := make([]Tool, len(tools))
	copy(copied, tools)
	return &Registry{tools: copied}
}

// List returns the descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Descriptor)
	}
	return out
}

// Lookup finds a tool by exact name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
