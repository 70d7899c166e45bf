package fieldschema

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/jira"
)

// FieldDescriptor is one catalog entry reduced to what update synthesis needs.
type FieldDescriptor struct {
	ID     string
	Name   string
	Custom bool
	Shape  Shape
}

// FieldLister is the slice of the Jira client the catalog fetcher uses.
type FieldLister interface {
	ListFields(ctx context.Context) ([]jira.Field, error)
}

// FetchCatalog retrieves the live field catalog. The result is never cached; each edit
// fetches its own copy.
func FetchCatalog(ctx context.Context, lister FieldLister) ([]FieldDescriptor, error) {
	fields, err := lister.ListFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogFetch, err)
	}

	catalog := make([]FieldDescriptor, 0, len(fields))
	for _, f := range fields {
		shape := Unknown("")
		if f.Schema != nil {
			shape = ParseShape(f.Schema.Type, f.Schema.Items)
		}
		catalog = append(catalog, FieldDescriptor{ID: f.ID, Name: f.Name, Custom: f.Custom, Shape: shape})
	}
	log.Debug().Int("fields", len(catalog)).Msg("Fetched field catalog")
	return catalog, nil
}

// FindByNames returns, in catalog order, every field whose display name matches one of
// names case-insensitively. Fields sharing a display name are all returned.
func FindByNames(catalog []FieldDescriptor, names []string) ([]FieldDescriptor, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = struct{}{}
	}

	var matched []FieldDescriptor
	for _, f := range catalog {
		if _, ok := wanted[strings.ToLower(f.Name)]; ok {
			matched = append(matched, f)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingFields, strings.Join(names, ", "))
	}
	return matched, nil
}

// resolve returns the first field in matched whose name equals name case-insensitively.
func resolve(matched []FieldDescriptor, name string) (FieldDescriptor, bool) {
	for _, f := range matched {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
