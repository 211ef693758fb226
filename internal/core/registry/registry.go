// Package registry holds the immutable catalog of report specifications.
// The catalog is built once at process start from an explicit list of spec
// values; there is no runtime registration and no plugin discovery
package registry

import (
	"context"

	perr "reportsmith/internal/platform/errors"
)

// Settings carries the inference backend configuration handed to extractors
type Settings struct {
	// BaseURL is the backend base url, e.g. http://localhost:11434
	BaseURL string
	// Model is the model name, e.g. gpt-oss:latest
	Model string
}

// ExtractFunc is the extraction capability for one report type.
// It receives the markdown text plus backend settings and returns the
// structured document, or an error on any fault (transport, malformed
// model output, schema violation)
type ExtractFunc func(ctx context.Context, markdown string, set Settings) (map[string]any, error)

// Spec is the static description of one report type
type Spec struct {
	ID          string
	DisplayName string
	Description string

	// Keywords are case-insensitive substrings used for detection scoring.
	// A spec without keywords can never be auto-detected but may still be
	// selected explicitly
	Keywords []string

	Extract ExtractFunc
}

// Registry is the immutable spec catalog. Safe for unsynchronized
// concurrent reads after construction
type Registry struct {
	specs []Spec
	byID  map[string]int
}

// New validates the given specs and builds a Registry.
// It rejects empty or duplicate ids
func New(specs []Spec) (*Registry, error) {
	r := &Registry{
		specs: make([]Spec, 0, len(specs)),
		byID:  make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if s.ID == "" {
			return nil, perr.InvalidArgf("report spec with empty id")
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, perr.InvalidArgf("duplicate report spec id %q", s.ID)
		}
		r.byID[s.ID] = len(r.specs)
		r.specs = append(r.specs, s)
	}
	return r, nil
}

// MustNew is New that panics; for main wiring where the catalog is static
func MustNew(specs []Spec) *Registry {
	r, err := New(specs)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the specs in insertion order.
// The returned slice is shared; callers must not mutate it
func (r *Registry) All() []Spec { return r.specs }

// Len returns the number of registered specs
func (r *Registry) Len() int { return len(r.specs) }

// Resolve returns the spec for id or a not found error naming it
func (r *Registry) Resolve(id string) (Spec, error) {
	i, ok := r.byID[id]
	if !ok {
		return Spec{}, perr.WithField(perr.Validationf("report %q is not registered", id), "report_id")
	}
	return r.specs[i], nil
}
