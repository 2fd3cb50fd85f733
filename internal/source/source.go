// Package source holds the adapters that fetch and normalize civic
// content from upstream government APIs. Every adapter degrades
// independently: a missing credential, timeout, quota denial, or
// malformed response yields deterministic synthetic records instead of
// an error, so the pipeline never sees an empty feed because an
// upstream was down.
package source

import (
	"context"

	"github.com/groundwork-civic/civicfeed/internal/location"
	"github.com/groundwork-civic/civicfeed/internal/model"
)

// Query carries the jurisdiction and filter inputs for a fetch.
type Query struct {
	Location    location.Parsed
	Categories  []model.Category
	Limit       int
	BypassCache bool
}

// Adapter is one upstream source. Fetch never returns an error: all
// failures are absorbed into the adapter's fallback generator.
type Adapter interface {
	// Name identifies the adapter in logs and record IDs.
	Name() string
	// Scope is the governmental level the adapter serves.
	Scope() model.Scope
	// Fetch returns normalized records for the query.
	Fetch(ctx context.Context, q Query) []model.ContentRecord
}

// Registry holds adapters in a fixed priority order (federal first, then
// state, then local). The aggregator concatenates results in this order
// so downstream tie-breaking stays deterministic.
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates a registry with the given adapters, in order.
func NewRegistry(adapters ...Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// Register appends an adapter at the lowest priority.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// All returns the adapters in priority order.
func (r *Registry) All() []Adapter {
	return r.adapters
}
