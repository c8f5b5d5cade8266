// Package metadata exposes the declarative surface of each resource: its
// status set, action set, type enumeration and query allow-lists. Handlers
// serve enumeration endpoints straight from here, so the HTTP surface can
// never drift from the transition tables and query configurations.
package metadata

import (
	"sort"

	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

// ResourceMeta describes one registered resource.
type ResourceMeta struct {
	Name          string   `json:"name"`
	InitialStatus string   `json:"initialStatus"`
	Statuses      []string `json:"statuses"`
	Terminal      []string `json:"terminalStatuses"`
	Actions       []string `json:"actions"`
	Types         []string `json:"types,omitempty"`
	Filterable    []string `json:"filterable"`
	Sortable      []string `json:"sortable"`
	Searchable    []string `json:"searchable"`
}

// Describe derives resource metadata from its query configuration and
// transition table.
func Describe(cfg query.Config, table *transition.Table, types []string) ResourceMeta {
	cfg = cfg.Normalized()

	meta := ResourceMeta{
		Name:       cfg.Entity,
		Types:      types,
		Filterable: cfg.FilterFields,
		Sortable:   cfg.SortFields,
		Searchable: cfg.SearchFields,
	}

	if table != nil {
		meta.InitialStatus = table.Initial
		meta.Statuses = table.States()
		meta.Terminal = table.Terminal()
		meta.Actions = table.Actions()
	}

	return meta
}

// Registry holds metadata for all registered resources. Registration
// happens once during wiring; reads are lock-free afterwards.
type Registry struct {
	resources map[string]ResourceMeta
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{resources: make(map[string]ResourceMeta)}
}

// Register adds or replaces a resource description.
func (r *Registry) Register(meta ResourceMeta) {
	r.resources[meta.Name] = meta
}

// Get returns metadata for a resource by name.
func (r *Registry) Get(name string) (ResourceMeta, bool) {
	meta, ok := r.resources[name]
	return meta, ok
}

// Names returns all registered resource names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered resource description, sorted by name.
func (r *Registry) All() []ResourceMeta {
	all := make([]ResourceMeta, 0, len(r.resources))
	for _, name := range r.Names() {
		all = append(all, r.resources[name])
	}
	return all
}
