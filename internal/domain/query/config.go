// Package query implements the generic list-query pipeline: declarative
// filter composition, search, sort, pagination and statistics aggregation,
// parameterized by a per-entity configuration instead of per-resource code.
package query

// DefaultMaxPerPage is the platform-wide page size cap. Individual resources
// may configure a lower cap (e.g. 50 for heavy rows).
const DefaultMaxPerPage = 100

// DefaultPerPage is used when the request carries no per_page parameter.
const DefaultPerPage = 25

// Sort is a single sort field plus direction.
type Sort struct {
	Field string
	Desc  bool
}

// AggregateOp is a numeric summary operation for statistics.
type AggregateOp string

const (
	OpSum AggregateOp = "sum"
	OpAvg AggregateOp = "avg"
)

// Aggregate declares one numeric summary over a field.
type Aggregate struct {
	Field string
	Op    AggregateOp
}

// Config declares, per entity type, which fields the pipeline may touch.
// Everything outside these allow-lists is ignored (filters, flags) or falls
// back to a default (sort) - the read path never hard-fails on input shape.
type Config struct {
	// Entity name for error messages and metadata endpoints.
	Entity string

	// FilterFields are exact-match categorical fields (type, status, ...).
	FilterFields []string

	// RangeFields accept <field>_min/<field>_max (or _from/_to) bounds.
	// Bounds are inclusive; one-sided ranges are legal; min > max yields an
	// empty result, not an error.
	RangeFields []string

	// BoolFields are boolean flag filters.
	BoolFields []string

	// SearchFields are matched with OR case-insensitive substring search.
	SearchFields []string

	// SortFields is the sort allow-list. Requests outside it fall back to
	// DefaultSort without erroring.
	SortFields []string

	// DefaultSort is applied when sort_by is absent or not allowed.
	DefaultSort Sort

	// Pagination limits. Zero values fall back to the package defaults.
	PerPage    int
	MaxPerPage int

	// GroupFields are the categorical fields statistics groups counts by.
	GroupFields []string

	// Aggregates are the numeric summaries statistics computes.
	Aggregates []Aggregate
}

// Normalized returns a copy with pagination defaults filled in.
func (c Config) Normalized() Config {
	if c.PerPage <= 0 {
		c.PerPage = DefaultPerPage
	}
	if c.MaxPerPage <= 0 {
		c.MaxPerPage = DefaultMaxPerPage
	}
	if c.PerPage > c.MaxPerPage {
		c.PerPage = c.MaxPerPage
	}
	if c.DefaultSort.Field == "" {
		c.DefaultSort = Sort{Field: "created_at", Desc: true}
	}
	return c
}

// SortAllowed reports whether field is in the sort allow-list.
func (c Config) SortAllowed(field string) bool {
	for _, f := range c.SortFields {
		if f == field {
			return true
		}
	}
	return false
}
