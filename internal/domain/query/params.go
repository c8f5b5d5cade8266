package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Range is one inclusive range filter. Bounds are kept as the raw request
// strings and bound as SQL arguments; Postgres casts them against the typed
// column. A missing bound leaves that side unbounded.
type Range struct {
	Min *string
	Max *string
}

// Params is one request's parsed query shape. Only fields declared in the
// entity Config ever make it in here; unrecognized keys are dropped during
// parsing.
type Params struct {
	Search  string
	Filters map[string]string
	Ranges  map[string]Range
	Flags   map[string]bool

	Sort    Sort
	Page    int
	PerPage int
}

// Parse builds Params from raw query values against an entity configuration.
// It never fails: malformed pagination clamps, unknown sort fields fall back
// to the default, unknown keys are ignored.
func Parse(values url.Values, cfg Config) Params {
	cfg = cfg.Normalized()

	p := Params{
		Filters: make(map[string]string),
		Ranges:  make(map[string]Range),
		Flags:   make(map[string]bool),
	}

	// Empty search means "no search filter", not a zero-result filter.
	p.Search = strings.TrimSpace(values.Get("search"))

	for _, f := range cfg.FilterFields {
		if v := values.Get(f); v != "" {
			p.Filters[f] = v
		}
	}

	for _, f := range cfg.RangeFields {
		r := Range{
			Min: firstValue(values, f+"_min", f+"_from"),
			Max: firstValue(values, f+"_max", f+"_to"),
		}
		if r.Min != nil || r.Max != nil {
			p.Ranges[f] = r
		}
	}

	for _, f := range cfg.BoolFields {
		if v := values.Get(f); v != "" {
			p.Flags[f] = v == "true" || v == "1"
		}
	}

	p.Sort = parseSort(values, cfg)
	p.Page, p.PerPage = parsePage(values, cfg)

	return p
}

// Offset computes the SQL offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func parseSort(values url.Values, cfg Config) Sort {
	field := values.Get("sort_by")
	if field == "" {
		field = values.Get("sort")
	}
	if field == "" || !cfg.SortAllowed(field) {
		return cfg.DefaultSort
	}

	dir := values.Get("sort_direction")
	if dir == "" {
		dir = values.Get("order")
	}
	return Sort{Field: field, Desc: strings.EqualFold(dir, "desc")}
}

func parsePage(values url.Values, cfg Config) (page, perPage int) {
	page = atoiDefault(values.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	perPage = atoiDefault(values.Get("per_page"), cfg.PerPage)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > cfg.MaxPerPage {
		// Silently clamped, never rejected.
		perPage = cfg.MaxPerPage
	}
	return page, perPage
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func firstValue(values url.Values, keys ...string) *string {
	for _, k := range keys {
		if v := values.Get(k); v != "" {
			return &v
		}
	}
	return nil
}
