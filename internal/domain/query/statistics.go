package query

// Statistics holds aggregate results over an entity collection: total count,
// counts grouped by each configured categorical field, and numeric summaries.
//
// Computed over the full collection unless the caller pre-scopes it with
// Params (scoped statistics reuse the same filter composition as List).
type Statistics struct {
	Total int64 `json:"total"`

	// Groups maps group field -> field value -> count, e.g.
	// "status" -> {"active": 12, "pending": 3}.
	Groups map[string]map[string]int64 `json:"groups,omitempty"`

	// Sums and Averages map aggregate field -> value.
	// An average over an empty set is 0, not an error.
	Sums     map[string]float64 `json:"sums,omitempty"`
	Averages map[string]float64 `json:"averages,omitempty"`
}

// NewStatistics returns an empty, initialized Statistics.
func NewStatistics() Statistics {
	return Statistics{
		Groups:   make(map[string]map[string]int64),
		Sums:     make(map[string]float64),
		Averages: make(map[string]float64),
	}
}
