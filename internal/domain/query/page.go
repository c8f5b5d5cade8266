package query

// PageMeta is the pagination metadata returned alongside a page of items.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPageMeta computes pagination metadata.
// last_page = ceil(total / per_page), minimum 1 even when total = 0.
func NewPageMeta(page, perPage int, total int64) PageMeta {
	if perPage < 1 {
		perPage = 1
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return PageMeta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    last,
	}
}
