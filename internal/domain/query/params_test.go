package query

import (
	"net/url"
	"testing"
)

func testConfig() Config {
	return Config{
		Entity:       "affiliate",
		FilterFields: []string{"type", "status"},
		RangeFields:  []string{"commission_rate", "created_at"},
		BoolFields:   []string{"has_referrals"},
		SearchFields: []string{"name", "code"},
		SortFields:   []string{"name", "code", "commission_rate", "created_at"},
		DefaultSort:  Sort{Field: "created_at", Desc: true},
		PerPage:      25,
		MaxPerPage:   100,
	}
}

func TestParse_PaginationClamping(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, 25},
		{"explicit", "page=3&per_page=40", 3, 40},
		{"above cap clamps to max", "per_page=150", 1, 100},
		{"zero per_page clamps to one", "per_page=0", 1, 1},
		{"negative per_page", "per_page=-5", 1, 1},
		{"page below one", "page=0", 1, 25},
		{"negative page", "page=-2", 1, 25},
		{"non-numeric falls back", "page=abc&per_page=xyz", 1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			p := Parse(values, testConfig())
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.PerPage != tt.wantPerPage {
				t.Errorf("PerPage = %d, want %d", p.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestParse_LowerMaxPerPageCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPerPage = 50

	values, _ := url.ParseQuery("per_page=150")
	p := Parse(values, cfg)
	if p.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", p.PerPage)
	}
}

func TestParse_SortFallback(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Sort
	}{
		{"no sort uses default", "", Sort{Field: "created_at", Desc: true}},
		{"allowed field asc", "sort_by=name", Sort{Field: "name", Desc: false}},
		{"allowed field desc", "sort_by=commission_rate&sort_direction=desc", Sort{Field: "commission_rate", Desc: true}},
		{"unknown field falls back", "sort_by=password&sort_direction=asc", Sort{Field: "created_at", Desc: true}},
		{"sort/order synonyms", "sort=code&order=DESC", Sort{Field: "code", Desc: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			p := Parse(values, testConfig())
			if p.Sort != tt.want {
				t.Errorf("Sort = %+v, want %+v", p.Sort, tt.want)
			}
		})
	}
}

func TestParse_Filters(t *testing.T) {
	values, _ := url.ParseQuery("type=company&status=active&unknown_key=x&has_referrals=true")
	p := Parse(values, testConfig())

	if p.Filters["type"] != "company" || p.Filters["status"] != "active" {
		t.Errorf("Filters = %v", p.Filters)
	}
	if _, ok := p.Filters["unknown_key"]; ok {
		t.Error("unknown key must be ignored")
	}
	if !p.Flags["has_referrals"] {
		t.Error("boolean flag not parsed")
	}
}

func TestParse_Ranges(t *testing.T) {
	values, _ := url.ParseQuery("commission_rate_min=10&commission_rate_max=25&created_at_from=2026-01-01")
	p := Parse(values, testConfig())

	r, ok := p.Ranges["commission_rate"]
	if !ok || r.Min == nil || r.Max == nil || *r.Min != "10" || *r.Max != "25" {
		t.Fatalf("commission_rate range = %+v", r)
	}

	// _from/_to are accepted as synonyms, one-sided ranges are legal.
	cr, ok := p.Ranges["created_at"]
	if !ok || cr.Min == nil || cr.Max != nil {
		t.Fatalf("created_at range = %+v", cr)
	}
}

func TestParse_EmptySearchMeansNoFilter(t *testing.T) {
	values, _ := url.ParseQuery("search=%20%20")
	p := Parse(values, testConfig())
	if p.Search != "" {
		t.Errorf("Search = %q, want empty", p.Search)
	}
}

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		wantLast int
	}{
		{"exact pages", 1, 10, 30, 3},
		{"partial last page", 2, 10, 31, 4},
		{"empty collection still has one page", 1, 10, 0, 1},
		{"single item", 1, 100, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPageMeta(tt.page, tt.perPage, tt.total)
			if meta.LastPage != tt.wantLast {
				t.Errorf("LastPage = %d, want %d", meta.LastPage, tt.wantLast)
			}
			if meta.Total != tt.total {
				t.Errorf("Total = %d, want %d", meta.Total, tt.total)
			}
		})
	}
}
