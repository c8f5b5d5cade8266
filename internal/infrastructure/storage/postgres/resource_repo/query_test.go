package resource_repo

import (
	"strings"
	"testing"

	"enercore/internal/domain/query"
)

func testRepo() *BaseResourceRepo[any] {
	cfg := query.Config{
		Entity:       "widget",
		FilterFields: []string{"status", "type"},
		RangeFields:  []string{"amount"},
		BoolFields:   []string{"archived"},
		SearchFields: []string{"name", "code"},
		SortFields:   []string{"name", "amount", "created_at"},
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
	}
	cols := []string{"id", "status", "version", "code", "name", "type", "amount", "archived", "created_at"}
	return NewBaseResourceRepo[any](nil, "widgets", "code", cols, cfg, func() any { return nil })
}

func TestApplyParamsEqualityFilter(t *testing.T) {
	repo := testRepo()

	q := repo.applyParams(repo.baseSelect(), query.Params{
		Filters: map[string]string{"status": "active"},
	})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "status = $1") {
		t.Errorf("missing status filter in SQL: %s", sql)
	}
	if len(args) != 1 || args[0] != "active" {
		t.Errorf("args mismatch: %v", args)
	}
}

func TestApplyParamsRangeBounds(t *testing.T) {
	repo := testRepo()
	min, max := "10", "100"

	q := repo.applyParams(repo.baseSelect(), query.Params{
		Ranges: map[string]query.Range{"amount": {Min: &min, Max: &max}},
	})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "amount >= $1") {
		t.Errorf("missing lower bound in SQL: %s", sql)
	}
	if !strings.Contains(sql, "amount <= $2") {
		t.Errorf("missing upper bound in SQL: %s", sql)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %v", args)
	}
}

func TestApplyParamsOneSidedRange(t *testing.T) {
	repo := testRepo()
	min := "10"

	q := repo.applyParams(repo.baseSelect(), query.Params{
		Ranges: map[string]query.Range{"amount": {Min: &min}},
	})

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "amount >= $1") {
		t.Errorf("missing lower bound in SQL: %s", sql)
	}
	if strings.Contains(sql, "amount <=") {
		t.Errorf("unexpected upper bound in SQL: %s", sql)
	}
}

func TestApplyParamsSearchExpandsToOR(t *testing.T) {
	repo := testRepo()

	q := repo.applyParams(repo.baseSelect(), query.Params{Search: "solar"})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "name ILIKE $1 OR code ILIKE $2") {
		t.Errorf("search should OR over configured fields: %s", sql)
	}
	for _, a := range args {
		if a != "%solar%" {
			t.Errorf("search args must be wrapped in wildcards: %v", args)
		}
	}
}

func TestApplyParamsBoolFlag(t *testing.T) {
	repo := testRepo()

	q := repo.applyParams(repo.baseSelect(), query.Params{
		Flags: map[string]bool{"archived": true},
	})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(sql, "archived = $1") {
		t.Errorf("missing flag filter in SQL: %s", sql)
	}
	if len(args) != 1 || args[0] != true {
		t.Errorf("args mismatch: %v", args)
	}
}

func TestApplyParamsUnknownColumnIgnored(t *testing.T) {
	repo := testRepo()

	// Filters normally never carry unknown fields (Parse drops them), but
	// the repo guards against callers constructing Params by hand.
	q := repo.applyParams(repo.baseSelect(), query.Params{
		Filters: map[string]string{"evil_column": "x"},
	})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if strings.Contains(sql, "evil_column") {
		t.Errorf("unknown column leaked into SQL: %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestOrderByAddsIDTiebreaker(t *testing.T) {
	repo := testRepo()

	terms := repo.orderBy(query.Sort{Field: "name", Desc: false})
	if len(terms) != 2 || terms[0] != "name ASC" || terms[1] != "id ASC" {
		t.Errorf("unexpected order terms: %v", terms)
	}

	terms = repo.orderBy(query.Sort{Field: "amount", Desc: true})
	if terms[0] != "amount DESC" {
		t.Errorf("unexpected order terms: %v", terms)
	}
}

func TestOrderByUnknownFieldFallsBack(t *testing.T) {
	repo := testRepo()

	terms := repo.orderBy(query.Sort{Field: "no_such_col", Desc: false})
	if terms[0] != "created_at ASC" {
		t.Errorf("unknown sort field should fall back to default: %v", terms)
	}
}

func TestListSQLShape(t *testing.T) {
	repo := testRepo()
	params := query.Params{
		Filters: map[string]string{"status": "active"},
		Sort:    query.Sort{Field: "name"},
		Page:    3,
		PerPage: 25,
	}

	q := repo.applyParams(repo.baseSelect(), params).
		OrderBy(repo.orderBy(params.Sort)...).
		Limit(uint64(params.PerPage)).
		Offset(uint64(params.Offset()))

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	for _, want := range []string{"ORDER BY name ASC, id ASC", "LIMIT 25", "OFFSET 50"} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in SQL: %s", want, sql)
		}
	}
}

func TestApplyTransitionRejectsUnknownColumn(t *testing.T) {
	repo := testRepo()

	valid := repo.validColumns()
	if valid["no_such_col"] {
		t.Fatal("validColumns should not contain unknown columns")
	}
	if !valid["status"] {
		t.Fatal("validColumns should contain declared columns")
	}
}
