// Package resource_repo provides PostgreSQL implementations for resource
// repositories. All repositories share one database; TxManager is injected
// at construction time.
package resource_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"enercore/internal/core/apperror"
	"enercore/internal/core/id"
	"enercore/internal/domain"
	"enercore/internal/domain/query"
	"enercore/internal/infrastructure/storage/postgres"
)

// BaseResourceRepo provides common CRUD, list-query and status-transition
// operations for resources. Embed this in specific repositories.
type BaseResourceRepo[T any] struct {
	txManager  *postgres.TxManager
	tableName  string
	keyColumn  string
	selectCols []string
	cfg        query.Config
	newFn      func() T
}

// NewBaseResourceRepo creates a new base resource repository.
// keyColumn is the human-readable unique key (code or number).
func NewBaseResourceRepo[T any](
	txManager *postgres.TxManager,
	tableName string,
	keyColumn string,
	selectCols []string,
	cfg query.Config,
	newFn func() T,
) *BaseResourceRepo[T] {
	return &BaseResourceRepo[T]{
		txManager:  txManager,
		tableName:  tableName,
		keyColumn:  keyColumn,
		selectCols: selectCols,
		cfg:        cfg.Normalized(),
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseResourceRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseResourceRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseResourceRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	// Filter to only include columns that exist in DB
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate(r.tableName, r.keyColumn,
				fmt.Sprintf("%v", data[r.keyColumn])).WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseResourceRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	// Immutable columns never make it into SET; version is repo-managed.
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" || col == "created_at" || col == "created_by" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

func (r *BaseResourceRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves entity by ID.
func (r *BaseResourceRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}

	return entity, nil
}

// GetByKey retrieves entity by its unique key column (code or number).
func (r *BaseResourceRepo[T]) GetByKey(ctx context.Context, key string) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{r.keyColumn: key}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, key)
		}
		return entity, fmt.Errorf("get by %s: %w", r.keyColumn, err)
	}

	return entity, nil
}

// List retrieves entities with filtering, search, sort and pagination.
// The total count is computed over the filtered set before pagination.
func (r *BaseResourceRepo[T]) List(ctx context.Context, params query.Params) (domain.ListResult[T], error) {
	var result domain.ListResult[T]

	q := r.applyParams(r.baseSelect(), params)

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy(r.orderBy(params.Sort)...).
		Limit(uint64(params.PerPage)).
		Offset(uint64(params.Offset()))

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	result.Items = []T{}
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	result.Meta = query.NewPageMeta(params.Page, params.PerPage, total)
	return result, nil
}

// applyParams composes the WHERE clause: equality filters, then range
// bounds, then search, then boolean flags. Params only ever carry fields
// the entity Config allows, and the Config is derived from column names,
// so identifiers here are never raw request input.
func (r *BaseResourceRepo[T]) applyParams(q squirrel.SelectBuilder, params query.Params) squirrel.SelectBuilder {
	valid := r.validColumns()

	for field, value := range params.Filters {
		if valid[field] {
			q = q.Where(squirrel.Eq{field: value})
		}
	}

	for field, rng := range params.Ranges {
		if !valid[field] {
			continue
		}
		// Inclusive bounds; min above max simply matches nothing.
		if rng.Min != nil {
			q = q.Where(squirrel.GtOrEq{field: *rng.Min})
		}
		if rng.Max != nil {
			q = q.Where(squirrel.LtOrEq{field: *rng.Max})
		}
	}

	if params.Search != "" && len(r.cfg.SearchFields) > 0 {
		pattern := "%" + params.Search + "%"
		or := make(squirrel.Or, 0, len(r.cfg.SearchFields))
		for _, field := range r.cfg.SearchFields {
			or = append(or, squirrel.ILike{field: pattern})
		}
		q = q.Where(or)
	}

	for field, value := range params.Flags {
		if valid[field] {
			q = q.Where(squirrel.Eq{field: value})
		}
	}

	return q
}

// orderBy builds the ORDER BY terms: the requested sort plus an id
// tiebreaker so paging is stable when the sort key repeats. IDs are
// time-ordered UUIDs, so the tiebreaker follows insertion order.
func (r *BaseResourceRepo[T]) orderBy(sort query.Sort) []string {
	field := sort.Field
	if !r.validColumns()[field] {
		field = r.cfg.DefaultSort.Field
	}

	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	terms := []string{field + " " + dir}
	if field != "id" {
		terms = append(terms, "id ASC")
	}
	return terms
}

func (r *BaseResourceRepo[T]) validColumns() map[string]bool {
	valid := make(map[string]bool, len(r.selectCols))
	for _, col := range r.selectCols {
		valid[col] = true
	}
	return valid
}

// Statistics computes aggregates over the filtered set: total count,
// counts grouped by each configured field, and configured SUM/AVG
// summaries. Aggregates over an empty set come back as zero.
func (r *BaseResourceRepo[T]) Statistics(ctx context.Context, params query.Params) (query.Statistics, error) {
	stats := query.NewStatistics()
	querier := r.querier(ctx)

	selects := []string{"COUNT(*)"}
	for _, agg := range r.cfg.Aggregates {
		switch agg.Op {
		case query.OpSum:
			selects = append(selects, fmt.Sprintf("COALESCE(SUM(%s), 0)", agg.Field))
		case query.OpAvg:
			selects = append(selects, fmt.Sprintf("COALESCE(AVG(%s), 0)", agg.Field))
		}
	}

	aggQ := r.applyParams(r.Builder().Select(selects...).From(r.tableName), params)
	aggSQL, aggArgs, err := aggQ.ToSql()
	if err != nil {
		return stats, fmt.Errorf("build statistics query: %w", err)
	}

	values := make([]float64, len(r.cfg.Aggregates))
	dest := make([]any, 0, len(values)+1)
	dest = append(dest, &stats.Total)
	for i := range values {
		dest = append(dest, &values[i])
	}
	if err := querier.QueryRow(ctx, aggSQL, aggArgs...).Scan(dest...); err != nil {
		return stats, fmt.Errorf("statistics aggregates: %w", err)
	}
	for i, agg := range r.cfg.Aggregates {
		switch agg.Op {
		case query.OpSum:
			stats.Sums[agg.Field] = values[i]
		case query.OpAvg:
			stats.Averages[agg.Field] = values[i]
		}
	}

	for _, field := range r.cfg.GroupFields {
		counts, err := r.groupCounts(ctx, field, params)
		if err != nil {
			return stats, err
		}
		stats.Groups[field] = counts
	}

	return stats, nil
}

func (r *BaseResourceRepo[T]) groupCounts(ctx context.Context, field string, params query.Params) (map[string]int64, error) {
	q := r.applyParams(
		r.Builder().
			Select(fmt.Sprintf("COALESCE(%s::text, '') AS grp", field), "COUNT(*)").
			From(r.tableName),
		params,
	).GroupBy("grp")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build group query %s: %w", field, err)
	}

	rows, err := r.querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("group by %s: %w", field, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var value string
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		counts[value] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("group rows: %w", err)
	}

	return counts, nil
}

// Exists checks if entity exists.
func (r *BaseResourceRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// ExistsByKey checks if an entity with the given key exists.
func (r *BaseResourceRepo[T]) ExistsByKey(ctx context.Context, key string) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{r.keyColumn: key}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by %s: %w", r.keyColumn, err)
	}

	return true, nil
}

// Delete performs physical removal from the database.
func (r *BaseResourceRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		// Foreign key violation (23503)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("cannot delete: record is referenced by other records").
				WithDetail("entity", r.tableName).
				WithDetail("id", entityID.String()).
				WithCause(err)
		}
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// ApplyTransition writes the new status plus side-effect fields, but only
// if the stored status still matches fromStatus. Of two racing attempts
// exactly one row update succeeds; the loser is told which status the
// record actually has.
func (r *BaseResourceRepo[T]) ApplyTransition(ctx context.Context, entityID id.ID, action, fromStatus string, fields map[string]any) error {
	valid := r.validColumns()
	set := make(map[string]any, len(fields))
	for col, val := range fields {
		if !valid[col] {
			return fmt.Errorf("transition %s writes unknown column %q", action, col)
		}
		set[col] = val
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(set).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"status": fromStatus})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build transition update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("apply transition %s on %s: %w", action, r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		// Either the record is gone or someone moved it first.
		var current string
		checkSQL, checkArgs, err := r.Builder().
			Select("status").
			From(r.tableName).
			Where(squirrel.Eq{"id": entityID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build status check: %w", err)
		}
		err = r.querier(ctx).QueryRow(ctx, checkSQL, checkArgs...).Scan(&current)
		if err == pgx.ErrNoRows {
			return apperror.NewNotFound(r.tableName, entityID.String())
		}
		if err != nil {
			return fmt.Errorf("status check: %w", err)
		}
		return apperror.NewIllegalTransition(r.cfg.Entity, action, current)
	}

	return nil
}
