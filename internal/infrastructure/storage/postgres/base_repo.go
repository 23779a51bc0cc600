package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// BaseRepo provides the CRUD statements shared by every table-backed repository.
// Column lists come from the "db" tags of T; embed it in concrete repositories.
type BaseRepo[T any] struct {
	txm        *TxManager
	tableName  string
	entityName string
	selectCols []string
	searchCols []string
}

// NewBaseRepo creates a base repository for table. searchCols are matched
// with ILIKE by ListFilter.Search.
func NewBaseRepo[T any](txm *TxManager, tableName, entityName string, searchCols ...string) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		tableName:  tableName,
		entityName: entityName,
		selectCols: ExtractDBColumns[T](),
		searchCols: searchCols,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the querier bound to ctx.
func (r *BaseRepo[T]) Querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// TableName returns the backing table.
func (r *BaseRepo[T]) TableName() string {
	return r.tableName
}

// Columns returns the mapped column names in struct order.
func (r *BaseRepo[T]) Columns() []string {
	return r.selectCols
}

// EntityName is used in NotFound and Conflict errors.
func (r *BaseRepo[T]) EntityName() string {
	return r.entityName
}

// GetReturning runs a statement ending in RETURNING and scans the single row.
// key is used in the NotFound error when no row is returned.
func (r *BaseRepo[T]) GetReturning(ctx context.Context, q squirrel.Sqlizer, key any) (*T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build statement: %w", err)
	}

	entity := new(T)
	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.entityName, key)
		}
		return nil, MapError(err, r.entityName, "update")
	}
	return entity, nil
}

// SelectQuery returns SELECT <columns> FROM <table>.
func (r *BaseRepo[T]) SelectQuery() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// Insert writes entity using its "db" tags.
func (r *BaseRepo[T]) Insert(ctx context.Context, entity *T) error {
	data := r.columnsOf(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %s", r.entityName)
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return MapError(err, r.entityName, "insert")
	}
	return nil
}

// UpdateQuery returns UPDATE <table> SET <columns> WHERE id = ... RETURNING <all columns>.
// Only the listed columns are written, with values taken from entity;
// id and created_at are never updated.
func (r *BaseRepo[T]) UpdateQuery(entityID id.ID, entity *T, columns []string) (squirrel.UpdateBuilder, error) {
	data := r.columnsOf(entity)
	set := make(map[string]any, len(columns))
	for _, col := range columns {
		if col == "id" || col == "created_at" {
			continue
		}
		val, ok := data[col]
		if !ok {
			return squirrel.UpdateBuilder{}, fmt.Errorf("unknown column %q for %s", col, r.entityName)
		}
		set[col] = val
	}
	if len(set) == 0 {
		return squirrel.UpdateBuilder{}, fmt.Errorf("no columns to update for %s", r.entityName)
	}

	return r.Builder().
		Update(r.tableName).
		SetMap(set).
		Where(squirrel.Eq{"id": entityID}).
		Suffix("RETURNING " + strings.Join(r.selectCols, ", ")), nil
}

// UpdateColumns writes columns of entity to the row with entityID and
// reloads entity from the stored row, so concurrent changes to other
// columns show up in the result instead of being overwritten.
func (r *BaseRepo[T]) UpdateColumns(ctx context.Context, entityID id.ID, entity *T, columns []string) error {
	q, err := r.UpdateQuery(entityID, entity, columns)
	if err != nil {
		return err
	}
	fresh, err := r.GetReturning(ctx, q, entityID.String())
	if err != nil {
		return err
	}
	*entity = *fresh
	return nil
}

// GetOne returns the first row matching q.
// key is used in the NotFound error when no row matches.
func (r *BaseRepo[T]) GetOne(ctx context.Context, q squirrel.SelectBuilder, key any) (*T, error) {
	sql, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entity := new(T)
	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.entityName, key)
		}
		return nil, MapError(err, r.entityName, "get")
	}
	return entity, nil
}

// GetByID retrieves entity by ID.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID id.ID) (*T, error) {
	return r.GetOne(ctx, r.SelectQuery().Where(squirrel.Eq{"id": entityID}), entityID.String())
}

// SelectAll returns every row matching q.
func (r *BaseRepo[T]) SelectAll(ctx context.Context, q squirrel.SelectBuilder) ([]*T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]*T, 0)
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, MapError(err, r.entityName, "select")
	}
	return items, nil
}

// ListQuery applies search to q. Exposed for SQL tests.
func (r *BaseRepo[T]) ListQuery(q squirrel.SelectBuilder, filter domain.ListFilter) squirrel.SelectBuilder {
	if filter.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}
	return q
}

// List returns one page of rows matching q and filter plus the total count.
func (r *BaseRepo[T]) List(ctx context.Context, q squirrel.SelectBuilder, filter domain.ListFilter) (domain.ListResult[*T], error) {
	result := domain.EmptyResult[*T](filter)
	q = r.ListQuery(q, filter)

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, MapError(err, r.entityName, "count")
	}

	orderBy, err := r.ParseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	items, err := r.SelectAll(ctx, q)
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

// ParseOrderBy validates "col" / "-col" against the known columns.
func (r *BaseRepo[T]) ParseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "created_at DESC", nil
	}

	direction := "ASC"
	col := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		col = strings.TrimPrefix(orderBy, "-")
	}

	for _, c := range r.selectCols {
		if c == col {
			return col + " " + direction, nil
		}
	}
	return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
}

// Delete removes the row physically. Returns false when nothing matched.
func (r *BaseRepo[T]) Delete(ctx context.Context, entityID id.ID) (bool, error) {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, MapError(err, r.entityName, "delete")
	}
	return result.RowsAffected() > 0, nil
}

func (r *BaseRepo[T]) columnsOf(entity *T) map[string]any {
	data := StructToMap(entity)
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	return filtered
}
