package orm

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Query provides a fluent interface for building statements against one table
type Query[T any] struct {
	repo *Repository[T]
	err  error
	ctx  context.Context

	limit       *uint64
	offset      *uint64
	orderBy     []string
	whereClause squirrel.And
	joins       []string
}

func (r *Repository[T]) Query(ctx context.Context) *Query[T] {
	return &Query[T]{
		repo:        r,
		ctx:         ctx,
		whereClause: squirrel.And{},
	}
}

// Where adds a predicate; predicates are combined with AND. A zero condition
// is ignored.
func (q *Query[T]) Where(condition Condition) *Query[T] {
	if q.err != nil {
		return q
	}
	if condition.err != nil {
		q.err = condition.err
		return q
	}
	if condition.condition == nil {
		return q
	}
	q.whereClause = append(q.whereClause, condition.condition)
	return q
}

func (q *Query[T]) OrderBy(expressions ...string) *Query[T] {
	if q.err != nil {
		return q
	}
	q.orderBy = append(q.orderBy, expressions...)
	return q
}

func (q *Query[T]) Limit(limit uint64) *Query[T] {
	if q.err != nil {
		return q
	}
	q.limit = &limit
	return q
}

func (q *Query[T]) Offset(offset uint64) *Query[T] {
	if q.err != nil {
		return q
	}
	q.offset = &offset
	return q
}

// InnerJoin joins another table, e.g. InnerJoin("items", "items.id = list_items.item_id").
func (q *Query[T]) InnerJoin(table, condition string) *Query[T] {
	if q.err != nil {
		return q
	}
	q.joins = append(q.joins, fmt.Sprintf("%s ON %s", table, condition))
	return q
}

func (q *Query[T]) selectBuilder(columns ...string) squirrel.SelectBuilder {
	builder := squirrel.Select(columns...).
		From(q.repo.metadata.TableName).
		PlaceholderFormat(squirrel.Dollar)

	for _, join := range q.joins {
		builder = builder.InnerJoin(join)
	}

	if len(q.whereClause) > 0 {
		builder = builder.Where(q.whereClause)
	}

	return builder
}

func (q *Query[T]) ToSql() (string, []interface{}, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	return q.findBuilder().ToSql()
}

func (q *Query[T]) findBuilder() squirrel.SelectBuilder {
	builder := q.selectBuilder(q.repo.Columns()...)

	for _, orderBy := range q.orderBy {
		builder = builder.OrderBy(orderBy)
	}

	if q.limit != nil {
		builder = builder.Limit(*q.limit)
	}

	if q.offset != nil {
		builder = builder.Offset(*q.offset)
	}

	return builder
}

func (q *Query[T]) Find() ([]T, error) {
	if q.err != nil {
		return nil, &Error{Op: "find", Table: q.repo.metadata.TableName, Err: q.err}
	}

	records := make([]T, 0)
	finalBuilder := q.findBuilder()

	err := q.repo.executeQueryMiddleware(OpFind, q.ctx, finalBuilder, func(middlewareCtx *MiddlewareContext) error {
		sqlQuery, args, err := finalBuilder.ToSql()
		if err != nil {
			return &Error{
				Op:    "find",
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		if err := q.repo.db.SelectContext(q.ctx, &records, sqlQuery, args...); err != nil {
			return ParsePostgreSQLError(err, "find", q.repo.metadata.TableName)
		}

		middlewareCtx.RowsAffected = int64(len(records))
		return nil
	})

	return records, err
}

func (q *Query[T]) First() (*T, error) {
	q.Limit(1)
	records, err := q.Find()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, &Error{
			Op:    "first",
			Table: q.repo.metadata.TableName,
			Err:   ErrNotFound,
		}
	}

	return &records[0], nil
}

// Count ignores limit, offset and ordering.
func (q *Query[T]) Count() (int64, error) {
	if q.err != nil {
		return 0, &Error{Op: "count", Table: q.repo.metadata.TableName, Err: q.err}
	}

	countBuilder := q.selectBuilder("COUNT(*)")

	var count int64
	err := q.repo.executeQueryMiddleware(OpCount, q.ctx, countBuilder, func(middlewareCtx *MiddlewareContext) error {
		sqlQuery, args, err := countBuilder.ToSql()
		if err != nil {
			return &Error{
				Op:    "count",
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build count query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		if err := q.repo.db.GetContext(q.ctx, &count, sqlQuery, args...); err != nil {
			return ParsePostgreSQLError(err, "count", q.repo.metadata.TableName)
		}

		return nil
	})

	return count, err
}

func (q *Query[T]) Exists() (bool, error) {
	count, err := q.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes every row matching the where clause. Without predicates it
// empties the table.
func (q *Query[T]) Delete() (int64, error) {
	if q.err != nil {
		return 0, &Error{Op: "delete", Table: q.repo.metadata.TableName, Err: q.err}
	}

	deleteBuilder := squirrel.Delete(q.repo.metadata.TableName).
		PlaceholderFormat(squirrel.Dollar)

	if len(q.whereClause) > 0 {
		deleteBuilder = deleteBuilder.Where(q.whereClause)
	}

	var rowsAffected int64
	err := q.repo.executeQueryMiddleware(OpDelete, q.ctx, deleteBuilder, func(middlewareCtx *MiddlewareContext) error {
		sqlQuery, args, err := deleteBuilder.ToSql()
		if err != nil {
			return &Error{
				Op:    "delete",
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build delete query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		result, err := q.repo.db.ExecContext(q.ctx, sqlQuery, args...)
		if err != nil {
			return ParsePostgreSQLError(err, "delete", q.repo.metadata.TableName)
		}

		rowsAffected, err = affected(result, "delete", q.repo.metadata.TableName)
		middlewareCtx.RowsAffected = rowsAffected
		return err
	})

	return rowsAffected, err
}

// Update issues one UPDATE for the matching rows and reports how many rows it
// touched. It never returns the updated records.
func (q *Query[T]) Update(updates map[string]interface{}) (int64, error) {
	if q.err != nil {
		return 0, &Error{Op: "update", Table: q.repo.metadata.TableName, Err: q.err}
	}

	if len(updates) == 0 {
		return 0, &Error{
			Op:    "update",
			Table: q.repo.metadata.TableName,
			Err:   fmt.Errorf("no updates provided"),
		}
	}

	for column := range updates {
		if !q.repo.metadata.HasColumn(column) {
			return 0, &Error{
				Op:     "update",
				Table:  q.repo.metadata.TableName,
				Column: column,
				Err:    fmt.Errorf("unknown column"),
			}
		}
		if column == q.repo.metadata.PrimaryKey {
			return 0, &Error{
				Op:     "update",
				Table:  q.repo.metadata.TableName,
				Column: column,
				Err:    fmt.Errorf("primary key is immutable"),
			}
		}
	}

	updateBuilder := squirrel.Update(q.repo.metadata.TableName).
		SetMap(updates).
		PlaceholderFormat(squirrel.Dollar)

	if len(q.whereClause) > 0 {
		updateBuilder = updateBuilder.Where(q.whereClause)
	}

	var rowsAffected int64
	err := q.repo.executeQueryMiddleware(OpUpdate, q.ctx, updateBuilder, func(middlewareCtx *MiddlewareContext) error {
		sqlQuery, args, err := updateBuilder.ToSql()
		if err != nil {
			return &Error{
				Op:    "update",
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build update query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		result, err := q.repo.db.ExecContext(q.ctx, sqlQuery, args...)
		if err != nil {
			return ParsePostgreSQLError(err, "update", q.repo.metadata.TableName)
		}

		rowsAffected, err = affected(result, "update", q.repo.metadata.TableName)
		middlewareCtx.RowsAffected = rowsAffected
		return err
	})

	return rowsAffected, err
}

func affected(result sql.Result, op, table string) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, &Error{
			Op:    op,
			Table: table,
			Err:   fmt.Errorf("failed to get rows affected: %w", err),
		}
	}
	return rows, nil
}
