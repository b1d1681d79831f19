package orm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Repository provides table-scoped access for one record type. T must be a
// struct whose db tags cover Metadata.Columns.
type Repository[T any] struct {
	db                DBExecutor
	metadata          Metadata
	middlewareManager *middlewareManager
}

func NewRepository[T any](db DBExecutor, metadata Metadata) (*Repository[T], error) {
	if db == nil {
		return nil, fmt.Errorf("orm: repository for %s requires a database executor", metadata.TableName)
	}
	if err := metadata.Validate(); err != nil {
		return nil, fmt.Errorf("orm: invalid metadata: %w", err)
	}

	return &Repository[T]{
		db:       db,
		metadata: metadata,
	}, nil
}

func (r *Repository[T]) Metadata() Metadata {
	return r.metadata
}

func (r *Repository[T]) TableName() string {
	return r.metadata.TableName
}

func (r *Repository[T]) Columns() []string {
	return r.metadata.QualifiedColumns()
}

// FindByID loads one record by primary key.
func (r *Repository[T]) FindByID(ctx context.Context, id interface{}) (*T, error) {
	return r.Query(ctx).
		Where(Condition{condition: squirrel.Eq{r.metadata.PrimaryKeyColumn().String(): id}}).
		First()
}

// Insert writes one row built from column values and returns the stored row.
func (r *Repository[T]) Insert(ctx context.Context, values map[string]interface{}) (*T, error) {
	if len(values) == 0 {
		return nil, &Error{
			Op:    "insert",
			Table: r.metadata.TableName,
			Err:   fmt.Errorf("no values provided"),
		}
	}

	for column := range values {
		if !r.metadata.HasColumn(column) {
			return nil, &Error{
				Op:     "insert",
				Table:  r.metadata.TableName,
				Column: column,
				Err:    fmt.Errorf("unknown column"),
			}
		}
	}

	insertBuilder := squirrel.Insert(r.metadata.TableName).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(r.metadata.Columns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	record := new(T)
	err := r.executeQueryMiddleware(OpCreate, ctx, insertBuilder, func(middlewareCtx *MiddlewareContext) error {
		sqlQuery, args, err := insertBuilder.ToSql()
		if err != nil {
			return &Error{
				Op:    "insert",
				Table: r.metadata.TableName,
				Err:   fmt.Errorf("failed to build insert query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		if err := r.db.GetContext(ctx, record, sqlQuery, args...); err != nil {
			return ParsePostgreSQLError(err, "insert", r.metadata.TableName)
		}

		middlewareCtx.RowsAffected = 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
