package orm

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// Column represents a type-safe database column reference
type Column[T any] struct {
	Name  string
	Table string
}

func (c Column[T]) String() string {
	if c.Table != "" {
		return fmt.Sprintf("%s.%s", c.Table, c.Name)
	}
	return c.Name
}

func (c Column[T]) Eq(value T) Condition {
	return Condition{condition: squirrel.Eq{c.String(): value}}
}

func (c Column[T]) NotEq(value T) Condition {
	return Condition{condition: squirrel.NotEq{c.String(): value}}
}

func (c Column[T]) In(values ...T) Condition {
	interfaces := make([]interface{}, len(values))
	for i, v := range values {
		interfaces[i] = v
	}
	return Condition{condition: squirrel.Eq{c.String(): interfaces}}
}

// InSubquery matches rows whose column value is produced by the sub-select.
// The sub-select must keep the default ? placeholders; the outer statement
// renumbers them.
func (c Column[T]) InSubquery(sub squirrel.SelectBuilder) Condition {
	subSQL, args, err := sub.ToSql()
	if err != nil {
		return Condition{err: err}
	}
	return Condition{condition: squirrel.Expr(c.String()+" IN ("+subSQL+")", args...)}
}

func (c Column[T]) IsNull() Condition {
	return Condition{condition: squirrel.Eq{c.String(): nil}}
}

// StringColumn provides string-specific operations
type StringColumn struct {
	Column[string]
}

func (c StringColumn) ILike(pattern string) Condition {
	return Condition{condition: squirrel.ILike{c.String(): pattern}}
}

// ContainsFold is a case-insensitive substring match. LIKE wildcards in the
// term are escaped so they match literally.
func (c StringColumn) ContainsFold(substring string) Condition {
	return c.ILike("%" + EscapeLike(substring) + "%")
}

// EscapeLike escapes the LIKE metacharacters using the default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NumericColumn marks numeric columns
type NumericColumn[T Numeric] struct {
	Column[T]
}

// Numeric types storable in a NumericColumn
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// BoolColumn marks boolean columns
type BoolColumn struct {
	Column[bool]
}

// ArrayColumn provides PostgreSQL array-specific operations
type ArrayColumn[T any] struct {
	Column[[]T]
}

func (c ArrayColumn[T]) Contains(value T) Condition {
	return Condition{condition: squirrel.Expr(c.String()+" @> ?", pq.Array([]T{value}))}
}

// Overlaps matches rows whose array shares at least one element with values.
func (c ArrayColumn[T]) Overlaps(values []T) Condition {
	return Condition{condition: squirrel.Expr(c.String()+" && ?", pq.Array(values))}
}

// Condition wraps squirrel conditions for type safety
type Condition struct {
	condition squirrel.Sqlizer
	err       error
}

func (c Condition) And(other Condition) Condition {
	return And(c, other)
}

func (c Condition) Or(other Condition) Condition {
	return Or(c, other)
}

func (c Condition) Not() Condition {
	return Not(c)
}

// IsZero reports a condition that carries no predicate.
func (c Condition) IsZero() bool {
	return c.condition == nil && c.err == nil
}

// Err returns an error captured while the condition was built.
func (c Condition) Err() error {
	return c.err
}

func (c Condition) ToSqlizer() squirrel.Sqlizer {
	return c.condition
}

func And(conditions ...Condition) Condition {
	sqlizers := make(squirrel.And, 0, len(conditions))
	for _, c := range conditions {
		if c.err != nil {
			return c
		}
		if c.condition != nil {
			sqlizers = append(sqlizers, c.condition)
		}
	}
	if len(sqlizers) == 0 {
		return Condition{}
	}
	return Condition{condition: sqlizers}
}

func Or(conditions ...Condition) Condition {
	sqlizers := make(squirrel.Or, 0, len(conditions))
	for _, c := range conditions {
		if c.err != nil {
			return c
		}
		if c.condition != nil {
			sqlizers = append(sqlizers, c.condition)
		}
	}
	if len(sqlizers) == 0 {
		return Condition{}
	}
	return Condition{condition: sqlizers}
}

func Not(condition Condition) Condition {
	if condition.IsZero() || condition.err != nil {
		return condition
	}
	return Condition{condition: squirrel.Expr("NOT (?)", condition.condition)}
}
