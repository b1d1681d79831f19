// Package scope composes the filter predicates shared by every listing and
// the pagination applied after them.
package scope

import (
	"github.com/Masterminds/squirrel"
	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/orm"
)

// Composer accumulates predicates that are combined with AND.
type Composer struct {
	conditions []orm.Condition
}

func New() *Composer {
	return &Composer{}
}

// Owner restricts rows to those whose owner column equals ownerID.
func (c *Composer) Owner(column orm.Column[string], ownerID string) *Composer {
	c.conditions = append(c.conditions, column.Eq(ownerID))
	return c
}

// ParentOwner restricts rows to those whose parent, reached through fk, is
// owned by ownerID. The parent table is read through a sub-select.
func (c *Composer) ParentOwner(fk, parentID, parentOwner orm.Column[string], ownerID string) *Composer {
	sub := squirrel.Select(parentID.String()).
		From(parentID.Table).
		Where(squirrel.Eq{parentOwner.String(): ownerID})
	c.conditions = append(c.conditions, fk.InSubquery(sub))
	return c
}

// Search adds a case-insensitive substring match on any of the columns.
// A zero search adds nothing.
func (c *Composer) Search(search domain.Search, columns ...orm.StringColumn) *Composer {
	if search.IsZero() || len(columns) == 0 {
		return c
	}

	matches := make([]orm.Condition, len(columns))
	for i, col := range columns {
		matches[i] = col.ContainsFold(search.Text())
	}
	c.conditions = append(c.conditions, orm.Or(matches...))
	return c
}

// Roles keeps rows whose role set overlaps roles. An empty set means no
// role filtering at all.
func (c *Composer) Roles(column orm.ArrayColumn[string], roles domain.Roles) *Composer {
	if len(roles) == 0 {
		return c
	}
	c.conditions = append(c.conditions, column.Overlaps(roles.Strings()))
	return c
}

// Where adds an arbitrary predicate.
func (c *Composer) Where(condition orm.Condition) *Composer {
	c.conditions = append(c.conditions, condition)
	return c
}

// Condition returns the conjunction of everything added so far. It is the
// zero condition when nothing was added.
func (c *Composer) Condition() orm.Condition {
	return orm.And(c.conditions...)
}

// Apply adds the composed predicate to q.
func Apply[T any](q *orm.Query[T], c *Composer) *orm.Query[T] {
	return q.Where(c.Condition())
}

// Paginate bounds q. Callers validate page first; no ordering is applied.
func Paginate[T any](q *orm.Query[T], page domain.Pagination) *orm.Query[T] {
	return q.Limit(uint64(page.Limit)).Offset(uint64(page.Offset))
}
