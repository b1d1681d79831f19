// Package aggregate runs the scoped population counts. Counts only ever
// carry the owner or parent predicate; search terms never narrow them.
package aggregate

import (
	"context"

	"github.com/eleven-am/listkeeper/internal/store"
)

type Counter struct {
	store *store.Store
}

func NewCounter(s *store.Store) *Counter {
	return &Counter{store: s}
}

// ItemsOwnedBy counts the items owned by userID.
func (c *Counter) ItemsOwnedBy(ctx context.Context, userID string) (int64, error) {
	return c.store.Items.Query(ctx).Where(store.Items.UserID.Eq(userID)).Count()
}

// ListsOwnedBy counts the lists owned by userID.
func (c *Counter) ListsOwnedBy(ctx context.Context, userID string) (int64, error) {
	return c.store.Lists.Query(ctx).Where(store.Lists.UserID.Eq(userID)).Count()
}

// ListItemsOf counts the list items attached to listID.
func (c *Counter) ListItemsOf(ctx context.Context, listID string) (int64, error) {
	return c.store.ListItems.Query(ctx).Where(store.ListItems.ListID.Eq(listID)).Count()
}

// Totals is the per-table population.
type Totals struct {
	Users     int64 `json:"users"`
	Items     int64 `json:"items"`
	Lists     int64 `json:"lists"`
	ListItems int64 `json:"listItems"`
}

// All counts every table without any predicate.
func (c *Counter) All(ctx context.Context) (Totals, error) {
	var (
		t   Totals
		err error
	)
	if t.Users, err = c.store.Users.Query(ctx).Count(); err != nil {
		return Totals{}, err
	}
	if t.Items, err = c.store.Items.Query(ctx).Count(); err != nil {
		return Totals{}, err
	}
	if t.Lists, err = c.store.Lists.Query(ctx).Count(); err != nil {
		return Totals{}, err
	}
	if t.ListItems, err = c.store.ListItems.Query(ctx).Count(); err != nil {
		return Totals{}, err
	}
	return t, nil
}

