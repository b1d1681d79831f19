// Package store binds the domain entities to their tables.
package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/logger"
	"github.com/eleven-am/listkeeper/internal/orm"
)

// Schema is the reference DDL the services expect. Applying it is left to
// whatever migration process the deployment uses.
//
//go:embed schema.sql
var Schema string

// ClearOrder lists the tables children-first, the only order in which a
// full wipe satisfies the foreign keys.
var ClearOrder = []string{TableListItems, TableLists, TableItems, TableUsers}

// Store holds one repository per entity.
type Store struct {
	Users     *orm.Repository[domain.User]
	Items     *orm.Repository[domain.Item]
	Lists     *orm.Repository[domain.List]
	ListItems *orm.Repository[domain.ListItem]

	clearers map[string]func(ctx context.Context) (int64, error)
}

// New builds the repositories over db. Every statement goes through the
// logging middleware when log is non-nil.
func New(db orm.DBExecutor, log logger.Logger) (*Store, error) {
	users, err := orm.NewRepository[domain.User](db, UserMetadata)
	if err != nil {
		return nil, fmt.Errorf("users repository: %w", err)
	}
	items, err := orm.NewRepository[domain.Item](db, ItemMetadata)
	if err != nil {
		return nil, fmt.Errorf("items repository: %w", err)
	}
	lists, err := orm.NewRepository[domain.List](db, ListMetadata)
	if err != nil {
		return nil, fmt.Errorf("lists repository: %w", err)
	}
	listItems, err := orm.NewRepository[domain.ListItem](db, ListItemMetadata)
	if err != nil {
		return nil, fmt.Errorf("list_items repository: %w", err)
	}

	if log != nil {
		mw := orm.LoggingMiddleware(log)
		users.AddMiddleware(mw)
		items.AddMiddleware(mw)
		lists.AddMiddleware(mw)
		listItems.AddMiddleware(mw)
	}

	s := &Store{
		Users:     users,
		Items:     items,
		Lists:     lists,
		ListItems: listItems,
	}
	s.clearers = map[string]func(ctx context.Context) (int64, error){
		TableUsers:     func(ctx context.Context) (int64, error) { return users.Query(ctx).Delete() },
		TableItems:     func(ctx context.Context) (int64, error) { return items.Query(ctx).Delete() },
		TableLists:     func(ctx context.Context) (int64, error) { return lists.Query(ctx).Delete() },
		TableListItems: func(ctx context.Context) (int64, error) { return listItems.Query(ctx).Delete() },
	}
	return s, nil
}

// Clear deletes every row of one table and returns how many were removed.
func (s *Store) Clear(ctx context.Context, table string) (int64, error) {
	fn, ok := s.clearers[table]
	if !ok {
		return 0, fmt.Errorf("store: unknown table %q", table)
	}
	return fn(ctx)
}
