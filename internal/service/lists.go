package service

import (
	"context"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/scope"
	"github.com/eleven-am/listkeeper/internal/store"
	"github.com/eleven-am/listkeeper/internal/update"
)

// ListService manages lists owned by the principal.
type ListService struct {
	base
}

func (s *ListService) Create(ctx context.Context, principal domain.Principal, in domain.CreateListInput) (*domain.List, error) {
	const op = "list.create"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	list, err := s.store.Lists.Insert(ctx, map[string]interface{}{
		"id":      domain.NewID(),
		"name":    in.Name,
		"user_id": principal.ID,
	})
	if err != nil {
		return nil, s.translate(op, domain.EntityList, err)
	}
	return list, nil
}

func (s *ListService) List(ctx context.Context, principal domain.Principal, page domain.Pagination, search domain.Search) ([]domain.List, error) {
	const op = "list.list"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	composer := ownedLists(principal).Search(search, store.Lists.Name)
	lists, err := scope.Paginate(scope.Apply(s.store.Lists.Query(ctx), composer), page).Find()
	if err != nil {
		return nil, s.translate(op, domain.EntityList, err)
	}
	return lists, nil
}

func (s *ListService) GetOne(ctx context.Context, principal domain.Principal, id string) (*domain.List, error) {
	const op = "list.getOne"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}

	list, err := scope.Apply(s.store.Lists.Query(ctx), ownedLists(principal)).
		Where(store.Lists.ID.Eq(id)).
		First()
	if err != nil {
		return nil, s.translate(op, domain.EntityList, err)
	}
	return list, nil
}

func (s *ListService) Update(ctx context.Context, principal domain.Principal, id string, patch domain.UpdateListInput) (*domain.List, error) {
	const op = "list.update"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	list, err := update.Merge(ctx, s.store.Lists, id, ownedLists(principal).Condition(), patch, listRow)
	if err != nil {
		return nil, s.translate(op, domain.EntityList, err)
	}
	return list, nil
}

func (s *ListService) Remove(ctx context.Context, principal domain.Principal, id string) (bool, error) {
	const op = "list.remove"

	if err := validatePrincipal(op, principal); err != nil {
		return false, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return false, err
	}

	rows, err := scope.Apply(s.store.Lists.Query(ctx), ownedLists(principal)).
		Where(store.Lists.ID.Eq(id)).
		Delete()
	if err != nil {
		return false, s.translate(op, domain.EntityList, err)
	}
	return rows > 0, nil
}

// ItemsOf pages through the list items of list. The search term matches
// the name of the linked item.
func (s *ListService) ItemsOf(ctx context.Context, list *domain.List, page domain.Pagination, search domain.Search) ([]domain.ListItem, error) {
	const op = "list.items"

	if err := page.Validate(); err != nil {
		return nil, err
	}

	q := s.store.ListItems.Query(ctx)
	if !search.IsZero() {
		q = q.InnerJoin(store.TableItems, store.Items.ID.String()+" = "+store.ListItems.ItemID.String())
	}

	composer := scope.New().
		Where(store.ListItems.ListID.Eq(list.ID)).
		Search(search, store.Items.Name)

	listItems, err := scope.Paginate(scope.Apply(q, composer), page).Find()
	if err != nil {
		return nil, s.translate(op, domain.EntityListItem, err)
	}
	return listItems, nil
}

// TotalItemsOf counts every list item of list regardless of any search.
func (s *ListService) TotalItemsOf(ctx context.Context, list *domain.List) (int64, error) {
	count, err := s.counter.ListItemsOf(ctx, list.ID)
	return count, s.translate("list.totalItems", domain.EntityListItem, err)
}

// Count returns how many lists userID owns.
func (s *ListService) Count(ctx context.Context, userID string) (int64, error) {
	if err := domain.ValidateID("userId", userID); err != nil {
		return 0, err
	}
	count, err := s.counter.ListsOwnedBy(ctx, userID)
	return count, s.translate("list.count", domain.EntityList, err)
}

func ownedLists(principal domain.Principal) *scope.Composer {
	return scope.New().Owner(store.Lists.UserID, principal.ID)
}

func listRow(l *domain.List) map[string]interface{} {
	return map[string]interface{}{"name": l.Name}
}
