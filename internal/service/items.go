package service

import (
	"context"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/scope"
	"github.com/eleven-am/listkeeper/internal/store"
	"github.com/eleven-am/listkeeper/internal/update"
)

// ItemService manages items. Every operation is limited to the items the
// principal owns.
type ItemService struct {
	base
}

func (s *ItemService) Create(ctx context.Context, principal domain.Principal, in domain.CreateItemInput) (*domain.Item, error) {
	const op = "item.create"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item, err := s.store.Items.Insert(ctx, map[string]interface{}{
		"id":       domain.NewID(),
		"name":     in.Name,
		"quantity": in.Quantity,
		"user_id":  principal.ID,
	})
	if err != nil {
		return nil, s.translate(op, domain.EntityItem, err)
	}
	return item, nil
}

func (s *ItemService) List(ctx context.Context, principal domain.Principal, page domain.Pagination, search domain.Search) ([]domain.Item, error) {
	const op = "item.list"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	composer := ownedItems(principal).Search(search, store.Items.Name)
	items, err := scope.Paginate(scope.Apply(s.store.Items.Query(ctx), composer), page).Find()
	if err != nil {
		return nil, s.translate(op, domain.EntityItem, err)
	}
	return items, nil
}

func (s *ItemService) GetOne(ctx context.Context, principal domain.Principal, id string) (*domain.Item, error) {
	const op = "item.getOne"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}

	item, err := scope.Apply(s.store.Items.Query(ctx), ownedItems(principal)).
		Where(store.Items.ID.Eq(id)).
		First()
	if err != nil {
		return nil, s.translate(op, domain.EntityItem, err)
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, principal domain.Principal, id string, patch domain.UpdateItemInput) (*domain.Item, error) {
	const op = "item.update"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	item, err := update.Merge(ctx, s.store.Items, id, ownedItems(principal).Condition(), patch, itemRow)
	if err != nil {
		return nil, s.translate(op, domain.EntityItem, err)
	}
	return item, nil
}

func (s *ItemService) Remove(ctx context.Context, principal domain.Principal, id string) (bool, error) {
	const op = "item.remove"

	if err := validatePrincipal(op, principal); err != nil {
		return false, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return false, err
	}

	rows, err := scope.Apply(s.store.Items.Query(ctx), ownedItems(principal)).
		Where(store.Items.ID.Eq(id)).
		Delete()
	if err != nil {
		return false, s.translate(op, domain.EntityItem, err)
	}
	return rows > 0, nil
}

// Count returns how many items userID owns.
func (s *ItemService) Count(ctx context.Context, userID string) (int64, error) {
	if err := domain.ValidateID("userId", userID); err != nil {
		return 0, err
	}
	count, err := s.counter.ItemsOwnedBy(ctx, userID)
	return count, s.translate("item.count", domain.EntityItem, err)
}

func ownedItems(principal domain.Principal) *scope.Composer {
	return scope.New().Owner(store.Items.UserID, principal.ID)
}

func itemRow(i *domain.Item) map[string]interface{} {
	return map[string]interface{}{
		"name":     i.Name,
		"quantity": i.Quantity,
	}
}
