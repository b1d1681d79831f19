package service

import (
	"context"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/scope"
	"github.com/eleven-am/listkeeper/internal/store"
	"github.com/eleven-am/listkeeper/internal/update"
)

// ListItemService manages list items. A list item is visible to a
// principal when its parent list is.
type ListItemService struct {
	base
}

func (s *ListItemService) Create(ctx context.Context, principal domain.Principal, in domain.CreateListItemInput) (*domain.ListItem, error) {
	const op = "listItem.create"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkVisible(ctx, op, principal, &in.ListID, &in.ItemID); err != nil {
		return nil, err
	}

	listItem, err := s.store.ListItems.Insert(ctx, map[string]interface{}{
		"id":        domain.NewID(),
		"quantity":  in.Quantity,
		"completed": in.Completed,
		"list_id":   in.ListID,
		"item_id":   in.ItemID,
	})
	if err != nil {
		return nil, s.translate(op, domain.EntityListItem, err)
	}
	return listItem, nil
}

// List pages through the items of one list. A list the principal cannot
// see yields an empty page.
func (s *ListItemService) List(ctx context.Context, principal domain.Principal, listID string, page domain.Pagination, search domain.Search) ([]domain.ListItem, error) {
	const op = "listItem.list"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("listId", listID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	q := s.store.ListItems.Query(ctx)
	if !search.IsZero() {
		q = q.InnerJoin(store.TableItems, store.Items.ID.String()+" = "+store.ListItems.ItemID.String())
	}

	composer := visibleListItems(principal).
		Where(store.ListItems.ListID.Eq(listID)).
		Search(search, store.Items.Name)

	listItems, err := scope.Paginate(scope.Apply(q, composer), page).Find()
	if err != nil {
		return nil, s.translate(op, domain.EntityListItem, err)
	}
	return listItems, nil
}

func (s *ListItemService) GetOne(ctx context.Context, principal domain.Principal, id string) (*domain.ListItem, error) {
	const op = "listItem.getOne"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}

	listItem, err := scope.Apply(s.store.ListItems.Query(ctx), visibleListItems(principal)).
		Where(store.ListItems.ID.Eq(id)).
		First()
	if err != nil {
		return nil, s.translate(op, domain.EntityListItem, err)
	}
	return listItem, nil
}

// Update rewrites the supplied columns, including a reassigned list or
// item, and returns the row as stored afterwards.
func (s *ListItemService) Update(ctx context.Context, principal domain.Principal, id string, patch domain.UpdateListItemInput) (*domain.ListItem, error) {
	const op = "listItem.update"

	if err := validatePrincipal(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkVisible(ctx, op, principal, patch.ListID, patch.ItemID); err != nil {
		return nil, err
	}

	listItem, err := update.RelationPatch(ctx, s.store.ListItems, id, visibleListItems(principal).Condition(), patch)
	if err != nil {
		return nil, s.translate(op, domain.EntityListItem, err)
	}
	return listItem, nil
}

func (s *ListItemService) Remove(ctx context.Context, principal domain.Principal, id string) (bool, error) {
	const op = "listItem.remove"

	if err := validatePrincipal(op, principal); err != nil {
		return false, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return false, err
	}

	rows, err := scope.Apply(s.store.ListItems.Query(ctx), visibleListItems(principal)).
		Where(store.ListItems.ID.Eq(id)).
		Delete()
	if err != nil {
		return false, s.translate(op, domain.EntityListItem, err)
	}
	return rows > 0, nil
}

// CountOf counts the list items of listID.
func (s *ListItemService) CountOf(ctx context.Context, listID string) (int64, error) {
	if err := domain.ValidateID("listId", listID); err != nil {
		return 0, err
	}
	count, err := s.counter.ListItemsOf(ctx, listID)
	return count, s.translate("listItem.count", domain.EntityListItem, err)
}

// ListOf loads the parent list of listItem.
func (s *ListItemService) ListOf(ctx context.Context, listItem *domain.ListItem) (*domain.List, error) {
	list, err := s.store.Lists.FindByID(ctx, listItem.ListID)
	if err != nil {
		return nil, s.translate("listItem.list", domain.EntityList, err)
	}
	return list, nil
}

// ItemOf loads the item listItem points at.
func (s *ListItemService) ItemOf(ctx context.Context, listItem *domain.ListItem) (*domain.Item, error) {
	item, err := s.store.Items.FindByID(ctx, listItem.ItemID)
	if err != nil {
		return nil, s.translate("listItem.item", domain.EntityItem, err)
	}
	return item, nil
}

// checkVisible fails with NotFound when a referenced list or item is not
// owned by the principal. Nil ids are skipped.
func (s *ListItemService) checkVisible(ctx context.Context, op string, principal domain.Principal, listID, itemID *string) error {
	if listID != nil {
		ok, err := scope.Apply(s.store.Lists.Query(ctx), ownedLists(principal)).
			Where(store.Lists.ID.Eq(*listID)).
			Exists()
		if err != nil {
			return s.translate(op, domain.EntityList, err)
		}
		if !ok {
			return domain.NotFound(op, domain.EntityList)
		}
	}

	if itemID != nil {
		ok, err := scope.Apply(s.store.Items.Query(ctx), ownedItems(principal)).
			Where(store.Items.ID.Eq(*itemID)).
			Exists()
		if err != nil {
			return s.translate(op, domain.EntityItem, err)
		}
		if !ok {
			return domain.NotFound(op, domain.EntityItem)
		}
	}
	return nil
}

func visibleListItems(principal domain.Principal) *scope.Composer {
	return scope.New().ParentOwner(store.ListItems.ListID, store.Lists.ID, store.Lists.UserID, principal.ID)
}
