package service

import (
	"context"
	"fmt"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/orm"
	"github.com/eleven-am/listkeeper/internal/scope"
	"github.com/eleven-am/listkeeper/internal/store"
	"github.com/eleven-am/listkeeper/internal/update"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	base
	cost int
}

func (s *UserService) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	const op = "user.create"

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = domain.DefaultRoles()
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, s.translate(op, domain.EntityUser, err)
	}

	user, err := s.store.Users.Insert(ctx, map[string]interface{}{
		"id":            domain.NewID(),
		"full_name":     in.FullName,
		"email":         in.Email,
		"password_hash": hash,
		"roles":         roles,
		"is_active":     true,
	})
	if err != nil {
		return nil, s.translate(op, domain.EntityUser, err)
	}
	return user, nil
}

// List returns users across all owners. When roles is empty no role filter
// is applied.
func (s *UserService) List(ctx context.Context, principal domain.Principal, roles domain.Roles, page domain.Pagination, search domain.Search) ([]domain.User, error) {
	const op = "user.list"

	if err := requireElevated(op, principal); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := roles.Validate(); err != nil {
		return nil, domain.Validation(op, err.Error())
	}

	composer := scope.New().
		Roles(store.Users.Roles, roles).
		Search(search, store.Users.FullName, store.Users.Email)

	users, err := scope.Paginate(scope.Apply(s.store.Users.Query(ctx), composer), page).Find()
	if err != nil {
		return nil, s.translate(op, domain.EntityUser, err)
	}
	return users, nil
}

func (s *UserService) GetOne(ctx context.Context, principal domain.Principal, id string) (*domain.User, error) {
	const op = "user.getOne"

	if err := requireElevated(op, principal); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// FindByEmail looks a user up by address, ignoring case and surrounding
// whitespace.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "user.findByEmail"

	user, err := s.store.Users.Query(ctx).
		Where(store.Users.Email.Eq(domain.NormalizeEmail(email))).
		First()
	if err != nil {
		return nil, s.translate(op, domain.EntityUser, err)
	}
	return user, nil
}

// FindByID loads a user without any authorization check.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const op = "user.findById"

	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}
	user, err := s.store.Users.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(op, domain.EntityUser, err)
	}
	return user, nil
}

// Update merges patch into the user and records the acting principal.
func (s *UserService) Update(ctx context.Context, principal domain.Principal, id string, patch domain.UpdateUserInput) (*domain.User, error) {
	const op = "user.update"

	if err := requireElevated(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	change := userChange{patch: patch, actor: principal.ID}
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return nil, s.translate(op, domain.EntityUser, err)
		}
		change.passwordHash = hash
	}

	user, err := update.Merge(ctx, s.store.Users, id, orm.Condition{}, change, userRow)
	if err != nil {
		return nil, s.translate(op, domain.EntityUser, err)
	}
	return user, nil
}

// Block deactivates the user. The row is kept.
func (s *UserService) Block(ctx context.Context, principal domain.Principal, id string) (*domain.User, error) {
	const op = "user.block"

	if err := requireElevated(op, principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return nil, err
	}

	change := userChange{patch: domain.UpdateUserInput{IsActive: domain.Ptr(false)}, actor: principal.ID}
	user, err := update.Merge(ctx, s.store.Users, id, orm.Condition{}, change, userRow)
	if err != nil {
		return nil, s.translate(op, domain.EntityUser, err)
	}
	return user, nil
}

// Remove hard-deletes the user and reports whether a row was removed.
func (s *UserService) Remove(ctx context.Context, principal domain.Principal, id string) (bool, error) {
	const op = "user.remove"

	if err := requireElevated(op, principal); err != nil {
		return false, err
	}
	if err := domain.ValidateID("id", id); err != nil {
		return false, err
	}

	rows, err := s.store.Users.Query(ctx).Where(store.Users.ID.Eq(id)).Delete()
	if err != nil {
		return false, s.translate(op, domain.EntityUser, err)
	}
	return rows > 0, nil
}

func (s *UserService) ItemCountOf(ctx context.Context, user *domain.User) (int64, error) {
	count, err := s.counter.ItemsOwnedBy(ctx, user.ID)
	return count, s.translate("user.itemCount", domain.EntityItem, err)
}

func (s *UserService) ListCountOf(ctx context.Context, user *domain.User) (int64, error) {
	count, err := s.counter.ListsOwnedBy(ctx, user.ID)
	return count, s.translate("user.listCount", domain.EntityList, err)
}

// ItemsOf lists the items owned by user.
func (s *UserService) ItemsOf(ctx context.Context, user *domain.User, page domain.Pagination, search domain.Search) ([]domain.Item, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	composer := scope.New().
		Owner(store.Items.UserID, user.ID).
		Search(search, store.Items.Name)

	items, err := scope.Paginate(scope.Apply(s.store.Items.Query(ctx), composer), page).Find()
	if err != nil {
		return nil, s.translate("user.items", domain.EntityItem, err)
	}
	return items, nil
}

// ListsOf lists the lists owned by user.
func (s *UserService) ListsOf(ctx context.Context, user *domain.User, page domain.Pagination, search domain.Search) ([]domain.List, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	composer := scope.New().
		Owner(store.Lists.UserID, user.ID).
		Search(search, store.Lists.Name)

	lists, err := scope.Paginate(scope.Apply(s.store.Lists.Query(ctx), composer), page).Find()
	if err != nil {
		return nil, s.translate("user.lists", domain.EntityList, err)
	}
	return lists, nil
}

// LastUpdatedByOf loads the user who last modified user. It returns nil
// when nobody has.
func (s *UserService) LastUpdatedByOf(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.LastUpdatedBy == nil {
		return nil, nil
	}
	editor, err := s.store.Users.FindByID(ctx, *user.LastUpdatedBy)
	if err != nil {
		return nil, s.translate("user.lastUpdatedBy", domain.EntityUser, err)
	}
	return editor, nil
}

// PasswordMatches reports whether password is the one hashed for user.
func (s *UserService) PasswordMatches(user *domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// userChange is a user patch plus the fields the service derives itself.
type userChange struct {
	patch        domain.UpdateUserInput
	passwordHash string
	actor        string
}

func (c userChange) IsEmpty() bool {
	return c.patch.IsEmpty()
}

func (c userChange) ApplyTo(u *domain.User) {
	c.patch.ApplyTo(u)
	if c.passwordHash != "" {
		u.PasswordHash = c.passwordHash
	}
	actor := c.actor
	u.LastUpdatedBy = &actor
}

func userRow(u *domain.User) map[string]interface{} {
	return map[string]interface{}{
		"full_name":       u.FullName,
		"email":           u.Email,
		"password_hash":   u.PasswordHash,
		"roles":           u.Roles,
		"is_active":       u.IsActive,
		"last_updated_by": u.LastUpdatedBy,
	}
}
