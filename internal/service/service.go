// Package service exposes the entity operations. Every method validates its
// input before touching storage and returns *domain.Error values only.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eleven-am/listkeeper/internal/aggregate"
	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/logger"
	"github.com/eleven-am/listkeeper/internal/orm"
	"github.com/eleven-am/listkeeper/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Config holds service settings.
type Config struct {
	BcryptCost int
}

func DefaultConfig() Config {
	return Config{BcryptCost: bcrypt.DefaultCost}
}

// Services bundles the four entity services over one store.
type Services struct {
	Users     *UserService
	Items     *ItemService
	Lists     *ListService
	ListItems *ListItemService
}

func New(s *store.Store, cfg Config, log logger.Logger) *Services {
	if log == nil {
		log = logger.Service()
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	b := base{store: s, counter: aggregate.NewCounter(s), log: log}
	return &Services{
		Users:     &UserService{base: b, cost: cfg.BcryptCost},
		Items:     &ItemService{base: b},
		Lists:     &ListService{base: b},
		ListItems: &ListItemService{base: b},
	}
}

type base struct {
	store   *store.Store
	counter *aggregate.Counter
	log     logger.Logger
}

// translate maps storage errors onto the domain taxonomy. Unexpected
// failures are logged in full and returned opaque.
func (b base) translate(op, entity string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}

	switch {
	case errors.Is(err, orm.ErrNotFound):
		return domain.NotFound(op, entity)
	case errors.Is(err, orm.ErrDuplicateKey):
		detail := strings.TrimPrefix(orm.DetailOf(err), "Key ")
		if detail == "" {
			detail = entity + " already exists"
		}
		return domain.Conflict(op, entity, detail, err)
	case errors.Is(err, orm.ErrForeignKey):
		if failedOp(err) == string(orm.OpDelete) {
			return domain.Conflict(op, entity, entity+" is still referenced by other rows", err)
		}
		return domain.Validation(op, "referenced row does not exist")
	case errors.Is(err, orm.ErrCheckConstraint), errors.Is(err, orm.ErrNotNull):
		return domain.Validation(op, "value violates a storage constraint")
	}

	b.log.WithError(err).WithFields(map[string]interface{}{
		"op":        op,
		"entity":    entity,
		"retryable": orm.IsRetryable(err),
	}).Error("unexpected storage failure")
	return domain.Internal(op, entity, err)
}

// failedOp names the orm operation behind err, or "" when err did not come
// from the orm.
func failedOp(err error) string {
	var ormErr *orm.Error
	if errors.As(err, &ormErr) {
		return ormErr.Op
	}
	return ""
}

func requireElevated(op string, principal domain.Principal) error {
	if !principal.IsElevated() {
		return domain.Forbidden(op, fmt.Sprintf("requires one of the roles %s, %s", domain.RoleAdmin, domain.RoleSuperUser))
	}
	return nil
}

func validatePrincipal(op string, principal domain.Principal) error {
	if err := domain.ValidateID("principal", principal.ID); err != nil {
		return domain.Forbidden(op, "unresolved principal")
	}
	return nil
}
