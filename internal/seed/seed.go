// Package seed resets the database and fills it with fixture data for
// development environments.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/logger"
	"github.com/eleven-am/listkeeper/internal/store"
)

const (
	DefaultListItemLimit = 15
	DefaultRandomSeed    = 1
	maxListItemQuantity  = 10
)

type UserCreator interface {
	Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
}

type ItemCreator interface {
	Create(ctx context.Context, principal domain.Principal, in domain.CreateItemInput) (*domain.Item, error)
}

type ListCreator interface {
	Create(ctx context.Context, principal domain.Principal, in domain.CreateListInput) (*domain.List, error)
}

type ListItemCreator interface {
	Create(ctx context.Context, principal domain.Principal, in domain.CreateListItemInput) (*domain.ListItem, error)
}

// Clearer is the bulk-delete primitive: it removes every row of a table.
type Clearer interface {
	Clear(ctx context.Context, table string) (int64, error)
}

// Dependencies are the collaborators the orchestrator drives.
type Dependencies struct {
	Users     UserCreator
	Items     ItemCreator
	Lists     ListCreator
	ListItems ListItemCreator
	Clearer   Clearer
	Logger    logger.Logger
}

type Config struct {
	// Production refuses every run.
	Production bool
	// DemoUserEmail picks the user that owns the lists. Empty means the
	// first fixture user.
	DemoUserEmail string
	ListItemLimit int
	RandomSeed    int64
	Fixtures      *Fixtures
}

// Result reports what a run removed and created.
type Result struct {
	Cleared   map[string]int64 `json:"cleared"`
	Users     int              `json:"users"`
	Items     int              `json:"items"`
	Lists     int              `json:"lists"`
	ListItems int              `json:"listItems"`
}

type Orchestrator struct {
	cfg  Config
	deps Dependencies
	mu   sync.Mutex
}

func New(cfg Config, deps Dependencies) (*Orchestrator, error) {
	if deps.Users == nil || deps.Items == nil || deps.Lists == nil || deps.ListItems == nil || deps.Clearer == nil {
		return nil, fmt.Errorf("seed: every dependency is required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Seed()
	}
	if cfg.ListItemLimit <= 0 {
		cfg.ListItemLimit = DefaultListItemLimit
	}
	if cfg.RandomSeed == 0 {
		cfg.RandomSeed = DefaultRandomSeed
	}
	if cfg.Fixtures == nil {
		fixtures, err := DefaultFixtures()
		if err != nil {
			return nil, err
		}
		cfg.Fixtures = fixtures
	}
	if err := cfg.Fixtures.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Fixtures.demoIndex(cfg.DemoUserEmail); err != nil {
		return nil, err
	}

	return &Orchestrator{cfg: cfg, deps: deps}, nil
}

// Execute clears every table and repopulates it. Runs are serialized: a
// call made while another is in progress fails with a conflict. The phases
// are not transactional; after a failure, run Execute again.
func (o *Orchestrator) Execute(ctx context.Context) (Result, error) {
	const op = "seed"

	if o.cfg.Production {
		return Result{}, domain.Denied(op, "seeding is not allowed in production")
	}

	if !o.mu.TryLock() {
		return Result{}, domain.Conflict(op, "", "a seed run is already in progress", nil)
	}
	defer o.mu.Unlock()

	log := o.deps.Logger
	rng := rand.New(rand.NewSource(o.cfg.RandomSeed))
	result := Result{Cleared: make(map[string]int64, len(store.ClearOrder))}

	for _, table := range store.ClearOrder {
		n, err := o.deps.Clearer.Clear(ctx, table)
		if err != nil {
			return result, fmt.Errorf("seed clear %s: %w", table, err)
		}
		result.Cleared[table] = n
	}
	log.WithField("cleared", result.Cleared).Info("tables cleared")

	users, err := o.insertUsers(ctx)
	result.Users = len(users)
	if err != nil {
		return result, fmt.Errorf("seed users: %w", err)
	}

	demoIdx, _ := o.cfg.Fixtures.demoIndex(o.cfg.DemoUserEmail)
	demo := principalOf(users[demoIdx])

	owned, created, err := o.insertItems(ctx, users, rng)
	result.Items = created
	if err != nil {
		return result, fmt.Errorf("seed items: %w", err)
	}

	lists, err := o.insertLists(ctx, demo)
	result.Lists = len(lists)
	if err != nil {
		return result, fmt.Errorf("seed lists: %w", err)
	}

	demoItems := owned[demo.ID]
	if len(demoItems) > o.cfg.ListItemLimit {
		demoItems = demoItems[:o.cfg.ListItemLimit]
	}

	result.ListItems, err = o.insertListItems(ctx, demo, lists[0], demoItems, rng)
	if err != nil {
		return result, fmt.Errorf("seed list items: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"users":      result.Users,
		"items":      result.Items,
		"lists":      result.Lists,
		"list_items": result.ListItems,
		"demo_user":  demo.ID,
	}).Info("seed completed")

	return result, nil
}

// insertUsers runs sequentially; later phases need the generated ids.
func (o *Orchestrator) insertUsers(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(o.cfg.Fixtures.Users))
	for _, f := range o.cfg.Fixtures.Users {
		user, err := o.deps.Users.Create(ctx, f.input())
		if err != nil {
			return users, fmt.Errorf("%s: %w", f.Email, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// insertItems gives every fixture item to a pseudo-random user and returns
// the created items grouped by owner, in creation order.
func (o *Orchestrator) insertItems(ctx context.Context, users []*domain.User, rng *rand.Rand) (map[string][]*domain.Item, int, error) {
	owned := make(map[string][]*domain.Item, len(users))
	created := 0
	for _, f := range o.cfg.Fixtures.Items {
		owner := principalOf(users[rng.Intn(len(users))])
		item, err := o.deps.Items.Create(ctx, owner, domain.CreateItemInput{Name: f.Name, Quantity: f.Quantity})
		if err != nil {
			return owned, created, fmt.Errorf("%s: %w", f.Name, err)
		}
		owned[owner.ID] = append(owned[owner.ID], item)
		created++
	}
	return owned, created, nil
}

func (o *Orchestrator) insertLists(ctx context.Context, demo domain.Principal) ([]*domain.List, error) {
	lists := make([]*domain.List, 0, len(o.cfg.Fixtures.Lists))
	for _, f := range o.cfg.Fixtures.Lists {
		list, err := o.deps.Lists.Create(ctx, demo, domain.CreateListInput{Name: f.Name})
		if err != nil {
			return lists, fmt.Errorf("%s: %w", f.Name, err)
		}
		lists = append(lists, list)
	}
	return lists, nil
}

func (o *Orchestrator) insertListItems(ctx context.Context, demo domain.Principal, list *domain.List, items []*domain.Item, rng *rand.Rand) (int, error) {
	created := 0
	for _, item := range items {
		_, err := o.deps.ListItems.Create(ctx, demo, domain.CreateListItemInput{
			Quantity:  rng.Intn(maxListItemQuantity) + 1,
			Completed: rng.Intn(2) == 1,
			ListID:    list.ID,
			ItemID:    item.ID,
		})
		if err != nil {
			return created, fmt.Errorf("%s: %w", item.Name, err)
		}
		created++
	}
	return created, nil
}

func principalOf(u *domain.User) domain.Principal {
	return domain.Principal{ID: u.ID, Roles: u.Roles}
}
