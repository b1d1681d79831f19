// Package update implements the two partial update strategies.
//
// Merge reads the current row, overlays the present patch fields and writes
// the result back. It is only safe for patches made of scalar fields.
//
// RelationPatch writes the patch columns directly, setting a foreign key
// only when the patch carries it, and then reads the row again. Use it for
// any patch that can reassign a relation.
//
// Neither strategy locks or versions rows; the last write wins. The write
// and the follow-up read are separate round trips.
package update

import (
	"context"
	"fmt"

	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/orm"
)

// Mergeable is a patch that can be overlaid onto an entity.
type Mergeable[T any] interface {
	IsEmpty() bool
	ApplyTo(*T)
}

// RowFunc returns the writable column values of an entity. The primary key
// must not be included.
type RowFunc[T any] func(*T) map[string]interface{}

// RelationPatcher is a patch split into scalar and foreign-key columns.
type RelationPatcher interface {
	IsEmpty() bool
	Scalars() map[string]interface{}
	Relations() map[string]string
}

// Merge applies patch to the row identified by id within scope. An empty
// patch returns the stored row without writing. A row that is absent or
// outside scope yields orm.ErrNotFound.
func Merge[T any](ctx context.Context, repo *orm.Repository[T], id string, scope orm.Condition, patch Mergeable[T], row RowFunc[T]) (*T, error) {
	pk := repo.Metadata().PrimaryKeyColumn()

	existing, err := repo.Query(ctx).Where(pk.Eq(id)).Where(scope).First()
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	merged := *existing
	patch.ApplyTo(&merged)

	rows, err := repo.Query(ctx).Where(pk.Eq(id)).Where(scope).Update(row(&merged))
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// deleted between the read and the write
		return nil, notFound("merge", repo.TableName())
	}

	return &merged, nil
}

// RelationPatch issues one UPDATE for the present scalar and relation
// columns of patch and returns the row as stored afterwards. Absent
// relations are left untouched, never cleared.
func RelationPatch[T any](ctx context.Context, repo *orm.Repository[T], id string, scope orm.Condition, patch RelationPatcher) (*T, error) {
	if patch.IsEmpty() {
		return nil, domain.Validation("update", "patch must contain at least one field")
	}

	values := patch.Scalars()
	for column, ref := range patch.Relations() {
		values[column] = ref
	}

	pk := repo.Metadata().PrimaryKeyColumn()
	rows, err := repo.Query(ctx).Where(pk.Eq(id)).Where(scope).Update(values)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, notFound("relation patch", repo.TableName())
	}

	refreshed, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload after update: %w", err)
	}
	return refreshed, nil
}

func notFound(op, table string) error {
	return &orm.Error{Op: op, Table: table, Err: orm.ErrNotFound}
}
