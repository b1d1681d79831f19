package orm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eleven-am/listkeeper/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	UserID string `db:"user_id"`
}

func createTestItemMetadata() Metadata {
	return Metadata{
		TableName:  "items",
		PrimaryKey: "id",
		Columns:    []string{"id", "name", "user_id"},
	}
}

func newTestRepo(t *testing.T) (*Repository[testItem], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository[testItem](sqlx.NewDb(db, "postgres"), createTestItemMetadata())
	require.NoError(t, err)
	return repo, mock
}

func TestNewRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	sqlxDB := sqlx.NewDb(db, "postgres")

	t.Run("nil executor", func(t *testing.T) {
		_, err := NewRepository[testItem](nil, createTestItemMetadata())
		assert.Error(t, err)
	})

	t.Run("missing primary key", func(t *testing.T) {
		md := createTestItemMetadata()
		md.PrimaryKey = ""
		_, err := NewRepository[testItem](sqlxDB, md)
		assert.ErrorIs(t, err, ErrNoPrimaryKey)
	})

	t.Run("primary key not a column", func(t *testing.T) {
		md := createTestItemMetadata()
		md.PrimaryKey = "uuid"
		_, err := NewRepository[testItem](sqlxDB, md)
		assert.Error(t, err)
	})
}

func TestQueryFind(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	owner := Column[string]{Name: "user_id", Table: "items"}
	name := StringColumn{Column: Column[string]{Name: "name", Table: "items"}}

	t.Run("scoped search with pagination", func(t *testing.T) {
		mock.ExpectQuery(`SELECT items\.id, items\.name, items\.user_id FROM items WHERE \(items\.user_id = \$1 AND items\.name ILIKE \$2\) ORDER BY items\.name ASC LIMIT 10 OFFSET 20`).
			WithArgs("u1", "%mil%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}).
				AddRow("i1", "Milk", "u1"))

		items, err := repo.Query(ctx).
			Where(owner.Eq("u1")).
			Where(name.ContainsFold("mil")).
			OrderBy("items.name ASC").
			Limit(10).
			Offset(20).
			Find()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Milk", items[0].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero conditions leave no where clause", func(t *testing.T) {
		mock.ExpectQuery(`SELECT items\.id, items\.name, items\.user_id FROM items$`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}))

		items, err := repo.Query(ctx).Where(Condition{}).Find()
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("join", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM items INNER JOIN list_items ON list_items\.item_id = items\.id WHERE \(list_items\.list_id = \$1\)`).
			WithArgs("l1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}))

		listID := Column[string]{Name: "list_id", Table: "list_items"}
		_, err := repo.Query(ctx).
			InnerJoin("list_items", "list_items.item_id = items.id").
			Where(listID.Eq("l1")).
			Find()
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("condition error aborts without a round trip", func(t *testing.T) {
		_, err := repo.Query(ctx).Where(Condition{err: errors.New("bad subquery")}).Find()
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryFindByID(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM items WHERE \(items\.id = \$1\) LIMIT 1`).
			WithArgs("i1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}).AddRow("i1", "Milk", "u1"))

		item, err := repo.FindByID(ctx, "i1")
		require.NoError(t, err)
		assert.Equal(t, "u1", item.UserID)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM items WHERE \(items\.id = \$1\) LIMIT 1`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}))

		_, err := repo.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryInsert(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	t.Run("returns stored row", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO items \(id,name,user_id\) VALUES \(\$1,\$2,\$3\) RETURNING id, name, user_id`).
			WithArgs("i1", "Milk", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}).AddRow("i1", "Milk", "u1"))

		item, err := repo.Insert(ctx, map[string]interface{}{"id": "i1", "name": "Milk", "user_id": "u1"})
		require.NoError(t, err)
		assert.Equal(t, "Milk", item.Name)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := repo.Insert(ctx, map[string]interface{}{"colour": "red"})
		var ormErr *Error
		require.True(t, errors.As(err, &ormErr))
		assert.Equal(t, "colour", ormErr.Column)
	})

	t.Run("empty values", func(t *testing.T) {
		_, err := repo.Insert(ctx, nil)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryCount(t *testing.T) {
	repo, mock := newTestRepo(t)
	owner := Column[string]{Name: "user_id", Table: "items"}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items WHERE \(items\.user_id = \$1\)$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Query(context.Background()).
		Where(owner.Eq("u1")).
		Limit(1).
		Offset(5).
		Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryUpdate(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	idCol := repo.Metadata().PrimaryKeyColumn()

	t.Run("update with where clause", func(t *testing.T) {
		mock.ExpectExec(`UPDATE items SET name = \$1 WHERE \(items\.id = \$2\)`).
			WithArgs("Oat milk", "i1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Query(ctx).Where(idCol.Eq("i1")).Update(map[string]interface{}{"name": "Oat milk"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("no matching records", func(t *testing.T) {
		mock.ExpectExec(`UPDATE items SET name = \$1 WHERE \(items\.id = \$2\)`).
			WithArgs("x", "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.Query(ctx).Where(idCol.Eq("missing")).Update(map[string]interface{}{"name": "x"})
		require.NoError(t, err)
		assert.Zero(t, rows)
	})

	t.Run("primary key is rejected", func(t *testing.T) {
		_, err := repo.Query(ctx).Where(idCol.Eq("i1")).Update(map[string]interface{}{"id": "i2"})
		assert.Error(t, err)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := repo.Query(ctx).Update(map[string]interface{}{})
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryDelete(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	t.Run("scoped", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM items WHERE \(items\.id = \$1 AND items\.user_id = \$2\)`).
			WithArgs("i1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Query(ctx).
			Where(repo.Metadata().PrimaryKeyColumn().Eq("i1")).
			Where(Column[string]{Name: "user_id", Table: "items"}.Eq("u1")).
			Delete()
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("whole table", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM items$`).
			WillReturnResult(sqlmock.NewResult(0, 4))

		rows, err := repo.Query(ctx).Delete()
		require.NoError(t, err)
		assert.Equal(t, int64(4), rows)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { logger.Init(logger.Config{Level: "warn", Format: "console"}) })

	repo, mock := newTestRepo(t)
	repo.AddMiddleware(LoggingMiddleware(logger.Get()))

	mock.ExpectExec(`DELETE FROM items`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Query(context.Background()).Delete()
	require.ErrorIs(t, err, ErrConnectionFailed)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "delete", entry["op"])
	assert.Equal(t, "items", entry["table"])
	assert.Equal(t, "DELETE FROM items", entry["sql"])
}
