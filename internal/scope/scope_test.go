package scope

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/orm"
	"github.com/eleven-am/listkeeper/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Composer
		expected string
		args     []interface{}
	}{
		{
			name:     "owner only",
			build:    func() *Composer { return New().Owner(store.Items.UserID, "u1") },
			expected: "(items.user_id = ?)",
			args:     []interface{}{"u1"},
		},
		{
			name: "owner and search",
			build: func() *Composer {
				return New().Owner(store.Lists.UserID, "u1").Search(domain.Search{Term: "groc"}, store.Lists.Name)
			},
			expected: "(lists.user_id = ? AND (lists.name ILIKE ?))",
			args:     []interface{}{"u1", "%groc%"},
		},
		{
			name: "blank search is omitted",
			build: func() *Composer {
				return New().Owner(store.Items.UserID, "u1").Search(domain.Search{Term: "   "}, store.Items.Name)
			},
			expected: "(items.user_id = ?)",
			args:     []interface{}{"u1"},
		},
		{
			name: "search term is trimmed",
			build: func() *Composer {
				return New().Search(domain.Search{Term: "  mil "}, store.Items.Name)
			},
			expected: "(items.name ILIKE ?)",
			args:     []interface{}{"%mil%"},
		},
		{
			name: "user search ORs both columns",
			build: func() *Composer {
				return New().Search(domain.Search{Term: "ann"}, store.Users.FullName, store.Users.Email)
			},
			expected: "((users.full_name ILIKE ? OR users.email ILIKE ?))",
			args:     []interface{}{"%ann%", "%ann%"},
		},
		{
			name: "parent owner",
			build: func() *Composer {
				return New().ParentOwner(store.ListItems.ListID, store.Lists.ID, store.Lists.UserID, "u1")
			},
			expected: "(list_items.list_id IN (SELECT lists.id FROM lists WHERE lists.user_id = ?))",
			args:     []interface{}{"u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.build().Condition().ToSqlizer().ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestComposerRoles(t *testing.T) {
	t.Run("empty role set adds no predicate", func(t *testing.T) {
		assert.True(t, New().Roles(store.Users.Roles, domain.Roles{}).Condition().IsZero())
		assert.True(t, New().Roles(store.Users.Roles, nil).Condition().IsZero())
	})

	t.Run("overlap", func(t *testing.T) {
		sql, args, err := New().Roles(store.Users.Roles, domain.Roles{domain.RoleAdmin}).Condition().ToSqlizer().ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(users.roles && ?)", sql)
		assert.Len(t, args, 1)
	})
}

func TestApplyAndPaginate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo, err := orm.NewRepository[domain.Item](sqlx.NewDb(db, "postgres"), store.ItemMetadata)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM items WHERE \(\(items\.user_id = \$1 AND \(items\.name ILIKE \$2\)\)\) LIMIT 2 OFFSET 4`).
		WithArgs("u1", "%mil%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity", "user_id"}).
			AddRow("i1", "Milk", nil, "u1"))

	composer := New().Owner(store.Items.UserID, "u1").Search(domain.Search{Term: "mil"}, store.Items.Name)
	q := Apply(repo.Query(context.Background()), composer)
	items, err := Paginate(q, domain.Pagination{Limit: 2, Offset: 4}).Find()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}
