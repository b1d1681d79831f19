package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataMatchesColumnSets(t *testing.T) {
	for _, md := range []struct {
		name    string
		columns []string
		typed   []string
	}{
		{TableUsers, UserMetadata.Columns, []string{Users.ID.Name, Users.FullName.Name, Users.Email.Name, Users.PasswordHash.Name, Users.Roles.Name, Users.IsActive.Name, Users.LastUpdatedBy.Name}},
		{TableItems, ItemMetadata.Columns, []string{Items.ID.Name, Items.Name.Name, Items.Quantity.Name, Items.UserID.Name}},
		{TableLists, ListMetadata.Columns, []string{Lists.ID.Name, Lists.Name.Name, Lists.UserID.Name}},
		{TableListItems, ListItemMetadata.Columns, []string{ListItems.ID.Name, ListItems.Quantity.Name, ListItems.Completed.Name, ListItems.ListID.Name, ListItems.ItemID.Name}},
	} {
		t.Run(md.name, func(t *testing.T) {
			assert.ElementsMatch(t, md.columns, md.typed)
		})
	}
}

func TestSchemaDeclaresEveryTable(t *testing.T) {
	for _, table := range ClearOrder {
		assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := New(sqlx.NewDb(db, "postgres"), nil)
	require.NoError(t, err)

	for i, table := range ClearOrder {
		mock.ExpectExec(`DELETE FROM ` + table + `$`).
			WillReturnResult(sqlmock.NewResult(0, int64(i)))
	}

	for i, table := range ClearOrder {
		n, err := s.Clear(context.Background(), table)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = s.Clear(context.Background(), "sessions")
	assert.Error(t, err)
}
