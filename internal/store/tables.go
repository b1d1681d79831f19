package store

import "github.com/eleven-am/listkeeper/internal/orm"

const (
	TableUsers     = "users"
	TableItems     = "items"
	TableLists     = "lists"
	TableListItems = "list_items"
)

// UserColumns are the typed columns of the users table.
type UserColumns struct {
	ID            orm.Column[string]
	FullName      orm.StringColumn
	Email         orm.StringColumn
	PasswordHash  orm.Column[string]
	Roles         orm.ArrayColumn[string]
	IsActive      orm.BoolColumn
	LastUpdatedBy orm.Column[string]
}

type ItemColumns struct {
	ID       orm.Column[string]
	Name     orm.StringColumn
	Quantity orm.NumericColumn[float64]
	UserID   orm.Column[string]
}

type ListColumns struct {
	ID     orm.Column[string]
	Name   orm.StringColumn
	UserID orm.Column[string]
}

type ListItemColumns struct {
	ID        orm.Column[string]
	Quantity  orm.NumericColumn[int]
	Completed orm.BoolColumn
	ListID    orm.Column[string]
	ItemID    orm.Column[string]
}

var (
	Users = UserColumns{
		ID:            orm.Column[string]{Name: "id", Table: TableUsers},
		FullName:      orm.StringColumn{Column: orm.Column[string]{Name: "full_name", Table: TableUsers}},
		Email:         orm.StringColumn{Column: orm.Column[string]{Name: "email", Table: TableUsers}},
		PasswordHash:  orm.Column[string]{Name: "password_hash", Table: TableUsers},
		Roles:         orm.ArrayColumn[string]{Column: orm.Column[[]string]{Name: "roles", Table: TableUsers}},
		IsActive:      orm.BoolColumn{Column: orm.Column[bool]{Name: "is_active", Table: TableUsers}},
		LastUpdatedBy: orm.Column[string]{Name: "last_updated_by", Table: TableUsers},
	}

	Items = ItemColumns{
		ID:       orm.Column[string]{Name: "id", Table: TableItems},
		Name:     orm.StringColumn{Column: orm.Column[string]{Name: "name", Table: TableItems}},
		Quantity: orm.NumericColumn[float64]{Column: orm.Column[float64]{Name: "quantity", Table: TableItems}},
		UserID:   orm.Column[string]{Name: "user_id", Table: TableItems},
	}

	Lists = ListColumns{
		ID:     orm.Column[string]{Name: "id", Table: TableLists},
		Name:   orm.StringColumn{Column: orm.Column[string]{Name: "name", Table: TableLists}},
		UserID: orm.Column[string]{Name: "user_id", Table: TableLists},
	}

	ListItems = ListItemColumns{
		ID:        orm.Column[string]{Name: "id", Table: TableListItems},
		Quantity:  orm.NumericColumn[int]{Column: orm.Column[int]{Name: "quantity", Table: TableListItems}},
		Completed: orm.BoolColumn{Column: orm.Column[bool]{Name: "completed", Table: TableListItems}},
		ListID:    orm.Column[string]{Name: "list_id", Table: TableListItems},
		ItemID:    orm.Column[string]{Name: "item_id", Table: TableListItems},
	}
)

var (
	UserMetadata = orm.Metadata{
		TableName:  TableUsers,
		PrimaryKey: "id",
		Columns:    []string{"id", "full_name", "email", "password_hash", "roles", "is_active", "last_updated_by"},
	}

	ItemMetadata = orm.Metadata{
		TableName:  TableItems,
		PrimaryKey: "id",
		Columns:    []string{"id", "name", "quantity", "user_id"},
	}

	ListMetadata = orm.Metadata{
		TableName:  TableLists,
		PrimaryKey: "id",
		Columns:    []string{"id", "name", "user_id"},
	}

	ListItemMetadata = orm.Metadata{
		TableName:  TableListItems,
		PrimaryKey: "id",
		Columns:    []string{"id", "quantity", "completed", "list_id", "item_id"},
	}
)
