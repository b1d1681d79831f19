package domain

// User is an account. Relations are exposed as identifiers only.
type User struct {
	ID            string  `db:"id" json:"id"`
	FullName      string  `db:"full_name" json:"fullName"`
	Email         string  `db:"email" json:"email"`
	PasswordHash  string  `db:"password_hash" json:"-"`
	Roles         Roles   `db:"roles" json:"roles"`
	IsActive      bool    `db:"is_active" json:"isActive"`
	LastUpdatedBy *string `db:"last_updated_by" json:"lastUpdatedBy,omitempty"`
}

// Item is a catalog entry owned by one user.
type Item struct {
	ID       string   `db:"id" json:"id"`
	Name     string   `db:"name" json:"name"`
	Quantity *float64 `db:"quantity" json:"quantity,omitempty"`
	UserID   string   `db:"user_id" json:"userId"`
}

type List struct {
	ID     string `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	UserID string `db:"user_id" json:"userId"`
}

// ListItem links an item into a list.
type ListItem struct {
	ID        string `db:"id" json:"id"`
	Quantity  int    `db:"quantity" json:"quantity"`
	Completed bool   `db:"completed" json:"completed"`
	ListID    string `db:"list_id" json:"listId"`
	ItemID    string `db:"item_id" json:"itemId"`
}

// Entity names used in errors and logs.
const (
	EntityUser     = "user"
	EntityItem     = "item"
	EntityList     = "list"
	EntityListItem = "list item"
)
