package domain

import "strings"

// Ptr returns a pointer to v. Patch fields use nil for "absent".
func Ptr[T any](v T) *T {
	return &v
}

// UpdateUserInput is a merge patch for users.
type UpdateUserInput struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Roles    *Roles  `json:"roles,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (p UpdateUserInput) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.Password == nil && p.Roles == nil && p.IsActive == nil
}

func (p UpdateUserInput) Validate() error {
	if p.FullName != nil && strings.TrimSpace(*p.FullName) == "" {
		return Validation("user.update", "fullName must not be empty")
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Password != nil {
		if err := validatePassword(*p.Password); err != nil {
			return err
		}
	}
	if p.Roles != nil {
		if len(*p.Roles) == 0 {
			return Validation("user.update", "roles must not be empty")
		}
		if err := p.Roles.Validate(); err != nil {
			return Validation("user.update", err.Error())
		}
	}
	return nil
}

// ApplyTo overlays the present fields. The password is hashed by the caller.
func (p UpdateUserInput) ApplyTo(u *User) {
	if p.FullName != nil {
		u.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
	if p.Roles != nil {
		u.Roles = append(Roles(nil), (*p.Roles)...)
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}

type UpdateItemInput struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
}

func (p UpdateItemInput) IsEmpty() bool {
	return p.Name == nil && p.Quantity == nil
}

func (p UpdateItemInput) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Validation("item.update", "name must not be empty")
	}
	return validateQuantity("item.update", p.Quantity)
}

func (p UpdateItemInput) ApplyTo(i *Item) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Quantity != nil {
		q := *p.Quantity
		i.Quantity = &q
	}
}

type UpdateListInput struct {
	Name *string `json:"name,omitempty"`
}

func (p UpdateListInput) IsEmpty() bool {
	return p.Name == nil
}

func (p UpdateListInput) Validate() error {
	if p.Name == nil {
		return nil
	}
	return validateListName("list.update", *p.Name)
}

func (p UpdateListInput) ApplyTo(l *List) {
	if p.Name != nil {
		l.Name = *p.Name
	}
}

// UpdateListItemInput may reassign the parent list or item, so it is applied
// as a relation patch rather than merged.
type UpdateListItemInput struct {
	Quantity  *int    `json:"quantity,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	ListID    *string `json:"listId,omitempty"`
	ItemID    *string `json:"itemId,omitempty"`
}

func (p UpdateListItemInput) IsEmpty() bool {
	return p.Quantity == nil && p.Completed == nil && p.ListID == nil && p.ItemID == nil
}

func (p UpdateListItemInput) Validate() error {
	if p.Quantity != nil && *p.Quantity < 0 {
		return Validation("listItem.update", "quantity must not be negative")
	}
	if p.ListID != nil {
		if err := ValidateID("listId", *p.ListID); err != nil {
			return err
		}
	}
	if p.ItemID != nil {
		if err := ValidateID("itemId", *p.ItemID); err != nil {
			return err
		}
	}
	return nil
}

// Scalars returns the plain column values present in the patch.
func (p UpdateListItemInput) Scalars() map[string]interface{} {
	out := make(map[string]interface{})
	if p.Quantity != nil {
		out["quantity"] = *p.Quantity
	}
	if p.Completed != nil {
		out["completed"] = *p.Completed
	}
	return out
}

// Relations returns the foreign-key columns present in the patch.
func (p UpdateListItemInput) Relations() map[string]string {
	out := make(map[string]string)
	if p.ListID != nil {
		out["list_id"] = *p.ListID
	}
	if p.ItemID != nil {
		out["item_id"] = *p.ItemID
	}
	return out
}
