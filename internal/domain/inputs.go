package domain

import (
	"math"
	"net/mail"
	"strings"
)

const (
	MinPasswordLength = 6
	MinListNameLength = 2

	// bcrypt only reads the first 72 bytes.
	MaxPasswordBytes = 72
)

type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Roles    Roles  `json:"roles,omitempty"`
}

// Normalize trims the input and lowercases the email.
func (in *CreateUserInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
}

func (in CreateUserInput) Validate() error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}
	if strings.TrimSpace(in.FullName) == "" {
		return Validation("user.create", "fullName must not be empty")
	}
	if err := in.Roles.Validate(); err != nil {
		return Validation("user.create", err.Error())
	}
	return nil
}

type CreateItemInput struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
}

func (in CreateItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return Validation("item.create", "name must not be empty")
	}
	return validateQuantity("item.create", in.Quantity)
}

type CreateListInput struct {
	Name string `json:"name"`
}

func (in CreateListInput) Validate() error {
	return validateListName("list.create", in.Name)
}

type CreateListItemInput struct {
	Quantity  int    `json:"quantity"`
	Completed bool   `json:"completed"`
	ListID    string `json:"listId"`
	ItemID    string `json:"itemId"`
}

func (in CreateListItemInput) Validate() error {
	if in.Quantity < 0 {
		return Validation("listItem.create", "quantity must not be negative")
	}
	if err := ValidateID("listId", in.ListID); err != nil {
		return err
	}
	return ValidateID("itemId", in.ItemID)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return Validation("validate", "email must be a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return Validationf("validate", "password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return Validationf("validate", "password must be at most %d bytes", MaxPasswordBytes)
	}
	return nil
}

func validateListName(op, name string) error {
	if len([]rune(strings.TrimSpace(name))) < MinListNameLength {
		return Validationf(op, "name must be at least %d characters", MinListNameLength)
	}
	return nil
}

func validateQuantity(op string, q *float64) error {
	if q == nil {
		return nil
	}
	if math.IsNaN(*q) || math.IsInf(*q, 0) || *q < 0 {
		return Validation(op, "quantity must be a non-negative number")
	}
	return nil
}
