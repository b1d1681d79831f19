package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Pagination bounds a listing.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func DefaultPagination() Pagination {
	return Pagination{Limit: DefaultLimit, Offset: DefaultOffset}
}

func (p Pagination) Validate() error {
	if p.Limit < 1 {
		return Validationf("pagination", "limit must be at least 1, got %d", p.Limit)
	}
	if p.Offset < 0 {
		return Validationf("pagination", "offset must not be negative, got %d", p.Offset)
	}
	return nil
}

// Search is an optional case-insensitive substring filter.
type Search struct {
	Term string `json:"search,omitempty"`
}

// Text is the term with surrounding blanks removed.
func (s Search) Text() string {
	return strings.TrimSpace(s.Term)
}

// IsZero reports a search that filters nothing.
func (s Search) IsZero() bool {
	return s.Text() == ""
}

// ValidateID rejects ids that are not UUIDs.
func ValidateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Validationf("validate", "%s must be a UUID", field)
	}
	return nil
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}
