package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrDenied     = errors.New("denied")
	ErrInternal   = errors.New("internal error")
)

// Error is the error type returned by services and the seed orchestrator.
// For internal errors the cause is kept for logging but never rendered.
type Error struct {
	Op     string // Operation that failed, e.g. "item.update"
	Entity string // Entity involved
	Kind   error  // One of the Err* kinds
	Detail string // Caller-facing detail
	Err    error  // Underlying cause
}

func (e *Error) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, e.Op)
	}

	if e.Kind == ErrInternal {
		parts = append(parts, ErrInternal.Error())
		return strings.Join(parts, ": ")
	}

	if e.Entity != "" && e.Kind == ErrNotFound {
		parts = append(parts, fmt.Sprintf("%s %s", e.Entity, e.Kind))
	} else {
		parts = append(parts, e.Kind.Error())
	}

	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}

	return strings.Join(parts, ": ")
}

// Unwrap exposes the kind, and the cause when it is not internal.
func (e *Error) Unwrap() []error {
	if e.Err == nil || e.Kind == ErrInternal {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validation(op, detail string) *Error {
	return &Error{Op: op, Kind: ErrValidation, Detail: detail}
}

func Validationf(op, format string, args ...interface{}) *Error {
	return Validation(op, fmt.Sprintf(format, args...))
}

func NotFound(op, entity string) *Error {
	return &Error{Op: op, Entity: entity, Kind: ErrNotFound}
}

func Conflict(op, entity, detail string, cause error) *Error {
	return &Error{Op: op, Entity: entity, Kind: ErrConflict, Detail: detail, Err: cause}
}

func Forbidden(op, detail string) *Error {
	return &Error{Op: op, Kind: ErrForbidden, Detail: detail}
}

func Denied(op, detail string) *Error {
	return &Error{Op: op, Kind: ErrDenied, Detail: detail}
}

func Internal(op, entity string, cause error) *Error {
	return &Error{Op: op, Entity: entity, Kind: ErrInternal, Err: cause}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
func IsDenied(err error) bool     { return errors.Is(err, ErrDenied) }
func IsInternal(err error) bool   { return errors.Is(err, ErrInternal) }
