package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Concrete errors wrap one of these so adapters can map them
// without knowing every case.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrOrderNotFound    = newError(ErrNotFound, "order not found")
	ErrMenuItemNotFound = newError(ErrNotFound, "menu item not found")
	ErrPaymentNotFound  = newError(ErrNotFound, "payment not found")
	ErrUserNotFound     = newError(ErrNotFound, "user not found")

	ErrInvalidStatusTransition = newError(ErrConflict, "invalid status transition")
	ErrOrderAlreadyPaid        = newError(ErrConflict, "order is already paid")
	ErrDuplicateTransaction    = newError(ErrConflict, "transaction already recorded for another payment")
	ErrDuplicateOrderID        = newError(ErrConflict, "order id already exists")
	ErrMenuItemInUse           = newError(ErrConflict, "menu item is referenced by existing orders")

	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid credentials")
	ErrInvalidToken       = newError(ErrUnauthorized, "invalid or expired token")
)

type kindError struct {
	msg  string
	kind error
}

func newError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field failure of one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a failure for field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when nothing was collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// NewValidationError is a shortcut for a one-field failure.
func NewValidationError(field, message string) error {
	return ValidationErrors{{Field: field, Message: message}}
}

// IsValidation reports whether err carries field validation failures.
func IsValidation(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}
