package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrAlreadyClosed     = errors.New("register already closed for this date")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("you do not have permission for this action")
	ErrInvalidTransition = errors.New("closing status cannot move to the requested state")
	ErrDuplicateSupplier = errors.New("a supplier with this AFM already exists")
)

// ValidationError carries field-level messages keyed by JSON path,
// e.g. "supplier_payments[1].amount".
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
