package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// ValidationError carries every invalid field found in a single pass,
// keyed by the field's JSON name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add records a reason for a field, keeping the first reason seen
func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = reason
	}
}

// Merge folds the field errors of err into e. err may be an ozzo
// validation.Errors map or another *ValidationError.
func (e *ValidationError) Merge(err error) {
	if err == nil {
		return
	}
	var other *ValidationError
	if errors.As(err, &other) {
		for k, v := range other.Fields {
			e.Add(k, v)
		}
		return
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for k, v := range verrs {
			e.Add(k, v.Error())
		}
		return
	}
	e.Add("nonFieldErrors", err.Error())
}

// OrNil returns e as an error, or nil when no field failed
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FromValidation converts the result of validation.ValidateStruct or
// validation.Errors{}.Filter() into a *ValidationError. Internal
// (non-field) errors are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	verr := &ValidationError{}
	verr.Merge(err)
	return verr.OrNil()
}
