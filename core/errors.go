package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports input that cannot be accepted as is. Nothing was changed.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldError is a shorthand for a ValidationError on a single field.
func NewFieldError(field string, err error) error {
	return &ValidationError{Err: err, Fields: []FieldError{{Field: field, Error: err.Error()}}}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// DuplicateError reports an operation that would break a uniqueness rule.
type DuplicateError struct {
	Err error
}

func NewDuplicateError(err error) error {
	return &DuplicateError{err}
}

func (err DuplicateError) Error() string { return err.Err.Error() }
func (err DuplicateError) Unwrap() error { return err.Err }

// NotFoundError reports an operation on a missing group, upload, submission or grade.
type NotFoundError struct {
	Err error
}

func NewNotFoundError(err error) error {
	return &NotFoundError{err}
}

func (err NotFoundError) Error() string { return err.Err.Error() }
func (err NotFoundError) Unwrap() error { return err.Err }

// ForbiddenError reports an action the acting user is not allowed to take in the workflow.
type ForbiddenError struct {
	Err error
}

func NewForbiddenError(err error) error {
	return &ForbiddenError{err}
}

func (err ForbiddenError) Error() string { return err.Err.Error() }
func (err ForbiddenError) Unwrap() error { return err.Err }

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func IsDuplicate(err error) bool {
	var dErr *DuplicateError
	return errors.As(err, &dErr)
}

func IsNotFound(err error) bool {
	var nErr *NotFoundError
	return errors.As(err, &nErr)
}

func IsForbidden(err error) bool {
	var fErr *ForbiddenError
	return errors.As(err, &fErr)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
