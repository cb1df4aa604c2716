// Package errs holds the error taxonomy shared by the store and the HTTP
// layer. Store code returns these; handlers map them to status codes.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateKey is returned when an insert collides with an existing
// hole_id. The existing row is left untouched.
var ErrDuplicateKey = errors.New("hole id already exists")

// StorageError wraps any persistence failure other than a duplicate key.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op + ": storage failure"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError tags err with the store operation that produced it.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// FieldError is a single rejected input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError collects every field that failed decoding or validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Error: message}}}
}

// IsDuplicateKey reports whether err is, or wraps, ErrDuplicateKey.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// AsStorageError unwraps err into a *StorageError when it is one.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	ok := errors.As(err, &se)
	return se, ok
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
