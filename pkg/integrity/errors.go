package integrity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a violation.
type ErrorKind string

const (
	// SchemaError marks a key or value failing its declared type or a
	// required field being absent.
	SchemaError ErrorKind = "schema"

	// ReferenceError marks an id referenced from one dataset that does not
	// exist in the dataset it points into.
	ReferenceError ErrorKind = "reference"
)

// ValidationError is a single violation found in the datasets. Checking stops
// at the first one.
type ValidationError struct {
	// Kind is the violation class.
	Kind ErrorKind `json:"kind"`

	// Format is the message template. Args fill it in order; quoted values
	// are already rendered with Value.Repr.
	Format string `json:"-"`

	// Args are the message arguments: labels, positions, field names,
	// offending values and expected type descriptions.
	Args []any `json:"args"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

// Components returns the parts of the violation report. The report carries
// a single component, the rendered message.
func (e *ValidationError) Components() []string {
	return []string{e.Error()}
}

// Line joins the report components into the single line shown to users.
func (e *ValidationError) Line() string {
	return strings.Join(e.Components(), ", ")
}

// MarshalJSON renders the violation with its message.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    ErrorKind `json:"kind"`
		Message string    `json:"message"`
		Args    []any     `json:"args"`
	}{e.Kind, e.Error(), e.Args})
}

// Is matches violations of the same kind, so errors.Is(err,
// &ValidationError{Kind: ReferenceError}) tests the class.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == "" || e.Kind == t.Kind
}

func schemaError(format string, args ...any) *ValidationError {
	return &ValidationError{Kind: SchemaError, Format: format, Args: args}
}

func referenceError(format string, args ...any) *ValidationError {
	return &ValidationError{Kind: ReferenceError, Format: format, Args: args}
}

// AsValidationError returns the violation in err's chain, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsValidationError reports whether err is a data violation rather than an
// operational failure.
func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// IsSchemaError reports whether err is a structural violation.
func IsSchemaError(err error) bool {
	ve, ok := AsValidationError(err)
	return ok && ve.Kind == SchemaError
}

// IsReferenceError reports whether err is a consistency violation.
func IsReferenceError(err error) bool {
	ve, ok := AsValidationError(err)
	return ok && ve.Kind == ReferenceError
}
