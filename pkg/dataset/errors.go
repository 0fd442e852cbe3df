package dataset

import (
	"errors"
	"fmt"
)

// LoadError reports a dataset that could not be read or parsed.
type LoadError struct {
	// Dataset is the dataset name (people, program, sessions).
	Dataset string

	// Path is the file that was read.
	Path string

	// Err is the underlying I/O or parse error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s dataset from %s: %v", e.Dataset, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is a dataset load failure.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
