package data

import (
	"errors"
	"fmt"
)

// Kind classifies why a dataset could not be loaded.
type Kind string

const (
	KindNotFound Kind = "NOT_FOUND"
	KindEmpty    Kind = "EMPTY"
	KindParse    Kind = "PARSE"
	KindOther    Kind = "OTHER"
)

var (
	ErrNotFound = errors.New("dataset not found")
	ErrEmpty    = errors.New("dataset is empty")
	ErrParse    = errors.New("dataset could not be parsed")

	// ErrMissingColumn is returned when a column referenced by a statistic
	// or a plot is not part of the table.
	ErrMissingColumn = errors.New("missing column")
)

// LoadError is returned by Load. Kind tells callers which failure happened,
// Err keeps the underlying cause.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] load %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] load %s", e.Kind, e.Path)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is match a LoadError against the sentinel for its kind.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrEmpty:
		return e.Kind == KindEmpty
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

func missingColumn(name string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, name)
}
