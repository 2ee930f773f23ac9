package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// ErrDataNotFound means the data source itself could not be resolved.
	// Callers must be able to tell this apart from a valid zero-row result.
	ErrDataNotFound = errors.New("data source not found")

	// ErrSchemaInvalid means the source was readable but does not carry the
	// columns the analysis pipeline requires.
	ErrSchemaInvalid = errors.New("invalid dataset schema")

	// ErrEmptyResult marks a valid zero-row outcome. It is recoverable:
	// presentation code shows a notice and skips the view instead of failing.
	ErrEmptyResult = errors.New("no rows match the current selection")
)

// Error constructors with context
func NewDataNotFoundError(source string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDataNotFound, source, err)
	}
	return fmt.Errorf("%w: %s", ErrDataNotFound, source)
}

func NewMissingColumnError(columns ...string) error {
	return fmt.Errorf("%w: missing required column(s): %s", ErrSchemaInvalid, strings.Join(columns, ", "))
}

func NewUnknownColumnError(column string) error {
	return fmt.Errorf("%w: unknown column %q", ErrSchemaInvalid, column)
}

// Error checking helpers
func IsDataNotFound(err error) bool {
	return errors.Is(err, ErrDataNotFound)
}

func IsSchemaInvalid(err error) bool {
	return errors.Is(err, ErrSchemaInvalid)
}

func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}
