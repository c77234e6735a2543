package envguard

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrParse           = errors.New("parse error")
	ErrInvalidSchema   = errors.New("invalid schema")
	ErrInvalidRule     = errors.New("invalid rule")
	ErrTransform       = errors.New("transform failed")
)

// Error wraps configuration errors with context.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("envguard: %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError is returned by ValidateAll when at least one schema fails.
// No partial configuration accompanies it.
type ValidationError struct {
	// FailedSchemas holds the names of every failed schema, in input order.
	FailedSchemas []string
	// Messages holds the formatted field messages of every failed schema, in
	// schema order and, within a schema, in field declaration order.
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Environment variables failed validation (%s)\n\n%s",
		strings.Join(e.FailedSchemas, ", "),
		strings.Join(e.Messages, "\n\n"))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
