package plan

import (
	"errors"
	"fmt"
)

// Error categories for programmatic handling
const (
	// ErrInvalidPlan covers every structural or semantic validation failure
	// while loading a plan file.
	ErrInvalidPlan = "invalid_plan"

	// ErrDanglingReference means a decision names a logical id that is
	// absent from the plan's resource snapshot.
	ErrDanglingReference = "dangling_reference"
)

// Error represents a plan validation failure naming the offending logical id
// or field where one exists.
type Error struct {
	// Category for programmatic error handling
	Category string

	// LogicalID identifies the offending decision, when applicable
	LogicalID string

	// Field identifies the offending plan field, when applicable
	Field string

	// Message provides human-readable details
	Message string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns a formatted error message
func (e *Error) Error() string {
	switch {
	case e.LogicalID != "":
		return fmt.Sprintf("%s: %s (resource: %s)", e.Category, e.Message, e.LogicalID)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field: %s)", e.Category, e.Message, e.Field)
	default:
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

func newInvalidPlanError(field, message string, underlying error) *Error {
	return &Error{Category: ErrInvalidPlan, Field: field, Message: message, Underlying: underlying}
}

func newDecisionError(logicalID, message string) *Error {
	return &Error{Category: ErrInvalidPlan, LogicalID: logicalID, Message: message}
}

// NewDanglingReferenceError creates the error for a decision whose logical id
// is not present in the plan's resource snapshot.
func NewDanglingReferenceError(logicalID string) *Error {
	return &Error{
		Category:  ErrDanglingReference,
		LogicalID: logicalID,
		Message:   "decision references a resource that is not in the plan snapshot",
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category string) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}
	return false
}
