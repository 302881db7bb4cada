package identifier

import (
	"errors"
	"fmt"
)

// Error categories for programmatic handling
const (
	// ErrUnresolvable is returned when a runtime identity cannot be mapped
	// onto the identifier keys the resource type requires.
	ErrUnresolvable = "unresolvable_identity"
)

// Error represents a failed identifier derivation with context about the
// resource it concerned.
type Error struct {
	// Category for programmatic error handling
	Category string

	// ResourceType is the template type tag of the resource
	ResourceType string

	// PhysicalID is the runtime identity that could not be mapped
	PhysicalID string

	// Message provides human-readable details
	Message string
}

// Error returns a formatted error message
func (e *Error) Error() string {
	if e.PhysicalID != "" {
		return fmt.Sprintf("%s: %s [%s %q]", e.Category, e.Message, e.ResourceType, e.PhysicalID)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Category, e.Message, e.ResourceType)
}

// NewUnresolvableError creates an Unresolvable error for the given resource.
func NewUnresolvableError(resourceType, physicalID, message string) *Error {
	return &Error{
		Category:     ErrUnresolvable,
		ResourceType: resourceType,
		PhysicalID:   physicalID,
		Message:      message,
	}
}

// IsUnresolvable checks whether err is an Unresolvable identifier error.
func IsUnresolvable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == ErrUnresolvable
	}
	return false
}
