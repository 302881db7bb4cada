package aws

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCategory string

// Error categories for better error classification and handling
const (
	// ErrNotFound is returned when the stack or a requested run doesn't exist
	ErrNotFound ErrorCategory = "not_found"

	// ErrDetectionFailed is returned when a drift detection run ends in failure
	ErrDetectionFailed ErrorCategory = "detection_failed"

	// ErrDetectionTimeout is returned when a drift detection run exceeds its
	// polling budget
	ErrDetectionTimeout ErrorCategory = "detection_timeout"

	// ErrUpdateFailed is returned when a stack update reaches a failed state
	ErrUpdateFailed ErrorCategory = "update_failed"

	// ErrUpdateRolledBack is returned when a stack update was rolled back
	ErrUpdateRolledBack ErrorCategory = "update_rolled_back"

	// ErrUpdateTimeout is returned when a stack update exceeds its polling budget
	ErrUpdateTimeout ErrorCategory = "update_timeout"

	// ErrChangeSetFailed is returned when a change set cannot be created or executed
	ErrChangeSetFailed ErrorCategory = "changeset_failed"

	// ErrChangeSetTimeout is returned when change-set polling exceeds its budget
	ErrChangeSetTimeout ErrorCategory = "changeset_timeout"

	// ErrConfigurationError is returned when there's an issue with AWS configuration
	ErrConfigurationError ErrorCategory = "configuration_error"

	// ErrInternalError is returned for unexpected internal errors
	ErrInternalError ErrorCategory = "internal_error"
)

// Error represents an error that occurred during control-plane operations
// with additional context about what went wrong.
type Error struct {
	// Category for programmatic error handling
	Category ErrorCategory

	// StackName identifies the stack the operation concerned
	StackName string

	// Message provides human-readable details
	Message string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns a formatted error message
func (e *Error) Error() string {
	if e.StackName != "" {
		return fmt.Sprintf("%s: %s [stack: %s]", e.Category, e.Message, e.StackName)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a new control-plane error with the specified details
func NewError(category ErrorCategory, stackName, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		StackName:  stackName,
		Message:    message,
		Underlying: underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}

	return false
}

// IsNoUpdateError reports whether an update failed solely because there was
// nothing to change. That is the one failure string treated as success.
func IsNoUpdateError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "No updates are to be performed")
}

// classifyError maps a raw service error onto the taxonomy.
func classifyError(err error, stackName, message string) *Error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	switch {
	case contains(errMsg, "does not exist", "NotFound", "ResourceNotFoundException"):
		return NewError(ErrNotFound, stackName, message, err)

	case contains(errMsg, "InvalidClientTokenId", "could not find region", "failed to retrieve credentials", "no EC2 IMDS role found"):
		return NewError(ErrConfigurationError, stackName, message, err)

	default:
		return NewError(ErrInternalError, stackName, message, err)
	}
}

// contains checks if the error message contains any of the provided substrings
func contains(s string, substrings ...string) bool {
	for _, substr := range substrings {
		if strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
