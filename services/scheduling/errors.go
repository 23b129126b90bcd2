package scheduling

import (
	"errors"
	"fmt"
	"time"

	"mentorhub/models"
)

// ValidationError reports malformed or policy-violating input. The caller
// must correct and resubmit; it is never retried automatically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that the requested slot or state is no longer
// available. Carries the conflicting interval when one exists so the caller
// can render a precise message.
type ConflictError struct {
	Message   string
	BookingID string
	Conflict  models.TimeInterval
}

func (e *ConflictError) Error() string {
	if e.Conflict.IsZero() {
		return fmt.Sprintf("conflict: %s", e.Message)
	}
	return fmt.Sprintf("conflict: %s (taken %s to %s)",
		e.Message, e.Conflict.Start.Format(time.RFC3339), e.Conflict.End.Format(time.RFC3339))
}

// NotFoundError reports that a referenced booking or mentor does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// AuthorizationError reports that the actor lacks the role required for the
// operation. It is terminal and never silently downgraded.
type AuthorizationError struct {
	Actor  models.Actor
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("actor %s (%s) is not allowed to %s", e.Actor.ID, e.Actor.Role, e.Action)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAuthorization reports whether err is an AuthorizationError.
func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}
