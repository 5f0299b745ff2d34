package apperrors

import "fmt"

// ValidationError rejects a create/update whose input is missing a required
// field or violates a data invariant.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthError rejects a sign-in or sign-up with bad credentials.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// InvalidTransitionError rejects an illegal request-status change, including
// unknown status strings.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Invalid status transition from %q to %q", e.From, e.To)
}

// NotFoundError reports a missing row.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ForbiddenError reports an actor that is not the owner of the resource or
// lacks the role for the action.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }
