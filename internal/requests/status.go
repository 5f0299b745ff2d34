package requests

import "shareabite-backend/internal/pkg/apperrors"

// Status is the request workflow state. pending is initial; rejected and
// completed are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// transitions holds the only legal moves:
// pending -> approved | rejected, approved -> completed.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

// ParseStatus validates a raw status string. Unknown values are reported as
// an invalid transition so callers surface one error kind for every illegal
// status write.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return Status(raw), nil
	}
	return "", &apperrors.InvalidTransitionError{To: raw}
}

// CanTransitionTo returns true if next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal returns true when no transition leaves s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Validate returns nil when the move from s to next is legal, otherwise an
// InvalidTransitionError naming both states.
func (s Status) Validate(next Status) error {
	if !s.CanTransitionTo(next) {
		return &apperrors.InvalidTransitionError{From: string(s), To: string(next)}
	}
	return nil
}

// EventType maps a reached status to its audit event type.
func (s Status) EventType() string {
	switch s {
	case StatusApproved:
		return "APPROVED"
	case StatusRejected:
		return "REJECTED"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "CREATED"
	}
}
