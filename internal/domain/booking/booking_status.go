package booking

import (
	"fmt"

	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain"
)

// Status represents the current state of a booking in its lifecycle.
// Rejected and Cancelled carry a free-text reason on the aggregate;
// transition logic operates on the tag alone.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// validTransitions defines the state-reachability graph, independent of who
// is asking. Role gating on top of it lives in AuthorizeTransition.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusRejected, StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognised booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if the state graph allows moving from this
// status to the target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsLive returns true while the booking still occupies the calendar.
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// String returns the string representation of the status.
func (s Status) String() string { return string(s) }

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// AuthorizeTransition decides whether the caller's role may move a booking
// from its current status to the target status. Customers may only cancel,
// and only while the booking is live. Staff roles confirm or reject:
// a pending booking may go either way, a confirmed one may only be
// rejected, and terminal bookings accept no change at all. Nothing ever
// goes back to pending.
func AuthorizeTransition(role auth.Role, current, target Status) error {
	if role == auth.RoleCustomer {
		if target != StatusCancelled {
			return domain.NewForbiddenError("customers can only cancel their bookings")
		}
		if !current.IsLive() {
			return domain.NewForbiddenError("you can only cancel bookings that are pending or confirmed")
		}
		return nil
	}

	switch target {
	case StatusCancelled:
		return domain.NewForbiddenError("only customers can cancel bookings; use the rejected status instead")
	case StatusPending:
		return domain.NewForbiddenError("cannot change status back to pending")
	}

	switch current {
	case StatusPending:
		return nil
	case StatusConfirmed:
		if target != StatusRejected {
			return domain.NewValidationError("confirmed bookings can only be rejected")
		}
		return nil
	default:
		return domain.NewValidationError("cannot modify rejected or cancelled bookings")
	}
}
