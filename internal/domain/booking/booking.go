package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain"
)

// Booking is the aggregate root for the rental-booking domain. A booking
// reserves one vehicle for an inclusive calendar-day range on behalf of one
// customer. Bookings are never deleted; rejection and cancellation are
// terminal states carrying a reason.
type Booking struct {
	id         uuid.UUID
	vehicleID  uuid.UUID
	customerID string
	fromDate   Date
	toDate     Date
	status     Status
	reason     string
	orderDate  time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status PENDING. The
// customer identifier always comes from the authenticated identity, never
// from the request payload.
func NewBooking(vehicleID uuid.UUID, customerID string, fromDate, toDate Date) (*Booking, error) {
	if vehicleID == uuid.Nil {
		return nil, domain.NewValidationError("vehicle ID is required")
	}
	if customerID == "" {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if fromDate.IsZero() || toDate.IsZero() {
		return nil, domain.NewValidationError("from_date and to_date are required")
	}
	if !fromDate.Before(toDate) {
		return nil, domain.NewValidationError("from_date must be before to_date")
	}

	now := time.Now().UTC()
	return &Booking{
		id:         uuid.New(),
		vehicleID:  vehicleID,
		customerID: customerID,
		fromDate:   fromDate,
		toDate:     toDate,
		status:     StatusPending,
		orderDate:  now,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, vehicleID uuid.UUID,
	customerID string,
	fromDate, toDate Date,
	status Status,
	reason string,
	orderDate time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		vehicleID:  vehicleID,
		customerID: customerID,
		fromDate:   fromDate,
		toDate:     toDate,
		status:     status,
		reason:     reason,
		orderDate:  orderDate,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }
func (b *Booking) CustomerID() string   { return b.customerID }
func (b *Booking) FromDate() Date       { return b.fromDate }
func (b *Booking) ToDate() Date         { return b.toDate }
func (b *Booking) Status() Status       { return b.status }

// Reason returns the free-text reason attached to a rejected or cancelled
// booking, empty otherwise.
func (b *Booking) Reason() string { return b.reason }

func (b *Booking) OrderDate() time.Time { return b.orderDate }
func (b *Booking) Version() int64       { return b.version }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Range returns the booked interval.
func (b *Booking) Range() DateRange {
	return DateRange{From: b.fromDate, To: b.toDate}
}

// --- Authorization ---

// ViewableBy reports whether the identity may read this booking. Staff see
// every booking; a customer only their own.
func (b *Booking) ViewableBy(identity auth.Identity) bool {
	if identity.Role.IsStaff() {
		return true
	}
	return b.customerID == identity.UserID
}

// UpdatableBy mirrors ViewableBy: staff may attempt any update, a customer
// only on their own bookings. Whether the requested change is legal is
// decided separately by AuthorizeTransition.
func (b *Booking) UpdatableBy(identity auth.Identity) bool {
	return b.ViewableBy(identity)
}

// --- Behavior ---

// TransitionTo applies an authorized status change requested by the given
// role. The reason is recorded for terminal targets and ignored otherwise.
func (b *Booking) TransitionTo(role auth.Role, target Status, reason string) error {
	if err := AuthorizeTransition(role, b.status, target); err != nil {
		return err
	}
	b.status = target
	if target.IsTerminal() {
		b.reason = reason
	}
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
