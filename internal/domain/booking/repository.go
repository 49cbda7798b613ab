package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/nimbus-rentals/service-rental/internal/query"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// List retrieves bookings matching the predicate with the given
	// retrieval options, plus the total match count before paging.
	List(ctx context.Context, pred *query.Predicate, opts query.Options) ([]*Booking, int64, error)

	// ListByVehicle retrieves every booking for a vehicle regardless of
	// status.
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*Booking, error)

	// HasOverlapping reports whether any live (pending or confirmed)
	// booking for the vehicle intersects the inclusive date range.
	HasOverlapping(ctx context.Context, vehicleID uuid.UUID, rng DateRange) (bool, error)

	// Create persists a new booking. The overlap condition is re-checked
	// inside the same storage transaction as the insert, so two concurrent
	// creations for intersecting ranges cannot both commit through this
	// path; a conflict error is returned when the range was taken in the
	// meantime.
	Create(ctx context.Context, b *Booking) error

	// Update replaces an existing booking if it has not been modified
	// concurrently since it was loaded.
	Update(ctx context.Context, b *Booking) error
}
