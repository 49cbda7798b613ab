package vehicle

import (
	"context"

	"github.com/google/uuid"
	"github.com/nimbus-rentals/service-rental/internal/query"
)

// Repository defines the persistence contract for vehicle aggregates.
type Repository interface {
	// FindByID retrieves a vehicle by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// List retrieves vehicles matching the predicate with the given
	// retrieval options, plus the total match count before paging.
	List(ctx context.Context, pred *query.Predicate, opts query.Options) ([]*Vehicle, int64, error)

	// Save persists a new vehicle.
	Save(ctx context.Context, v *Vehicle) error

	// Update replaces an existing vehicle if it has not been modified
	// concurrently since it was loaded.
	Update(ctx context.Context, v *Vehicle) error
}
