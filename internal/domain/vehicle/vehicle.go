package vehicle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain"
)

const (
	minYearOfProduction  = 1900
	maxYearOfProduction  = 2030
	maxDescriptionLength = 249
)

// Vehicle is the aggregate root for the fleet inventory domain.
type Vehicle struct {
	id               uuid.UUID
	brand            Brand
	metadata         Metadata
	description      *string
	pricePerDay      float64
	yearOfProduction int
	addedBy          string
	addedAt          time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewVehicle creates a validated Vehicle aggregate.
func NewVehicle(
	brand Brand,
	metadata Metadata,
	description *string,
	pricePerDay float64,
	yearOfProduction int,
	addedBy string,
) (*Vehicle, error) {
	if metadata == nil {
		return nil, domain.NewValidationError("vehicle metadata is required")
	}
	if err := ValidateBrandModel(brand, metadata); err != nil {
		return nil, err
	}
	if err := ValidateFuelConstraint(metadata); err != nil {
		return nil, err
	}
	if err := validateDetails(description, pricePerDay); err != nil {
		return nil, err
	}
	if yearOfProduction < minYearOfProduction || yearOfProduction > maxYearOfProduction {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"year of production must be between %d and %d", minYearOfProduction, maxYearOfProduction))
	}
	if addedBy == "" {
		return nil, domain.NewValidationError("added_by is required")
	}

	now := time.Now().UTC()
	return &Vehicle{
		id:               uuid.New(),
		brand:            brand,
		metadata:         metadata,
		description:      description,
		pricePerDay:      pricePerDay,
		yearOfProduction: yearOfProduction,
		addedBy:          addedBy,
		addedAt:          now,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Vehicle from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	brand Brand,
	metadata Metadata,
	description *string,
	pricePerDay float64,
	yearOfProduction int,
	addedBy string,
	addedAt time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:               id,
		brand:            brand,
		metadata:         metadata,
		description:      description,
		pricePerDay:      pricePerDay,
		yearOfProduction: yearOfProduction,
		addedBy:          addedBy,
		addedAt:          addedAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (v *Vehicle) ID() uuid.UUID         { return v.id }
func (v *Vehicle) Brand() Brand          { return v.brand }
func (v *Vehicle) Category() Category    { return v.metadata.Category() }
func (v *Vehicle) Metadata() Metadata    { return v.metadata }
func (v *Vehicle) Description() *string  { return v.description }
func (v *Vehicle) PricePerDay() float64  { return v.pricePerDay }
func (v *Vehicle) YearOfProduction() int { return v.yearOfProduction }
func (v *Vehicle) AddedBy() string       { return v.addedBy }
func (v *Vehicle) AddedAt() time.Time    { return v.addedAt }
func (v *Vehicle) Version() int64        { return v.version }
func (v *Vehicle) CreatedAt() time.Time  { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time  { return v.updatedAt }

// --- Behavior ---

// ManageableBy reports whether the role's competence covers this vehicle's
// category. Admin manages everything; a manager only their own category.
func (v *Vehicle) ManageableBy(role auth.Role) bool {
	switch role {
	case auth.RoleAdmin:
		return true
	case auth.RoleCarManager:
		return v.Category() == CategoryCar
	case auth.RoleMotorbikeManager:
		return v.Category() == CategoryMotorbike
	}
	return false
}

// UpdateDetails applies the only mutations the lifecycle allows:
// description and daily price. A nil description leaves the stored text
// unchanged; clearDescription removes it. All other fields are immutable
// once set.
func (v *Vehicle) UpdateDetails(description *string, clearDescription bool, pricePerDay *float64) error {
	newDescription := v.description
	switch {
	case clearDescription:
		newDescription = nil
	case description != nil:
		newDescription = description
	}
	newPrice := v.pricePerDay
	if pricePerDay != nil {
		newPrice = *pricePerDay
	}
	if err := validateDetails(newDescription, newPrice); err != nil {
		return err
	}

	v.description = newDescription
	v.pricePerDay = newPrice
	v.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (v *Vehicle) IncrementVersion() {
	v.version++
	v.updatedAt = time.Now().UTC()
}

func validateDetails(description *string, pricePerDay float64) error {
	if pricePerDay <= 0 {
		return domain.NewValidationError("price per day must be greater than 0")
	}
	if description != nil {
		if n := len(*description); n < 1 || n > maxDescriptionLength {
			return domain.NewValidationError(fmt.Sprintf(
				"description must be between 1 and %d characters", maxDescriptionLength))
		}
	}
	return nil
}
