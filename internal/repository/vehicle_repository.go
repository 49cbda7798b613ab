package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nimbus-rentals/service-rental/internal/domain"
	vehicleDomain "github.com/nimbus-rentals/service-rental/internal/domain/vehicle"
	"github.com/nimbus-rentals/service-rental/internal/query"
)

// VehicleModel is the GORM model for the vehicles table. The
// category-specific metadata variants are flattened into nullable columns
// so they stay filterable with plain SQL.
type VehicleModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Brand            string    `gorm:"size:30;index;not null"`
	Category         string    `gorm:"size:20;index;not null"`
	Model            string    `gorm:"size:30;index;not null"`
	Seats            *int16    `gorm:""`
	FuelType         *string   `gorm:"size:20"`
	Gearbox          *string   `gorm:"size:20"`
	EngineCC         *int64    `gorm:"column:engine_cc"`
	HasSidecar       *bool     `gorm:""`
	Description      *string   `gorm:"size:249"`
	PricePerDay      float64   `gorm:"not null"`
	YearOfProduction int       `gorm:"not null"`
	AddedBy          string    `gorm:"size:100;not null"`
	AddedAt          time.Time `gorm:"not null"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// vehicleColumns maps predicate fields to vehicle table columns.
var vehicleColumns = map[string]string{
	"brand":              "brand",
	"category":           "category",
	"model":              "model",
	"seats":              "seats",
	"fuel_type":          "fuel_type",
	"gearbox":            "gearbox",
	"engine_cc":          "engine_cc",
	"has_sidecar":        "has_sidecar",
	"price_per_day":      "price_per_day",
	"year_of_production": "year_of_production",
	"added_by":           "added_by",
	"added_at":           "added_at",
}

// GormVehicleRepository is the GORM-based implementation of the vehicle
// repository contract.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID retrieves a vehicle by its unique identifier.
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*vehicleDomain.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Vehicle", id.String())
		}
		return nil, domain.NewInternalError("failed to find vehicle", err)
	}
	return toDomainVehicle(&model)
}

// List retrieves vehicles matching the predicate with paging and sorting.
func (r *GormVehicleRepository) List(ctx context.Context, pred *query.Predicate, opts query.Options) ([]*vehicleDomain.Vehicle, int64, error) {
	conds, err := conditionsFor(pred, vehicleColumns)
	if err != nil {
		return nil, 0, domain.NewInternalError("failed to translate vehicle filter", err)
	}
	order, err := orderFor(opts.Sort, vehicleColumns, "added_at DESC")
	if err != nil {
		return nil, 0, domain.NewInternalError("failed to translate vehicle sort", err)
	}

	var total int64
	countTx := applyConditions(r.db.WithContext(ctx).Model(&VehicleModel{}), conds)
	if err := countTx.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count vehicles", err)
	}

	var models []VehicleModel
	findTx := applyConditions(r.db.WithContext(ctx), conds).
		Order(order).
		Offset(opts.Skip).
		Limit(opts.Limit)
	if err := findTx.Find(&models).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to list vehicles", err)
	}

	vehicles := make([]*vehicleDomain.Vehicle, len(models))
	for i, m := range models {
		v, err := toDomainVehicle(&m)
		if err != nil {
			return nil, 0, err
		}
		vehicles[i] = v
	}
	return vehicles, total, nil
}

// Save inserts a new vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, v *vehicleDomain.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(toVehicleModel(v)).Error; err != nil {
		return domain.NewInternalError("failed to save vehicle", err)
	}
	return nil
}

// Update replaces an existing vehicle with optimistic locking. Only the
// mutable columns are written.
func (r *GormVehicleRepository) Update(ctx context.Context, v *vehicleDomain.Vehicle) error {
	model := toVehicleModel(v)

	expectedVersion := v.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"description":   model.Description,
			"price_per_day": model.PricePerDay,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewInternalError("failed to update vehicle", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("vehicle was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toVehicleModel(v *vehicleDomain.Vehicle) *VehicleModel {
	model := &VehicleModel{
		ID:               v.ID(),
		Brand:            string(v.Brand()),
		Category:         string(v.Category()),
		Model:            v.Metadata().ModelName(),
		Description:      v.Description(),
		PricePerDay:      v.PricePerDay(),
		YearOfProduction: v.YearOfProduction(),
		AddedBy:          v.AddedBy(),
		AddedAt:          v.AddedAt(),
		Version:          v.Version(),
		CreatedAt:        v.CreatedAt(),
		UpdatedAt:        v.UpdatedAt(),
	}

	switch meta := v.Metadata().(type) {
	case vehicleDomain.CarMetadata:
		seats := int16(meta.Seats)
		fuel := string(meta.FuelType)
		gearbox := string(meta.Gearbox)
		engineCC := int64(meta.EngineCC)
		model.Seats = &seats
		model.FuelType = &fuel
		model.Gearbox = &gearbox
		model.EngineCC = &engineCC
	case vehicleDomain.MotorbikeMetadata:
		engineCC := int64(meta.EngineCC)
		hasSidecar := meta.HasSidecar
		model.EngineCC = &engineCC
		model.HasSidecar = &hasSidecar
	}
	return model
}

func toDomainVehicle(m *VehicleModel) (*vehicleDomain.Vehicle, error) {
	brand, err := vehicleDomain.ParseBrand(m.Brand)
	if err != nil {
		return nil, fmt.Errorf("corrupt vehicle %s: %w", m.ID, err)
	}

	var metadata vehicleDomain.Metadata
	switch vehicleDomain.Category(m.Category) {
	case vehicleDomain.CategoryCar:
		car := vehicleDomain.CarMetadata{Model: m.Model}
		if m.Seats != nil {
			car.Seats = uint8(*m.Seats)
		}
		if m.FuelType != nil {
			car.FuelType = vehicleDomain.FuelType(*m.FuelType)
		}
		if m.Gearbox != nil {
			car.Gearbox = vehicleDomain.Gearbox(*m.Gearbox)
		}
		if m.EngineCC != nil {
			car.EngineCC = uint32(*m.EngineCC)
		}
		metadata = car
	case vehicleDomain.CategoryMotorbike:
		bike := vehicleDomain.MotorbikeMetadata{Model: m.Model}
		if m.EngineCC != nil {
			bike.EngineCC = uint32(*m.EngineCC)
		}
		if m.HasSidecar != nil {
			bike.HasSidecar = *m.HasSidecar
		}
		metadata = bike
	default:
		return nil, fmt.Errorf("corrupt vehicle %s: unknown category %q", m.ID, m.Category)
	}

	return vehicleDomain.Reconstruct(
		m.ID,
		brand,
		metadata,
		m.Description,
		m.PricePerDay,
		m.YearOfProduction,
		m.AddedBy,
		m.AddedAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
