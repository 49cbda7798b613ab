package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nimbus-rentals/service-rental/internal/domain"
	bookingDomain "github.com/nimbus-rentals/service-rental/internal/domain/booking"
	"github.com/nimbus-rentals/service-rental/internal/query"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID string    `gorm:"size:100;index;not null"`
	FromDate   time.Time `gorm:"type:date;not null"`
	ToDate     time.Time `gorm:"type:date;not null"`
	Status     string    `gorm:"size:20;index;not null"`
	Reason     string    `gorm:"size:500"`
	OrderDate  time.Time `gorm:"not null"`
	Version    int64     `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// bookingColumns maps predicate fields to booking table columns.
var bookingColumns = map[string]string{
	"vehicle_id":  "vehicle_id",
	"customer_id": "customer_id",
	"status":      "status",
	"from_date":   "from_date",
	"to_date":     "to_date",
	"order_date":  "order_date",
}

// liveStatuses are the statuses that occupy the calendar.
var liveStatuses = []string{
	string(bookingDomain.StatusPending),
	string(bookingDomain.StatusConfirmed),
}

// GormBookingRepository is the GORM-based implementation of the booking
// repository contract.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, domain.NewInternalError("failed to find booking", err)
	}
	return toDomainBooking(&model)
}

// List retrieves bookings matching the predicate with paging and sorting.
func (r *GormBookingRepository) List(ctx context.Context, pred *query.Predicate, opts query.Options) ([]*bookingDomain.Booking, int64, error) {
	conds, err := conditionsFor(pred, bookingColumns)
	if err != nil {
		return nil, 0, domain.NewInternalError("failed to translate booking filter", err)
	}
	order, err := orderFor(opts.Sort, bookingColumns, "order_date DESC")
	if err != nil {
		return nil, 0, domain.NewInternalError("failed to translate booking sort", err)
	}

	var total int64
	countTx := applyConditions(r.db.WithContext(ctx).Model(&BookingModel{}), conds)
	if err := countTx.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count bookings", err)
	}

	var models []BookingModel
	findTx := applyConditions(r.db.WithContext(ctx), conds).
		Order(order).
		Offset(opts.Skip).
		Limit(opts.Limit)
	if err := findTx.Find(&models).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to list bookings", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = b
	}
	return bookings, total, nil
}

// ListByVehicle retrieves every booking for a vehicle regardless of status.
func (r *GormBookingRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("order_date DESC").
		Find(&models).Error; err != nil {
		return nil, domain.NewInternalError("failed to list vehicle bookings", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}

// HasOverlapping reports whether any live booking for the vehicle
// intersects the inclusive date range. Two inclusive ranges intersect iff
// existing.from <= proposed.to AND existing.to >= proposed.from.
func (r *GormBookingRepository) HasOverlapping(ctx context.Context, vehicleID uuid.UUID, rng bookingDomain.DateRange) (bool, error) {
	count, err := r.countOverlapping(ctx, r.db, vehicleID, rng)
	if err != nil {
		return false, domain.NewInternalError("failed to check for booking conflicts", err)
	}
	return count > 0, nil
}

func (r *GormBookingRepository) countOverlapping(ctx context.Context, tx *gorm.DB, vehicleID uuid.UUID, rng bookingDomain.DateRange) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&BookingModel{}).
		Where("vehicle_id = ?", vehicleID).
		Where("from_date <= ?", rng.To.Time()).
		Where("to_date >= ?", rng.From.Time()).
		Where("status IN ?", liveStatuses).
		Count(&count).Error
	return count, err
}

// Create inserts a new booking, re-checking the overlap condition inside
// the same transaction as the insert so concurrent creations for
// intersecting ranges cannot both commit through this path.
func (r *GormBookingRepository) Create(ctx context.Context, b *bookingDomain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := r.countOverlapping(ctx, tx, b.VehicleID(), b.Range())
		if err != nil {
			return domain.NewInternalError("failed to check for booking conflicts", err)
		}
		if count > 0 {
			return domain.NewConflictError("vehicle is already booked for overlapping dates")
		}
		if err := tx.Create(toBookingModel(b)).Error; err != nil {
			return domain.NewInternalError("failed to save booking", err)
		}
		return nil
	})
	return err
}

// Update replaces an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)

	// The aggregate's version was already incremented; the row must still
	// carry the previous one.
	expectedVersion := b.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"reason":     model.Reason,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewInternalError("failed to update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:         b.ID(),
		VehicleID:  b.VehicleID(),
		CustomerID: b.CustomerID(),
		FromDate:   b.FromDate().Time(),
		ToDate:     b.ToDate().Time(),
		Status:     string(b.Status()),
		Reason:     b.Reason(),
		OrderDate:  b.OrderDate(),
		Version:    b.Version(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking %s: %w", m.ID, err)
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.VehicleID,
		m.CustomerID,
		bookingDomain.DateOf(m.FromDate),
		bookingDomain.DateOf(m.ToDate),
		status,
		m.Reason,
		m.OrderDate,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
