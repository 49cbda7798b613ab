package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain"
	bookingDomain "github.com/nimbus-rentals/service-rental/internal/domain/booking"
	vehicleDomain "github.com/nimbus-rentals/service-rental/internal/domain/vehicle"
	"github.com/nimbus-rentals/service-rental/internal/events"
	"github.com/nimbus-rentals/service-rental/internal/query"
)

// CreateBookingRequest holds the data needed to create a new booking. The
// customer is taken from the authenticated identity, never from the body.
type CreateBookingRequest struct {
	VehicleID uuid.UUID          `json:"vehicle_id" binding:"required"`
	FromDate  bookingDomain.Date `json:"from_date" binding:"required"`
	ToDate    bookingDomain.Date `json:"to_date" binding:"required"`
}

// UpdateBookingStatusRequest requests a status transition. An absent status
// leaves the booking unchanged; the reason is recorded for terminal targets.
type UpdateBookingStatusRequest struct {
	Status *string `json:"status,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID         uuid.UUID          `json:"id"`
	VehicleID  uuid.UUID          `json:"vehicle_id"`
	CustomerID string             `json:"customer_id"`
	FromDate   bookingDomain.Date `json:"from_date"`
	ToDate     bookingDomain.Date `json:"to_date"`
	Status     string             `json:"status"`
	Reason     string             `json:"reason,omitempty"`
	OrderDate  time.Time          `json:"order_date"`
	Version    int64              `json:"version"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// BookingFilter holds the optional listing criteria for bookings.
type BookingFilter struct {
	Statuses    []bookingDomain.Status
	VehicleIDs  []uuid.UUID
	OrderedFrom *time.Time
	OrderedTo   *time.Time

	Pagination query.Pagination
}

func (f BookingFilter) predicate() *query.Predicate {
	p := query.New()
	query.Strings(p, "status", f.Statuses)
	query.Strings(p, "vehicle_id", f.VehicleIDs)
	query.Range(p, "order_date", f.OrderedFrom, f.OrderedTo)
	return p
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo        bookingDomain.Repository
	vehicles    vehicleDomain.Repository
	producer    EventPublisher
	logger      *zap.Logger
	maxPageSize int
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.Repository,
	vehicles vehicleDomain.Repository,
	producer EventPublisher,
	logger *zap.Logger,
	maxPageSize int,
) *BookingService {
	return &BookingService{
		repo:        repo,
		vehicles:    vehicles,
		producer:    producer,
		logger:      logger,
		maxPageSize: maxPageSize,
	}
}

// CreateBooking reserves a vehicle for the customer identity's inclusive
// date range. Checks run in a fixed order and short-circuit: date validity,
// then calendar conflicts, then vehicle existence, then persistence. A
// failed conflict check aborts the creation rather than risking a double
// booking.
func (s *BookingService) CreateBooking(ctx context.Context, identity auth.Identity, req CreateBookingRequest) (*BookingDTO, error) {
	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return nil, domain.NewValidationError("from_date and to_date are required")
	}
	if !req.FromDate.Before(req.ToDate) {
		return nil, domain.NewValidationError("from_date must be before to_date")
	}

	rng := bookingDomain.DateRange{From: req.FromDate, To: req.ToDate}
	taken, err := s.repo.HasOverlapping(ctx, req.VehicleID, rng)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("vehicle is already booked for overlapping dates")
	}

	if _, err := s.vehicles.FindByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(req.VehicleID, identity.UserID, req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingCreated, bk.ID().String(), events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		VehicleID:  bk.VehicleID(),
		CustomerID: bk.CustomerID(),
		FromDate:   bk.FromDate().String(),
		ToDate:     bk.ToDate().String(),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking. Customers can only read their own.
func (s *BookingService) GetBooking(ctx context.Context, identity auth.Identity, id uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !bk.ViewableBy(identity) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// ListBookings retrieves a paginated, filtered booking listing. A customer
// identity is implicitly scoped to its own bookings; staff see everything.
func (s *BookingService) ListBookings(ctx context.Context, identity auth.Identity, filter BookingFilter) (*domain.PaginatedResult[BookingDTO], error) {
	pred := filter.predicate()
	if !identity.Role.IsStaff() {
		query.Values(pred, "customer_id", []string{identity.UserID})
	}

	opts := filter.Pagination.ToOptions(s.maxPageSize)
	bookings, total, err := s.repo.List(ctx, pred, opts)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	page := filter.Pagination.Page
	if page < 1 {
		page = 1
	}
	result := domain.NewPaginatedResult(dtos, total, page, opts.Limit)
	return &result, nil
}

// ListVehicleBookings returns every booking for a vehicle regardless of
// status. The acting role's competence must cover the vehicle's category.
func (s *BookingService) ListVehicleBookings(ctx context.Context, identity auth.Identity, vehicleID uuid.UUID) ([]BookingDTO, error) {
	v, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !v.ManageableBy(identity.Role) {
		return nil, domain.NewForbiddenError("you cannot manage vehicles in this category")
	}

	bookings, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// UpdateBookingStatus applies a role-gated status transition. Omitting the
// status, or requesting the current one, is an authorized no-op; ownership
// is still enforced on that path.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, identity auth.Identity, id uuid.UUID, req UpdateBookingStatusRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !bk.UpdatableBy(identity) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}

	if req.Status == nil {
		result := toBookingDTO(bk)
		return &result, nil
	}

	target, err := bookingDomain.ParseStatus(*req.Status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if target == bk.Status() {
		result := toBookingDTO(bk)
		return &result, nil
	}

	oldStatus := bk.Status()
	if err := bk.TransitionTo(identity.Role, target, req.Reason); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingStatusChanged, bk.ID().String(), events.BookingStatusChangedEvent{
		BookingID:  bk.ID(),
		VehicleID:  bk.VehicleID(),
		CustomerID: bk.CustomerID(),
		OldStatus:  string(oldStatus),
		NewStatus:  string(bk.Status()),
		Reason:     bk.Reason(),
		ChangedBy:  identity.UserID,
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:         bk.ID(),
		VehicleID:  bk.VehicleID(),
		CustomerID: bk.CustomerID(),
		FromDate:   bk.FromDate(),
		ToDate:     bk.ToDate(),
		Status:     string(bk.Status()),
		Reason:     bk.Reason(),
		OrderDate:  bk.OrderDate(),
		Version:    bk.Version(),
		CreatedAt:  bk.CreatedAt(),
		UpdatedAt:  bk.UpdatedAt(),
	}
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data any) {
	publishEvent(ctx, s.producer, s.logger, eventType, key, data)
}
