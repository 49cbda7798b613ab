package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain"
	vehicleDomain "github.com/nimbus-rentals/service-rental/internal/domain/vehicle"
	"github.com/nimbus-rentals/service-rental/internal/events"
	"github.com/nimbus-rentals/service-rental/internal/query"
)

// EventPublisher publishes domain events. Publication is fire-and-forget
// for the request path.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event events.CloudEvent) error
}

// CarMetadataDTO is the wire representation of car-specific metadata.
type CarMetadataDTO struct {
	Model    string `json:"model" binding:"required"`
	Seats    uint8  `json:"seats" binding:"required,min=1"`
	FuelType string `json:"fuel_type" binding:"required"`
	Gearbox  string `json:"gearbox" binding:"required"`
	EngineCC uint32 `json:"engine_cc"`
}

// MotorbikeMetadataDTO is the wire representation of motorbike-specific
// metadata.
type MotorbikeMetadataDTO struct {
	Model      string `json:"model" binding:"required"`
	EngineCC   uint32 `json:"engine_cc" binding:"required"`
	HasSidecar bool   `json:"has_sidecar"`
}

// CreateVehicleRequest holds the data needed to add a vehicle to the fleet.
// Exactly one of Car or Motorbike must be present.
type CreateVehicleRequest struct {
	Brand            string                `json:"brand" binding:"required"`
	Car              *CarMetadataDTO       `json:"car,omitempty"`
	Motorbike        *MotorbikeMetadataDTO `json:"motorbike,omitempty"`
	Description      *string               `json:"description,omitempty"`
	PricePerDay      float64               `json:"price_per_day" binding:"required"`
	YearOfProduction int                   `json:"year_of_production" binding:"required"`
}

// NullableString is a request field that distinguishes an absent JSON
// value from an explicit null. Absent leaves the target unchanged; null
// clears it.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UpdateVehicleRequest carries the only mutable vehicle fields. A null
// description clears the stored text.
type UpdateVehicleRequest struct {
	Description NullableString `json:"description"`
	PricePerDay *float64       `json:"price_per_day,omitempty"`
}

// VehicleDTO is the response representation of a vehicle.
type VehicleDTO struct {
	ID               uuid.UUID             `json:"id"`
	Category         string                `json:"category"`
	Brand            string                `json:"brand"`
	Car              *CarMetadataDTO       `json:"car,omitempty"`
	Motorbike        *MotorbikeMetadataDTO `json:"motorbike,omitempty"`
	Description      *string               `json:"description,omitempty"`
	PricePerDay      float64               `json:"price_per_day"`
	YearOfProduction int                   `json:"year_of_production"`
	AddedBy          string                `json:"added_by"`
	AddedAt          time.Time             `json:"added_at"`
	Version          int64                 `json:"version"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// VehicleFilter holds the optional listing criteria for vehicles. Absent
// criteria contribute nothing to the predicate.
type VehicleFilter struct {
	Brands     []vehicleDomain.Brand
	Models     []string
	FuelTypes  []vehicleDomain.FuelType
	Gearboxes  []vehicleDomain.Gearbox
	Seats      []uint8
	EngineCC   []uint32
	Years      []int
	HasSidecar *bool
	MinPrice   *float64
	MaxPrice   *float64
	AddedFrom  *time.Time
	AddedTo    *time.Time

	Pagination query.Pagination
}

func (f VehicleFilter) predicate() *query.Predicate {
	p := query.New()
	query.Strings(p, "brand", f.Brands)
	query.Values(p, "model", f.Models)
	query.Strings(p, "fuel_type", f.FuelTypes)
	query.Strings(p, "gearbox", f.Gearboxes)
	query.Ints(p, "seats", f.Seats)
	query.Ints(p, "engine_cc", f.EngineCC)
	query.Ints(p, "year_of_production", f.Years)
	query.Boolean(p, "has_sidecar", f.HasSidecar)
	query.Range(p, "price_per_day", f.MinPrice, f.MaxPrice)
	query.Range(p, "added_at", f.AddedFrom, f.AddedTo)
	return p
}

// VehicleService is the application service orchestrating fleet use cases.
type VehicleService struct {
	repo        vehicleDomain.Repository
	producer    EventPublisher
	logger      *zap.Logger
	maxPageSize int
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	repo vehicleDomain.Repository,
	producer EventPublisher,
	logger *zap.Logger,
	maxPageSize int,
) *VehicleService {
	return &VehicleService{
		repo:        repo,
		producer:    producer,
		logger:      logger,
		maxPageSize: maxPageSize,
	}
}

// CreateVehicle adds a new vehicle to the fleet on behalf of the admin
// identity.
func (s *VehicleService) CreateVehicle(ctx context.Context, identity auth.Identity, req CreateVehicleRequest) (*VehicleDTO, error) {
	brand, err := vehicleDomain.ParseBrand(req.Brand)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	metadata, err := buildMetadata(req)
	if err != nil {
		return nil, err
	}

	v, err := vehicleDomain.NewVehicle(
		brand,
		metadata,
		req.Description,
		req.PricePerDay,
		req.YearOfProduction,
		identity.UserID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.VehicleCreated, v.ID().String(), events.VehicleCreatedEvent{
		VehicleID:  v.ID(),
		Category:   string(v.Category()),
		Brand:      string(v.Brand()),
		Model:      v.Metadata().ModelName(),
		AddedBy:    v.AddedBy(),
		OccurredAt: time.Now().UTC(),
	})

	result := toVehicleDTO(v)
	return &result, nil
}

// GetVehicle retrieves a single vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, id uuid.UUID) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toVehicleDTO(v)
	return &result, nil
}

// ListVehicles retrieves a paginated, filtered vehicle listing.
func (s *VehicleService) ListVehicles(ctx context.Context, filter VehicleFilter) (*domain.PaginatedResult[VehicleDTO], error) {
	opts := filter.Pagination.ToOptions(s.maxPageSize)
	vehicles, total, err := s.repo.List(ctx, filter.predicate(), opts)
	if err != nil {
		return nil, err
	}

	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = toVehicleDTO(v)
	}

	page := filter.Pagination.Page
	if page < 1 {
		page = 1
	}
	result := domain.NewPaginatedResult(dtos, total, page, opts.Limit)
	return &result, nil
}

// UpdateVehicle changes a vehicle's description and/or daily price. The
// acting role's competence must cover the vehicle's category.
func (s *VehicleService) UpdateVehicle(ctx context.Context, identity auth.Identity, id uuid.UUID, req UpdateVehicleRequest) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !v.ManageableBy(identity.Role) {
		return nil, domain.NewForbiddenError("you cannot manage vehicles in this category")
	}

	clearDescription := req.Description.Set && req.Description.Value == nil
	if err := v.UpdateDetails(req.Description.Value, clearDescription, req.PricePerDay); err != nil {
		return nil, err
	}

	v.IncrementVersion()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.VehicleUpdated, v.ID().String(), events.VehicleUpdatedEvent{
		VehicleID:   v.ID(),
		PricePerDay: v.PricePerDay(),
		UpdatedBy:   identity.UserID,
		OccurredAt:  time.Now().UTC(),
	})

	result := toVehicleDTO(v)
	return &result, nil
}

// --- Helpers ---

func buildMetadata(req CreateVehicleRequest) (vehicleDomain.Metadata, error) {
	if (req.Car == nil) == (req.Motorbike == nil) {
		return nil, domain.NewValidationError("exactly one of car or motorbike metadata must be provided")
	}

	if req.Car != nil {
		fuel, err := vehicleDomain.ParseFuelType(req.Car.FuelType)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		gearbox, err := vehicleDomain.ParseGearbox(req.Car.Gearbox)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		return vehicleDomain.CarMetadata{
			Model:    req.Car.Model,
			Seats:    req.Car.Seats,
			FuelType: fuel,
			Gearbox:  gearbox,
			EngineCC: req.Car.EngineCC,
		}, nil
	}

	return vehicleDomain.MotorbikeMetadata{
		Model:      req.Motorbike.Model,
		EngineCC:   req.Motorbike.EngineCC,
		HasSidecar: req.Motorbike.HasSidecar,
	}, nil
}

func toVehicleDTO(v *vehicleDomain.Vehicle) VehicleDTO {
	result := VehicleDTO{
		ID:               v.ID(),
		Category:         string(v.Category()),
		Brand:            string(v.Brand()),
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
		result.Car = &CarMetadataDTO{
			Model:    meta.Model,
			Seats:    meta.Seats,
			FuelType: string(meta.FuelType),
			Gearbox:  string(meta.Gearbox),
			EngineCC: meta.EngineCC,
		}
	case vehicleDomain.MotorbikeMetadata:
		result.Motorbike = &MotorbikeMetadataDTO{
			Model:      meta.Model,
			EngineCC:   meta.EngineCC,
			HasSidecar: meta.HasSidecar,
		}
	}
	return result
}

func (s *VehicleService) publishEvent(ctx context.Context, eventType, key string, data any) {
	publishEvent(ctx, s.producer, s.logger, eventType, key, data)
}

func publishEvent(ctx context.Context, producer EventPublisher, logger *zap.Logger, eventType, key string, data any) {
	if producer == nil {
		return
	}

	cloudEvent, err := events.NewCloudEvent("service-rental", eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := producer.Publish(ctx, key, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
