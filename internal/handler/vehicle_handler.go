package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nimbus-rentals/service-rental/internal/application"
	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain/vehicle"
	"github.com/nimbus-rentals/service-rental/internal/middleware"
	"github.com/nimbus-rentals/service-rental/internal/response"
)

// VehicleHandler handles HTTP requests for fleet operations.
type VehicleHandler struct {
	service  *application.VehicleService
	bookings *application.BookingService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(service *application.VehicleService, bookings *application.BookingService) *VehicleHandler {
	return &VehicleHandler{service: service, bookings: bookings}
}

// RegisterRoutes registers all vehicle routes on the given router group.
func (h *VehicleHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	vehicles := r.Group("/api/v1/vehicles")
	vehicles.Use(authMW)
	{
		vehicles.POST("", middleware.RequireRole(auth.RoleAdmin), h.CreateVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.PATCH("/:id",
			middleware.RequireRole(auth.RoleAdmin, auth.RoleCarManager, auth.RoleMotorbikeManager),
			h.UpdateVehicle)
		vehicles.GET("/:id/bookings",
			middleware.RequireRole(auth.RoleAdmin, auth.RoleCarManager, auth.RoleMotorbikeManager),
			h.ListVehicleBookings)
	}
}

// CreateVehicle handles POST /api/v1/vehicles.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req application.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateVehicle(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListVehicles handles GET /api/v1/vehicles with optional filters.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	filter, err := parseVehicleFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetVehicle handles GET /api/v1/vehicles/:id.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	result, err := h.service.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateVehicle handles PATCH /api/v1/vehicles/:id.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	var req application.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateVehicle(c.Request.Context(), identity, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListVehicleBookings handles GET /api/v1/vehicles/:id/bookings.
func (h *VehicleHandler) ListVehicleBookings(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	result, err := h.bookings.ListVehicleBookings(c.Request.Context(), identity, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func parseVehicleFilter(c *gin.Context) (application.VehicleFilter, error) {
	var filter application.VehicleFilter
	var err error

	if filter.Brands, err = parsedParam(c, "brand", vehicle.ParseBrand); err != nil {
		return filter, err
	}
	filter.Models = csvParam(c, "model")
	if filter.FuelTypes, err = parsedParam(c, "fuel_type", vehicle.ParseFuelType); err != nil {
		return filter, err
	}
	if filter.Gearboxes, err = parsedParam(c, "gearbox", vehicle.ParseGearbox); err != nil {
		return filter, err
	}
	if filter.Seats, err = uintParam[uint8](c, "seats", 8); err != nil {
		return filter, err
	}
	if filter.EngineCC, err = uintParam[uint32](c, "engine_cc", 32); err != nil {
		return filter, err
	}
	if filter.Years, err = intParam(c, "year_of_production"); err != nil {
		return filter, err
	}
	if filter.HasSidecar, err = boolParam(c, "has_sidecar"); err != nil {
		return filter, err
	}
	if filter.MinPrice, err = floatParam(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = floatParam(c, "max_price"); err != nil {
		return filter, err
	}
	if filter.AddedFrom, err = timeParam(c, "added_at_from"); err != nil {
		return filter, err
	}
	if filter.AddedTo, err = timeParam(c, "added_at_to"); err != nil {
		return filter, err
	}

	if filter.Pagination, err = parsePagination(c); err != nil {
		return filter, err
	}
	return filter, nil
}
