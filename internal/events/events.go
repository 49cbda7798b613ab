package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Topic carries every rental domain event.
const TopicRentalEvents = "rental.events"

// Event types published by this service.
const (
	BookingCreated       = "rental.booking.created"
	BookingStatusChanged = "rental.booking.status_changed"
	VehicleCreated       = "rental.vehicle.created"
	VehicleUpdated       = "rental.vehicle.updated"
)

// CloudEvent is the envelope every published event is wrapped in.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent wraps the payload in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data any) (CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, err
	}
	return CloudEvent{
		ID:     uuid.NewString(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseData unmarshals the event payload into out.
func (e CloudEvent) ParseData(out any) error {
	return json.Unmarshal(e.Data, out)
}

// BookingCreatedEvent is published after a booking is persisted.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	CustomerID string    `json:"customer_id"`
	FromDate   string    `json:"from_date"`
	ToDate     string    `json:"to_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published after a status transition commits.
type BookingStatusChangedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	CustomerID string    `json:"customer_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	Reason     string    `json:"reason,omitempty"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// VehicleCreatedEvent is published after a vehicle joins the fleet.
type VehicleCreatedEvent struct {
	VehicleID  uuid.UUID `json:"vehicle_id"`
	Category   string    `json:"category"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	AddedBy    string    `json:"added_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// VehicleUpdatedEvent is published after a vehicle's mutable details change.
type VehicleUpdatedEvent struct {
	VehicleID   uuid.UUID `json:"vehicle_id"`
	PricePerDay float64   `json:"price_per_day"`
	UpdatedBy   string    `json:"updated_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
