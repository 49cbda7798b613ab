package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nimbus-rentals/service-rental/internal/domain"
	bookingDomain "github.com/nimbus-rentals/service-rental/internal/domain/booking"
	vehicleDomain "github.com/nimbus-rentals/service-rental/internal/domain/vehicle"
	"github.com/nimbus-rentals/service-rental/internal/events"
	"github.com/nimbus-rentals/service-rental/internal/query"
)

// fakeVehicleRepo is an in-memory vehicle repository for service tests.
type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*vehicleDomain.Vehicle
	lastPred *query.Predicate
	lastOpts query.Options
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[uuid.UUID]*vehicleDomain.Vehicle)}
}

func (f *fakeVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*vehicleDomain.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, domain.NewNotFoundError("Vehicle", id.String())
	}
	return v, nil
}

func (f *fakeVehicleRepo) List(_ context.Context, pred *query.Predicate, opts query.Options) ([]*vehicleDomain.Vehicle, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPred = pred
	f.lastOpts = opts
	out := make([]*vehicleDomain.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (f *fakeVehicleRepo) Save(_ context.Context, v *vehicleDomain.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicles[v.ID()] = v
	return nil
}

func (f *fakeVehicleRepo) Update(_ context.Context, v *vehicleDomain.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicles[v.ID()] = v
	return nil
}

// fakeBookingRepo is an in-memory booking repository for service tests.
// Overlap semantics mirror the SQL implementation: inclusive bounds, live
// statuses only.
type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*bookingDomain.Booking
	overlapErr error
	lastPred   *query.Predicate
	lastOpts   query.Options
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bk, ok := f.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (f *fakeBookingRepo) List(_ context.Context, pred *query.Predicate, opts query.Options) ([]*bookingDomain.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPred = pred
	f.lastOpts = opts
	out := make([]*bookingDomain.Booking, 0, len(f.bookings))
	for _, bk := range f.bookings {
		out = append(out, bk)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID) ([]*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range f.bookings {
		if bk.VehicleID() == vehicleID {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) HasOverlapping(_ context.Context, vehicleID uuid.UUID, rng bookingDomain.DateRange) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlapErr != nil {
		return false, f.overlapErr
	}
	return f.hasOverlapLocked(vehicleID, rng), nil
}

func (f *fakeBookingRepo) hasOverlapLocked(vehicleID uuid.UUID, rng bookingDomain.DateRange) bool {
	for _, bk := range f.bookings {
		if bk.VehicleID() == vehicleID && bk.Status().IsLive() && bk.Range().Overlaps(rng) {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) Create(_ context.Context, b *bookingDomain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasOverlapLocked(b.VehicleID(), b.Range()) {
		return domain.NewConflictError("vehicle is already booked for overlapping dates")
	}
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *bookingDomain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID()] = b
	return nil
}

// fakePublisher records every published event.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.CloudEvent
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event events.CloudEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, len(f.events))
	for i, e := range f.events {
		types[i] = e.Type
	}
	return types
}
