package vehicle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain"
)

func newTestCar(t *testing.T) *Vehicle {
	t.Helper()
	v, err := NewVehicle(
		BrandTesla,
		CarMetadata{Model: "MODEL_Y", Seats: 5, FuelType: FuelElectric, Gearbox: GearboxAutomatic},
		nil,
		120.0,
		2024,
		"Admin",
	)
	require.NoError(t, err)
	return v
}

func newTestMotorbike(t *testing.T) *Vehicle {
	t.Helper()
	v, err := NewVehicle(
		BrandDucati,
		MotorbikeMetadata{Model: "SPORTBIKE", EngineCC: 937},
		nil,
		80.0,
		2023,
		"Admin",
	)
	require.NoError(t, err)
	return v
}

func TestNewVehicle(t *testing.T) {
	v := newTestCar(t)

	assert.Equal(t, BrandTesla, v.Brand())
	assert.Equal(t, CategoryCar, v.Category())
	assert.Equal(t, "MODEL_Y", v.Metadata().ModelName())
	assert.Equal(t, "Admin", v.AddedBy())
	assert.Equal(t, int64(1), v.Version())
	assert.False(t, v.AddedAt().IsZero())
}

func TestNewVehicleValidation(t *testing.T) {
	meta := CarMetadata{Model: "MODEL_Y", Seats: 5, FuelType: FuelElectric, Gearbox: GearboxAutomatic}

	_, err := NewVehicle(BrandTesla, nil, nil, 100, 2024, "Admin")
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))

	_, err = NewVehicle(BrandTesla, meta, nil, 0, 2024, "Admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price per day must be greater than 0")

	_, err = NewVehicle(BrandTesla, meta, nil, -5, 2024, "Admin")
	assert.Error(t, err)

	_, err = NewVehicle(BrandTesla, meta, nil, 100, 1899, "Admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year of production")

	_, err = NewVehicle(BrandTesla, meta, nil, 100, 2031, "Admin")
	assert.Error(t, err)

	_, err = NewVehicle(BrandTesla, meta, nil, 100, 2024, "")
	assert.Error(t, err)

	empty := ""
	_, err = NewVehicle(BrandTesla, meta, &empty, 100, 2024, "Admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description must be between 1 and 249 characters")

	long := strings.Repeat("x", 250)
	_, err = NewVehicle(BrandTesla, meta, &long, 100, 2024, "Admin")
	assert.Error(t, err)

	// Diesel Tesla is rejected at construction.
	_, err = NewVehicle(BrandTesla,
		CarMetadata{Model: "MODEL_Y", Seats: 5, FuelType: FuelDiesel, Gearbox: GearboxAutomatic},
		nil, 100, 2024, "Admin")
	require.Error(t, err)
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
}

func TestManageableBy(t *testing.T) {
	car := newTestCar(t)
	bike := newTestMotorbike(t)

	assert.True(t, car.ManageableBy(auth.RoleAdmin))
	assert.True(t, bike.ManageableBy(auth.RoleAdmin))

	assert.True(t, car.ManageableBy(auth.RoleCarManager))
	assert.False(t, bike.ManageableBy(auth.RoleCarManager))

	assert.False(t, car.ManageableBy(auth.RoleMotorbikeManager))
	assert.True(t, bike.ManageableBy(auth.RoleMotorbikeManager))

	assert.False(t, car.ManageableBy(auth.RoleCustomer))
}

func TestUpdateDetails(t *testing.T) {
	v := newTestCar(t)

	desc := "Long range, white interior"
	price := 150.0
	require.NoError(t, v.UpdateDetails(&desc, false, &price))
	require.NotNil(t, v.Description())
	assert.Equal(t, desc, *v.Description())
	assert.Equal(t, price, v.PricePerDay())

	// Partial update keeps the untouched field.
	newPrice := 135.0
	require.NoError(t, v.UpdateDetails(nil, false, &newPrice))
	require.NotNil(t, v.Description())
	assert.Equal(t, desc, *v.Description())
	assert.Equal(t, newPrice, v.PricePerDay())

	// Invalid values leave the aggregate unchanged.
	bad := -1.0
	err := v.UpdateDetails(nil, false, &bad)
	require.Error(t, err)
	assert.Equal(t, newPrice, v.PricePerDay())

	empty := ""
	err = v.UpdateDetails(&empty, false, nil)
	require.Error(t, err)
	assert.Equal(t, desc, *v.Description())
}

func TestUpdateDetailsClearsDescription(t *testing.T) {
	v := newTestCar(t)

	desc := "weekend special"
	require.NoError(t, v.UpdateDetails(&desc, false, nil))
	require.NotNil(t, v.Description())

	require.NoError(t, v.UpdateDetails(nil, true, nil))
	assert.Nil(t, v.Description())
}
