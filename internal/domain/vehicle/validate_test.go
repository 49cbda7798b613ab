package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-rentals/service-rental/internal/domain"
)

func TestValidateBrandModel(t *testing.T) {
	tests := []struct {
		name     string
		brand    Brand
		metadata Metadata
		wantErr  string
	}{
		{
			name:     "valid tesla",
			brand:    BrandTesla,
			metadata: CarMetadata{Model: "MODEL_3", Seats: 5, FuelType: FuelElectric, Gearbox: GearboxAutomatic},
		},
		{
			name:     "valid mercedes",
			brand:    BrandMercedes,
			metadata: CarMetadata{Model: "G_CLASS", Seats: 5, FuelType: FuelDiesel, Gearbox: GearboxManual, EngineCC: 2925},
		},
		{
			name:     "valid honda sportbike",
			brand:    BrandHonda,
			metadata: MotorbikeMetadata{Model: "SPORTBIKE", EngineCC: 600},
		},
		{
			name:     "valid harley cruiser",
			brand:    BrandHarleyDavidson,
			metadata: MotorbikeMetadata{Model: "CRUISER", EngineCC: 1868, HasSidecar: true},
		},
		{
			name:     "car brand with motorbike metadata",
			brand:    BrandTesla,
			metadata: MotorbikeMetadata{Model: "SPORTBIKE", EngineCC: 600},
			wantErr:  "TESLA is a car brand and cannot be used with motorbike metadata",
		},
		{
			name:     "motorbike brand with car metadata",
			brand:    BrandYamaha,
			metadata: CarMetadata{Model: "MODEL_3", Seats: 5, FuelType: FuelElectric, Gearbox: GearboxAutomatic},
			wantErr:  "YAMAHA is a motorbike brand and cannot be used with car metadata",
		},
		{
			name:     "model from other car brand",
			brand:    BrandTesla,
			metadata: CarMetadata{Model: "E_CLASS", Seats: 5, FuelType: FuelElectric, Gearbox: GearboxAutomatic},
			wantErr:  "invalid model for TESLA brand",
		},
		{
			name:     "unknown motorbike model",
			brand:    BrandDucati,
			metadata: MotorbikeMetadata{Model: "SCOOTER", EngineCC: 125},
			wantErr:  "invalid motorbike model: SCOOTER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrandModel(tt.brand, tt.metadata)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateFuelConstraint(t *testing.T) {
	err := ValidateFuelConstraint(CarMetadata{Model: "MODEL_S", FuelType: FuelDiesel})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MODEL_S is an electric-only model and must have ELECTRIC fuel type")

	err = ValidateFuelConstraint(CarMetadata{Model: "CYBERTRUCK", FuelType: FuelPetrol})
	assert.Error(t, err)

	assert.NoError(t, ValidateFuelConstraint(CarMetadata{Model: "MODEL_S", FuelType: FuelElectric}))
	assert.NoError(t, ValidateFuelConstraint(CarMetadata{Model: "C_CLASS", FuelType: FuelDiesel}))

	// Motorbikes have no fuel constraint.
	assert.NoError(t, ValidateFuelConstraint(MotorbikeMetadata{Model: "CRUISER"}))
}

func TestParseCatalogTypes(t *testing.T) {
	brand, err := ParseBrand("KAWASAKI")
	require.NoError(t, err)
	assert.Equal(t, BrandKawasaki, brand)
	_, err = ParseBrand("FERRARI")
	assert.Error(t, err)

	fuel, err := ParseFuelType("ELECTRIC")
	require.NoError(t, err)
	assert.Equal(t, FuelElectric, fuel)
	_, err = ParseFuelType("electric")
	assert.Error(t, err)

	gearbox, err := ParseGearbox("MANUAL")
	require.NoError(t, err)
	assert.Equal(t, GearboxManual, gearbox)
	_, err = ParseGearbox("CVT")
	assert.Error(t, err)
}

func TestBrandCategory(t *testing.T) {
	cat, ok := BrandCategory(BrandMercedes)
	require.True(t, ok)
	assert.Equal(t, CategoryCar, cat)

	cat, ok = BrandCategory(BrandBMW)
	require.True(t, ok)
	assert.Equal(t, CategoryMotorbike, cat)

	_, ok = BrandCategory(Brand("LADA"))
	assert.False(t, ok)
}
