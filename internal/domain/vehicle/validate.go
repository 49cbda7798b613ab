package vehicle

import (
	"fmt"
	"slices"

	"github.com/nimbus-rentals/service-rental/internal/domain"
)

// ValidateBrandModel rejects brand/metadata combinations where the brand
// does not build for the metadata's category, or the model is not part of
// the brand's lineup.
func ValidateBrandModel(brand Brand, metadata Metadata) error {
	brandCat, ok := brandCategories[brand]
	if !ok {
		return domain.NewValidationError(fmt.Sprintf("unknown brand: %s", brand))
	}

	if brandCat != metadata.Category() {
		switch brandCat {
		case CategoryCar:
			return domain.NewValidationError(
				fmt.Sprintf("%s is a car brand and cannot be used with motorbike metadata", brand))
		default:
			return domain.NewValidationError(
				fmt.Sprintf("%s is a motorbike brand and cannot be used with car metadata", brand))
		}
	}

	switch metadata.Category() {
	case CategoryCar:
		if !slices.Contains(brandModels[brand], metadata.ModelName()) {
			return domain.NewValidationError(fmt.Sprintf("invalid model for %s brand", brand))
		}
	case CategoryMotorbike:
		if !motorbikeModels[metadata.ModelName()] {
			return domain.NewValidationError(fmt.Sprintf("invalid motorbike model: %s", metadata.ModelName()))
		}
	}

	return nil
}

// ValidateFuelConstraint rejects car metadata whose model belongs to an
// electric-only lineup but declares a non-electric fuel type.
func ValidateFuelConstraint(metadata Metadata) error {
	car, ok := metadata.(CarMetadata)
	if !ok {
		return nil
	}
	if electricOnlyModels[car.Model] && car.FuelType != FuelElectric {
		return domain.NewValidationError(
			fmt.Sprintf("%s is an electric-only model and must have ELECTRIC fuel type", car.Model))
	}
	return nil
}
