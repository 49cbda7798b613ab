package vehicle

import "fmt"

// Category distinguishes the two vehicle families the fleet carries.
type Category string

const (
	CategoryCar       Category = "CAR"
	CategoryMotorbike Category = "MOTORBIKE"
)

// Brand is a vehicle manufacturer recognised by the catalog.
type Brand string

const (
	BrandTesla          Brand = "TESLA"
	BrandMercedes       Brand = "MERCEDES"
	BrandHonda          Brand = "HONDA"
	BrandYamaha         Brand = "YAMAHA"
	BrandKawasaki       Brand = "KAWASAKI"
	BrandDucati         Brand = "DUCATI"
	BrandBMW            Brand = "BMW"
	BrandHarleyDavidson Brand = "HARLEY_DAVIDSON"
)

// FuelType is the fuel a car runs on.
type FuelType string

const (
	FuelPetrol   FuelType = "PETROL"
	FuelDiesel   FuelType = "DIESEL"
	FuelElectric FuelType = "ELECTRIC"
)

// Gearbox is a car's transmission type.
type Gearbox string

const (
	GearboxManual    Gearbox = "MANUAL"
	GearboxAutomatic Gearbox = "AUTOMATIC"
)

func (b Brand) String() string    { return string(b) }
func (c Category) String() string { return string(c) }
func (f FuelType) String() string { return string(f) }
func (g Gearbox) String() string  { return string(g) }

// brandCategories maps every catalog brand to the category it builds for.
var brandCategories = map[Brand]Category{
	BrandTesla:          CategoryCar,
	BrandMercedes:       CategoryCar,
	BrandHonda:          CategoryMotorbike,
	BrandYamaha:         CategoryMotorbike,
	BrandKawasaki:       CategoryMotorbike,
	BrandDucati:         CategoryMotorbike,
	BrandBMW:            CategoryMotorbike,
	BrandHarleyDavidson: CategoryMotorbike,
}

// brandModels maps each car brand to its valid model lineup. Motorbike
// brands accept every motorbike model, so they are not listed here.
var brandModels = map[Brand][]string{
	BrandTesla:    {"MODEL_S", "MODEL_3", "MODEL_X", "MODEL_Y", "CYBERTRUCK", "ROADSTER"},
	BrandMercedes: {"A_CLASS", "C_CLASS", "E_CLASS", "S_CLASS", "G_CLASS", "GLC", "GLE", "AMG_GT"},
}

// electricOnlyModels lists model families whose brand mandates electric
// fuel. Currently the entire Tesla lineup.
var electricOnlyModels = map[string]bool{
	"MODEL_S":    true,
	"MODEL_3":    true,
	"MODEL_X":    true,
	"MODEL_Y":    true,
	"CYBERTRUCK": true,
	"ROADSTER":   true,
}

// motorbikeModels is the fixed set of motorbike body styles.
var motorbikeModels = map[string]bool{
	"SPORTBIKE": true,
	"CRUISER":   true,
}

// ParseBrand converts a string to a Brand, returning an error if the brand
// is not in the catalog.
func ParseBrand(s string) (Brand, error) {
	if _, ok := brandCategories[Brand(s)]; !ok {
		return "", fmt.Errorf("unknown brand: %s", s)
	}
	return Brand(s), nil
}

// ParseFuelType converts a string to a FuelType.
func ParseFuelType(s string) (FuelType, error) {
	switch FuelType(s) {
	case FuelPetrol, FuelDiesel, FuelElectric:
		return FuelType(s), nil
	}
	return "", fmt.Errorf("unknown fuel type: %s", s)
}

// ParseGearbox converts a string to a Gearbox.
func ParseGearbox(s string) (Gearbox, error) {
	switch Gearbox(s) {
	case GearboxManual, GearboxAutomatic:
		return Gearbox(s), nil
	}
	return "", fmt.Errorf("unknown gearbox: %s", s)
}

// BrandCategory returns the category a brand builds for.
func BrandCategory(b Brand) (Category, bool) {
	c, ok := brandCategories[b]
	return c, ok
}
