package vehicle

// Metadata is the category-specific portion of a vehicle record, a tagged
// variant over the two categories.
type Metadata interface {
	// Category identifies which variant this is.
	Category() Category
	// ModelName is the variant's model in canonical text form.
	ModelName() string
}

// CarMetadata describes a car.
type CarMetadata struct {
	Model    string   `json:"model"`
	Seats    uint8    `json:"seats"`
	FuelType FuelType `json:"fuel_type"`
	Gearbox  Gearbox  `json:"gearbox"`
	EngineCC uint32   `json:"engine_cc"`
}

func (CarMetadata) Category() Category { return CategoryCar }

func (m CarMetadata) ModelName() string { return m.Model }

// MotorbikeMetadata describes a motorbike.
type MotorbikeMetadata struct {
	Model      string `json:"model"`
	EngineCC   uint32 `json:"engine_cc"`
	HasSidecar bool   `json:"has_sidecar"`
}

func (MotorbikeMetadata) Category() Category { return CategoryMotorbike }

func (m MotorbikeMetadata) ModelName() string { return m.Model }
