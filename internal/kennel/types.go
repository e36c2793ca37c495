package kennel

// Dog is a registered dog.
type Dog struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  uint32 `json:"age"`
}

// GroomingRecord is one grooming appointment.
type GroomingRecord struct {
	DogID       string  `json:"dog_id"`
	Date        string  `json:"date"`
	ServiceType string  `json:"service_type"`
	Price       float64 `json:"price"`
}

// TrainingRecord is one training session.
type TrainingRecord struct {
	DogID            string `json:"dog_id"`
	Skill            string `json:"skill"`
	ProficiencyLevel uint8  `json:"proficiency_level"`
	LastTrained      string `json:"last_trained"`
}

// HealthRecord is one checkup.
type HealthRecord struct {
	DogID        string   `json:"dog_id"`
	Weight       float64  `json:"weight"`
	Vaccinations []string `json:"vaccinations"`
	LastCheckup  string   `json:"last_checkup"`
}

// WeightPoint is a dog's weight at a checkup date.
type WeightPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// DogHouse is a kennel house. AssignedDogID is empty when the house is free.
type DogHouse struct {
	ID            string `json:"id"`
	Size          string `json:"size"`
	Material      string `json:"material"`
	AssignedDogID string `json:"assigned_dog_id,omitempty"`
}

// Available reports whether the house has no occupant.
func (h DogHouse) Available() bool {
	return h.AssignedDogID == ""
}
