package kennel

// Kennel bundles one instance of every concrete service.
type Kennel struct {
	Repository MemoryRepository
	Grooming   GroomingLog
	Training   TrainingLog
	Health     HealthLog
	Houses     HouseRegistry
}

// New creates a Kennel with empty services.
func New() Kennel {
	return Kennel{
		Repository: NewMemoryRepository(),
		Grooming:   NewGroomingLog(),
		Training:   NewTrainingLog(),
		Health:     NewHealthLog(),
		Houses:     NewHouseRegistry(),
	}
}

// Seed creates a Kennel populated with the fixed benchmark data set.
func Seed() Kennel {
	k := New()

	for _, d := range []Dog{
		{ID: "1", Name: "Max", Age: 5},
		{ID: "2", Name: "Luna", Age: 3},
		{ID: "3", Name: "Charlie", Age: 2},
	} {
		k.Repository.AddDog(d)
	}

	for _, r := range []GroomingRecord{
		{DogID: "1", Date: "2024-01-15", ServiceType: "bath", Price: 45},
		{DogID: "1", Date: "2024-03-02", ServiceType: "haircut", Price: 60},
		{DogID: "2", Date: "2024-02-10", ServiceType: "nail trim", Price: 15},
		{DogID: "3", Date: "2024-02-20", ServiceType: "bath", Price: 40},
	} {
		k.Grooming.AddGroomingRecord(r)
	}

	for _, r := range []TrainingRecord{
		{DogID: "1", Skill: "sit", ProficiencyLevel: 5, LastTrained: "2024-01-10"},
		{DogID: "1", Skill: "stay", ProficiencyLevel: 4, LastTrained: "2024-02-01"},
		{DogID: "1", Skill: "sit", ProficiencyLevel: 5, LastTrained: "2024-03-01"},
		{DogID: "2", Skill: "fetch", ProficiencyLevel: 3, LastTrained: "2024-02-14"},
		{DogID: "3", Skill: "heel", ProficiencyLevel: 2, LastTrained: "2024-02-28"},
	} {
		k.Training.AddTrainingRecord(r)
	}

	for _, r := range []HealthRecord{
		{DogID: "1", Weight: 30.5, Vaccinations: []string{"rabies", "distemper"}, LastCheckup: "2024-01-05"},
		{DogID: "1", Weight: 31.2, Vaccinations: []string{"bordetella"}, LastCheckup: "2024-04-05"},
		{DogID: "2", Weight: 22.0, Vaccinations: []string{"rabies"}, LastCheckup: "2024-02-11"},
		{DogID: "3", Weight: 12.4, Vaccinations: []string{"parvovirus"}, LastCheckup: "2024-03-18"},
	} {
		k.Health.AddHealthRecord(r)
	}

	for _, h := range []DogHouse{
		{ID: "h1", Size: "medium", Material: "wood"},
		{ID: "h2", Size: "large", Material: "metal"},
		{ID: "h3", Size: "small", Material: "plastic"},
	} {
		k.Houses.AddDogHouse(h)
	}
	k.Houses.AssignDog("1", "h1")

	return k
}
