// Package kennel provides the workload used by the dispatch benchmarks.
//
// The package offers a small set of service interfaces and one concrete
// implementation of each:
//   - DogRepository: MemoryRepository
//   - DogService: DogRegistry (over MemoryRepository), RepositoryRegistry
//     (over any DogRepository)
//   - GroomingService: GroomingLog
//   - TrainingService: TrainingLog
//   - HealthService: HealthLog
//   - DogHouseService: HouseRegistry
//
// The concrete services are small value types holding a pointer to a
// mutex-guarded record set. Copying a service copies the handle, not the
// records, so the same Kennel can back several callers.
//
// # Work per call
//
// Read methods repeat their sort/filter/aggregate pass a fixed number of
// rounds so that one call costs a measurable amount of CPU. Every round
// recomputes from the same snapshot: results are deterministic and read
// methods never mutate state.
package kennel

// DogRepository stores dogs.
type DogRepository interface {
	// AddDog appends a dog to the repository.
	AddDog(Dog)

	// Dogs returns a copy of the stored dogs ordered by ID.
	Dogs() []Dog
}

// DogService exposes the processed dog roster.
type DogService interface {
	AddDog(Dog)

	// Dogs returns dogs older than one year with display names.
	Dogs() []Dog
}

// GroomingService tracks grooming appointments.
type GroomingService interface {
	AddGroomingRecord(GroomingRecord)
	GroomingHistory(dogID string) []GroomingRecord
	TotalGroomingCost(dogID string) float64
}

// TrainingService tracks training sessions.
type TrainingService interface {
	AddTrainingRecord(TrainingRecord)
	TrainingHistory(dogID string) []TrainingRecord

	// Skills returns the sorted, de-duplicated skills a dog has trained.
	Skills(dogID string) []string
}

// HealthService tracks checkups.
type HealthService interface {
	AddHealthRecord(HealthRecord)
	HealthHistory(dogID string) []HealthRecord
	WeightHistory(dogID string) []WeightPoint
}

// DogHouseService tracks dog houses and their occupants.
type DogHouseService interface {
	AddDogHouse(DogHouse)

	// AssignDog places a dog in a house.
	// Returns false if no house has the given ID.
	AssignDog(dogID, houseID string) bool

	// DogHouse returns the house assigned to a dog, if any.
	DogHouse(dogID string) (DogHouse, bool)

	// AvailableHouses returns the houses with no occupant.
	AvailableHouses() []DogHouse
}
