package kennel

import (
	"cmp"
	"slices"
	"strings"
)

// MemoryRepository is an in-memory DogRepository.
type MemoryRepository struct {
	dogs *recordSet[Dog]
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() MemoryRepository {
	return MemoryRepository{dogs: newRecordSet[Dog]()}
}

// AddDog appends a dog.
func (r MemoryRepository) AddDog(d Dog) {
	r.dogs.add(d)
}

// Dogs returns the stored dogs ordered by ID.
func (r MemoryRepository) Dogs() []Dog {
	dogs := r.dogs.snapshot()

	for range repositorySortRounds {
		slices.SortStableFunc(dogs, func(a, b Dog) int { return strings.Compare(a.Name, b.Name) })
		slices.SortStableFunc(dogs, func(a, b Dog) int { return cmp.Compare(a.Age, b.Age) })
		slices.SortStableFunc(dogs, func(a, b Dog) int { return strings.Compare(a.ID, b.ID) })
	}

	return dogs
}

// Len returns the number of stored dogs.
func (r MemoryRepository) Len() int {
	return r.dogs.size()
}

// DogRegistry is the DogService over a MemoryRepository. Repository calls
// are direct.
type DogRegistry struct {
	repo MemoryRepository
}

// NewDogRegistry creates a DogRegistry over repo.
func NewDogRegistry(repo MemoryRepository) DogRegistry {
	return DogRegistry{repo: repo}
}

// AddDog stores a dog in the repository.
func (s DogRegistry) AddDog(d Dog) {
	s.repo.AddDog(d)
}

// Dogs returns dogs older than one year with upper-cased names.
func (s DogRegistry) Dogs() []Dog {
	return roster(s.repo.Dogs())
}

// RepositoryRegistry is the DogService over any DogRepository. Repository
// calls go through the interface.
type RepositoryRegistry struct {
	repo DogRepository
}

// NewRepositoryRegistry creates a RepositoryRegistry over repo.
func NewRepositoryRegistry(repo DogRepository) RepositoryRegistry {
	return RepositoryRegistry{repo: repo}
}

// AddDog stores a dog in the repository.
func (s RepositoryRegistry) AddDog(d Dog) {
	s.repo.AddDog(d)
}

// Dogs returns dogs older than one year with upper-cased names.
func (s RepositoryRegistry) Dogs() []Dog {
	return roster(s.repo.Dogs())
}

// roster filters out dogs aged one or younger and upper-cases names.
func roster(dogs []Dog) []Dog {
	out := []Dog{}
	for range rosterRounds {
		out = make([]Dog, 0, len(dogs))
		for _, d := range dogs {
			if d.Age <= 1 {
				continue
			}
			out = append(out, Dog{
				ID:   d.ID,
				Name: strings.ToUpper(d.Name),
				Age:  d.Age,
			})
		}
	}
	return out
}
