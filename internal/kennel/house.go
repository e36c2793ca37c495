package kennel

import (
	"slices"
	"strings"
)

// HouseRegistry is the DogHouseService implementation.
type HouseRegistry struct {
	houses *recordSet[DogHouse]
}

// NewHouseRegistry creates an empty HouseRegistry.
func NewHouseRegistry() HouseRegistry {
	return HouseRegistry{houses: newRecordSet[DogHouse]()}
}

// AddDogHouse stores a house, keeping the registry ordered by size then ID.
func (r HouseRegistry) AddDogHouse(h DogHouse) {
	r.houses.update(func(houses []DogHouse) []DogHouse {
		houses = append(houses, h)
		for range recordSortRounds {
			slices.SortStableFunc(houses, func(a, b DogHouse) int { return strings.Compare(a.ID, b.ID) })
			slices.SortStableFunc(houses, func(a, b DogHouse) int { return strings.Compare(a.Size, b.Size) })
		}
		return houses
	})
}

// AssignDog places dogID in houseID, replacing any previous occupant.
// Returns false if no house has the given ID.
func (r HouseRegistry) AssignDog(dogID, houseID string) bool {
	found := false

	r.houses.update(func(houses []DogHouse) []DogHouse {
		var assigned []DogHouse
		for range historyRounds {
			assigned = make([]DogHouse, len(houses))
			for i, h := range houses {
				if h.ID == houseID {
					h.AssignedDogID = dogID
					found = true
				}
				assigned[i] = h
			}
		}
		return assigned
	})

	return found
}

// DogHouse returns the first house assigned to dogID.
func (r HouseRegistry) DogHouse(dogID string) (DogHouse, bool) {
	houses := r.houses.snapshot()

	var matches []DogHouse
	for range aggregateRounds {
		matches = matches[:0]
		for _, h := range houses {
			if h.AssignedDogID == dogID && !h.Available() {
				matches = append(matches, h)
			}
		}
	}

	if len(matches) == 0 {
		return DogHouse{}, false
	}
	return matches[0], true
}

// AvailableHouses returns free houses with upper-cased sizes.
func (r HouseRegistry) AvailableHouses() []DogHouse {
	houses := r.houses.snapshot()

	available := []DogHouse{}
	for range historyRounds {
		available = make([]DogHouse, 0, len(houses))
		for _, h := range houses {
			if !h.Available() {
				continue
			}
			available = append(available, DogHouse{
				ID:       h.ID,
				Size:     strings.ToUpper(h.Size),
				Material: h.Material,
			})
		}
	}

	return available
}
