package dispatch

import "github.com/randomizedcoder/static-vs-dynamic/internal/kennel"

// Report is the result of one Stuff call.
type Report struct {
	DogsInfo        []DogInfo         `json:"dogs_info"`
	AvailableHouses []kennel.DogHouse `json:"available_houses"`
}

// DogInfo is everything known about one dog.
type DogInfo struct {
	Dog      kennel.Dog       `json:"dog"`
	Grooming GroomingInfo     `json:"grooming"`
	Training TrainingInfo     `json:"training"`
	Health   HealthInfo       `json:"health"`
	Housing  *kennel.DogHouse `json:"housing"`
}

type GroomingInfo struct {
	History   []kennel.GroomingRecord `json:"history"`
	TotalCost float64                 `json:"total_cost"`
}

type TrainingInfo struct {
	History []kennel.TrainingRecord `json:"history"`
	Skills  []string                `json:"skills"`
}

type HealthInfo struct {
	History       []kennel.HealthRecord `json:"history"`
	WeightHistory []kennel.WeightPoint  `json:"weight_history"`
}
