package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/kennel"
)

// Fixed-answer services for the dynamic app.

type stubDogs struct{ dogs []kennel.Dog }

func (s *stubDogs) AddDog(d kennel.Dog) { s.dogs = append(s.dogs, d) }
func (s *stubDogs) Dogs() []kennel.Dog  { return s.dogs }

type stubGrooming struct{}

func (stubGrooming) AddGroomingRecord(kennel.GroomingRecord) {}
func (stubGrooming) GroomingHistory(dogID string) []kennel.GroomingRecord {
	return []kennel.GroomingRecord{{DogID: dogID, Date: "2024-05-01", ServiceType: "BATH", Price: 10}}
}
func (stubGrooming) TotalGroomingCost(string) float64 { return 10 }

type stubTraining struct{}

func (stubTraining) AddTrainingRecord(kennel.TrainingRecord)        {}
func (stubTraining) TrainingHistory(string) []kennel.TrainingRecord { return []kennel.TrainingRecord{} }
func (stubTraining) Skills(string) []string                         { return []string{"ROLL"} }

type stubHealth struct{}

func (stubHealth) AddHealthRecord(kennel.HealthRecord)          {}
func (stubHealth) HealthHistory(string) []kennel.HealthRecord { return []kennel.HealthRecord{} }
func (stubHealth) WeightHistory(string) []kennel.WeightPoint {
	return []kennel.WeightPoint{{Date: "2024-05-01", Weight: 9.5}}
}

type stubHouses struct{}

func (stubHouses) AddDogHouse(kennel.DogHouse)             {}
func (stubHouses) AssignDog(string, string) bool           { return false }
func (stubHouses) DogHouse(string) (kennel.DogHouse, bool) { return kennel.DogHouse{}, false }
func (stubHouses) AvailableHouses() []kennel.DogHouse {
	return []kennel.DogHouse{{ID: "s1", Size: "small", Material: "straw"}}
}

func TestStuff_StubServices(t *testing.T) {
	dogs := &stubDogs{dogs: []kennel.Dog{{ID: "9", Name: "TEST", Age: 4}}}
	app := dispatch.NewDynamicFrom(dogs, stubGrooming{}, stubTraining{}, stubHealth{}, stubHouses{})

	ts := httptest.NewServer(New("", app, nil).Handler())
	defer ts.Close()

	status, body := get(t, ts.URL+"/stuff")
	require.Equal(t, http.StatusOK, status)

	var report dispatch.Report
	require.NoError(t, sonic.Unmarshal(body, &report))

	require.Len(t, report.DogsInfo, 1)
	info := report.DogsInfo[0]
	assert.Equal(t, kennel.Dog{ID: "9", Name: "TEST", Age: 4}, info.Dog)
	assert.Equal(t, 10.0, info.Grooming.TotalCost)
	assert.Equal(t, "9", info.Grooming.History[0].DogID)
	assert.Equal(t, []string{"ROLL"}, info.Training.Skills)
	assert.Equal(t, []kennel.WeightPoint{{Date: "2024-05-01", Weight: 9.5}}, info.Health.WeightHistory)
	assert.Nil(t, info.Housing)
	assert.Equal(t, []kennel.DogHouse{{ID: "s1", Size: "small", Material: "straw"}}, report.AvailableHouses)
}
