// Package dispatch provides the two workloads compared by the benchmarks.
//
// Static and Dynamic run the same Stuff body over the same kennel services:
//   - Static holds the concrete service types. Every service call is a
//     direct call the compiler may inline.
//   - Dynamic holds the service interfaces. Every service call loads the
//     method from the itab and calls it indirectly.
//
// Neither is generic. A generic body is shared per GC shape and calls
// type-parameter methods through a dictionary, so a generic Static would
// dispatch indirectly as well.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/randomizedcoder/static-vs-dynamic/internal/kennel"
)

// Mode names a dispatch strategy.
type Mode string

const (
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
)

// Modes lists every mode in report order.
var Modes = []Mode{ModeStatic, ModeDynamic}

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("dispatch: unknown mode")

// ParseMode converts a name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStatic, ModeDynamic:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w %q (want %q or %q)", ErrUnknownMode, s, ModeStatic, ModeDynamic)
	}
}

// BenchmarkName is the name a mode's results are reported and stored under.
func (m Mode) BenchmarkName() string {
	return "stuff_" + string(m)
}

// Workload is a benchmarkable application.
//
// Stuff must be infallible, deterministic for a given kennel state and
// free of observable side effects, so that repeated sampling is valid.
type Workload interface {
	Mode() Mode

	// Stuff performs one unit of work and returns its result.
	Stuff() Report

	// AddDog registers a dog.
	AddDog(kennel.Dog)

	// Dogs returns the processed roster.
	Dogs() []kennel.Dog
}

// Static composes the concrete kennel services. Every service call is
// resolved at compile time.
type Static struct {
	dogs     kennel.DogRegistry
	grooming kennel.GroomingLog
	training kennel.TrainingLog
	health   kennel.HealthLog
	houses   kennel.HouseRegistry
}

// Dynamic composes the kennel services behind their interfaces. Every
// service call goes through an itab, including the dog registry's calls
// into its repository.
type Dynamic struct {
	dogs     kennel.DogService
	grooming kennel.GroomingService
	training kennel.TrainingService
	health   kennel.HealthService
	houses   kennel.DogHouseService
}

// NewStatic creates a Static app over k.
func NewStatic(k kennel.Kennel) *Static {
	return &Static{
		dogs:     kennel.NewDogRegistry(k.Repository),
		grooming: k.Grooming,
		training: k.Training,
		health:   k.Health,
		houses:   k.Houses,
	}
}

// NewDynamic creates a Dynamic app over k.
func NewDynamic(k kennel.Kennel) *Dynamic {
	return NewDynamicFrom(
		kennel.NewRepositoryRegistry(k.Repository),
		k.Grooming,
		k.Training,
		k.Health,
		k.Houses,
	)
}

// NewDynamicFrom creates a Dynamic app over arbitrary service
// implementations.
func NewDynamicFrom(
	dogs kennel.DogService,
	grooming kennel.GroomingService,
	training kennel.TrainingService,
	health kennel.HealthService,
	houses kennel.DogHouseService,
) *Dynamic {
	return &Dynamic{
		dogs:     dogs,
		grooming: grooming,
		training: training,
		health:   health,
		houses:   houses,
	}
}

// New creates the app for mode over k.
func New(mode Mode, k kennel.Kennel) (Workload, error) {
	switch mode {
	case ModeStatic:
		return NewStatic(k), nil
	case ModeDynamic:
		return NewDynamic(k), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
}

// Mode returns ModeStatic.
func (a *Static) Mode() Mode { return ModeStatic }

// AddDog registers a dog with the dog service.
func (a *Static) AddDog(d kennel.Dog) {
	a.dogs.AddDog(d)
}

// Dogs returns the dog service roster.
func (a *Static) Dogs() []kennel.Dog {
	return a.dogs.Dogs()
}

// Stuff gathers everything the kennel knows about every dog on the roster.
func (a *Static) Stuff() Report {
	dogs := a.dogs.Dogs()

	infos := make([]DogInfo, 0, len(dogs))
	for _, dog := range dogs {
		info := DogInfo{
			Dog: dog,
			Grooming: GroomingInfo{
				History:   a.grooming.GroomingHistory(dog.ID),
				TotalCost: a.grooming.TotalGroomingCost(dog.ID),
			},
			Training: TrainingInfo{
				History: a.training.TrainingHistory(dog.ID),
				Skills:  a.training.Skills(dog.ID),
			},
			Health: HealthInfo{
				History:       a.health.HealthHistory(dog.ID),
				WeightHistory: a.health.WeightHistory(dog.ID),
			},
		}
		if house, ok := a.houses.DogHouse(dog.ID); ok {
			info.Housing = &house
		}
		infos = append(infos, info)
	}

	return Report{
		DogsInfo:        infos,
		AvailableHouses: a.houses.AvailableHouses(),
	}
}

// Mode returns ModeDynamic.
func (a *Dynamic) Mode() Mode { return ModeDynamic }

// AddDog registers a dog with the dog service.
func (a *Dynamic) AddDog(d kennel.Dog) {
	a.dogs.AddDog(d)
}

// Dogs returns the dog service roster.
func (a *Dynamic) Dogs() []kennel.Dog {
	return a.dogs.Dogs()
}

// Stuff gathers everything the kennel knows about every dog on the roster.
// The body must stay identical to (*Static).Stuff.
func (a *Dynamic) Stuff() Report {
	dogs := a.dogs.Dogs()

	infos := make([]DogInfo, 0, len(dogs))
	for _, dog := range dogs {
		info := DogInfo{
			Dog: dog,
			Grooming: GroomingInfo{
				History:   a.grooming.GroomingHistory(dog.ID),
				TotalCost: a.grooming.TotalGroomingCost(dog.ID),
			},
			Training: TrainingInfo{
				History: a.training.TrainingHistory(dog.ID),
				Skills:  a.training.Skills(dog.ID),
			},
			Health: HealthInfo{
				History:       a.health.HealthHistory(dog.ID),
				WeightHistory: a.health.WeightHistory(dog.ID),
			},
		}
		if house, ok := a.houses.DogHouse(dog.ID); ok {
			info.Housing = &house
		}
		infos = append(infos, info)
	}

	return Report{
		DogsInfo:        infos,
		AvailableHouses: a.houses.AvailableHouses(),
	}
}
