package dispatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/kennel"
)

func TestParseMode(t *testing.T) {
	m, err := dispatch.ParseMode("static")
	require.NoError(t, err)
	assert.Equal(t, dispatch.ModeStatic, m)

	m, err = dispatch.ParseMode("dynamic")
	require.NoError(t, err)
	assert.Equal(t, dispatch.ModeDynamic, m)

	_, err = dispatch.ParseMode("virtual")
	assert.ErrorIs(t, err, dispatch.ErrUnknownMode)
}

func TestMode_BenchmarkName(t *testing.T) {
	assert.Equal(t, "stuff_static", dispatch.ModeStatic.BenchmarkName())
	assert.Equal(t, "stuff_dynamic", dispatch.ModeDynamic.BenchmarkName())
}

func TestNew(t *testing.T) {
	for _, mode := range dispatch.Modes {
		w, err := dispatch.New(mode, kennel.Seed())
		require.NoError(t, err)
		assert.Equal(t, mode, w.Mode())
	}

	_, err := dispatch.New("virtual", kennel.Seed())
	assert.ErrorIs(t, err, dispatch.ErrUnknownMode)
}

// Static and dynamic dispatch must do identical work.
func TestStuff_StaticEqualsDynamic(t *testing.T) {
	static := dispatch.NewStatic(kennel.Seed())
	dynamic := dispatch.NewDynamic(kennel.Seed())

	assert.Equal(t, static.Stuff(), dynamic.Stuff())
}

func TestStuff_SharedKennel(t *testing.T) {
	k := kennel.Seed()
	assert.Equal(t, dispatch.NewStatic(k).Stuff(), dispatch.NewDynamic(k).Stuff())
}

func TestStuff_Contents(t *testing.T) {
	report := dispatch.NewStatic(kennel.Seed()).Stuff()

	require.Len(t, report.DogsInfo, 3)

	maxInfo := report.DogsInfo[0]
	assert.Equal(t, kennel.Dog{ID: "1", Name: "MAX", Age: 5}, maxInfo.Dog)
	assert.Len(t, maxInfo.Grooming.History, 2)
	assert.InDelta(t, 115.5, maxInfo.Grooming.TotalCost, 1e-9)
	assert.Equal(t, []string{"SIT", "STAY"}, maxInfo.Training.Skills)
	assert.Len(t, maxInfo.Health.WeightHistory, 2)
	require.NotNil(t, maxInfo.Housing)
	assert.Equal(t, "h1", maxInfo.Housing.ID)

	assert.Nil(t, report.DogsInfo[1].Housing)
	assert.Len(t, report.AvailableHouses, 2)
}

func TestStuff_Idempotent(t *testing.T) {
	workloads := []dispatch.Workload{
		dispatch.NewStatic(kennel.Seed()),
		dispatch.NewDynamic(kennel.Seed()),
	}

	for _, w := range workloads {
		t.Run(string(w.Mode()), func(t *testing.T) {
			first := w.Stuff()
			for range 3 {
				assert.Equal(t, first, w.Stuff())
			}
		})
	}
}

func TestStuff_BoundedNonZeroTime(t *testing.T) {
	for _, mode := range dispatch.Modes {
		t.Run(string(mode), func(t *testing.T) {
			w, err := dispatch.New(mode, kennel.Seed())
			require.NoError(t, err)

			start := time.Now()
			w.Stuff()
			elapsed := time.Since(start)

			assert.Positive(t, elapsed)
			assert.Less(t, elapsed, 5*time.Second)
		})
	}
}

func TestAddDog(t *testing.T) {
	for _, mode := range dispatch.Modes {
		t.Run(string(mode), func(t *testing.T) {
			w, err := dispatch.New(mode, kennel.New())
			require.NoError(t, err)

			w.AddDog(kennel.Dog{ID: "7", Name: "Rex", Age: 4})

			assert.Equal(t, []kennel.Dog{{ID: "7", Name: "REX", Age: 4}}, w.Dogs())
			report := w.Stuff()
			require.Len(t, report.DogsInfo, 1)
			assert.Empty(t, report.DogsInfo[0].Grooming.History)
			assert.Empty(t, report.AvailableHouses)
		})
	}
}

// TestStuff_MeanLatencySameOrder runs each workload 1000 times and checks
// that the mean latencies differ by less than an order of magnitude.
func TestStuff_MeanLatencySameOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping latency comparison in short mode")
	}

	const iterations = 1000

	mean := func(w dispatch.Workload) time.Duration {
		w.Stuff() // warm up
		start := time.Now()
		for range iterations {
			w.Stuff()
		}
		return time.Since(start) / iterations
	}

	staticMean := mean(dispatch.NewStatic(kennel.Seed()))
	dynamicMean := mean(dispatch.NewDynamic(kennel.Seed()))

	t.Logf("static=%v dynamic=%v", staticMean, dynamicMean)

	require.Positive(t, staticMean)
	require.Positive(t, dynamicMean)
	ratio := float64(dynamicMean) / float64(staticMean)
	assert.Greater(t, ratio, 0.1)
	assert.Less(t, ratio, 10.0)
}
