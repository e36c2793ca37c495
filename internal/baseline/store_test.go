package baseline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/static-vs-dynamic/internal/report"
)

func sum(name string, mid time.Duration) report.Summary {
	return report.Summary{
		Name:    name,
		Samples: 100,
		Mean:    report.Estimate{Low: mid - time.Microsecond, Mid: mid, High: mid + time.Microsecond},
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "baseline.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	// Empty history
	runs, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, runs)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	run1 := Run{
		Timestamp: time.Now().Add(-time.Hour),
		Label:     "run",
		Summaries: []report.Summary{sum("stuff_static", 400*time.Microsecond), sum("stuff_dynamic", 410*time.Microsecond)},
	}
	require.NoError(t, store.Save(run1))

	run2 := Run{
		Timestamp: time.Now(),
		Label:     "run",
		Summaries: []report.Summary{sum("stuff_static", 390*time.Microsecond)},
	}
	require.NoError(t, store.Save(run2))

	runs, err = store.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 400*time.Microsecond, runs[0].Summaries[0].Mean.Mid)

	latest, err = store.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Len(t, latest.Summaries, 1)

	got, ok, err := store.Latest("stuff_static")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 390*time.Microsecond, got.Mean.Mid)

	// Falls back to older runs for names the latest run lacks.
	got, ok, err = store.Latest("stuff_dynamic")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 410*time.Microsecond, got.Mean.Mid)

	_, ok, err = store.Latest("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_SortsByTimestamp(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "baseline.json"))
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, store.Save(Run{Timestamp: now, Label: "new"}))
	require.NoError(t, store.Save(Run{Timestamp: now.Add(-time.Minute), Label: "old"}))

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "new", latest.Label)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.LoadAll()
	assert.Error(t, err)
	assert.Error(t, store.Save(Run{Timestamp: time.Now()}))
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	runs, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
