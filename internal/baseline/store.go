// Package baseline persists report summaries so later runs can be
// compared against them.
package baseline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/randomizedcoder/static-vs-dynamic/internal/report"
)

// Run is the set of summaries produced by one invocation.
type Run struct {
	Timestamp time.Time        `json:"timestamp"`
	Label     string           `json:"label,omitempty"` // e.g. "run" or "load"
	Summaries []report.Summary `json:"summaries"`
}

// Store defines the interface for storing benchmark runs.
type Store interface {
	Save(run Run) error
	LoadAll() ([]Run, error)
	LoadLatest() (*Run, error)
	Latest(name string) (report.Summary, bool, error)
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path, creating its directory.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Save appends run to the history.
func (s *FileStore) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}

	runs = append(runs, run)

	data, err := sonic.ConfigStd.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	return os.WriteFile(s.path, data, 0644)
}

// LoadAll returns every stored run ordered by timestamp.
// A missing or empty file is an empty history.
func (s *FileStore) LoadAll() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Run{}, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return []Run{}, nil
	}

	var runs []Run
	if err := sonic.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal runs from %s: %w", s.path, err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

// LoadLatest returns the most recent run, or nil if there is none.
func (s *FileStore) LoadLatest() (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}

// Latest returns the most recent summary stored under name.
func (s *FileStore) Latest(name string) (report.Summary, bool, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return report.Summary{}, false, err
	}

	for i := len(runs) - 1; i >= 0; i-- {
		for _, sum := range runs[i].Summaries {
			if sum.Name == name {
				return sum, true, nil
			}
		}
	}
	return report.Summary{}, false, nil
}
