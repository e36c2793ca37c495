package kennel

import "sync"

// Rounds of repeated work per call.
const (
	repositorySortRounds = 1000
	rosterRounds         = 500
	groomingSortRounds   = 500
	recordSortRounds     = 400
	historyRounds        = 300
	aggregateRounds      = 200
)

// recordSet is the shared, mutex-guarded storage behind every service.
type recordSet[T any] struct {
	mu    sync.RWMutex
	items []T
}

func newRecordSet[T any]() *recordSet[T] {
	return &recordSet[T]{}
}

// snapshot returns a copy of the items. Never nil.
func (s *recordSet[T]) snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *recordSet[T]) add(v T) {
	s.mu.Lock()
	s.items = append(s.items, v)
	s.mu.Unlock()
}

// update replaces the items with fn's result under the write lock.
func (s *recordSet[T]) update(fn func([]T) []T) {
	s.mu.Lock()
	s.items = fn(s.items)
	s.mu.Unlock()
}

func (s *recordSet[T]) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
