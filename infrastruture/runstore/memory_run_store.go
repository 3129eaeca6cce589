package runstore

import (
	"context"
	"sort"
	"sync"

	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/beka-birhanu/vinom-pathfinding/service/i"
)

// MemoryRunStore keeps the run history in process, bounded per algorithm.
type MemoryRunStore struct {
	limit int
	runs  map[search.Kind][]i.RunRecord
	sync.RWMutex
}

// NewMemoryRunStore returns a store that keeps the best limit runs of each algorithm.
func NewMemoryRunStore(limit int) *MemoryRunStore {
	return &MemoryRunStore{
		limit: limit,
		runs:  make(map[search.Kind][]i.RunRecord),
	}
}

// Record inserts r in visited order after the runs with the same count.
func (m *MemoryRunStore) Record(_ context.Context, r i.RunRecord) error {
	m.Lock()
	defer m.Unlock()

	runs := m.runs[r.Algorithm]
	at := sort.Search(len(runs), func(n int) bool { return runs[n].Visited > r.Visited })
	runs = append(runs, i.RunRecord{})
	copy(runs[at+1:], runs[at:])
	runs[at] = r
	if m.limit > 0 && len(runs) > m.limit {
		runs = runs[:m.limit]
	}
	m.runs[r.Algorithm] = runs
	return nil
}

// Best returns up to limit runs of kind, fewest visited first.
func (m *MemoryRunStore) Best(_ context.Context, kind search.Kind, limit int) ([]i.RunRecord, error) {
	m.RLock()
	defer m.RUnlock()

	runs := m.runs[kind]
	if limit > 0 && limit < len(runs) {
		runs = runs[:limit]
	}
	return append([]i.RunRecord{}, runs...), nil
}
