package store

import (
	"context"
	"sync"
	"time"

	"connectdemo/internal/model"
)

// MemoryStore keeps records for the lifetime of the process. Last write wins.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.StatusRecord
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]model.StatusRecord),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, accountID string) (model.StatusRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[accountID]
	return rec, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, accountID string, status model.DerivedStatus, observedAt time.Time) (model.StatusRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev *model.StatusRecord
	if existing, ok := s.records[accountID]; ok {
		prev = &existing
	}

	rec := newRecord(accountID, status, observedAt, s.now(), prev)
	s.records[accountID] = rec
	return rec, nil
}
