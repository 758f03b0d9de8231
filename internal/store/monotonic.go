package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"connectdemo/internal/model"
)

// MonotonicStore drops writes whose observation time is older than the
// record already stored, so a redelivered or late event cannot roll a
// status back. Times are compared at whole seconds: Stripe stamps events
// in unix seconds while fetched records carry the local clock.
type MonotonicStore struct {
	base Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ Store = (*MonotonicStore)(nil)

func NewMonotonicStore(base Store) *MonotonicStore {
	return &MonotonicStore{
		base:  base,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *MonotonicStore) Get(ctx context.Context, accountID string) (model.StatusRecord, bool, error) {
	return s.base.Get(ctx, accountID)
}

func (s *MonotonicStore) Put(ctx context.Context, accountID string, status model.DerivedStatus, observedAt time.Time) (model.StatusRecord, error) {
	lock := s.keyLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	current, ok, err := s.base.Get(ctx, accountID)
	if err != nil {
		return model.StatusRecord{}, err
	}
	if ok && !observedAt.IsZero() && olderThan(observedAt, current.ObservedAt) {
		slog.Info("skipping stale status update",
			"account_id", accountID,
			"observed_at", observedAt,
			"current_observed_at", current.ObservedAt,
		)
		return current, nil
	}

	return s.base.Put(ctx, accountID, status, observedAt)
}

func (s *MonotonicStore) keyLock(accountID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	return l
}

func olderThan(a, b time.Time) bool {
	return a.Truncate(time.Second).Before(b.Truncate(time.Second))
}
