package service

import (
	"context"
	"log/slog"
	"time"

	"connectdemo/internal/metrics"
	"connectdemo/internal/model"
	"connectdemo/internal/store"
)

// StatusService answers status queries from the store, falling back to a
// fetch from Stripe on a miss. A stored record is returned as is, whatever
// its age.
type StatusService struct {
	store        store.Store
	fetcher      AccountFetcher
	fetchTimeout time.Duration
	metrics      *metrics.Collector
	now          func() time.Time
}

func NewStatusService(st store.Store, fetcher AccountFetcher, fetchTimeout time.Duration, m *metrics.Collector) *StatusService {
	return &StatusService{
		store:        st,
		fetcher:      fetcher,
		fetchTimeout: fetchTimeout,
		metrics:      m,
		now:          time.Now,
	}
}

func (s *StatusService) GetStatus(ctx context.Context, accountID string) (model.StatusRecord, error) {
	if accountID == "" {
		return model.StatusRecord{}, ErrMissingAccount
	}

	rec, ok, err := s.store.Get(ctx, accountID)
	switch {
	case err != nil:
		slog.Warn("status store read failed, fetching upstream", "account_id", accountID, "error", err)
	case ok:
		s.metrics.Lookup("hit")
		return rec, nil
	}

	snap, err := fetchSnapshot(ctx, s.fetcher, s.fetchTimeout, s.metrics, accountID)
	if err != nil {
		s.metrics.Lookup("not_found")
		return model.StatusRecord{}, &NotFoundError{AccountID: accountID, Err: err}
	}

	derived := classifySnapshot(snap)
	s.metrics.Derived(string(derived.Status))
	observedAt := s.now()

	rec, err = s.store.Put(ctx, accountID, derived, observedAt)
	if err != nil {
		slog.Error("failed to cache account status", "account_id", accountID, "error", err)
		s.metrics.Lookup("fetched_uncached")
		return model.StatusRecord{
			AccountID:     accountID,
			DerivedStatus: derived,
			LastUpdated:   observedAt,
			ObservedAt:    observedAt,
		}, nil
	}

	s.metrics.Lookup("fetched")
	return rec, nil
}
