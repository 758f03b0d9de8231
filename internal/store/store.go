// Package store holds the most recently derived status per connected account.
package store

import (
	"context"
	"errors"
	"time"

	"connectdemo/internal/model"
)

var ErrStoreUnavailable = errors.New("status store unavailable")

// Store maps an account id to its latest status record. Put replaces the
// whole record; implementations must make each Put atomic per key and keep
// LastUpdated non-decreasing for a key.
type Store interface {
	Get(ctx context.Context, accountID string) (model.StatusRecord, bool, error)
	Put(ctx context.Context, accountID string, status model.DerivedStatus, observedAt time.Time) (model.StatusRecord, error)
}

// Write policies understood by WithPolicy.
const (
	PolicyLastWriteWins = "last-write-wins"
	PolicyMonotonic     = "monotonic"
)

// WithPolicy wraps base according to the named write policy.
func WithPolicy(base Store, policy string) (Store, error) {
	switch policy {
	case "", PolicyLastWriteWins:
		return base, nil
	case PolicyMonotonic:
		return NewMonotonicStore(base), nil
	default:
		return nil, errors.New("unknown status policy: " + policy)
	}
}

func newRecord(accountID string, status model.DerivedStatus, observedAt, now time.Time, prev *model.StatusRecord) model.StatusRecord {
	if prev != nil && now.Before(prev.LastUpdated) {
		now = prev.LastUpdated
	}
	if observedAt.IsZero() {
		observedAt = now
	}
	return model.StatusRecord{
		AccountID:     accountID,
		DerivedStatus: status,
		LastUpdated:   now,
		ObservedAt:    observedAt,
	}
}
