package service

import (
	"context"
	"errors"
	"time"

	"connectdemo/internal/metrics"
	"connectdemo/internal/model"
)

const DefaultFetchTimeout = 10 * time.Second

// AccountFetcher retrieves the current state of a connected account.
// Failures are reported as *UpstreamError.
type AccountFetcher interface {
	FetchAccount(ctx context.Context, accountID string) (model.AccountSnapshot, error)
}

func fetchSnapshot(ctx context.Context, f AccountFetcher, timeout time.Duration, m *metrics.Collector, accountID string) (model.AccountSnapshot, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	snap, err := f.FetchAccount(ctx, accountID)
	m.ObserveFetch(time.Since(start))
	if err != nil {
		var up *UpstreamError
		if !errors.As(err, &up) {
			err = &UpstreamError{Op: "fetch account", AccountID: accountID, Err: err}
		}
		return model.AccountSnapshot{}, err
	}
	if snap.ID == "" {
		snap.ID = accountID
	}
	return snap, nil
}
