package service

import (
	"context"
	"log/slog"
	"time"

	"connectdemo/internal/metrics"
	"connectdemo/internal/model"
	"connectdemo/internal/store"
)

// Reconciler turns account events into stored status records. It never
// returns errors; failures are logged and counted.
type Reconciler struct {
	store        store.Store
	fetcher      AccountFetcher
	fetchTimeout time.Duration
	metrics      *metrics.Collector
	now          func() time.Time
}

func NewReconciler(st store.Store, fetcher AccountFetcher, fetchTimeout time.Duration, m *metrics.Collector) *Reconciler {
	return &Reconciler{
		store:        st,
		fetcher:      fetcher,
		fetchTimeout: fetchTimeout,
		metrics:      m,
		now:          time.Now,
	}
}

func (r *Reconciler) Handle(ctx context.Context, evt model.Event) {
	switch e := evt.(type) {
	case model.AccountSnapshotEvent:
		r.OnAccountUpdated(ctx, e.Account, e.CreatedAt)
	case model.AccountTouchedEvent:
		r.OnAccountTouched(ctx, e.AccountID)
	default:
		slog.Warn("unhandled event variant", "event", evt)
	}
}

// OnAccountUpdated classifies the snapshot carried by the event itself.
func (r *Reconciler) OnAccountUpdated(ctx context.Context, snap model.AccountSnapshot, observedAt time.Time) {
	if snap.ID == "" {
		slog.Warn("account snapshot without id", "error", ErrMissingAccount)
		r.metrics.Reconciliation("snapshot", "invalid")
		return
	}
	r.apply(ctx, "snapshot", snap, observedAt)
}

// OnAccountTouched re-fetches an account after a change notification that
// carried no usable state.
func (r *Reconciler) OnAccountTouched(ctx context.Context, accountID string) {
	if accountID == "" {
		slog.Warn("touched event without account", "error", ErrMissingAccount)
		r.metrics.Reconciliation("fetch", "invalid")
		return
	}

	snap, err := fetchSnapshot(ctx, r.fetcher, r.fetchTimeout, r.metrics, accountID)
	if err != nil {
		slog.Error("failed to refresh account status", "account_id", accountID, "error", err)
		r.metrics.Reconciliation("fetch", "upstream_error")
		return
	}
	r.apply(ctx, "fetch", snap, r.now())
}

func (r *Reconciler) apply(ctx context.Context, source string, snap model.AccountSnapshot, observedAt time.Time) {
	derived := classifySnapshot(snap)
	r.metrics.Derived(string(derived.Status))

	rec, err := r.store.Put(ctx, snap.ID, derived, observedAt)
	if err != nil {
		slog.Error("failed to store account status", "account_id", snap.ID, "error", err)
		r.metrics.Reconciliation(source, "store_error")
		return
	}
	r.metrics.Reconciliation(source, "ok")

	slog.Info("account status updated",
		"account_id", snap.ID,
		"status", rec.Status,
		"badge", rec.Badge,
		"source", source,
	)
	if len(derived.Requirements.CurrentlyDue) > 0 {
		slog.Warn("account has currently due requirements", "account_id", snap.ID, "currently_due", derived.Requirements.CurrentlyDue)
	}
	if len(derived.Requirements.PastDue) > 0 {
		slog.Warn("account has past due requirements", "account_id", snap.ID, "past_due", derived.Requirements.PastDue)
	}
}
