package worker

import (
	"context"
	"log/slog"
	"sync"

	"connectdemo/internal/metrics"
	"connectdemo/internal/model"
)

// EventHandler applies one account event. It must not panic on failures;
// the reconciler logs and swallows them.
type EventHandler interface {
	Handle(ctx context.Context, evt model.Event)
}

// ReconcileWorker runs webhook reconciliation off the request path on a
// fixed number of goroutines fed by a bounded queue.
type ReconcileWorker struct {
	handler   EventHandler
	metrics   *metrics.Collector
	workers   int
	queue     chan model.Event
	wg        sync.WaitGroup
	startOnce sync.Once
}

func NewReconcileWorker(handler EventHandler, workers, queueSize int, m *metrics.Collector) *ReconcileWorker {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &ReconcileWorker{
		handler: handler,
		metrics: m,
		workers: workers,
		queue:   make(chan model.Event, queueSize),
	}
}

// Start launches the workers. They exit when ctx is cancelled; events
// still queued at that point are dropped.
func (w *ReconcileWorker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		slog.Info("starting reconcile worker", "workers", w.workers, "queue_size", cap(w.queue))
		for i := 0; i < w.workers; i++ {
			w.wg.Add(1)
			go w.run(ctx)
		}
	})
}

// Submit queues evt without blocking. It reports false when the queue is
// full and the event was dropped.
func (w *ReconcileWorker) Submit(evt model.Event) bool {
	select {
	case w.queue <- evt:
		return true
	default:
		slog.Warn("reconcile queue full, dropping event", "account_id", evt.EventAccountID())
		w.metrics.QueueDropped()
		return false
	}
}

// Wait blocks until every worker has exited.
func (w *ReconcileWorker) Wait() {
	w.wg.Wait()
}

func (w *ReconcileWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-w.queue:
			w.handle(ctx, evt)
		}
	}
}

func (w *ReconcileWorker) handle(ctx context.Context, evt model.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("reconcile panicked", "account_id", evt.EventAccountID(), "panic", r)
		}
	}()
	w.handler.Handle(ctx, evt)
}
