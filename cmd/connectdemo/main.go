package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectdemo/internal/config"
	"connectdemo/internal/database"
	"connectdemo/internal/handler"
	"connectdemo/internal/metrics"
	"connectdemo/internal/service"
	"connectdemo/internal/store"
	"connectdemo/internal/worker"
)

func main() {
	cfg := config.New()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.StripeSecretKey == "" {
		slog.Error("STRIPE_SECRET_KEY is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db   *sql.DB
		base store.Store
	)
	if cfg.DatabaseURI != "" {
		var err error
		db, err = database.NewDB(ctx, cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(ctx, db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
		base = store.NewPostgresStore(db)
	} else {
		slog.Info("DATABASE_URI not set, keeping statuses in memory")
		base = store.NewMemoryStore()
	}

	st, err := store.WithPolicy(base, cfg.StatusPolicy)
	if err != nil {
		slog.Error("invalid status policy", "error", err)
		os.Exit(1)
	}

	m := metrics.NewCollector()
	stripeClient := service.NewStripeClient(cfg.StripeSecretKey, cfg.StripeAPIURL)

	// Services
	reconciler := service.NewReconciler(st, stripeClient, cfg.FetchTimeout, m)
	statusSvc := service.NewStatusService(st, stripeClient, cfg.FetchTimeout, m)

	// Worker
	reconcileWorker := worker.NewReconcileWorker(reconciler, cfg.ReconcileWorkers, cfg.ReconcileQueueSize, m)
	reconcileWorker.Start(ctx)

	r := handler.NewRouter(handler.Deps{
		Status:         statusSvc,
		Webhooks:       service.NewWebhookParser(cfg.StripeWebhookSecret),
		Queue:          reconcileWorker,
		Accounts:       service.NewAccountService(stripeClient, stripeClient),
		Customers:      service.NewCustomerService(stripeClient),
		Payments:       service.NewPaymentService(stripeClient, cfg.BaseURL),
		Files:          service.NewFileService(stripeClient),
		Metrics:        m,
		PublishableKey: cfg.StripePublishableKey,
		Started:        time.Now(),
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress, "policy", cfg.StatusPolicy, "workers", cfg.ReconcileWorkers)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	cancel() // stop workers
	reconcileWorker.Wait()

	slog.Info("server stopped")
}
