package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"connectdemo/internal/metrics"
	"connectdemo/internal/mw"
	"connectdemo/internal/service"
)

// Deps are the services the HTTP surface is built from.
type Deps struct {
	Status         StatusGetter
	Webhooks       *service.WebhookParser
	Queue          EventSubmitter
	Accounts       *service.AccountService
	Customers      *service.CustomerService
	Payments       *service.PaymentService
	Files          *service.FileService
	Metrics        *metrics.Collector
	PublishableKey string
	Started        time.Time
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.MetricsMiddleware(d.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Stripe-Signature", mw.AccountHeader},
		MaxAge:         300,
	}))

	r.Get("/health", HealthHandler(d.Started))
	r.Post("/webhook", WebhookHandler(d.Webhooks, d.Queue, d.Metrics))
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/app_info", AppInfoHandler(d.PublishableKey))
		r.Get("/file/{fileId}", FileHandler(d.Files))

		r.Post("/accounts", CreateAccountHandler(d.Accounts))
		r.Get("/accounts/{accountId}/status", AccountStatusHandler(d.Status))
		r.With(mw.AccountMiddleware).Post("/account_session", AccountSessionHandler(d.Accounts))

		r.Get("/customers", ListCustomersHandler(d.Customers))
		r.Post("/customers", CreateCustomerHandler(d.Customers))

		r.Post("/connection_token", ConnectionTokenHandler(d.Payments))
		r.Post("/create_payment_intent", CreatePaymentIntentHandler(d.Payments))
		r.Post("/create_payment_link", CreatePaymentLinkHandler(d.Payments))
		r.Post("/create_checkout_session", CreateCheckoutSessionHandler(d.Payments))
		r.Get("/checkout_session/{sessionId}", GetCheckoutSessionHandler(d.Payments))
		r.Get("/locations", ListLocationsHandler(d.Payments))
	})

	return r
}
