package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"connectdemo/internal/metrics"
	"connectdemo/internal/model"
	"connectdemo/internal/service"
)

type EventSubmitter interface {
	Submit(evt model.Event) bool
}

// WebhookHandler authenticates Stripe deliveries and hands status-relevant
// events to the reconcile queue. It acknowledges every authenticated
// delivery, whatever happens to the event afterwards.
func WebhookHandler(parser *service.WebhookParser, queue EventSubmitter, m *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}

		d, err := parser.Parse(payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			m.WebhookEvent("unknown", "rejected")
			switch {
			case errors.Is(err, service.ErrMissingSignature):
				slog.Info("received request without Stripe signature")
				http.Error(w, "Missing Stripe signature", http.StatusBadRequest)
			case errors.Is(err, service.ErrInvalidEventPayload):
				slog.Error("failed to parse webhook body", "error", err)
				http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			default:
				slog.Error("webhook signature verification failed", "error", err)
				http.Error(w, "Webhook Error: "+err.Error(), http.StatusBadRequest)
			}
			return
		}

		account := d.Account
		if account == "" {
			account = "platform"
		}
		slog.Info("received webhook event", "type", d.Type, "event_id", d.ID, "account", account)

		switch {
		case d.Event == nil:
			slog.Info("unhandled event type", "type", d.Type)
			m.WebhookEvent(d.Type, "ignored")
		case queue.Submit(d.Event):
			m.WebhookEvent(d.Type, "queued")
		default:
			m.WebhookEvent(d.Type, "dropped")
		}

		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}
}
