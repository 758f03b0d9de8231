package handler

import (
	"net/http"
	"time"
)

const appVersion = "1.0.0"

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type appInfoResponse struct {
	Status         string            `json:"status"`
	Timestamp      string            `json:"timestamp"`
	Message        string            `json:"message"`
	Version        string            `json:"version"`
	PublishableKey string            `json:"publishable_key,omitempty"`
	Endpoints      map[string]string `json:"endpoints"`
}

var endpoints = map[string]string{
	"GET /health":                           "Health check",
	"GET /api/app_info":                     "Service information",
	"POST /api/accounts":                    "Create connected account",
	"GET /api/accounts/{accountId}/status":  "Get derived account status",
	"POST /api/account_session":             "Create account session for embedded components",
	"GET /api/customers":                    "List customers of a connected account",
	"POST /api/customers":                   "Create customer",
	"POST /api/connection_token":            "Create Terminal connection token",
	"POST /api/create_payment_intent":       "Create payment intent",
	"POST /api/create_payment_link":         "Create payment link",
	"POST /api/create_checkout_session":     "Create checkout session",
	"GET /api/checkout_session/{sessionId}": "Retrieve checkout session",
	"GET /api/locations":                    "List Terminal locations",
	"GET /api/file/{fileId}":                "Proxy a Stripe file",
	"POST /webhook":                         "Stripe webhook endpoint",
}

func HealthHandler(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Uptime:    time.Since(started).Seconds(),
		})
	}
}

func AppInfoHandler(publishableKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, appInfoResponse{
			Status:         "healthy",
			Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
			Message:        "HSBC Demo Backend API",
			Version:        appVersion,
			PublishableKey: publishableKey,
			Endpoints:      endpoints,
		})
	}
}
