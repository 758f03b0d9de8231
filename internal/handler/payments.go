package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"connectdemo/internal/model"
	"connectdemo/internal/service"
)

type accountRef struct {
	AccountID string `json:"account_id"`
}

type paymentIntentResponse struct {
	ClientSecret  string              `json:"clientSecret"`
	Customer      *model.Customer     `json:"customer"`
	PaymentIntent model.PaymentIntent `json:"paymentIntent"`
}

type paymentLinkResponse struct {
	URL         string `json:"url"`
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type checkoutResponse struct {
	URL         string             `json:"url"`
	ID          string             `json:"id"`
	Amount      int64              `json:"amount"`
	Currency    string             `json:"currency"`
	Description string             `json:"description"`
	Customer    *model.CustomerRef `json:"customer"`
}

func ConnectionTokenHandler(svc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req accountRef
		if err := readJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}

		secret, err := svc.ConnectionToken(r.Context(), req.AccountID)
		if err != nil {
			failError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"secret": secret})
	}
}

func CreatePaymentIntentHandler(svc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.NewPaymentIntent
		if err := readJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}

		res, err := svc.CreatePaymentIntent(r.Context(), req)
		if err != nil {
			var nf *service.CustomerNotFoundError
			if errors.As(err, &nf) {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: nf.Error(), Details: service.ErrorMessage(nf.Err)})
				return
			}
			failError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, paymentIntentResponse{
			ClientSecret:  res.Intent.ClientSecret,
			Customer:      res.Customer,
			PaymentIntent: res.Intent,
		})
	}
}

func CreatePaymentLinkHandler(svc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.NewPaymentLink
		if err := readJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}

		req, link, err := svc.CreatePaymentLink(r.Context(), req)
		if err != nil {
			failError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, paymentLinkResponse{
			URL:         link.URL,
			ID:          link.ID,
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
		})
	}
}

func CreateCheckoutSessionHandler(svc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.NewCheckoutSession
		if err := readJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}

		req, sess, err := svc.CreateCheckoutSession(r.Context(), req)
		if err != nil {
			failError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, checkoutResponse{
			URL:         sess.URL,
			ID:          sess.ID,
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
			Customer:    req.Customer,
		})
	}
}

func GetCheckoutSessionHandler(svc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionId")

		sum, err := svc.CheckoutSession(r.Context(), r.URL.Query().Get("account_id"), sessionID)
		if err != nil {
			if isClientError(err) {
				failError(w, err)
				return
			}
			slog.Error("retrieve checkout session failed", "session_id", sessionID, "error", err)
			writeJSON(w, http.StatusBadRequest, errorBody{
				Error:   "Unable to retrieve session data",
				Message: service.ErrorMessage(err),
			})
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

func ListLocationsHandler(svc *service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locs, err := svc.Locations(r.Context(), r.URL.Query().Get("account_id"))
		if err != nil {
			failError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string][]model.Location{"locations": locs})
	}
}
