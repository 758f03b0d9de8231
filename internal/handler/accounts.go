package handler

import (
	"net/http"

	"connectdemo/internal/model"
	"connectdemo/internal/mw"
	"connectdemo/internal/service"
)

type createAccountResponse struct {
	Success    bool   `json:"success"`
	AccountID  string `json:"account_id"`
	LocationID string `json:"location_id,omitempty"`
	Message    string `json:"message"`
}

func CreateAccountHandler(svc *service.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.AccountRequest
		if err := readJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, envelope{Message: err.Error()})
			return
		}

		out, err := svc.Create(r.Context(), req)
		if err != nil {
			failEnvelope(w, err)
			return
		}

		writeJSON(w, http.StatusOK, createAccountResponse{
			Success:    true,
			AccountID:  out.AccountID,
			LocationID: out.LocationID,
			Message:    "Account created successfully",
		})
	}
}

// AccountSessionHandler expects mw.AccountMiddleware upstream.
func AccountSessionHandler(svc *service.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := mw.AccountID(r.Context())
		if accountID == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Account ID is required in headers"})
			return
		}

		secret, err := svc.CreateSession(r.Context(), accountID)
		if err != nil {
			failError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
	}
}
