package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"connectdemo/internal/model"
	"connectdemo/internal/service"
)

type StatusGetter interface {
	GetStatus(ctx context.Context, accountID string) (model.StatusRecord, error)
}

type statusResponse struct {
	Success       bool               `json:"success"`
	AccountStatus model.StatusRecord `json:"account_status"`
}

type statusNotFound struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func AccountStatusHandler(svc StatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountId")

		rec, err := svc.GetStatus(r.Context(), accountID)
		if err != nil {
			var nf *service.NotFoundError
			if errors.As(err, &nf) {
				cause := nf.Error()
				if nf.Err != nil {
					cause = service.ErrorMessage(nf.Err)
				}
				writeJSON(w, http.StatusNotFound, statusNotFound{
					Message: fmt.Sprintf("Account %s not found", accountID),
					Error:   cause,
				})
				return
			}
			failEnvelope(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{Success: true, AccountStatus: rec})
	}
}
