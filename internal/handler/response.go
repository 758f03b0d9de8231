package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"connectdemo/internal/service"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// envelope is the {success, message} shape used by the account and
// customer routes.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// errorBody is the {error} shape used by the payment routes.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

// isClientError reports whether err was caused by the request itself.
func isClientError(err error) bool {
	var re *service.RequestError
	return errors.As(err, &re) || errors.Is(err, service.ErrMissingAccount)
}

func failEnvelope(w http.ResponseWriter, err error) {
	var re *service.RequestError
	switch {
	case errors.As(err, &re):
		body := envelope{Message: re.Message}
		if len(re.Fields) > 1 || len(re.Fields) == 1 && re.Message != re.Fields[0].Message {
			body.Errors = re.Fields.Messages()
		}
		writeJSON(w, http.StatusBadRequest, body)
	case isClientError(err):
		writeJSON(w, http.StatusBadRequest, envelope{Message: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Message: service.ErrorMessage(err)})
	}
}

func failError(w http.ResponseWriter, err error) {
	var re *service.RequestError
	switch {
	case errors.As(err, &re):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: re.Message})
	case isClientError(err):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: service.ErrorMessage(err)})
	}
}
