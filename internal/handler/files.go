package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"connectdemo/internal/service"
)

// FileHandler proxies a Stripe-hosted file (branding logo, icon).
func FileHandler(svc *service.FileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID := chi.URLParam(r, "fileId")
		if fileID == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "File ID is required"})
			return
		}

		fc, err := svc.Open(r.Context(), fileID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFileNotFound):
				writeJSON(w, http.StatusNotFound, errorBody{Error: "File not found"})
			case errors.Is(err, service.ErrFileUnavailable):
				writeJSON(w, http.StatusNotFound, errorBody{Error: "File URL not available"})
			case errors.Is(err, service.ErrFileDownload):
				slog.Error("error downloading file from Stripe", "file_id", fileID, "error", err)
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to download file from Stripe"})
			default:
				slog.Error("failed to serve Stripe file", "file_id", fileID, "error", err)
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
			}
			return
		}
		defer fc.Body.Close()

		w.Header().Set("Content-Type", fc.Type)
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fc.Filename))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if _, err := io.Copy(w, fc.Body); err != nil {
			slog.Warn("file copy interrupted", "file_id", fileID, "error", err)
		}
	}
}
