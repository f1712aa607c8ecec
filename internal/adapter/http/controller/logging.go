package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/minibank-io/minibank/internal/domain"
	"github.com/minibank-io/minibank/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the service error taxonomy onto HTTP. Infrastructure
// failures stay a generic 500; the envelope already carries a safe message.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusServiceUnavailable
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
