package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps engine errors onto HTTP statuses. Retryable errors
// (stale state, timeout) get 409/504 so clients know to re-read and retry.
func writeDomainError(w http.ResponseWriter, err error) {
	var invalid *domain.InvalidTransitionError
	var persistence *domain.PersistenceError

	switch {
	case errors.As(err, &invalid):
		writeJSONError(w, http.StatusConflict, invalid.Error())
	case errors.Is(err, domain.ErrStaleState):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrReasonRequired):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConfirmationMismatch):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrLastAdminProtection):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTimeout):
		writeJSONError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, domain.ErrPartialFailure):
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.As(err, &persistence):
		logger.Error("persistence failure", "error", err)
		writeJSONError(w, http.StatusBadGateway, "storage unavailable")
	default:
		logger.Error("unhandled error", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
