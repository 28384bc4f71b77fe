package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskblog/internal/logger"
	"taskblog/internal/service"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func statusForCode(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeConflict:
		return http.StatusBadRequest
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// handleServiceError writes a BusinessError with its mapped status and
// everything else as an opaque 500.
func handleServiceError(w http.ResponseWriter, err error) {
	var busErr *service.BusinessError
	if errors.As(err, &busErr) {
		respondError(w, statusForCode(busErr.Code), busErr.Message)
		return
	}
	logger.Error("http: unhandled error", err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("http: invalid request body", zap.Error(err))
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
