package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xavierca1/sba-tracking/internal/logger"
	"github.com/xavierca1/sba-tracking/internal/usecase"
)

const CodeRateLimited = "RATE_LIMITED"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps use case errors onto HTTP statuses. Technical details
// are logged, never returned.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, domainStatus(domainErr.Code), ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
			Field:   domainErr.Field,
		})
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		logger.Log.Error().Err(techErr.Err).Str("code", techErr.Code).Msg(techErr.Message)
		status := http.StatusInternalServerError
		if techErr.Code == usecase.CodeStorageUnavailable {
			status = http.StatusServiceUnavailable
		}
		writeErrorResponse(w, status, techErr.Code, techErr.Message)
		return
	}

	logger.Log.Error().Err(err).Msg("unexpected error")
	writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeInternal, "Internal server error")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeDuplicateEventID:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// decodeJSON rejects malformed bodies with a 400 and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Request body is empty")
		return false
	}
	writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid JSON body")
	return false
}
