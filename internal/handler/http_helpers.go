package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pdf-footer-remover/internal/domain"
	apperrors "pdf-footer-remover/pkg/errors"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// toAppError maps domain errors onto transport-level errors with the
// right HTTP status.
func toAppError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrDocumentOpen), errors.Is(err, domain.ErrInvalidFile):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, domain.ErrRedaction):
		return apperrors.NewProcessingError(err.Error(), err)
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperrors.NewNotFoundError("Session not found")
	case errors.Is(err, domain.ErrDocumentNotFound):
		return apperrors.NewNotFoundError("Document not found")
	default:
		return apperrors.NewInternalError("Internal server error", err)
	}
}

// writeDomainError translates a service error into an HTTP response.
func writeDomainError(w http.ResponseWriter, err error) {
	appErr := toAppError(err)
	writeError(w, appErr.StatusCode, appErr.Message)
}
