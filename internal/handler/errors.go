package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"socialnet/internal/apperror"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of mutations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error: failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, MessageResponse{Message: message}, statusCode)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrUpstreamStore):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError writes err with the status of its kind. Server side failures
// are logged with their full chain and reported generically.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", r.Method, r.URL.Path, err)
	}

	message := apperror.Message(err)
	if status == http.StatusInternalServerError && !errors.Is(err, apperror.ErrPersistence) {
		message = "Internal server error"
	}
	WriteError(w, message, status)
}
