package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloudpaste/cloudpaste/internal/services"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, errorResponse{Status: "error", Message: message}, status)
}

// respondServiceError maps service errors onto the HTTP error taxonomy:
// validation/conflict/quota 400, auth-required 401, wrong password 403,
// not-found 404, everything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var conflict *services.SlugConflictError
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, "share not found", http.StatusNotFound)
	case errors.Is(err, services.ErrPasswordRequired):
		respondError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, services.ErrInvalidPassword):
		respondError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrUploadDisabled):
		respondError(w, err.Error(), http.StatusUnauthorized)
	case errors.As(err, &conflict):
		respondError(w, conflict.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrQuotaExceeded):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}
