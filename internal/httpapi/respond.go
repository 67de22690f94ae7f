package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sparcsup/auth-service/internal/admin"
	"github.com/sparcsup/auth-service/internal/cognito"
	"github.com/sparcsup/auth-service/internal/entry"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError maps domain errors onto HTTP statuses. Provider errors carry
// a message already vetted for clients; everything unrecognised collapses to
// an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var perr *cognito.ProviderError
	switch {
	case errors.Is(err, entry.ErrNotFound):
		respondJSON(w, r, http.StatusNotFound, messageResponse{Message: "admin not found"})
	case errors.Is(err, entry.ErrConflict):
		respondJSON(w, r, http.StatusConflict, messageResponse{Message: "record was modified concurrently, retry with the latest version"})
	case errors.Is(err, admin.ErrInvalidInput):
		respondJSON(w, r, http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.As(err, &perr):
		logger.ErrorContext(r.Context(), "provider request failed", "op", op, "error", err)
		respondJSON(w, r, http.StatusBadRequest, messageResponse{Message: perr.PublicMessage})
	default:
		logger.ErrorContext(r.Context(), "request failed", "op", op, "error", err)
		respondJSON(w, r, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	}
}

func decode(r *http.Request, v any) error {
	return render.DecodeJSON(r.Body, v)
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	respondJSON(w, r, http.StatusBadRequest, messageResponse{Message: message})
}
