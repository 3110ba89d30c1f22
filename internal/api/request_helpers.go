package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/api/shared"
	"github.com/corepay/gateway/internal/domain"
)

// getClientIDFromContext extracts the authenticated client's UUID from the
// request context. The client ID is placed in the context by the
// authentication middleware.
func getClientIDFromContext(r *http.Request) (uuid.UUID, bool) {
	clientID, ok := r.Context().Value(shared.ClientIDContextKey).(uuid.UUID)
	if !ok || clientID == uuid.Nil {
		return uuid.Nil, false
	}
	return clientID, true
}

// requireClientID extracts the client ID or writes a 401 response.
func requireClientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	clientID, ok := getClientIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return clientID, true
}

// getPathUUID extracts and parses a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrValidation)
	}

	return id, nil
}

// decodeAndValidate decodes the JSON request body into dst and runs struct
// validation on it. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return false
	}
	return true
}
