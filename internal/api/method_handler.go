package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/corepay/gateway/internal/api/shared"
	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/gateway"
)

// MethodService is the slice of the gateway facade the method handler
// consumes.
type MethodService interface {
	GetMethods(ctx context.Context, companyAlias string, direction domain.Direction, platform string) (*gateway.MethodList, error)
	GetContextMethods(ctx context.Context, req gateway.ContextMethodsRequest) (*gateway.MethodList, error)
}

// MethodHandler serves the method listing endpoints.
type MethodHandler struct {
	service  MethodService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewMethodHandler creates a new MethodHandler.
func NewMethodHandler(service MethodService, log *slog.Logger) *MethodHandler {
	if log == nil {
		log = slog.Default()
	}

	return &MethodHandler{
		service:  service,
		validate: validator.New(),
		logger:   log.With(slog.String("component", "method_handler")),
	}
}

// GetMethods handles GET /companies/{alias}/methods?direction=&platform=.
func (h *MethodHandler) GetMethods(w http.ResponseWriter, r *http.Request) {
	alias := chi.URLParam(r, "alias")
	direction := domain.Direction(r.URL.Query().Get("direction"))
	platform := r.URL.Query().Get("platform")

	list, err := h.service.GetMethods(r.Context(), alias, direction, platform)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// GetContextMethods handles POST /methods/context: the service-type specific
// collaborator derives the listing request from the supplied context.
func (h *MethodHandler) GetContextMethods(w http.ResponseWriter, r *http.Request) {
	var req ContextMethodsRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	list, err := h.service.GetContextMethods(r.Context(), gateway.ContextMethodsRequest{
		ServiceType: gateway.ServiceType(req.ServiceType),
		Company:     req.Company,
		Platform:    req.Platform,
		Context:     req.Context,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, list)
}
