package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/api/shared"
	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/gateway"
)

// CardService is the slice of the gateway facade the card handler consumes.
type CardService interface {
	GetCards(ctx context.Context, clientID uuid.UUID, cardType domain.CardType, checkCtx map[string]string) ([]gateway.BankCardView, error)
	RemoveBankCard(ctx context.Context, cardID uuid.UUID) error
	BindCard(ctx context.Context, req gateway.BindCardRequest) (string, error)
}

// CardHandler serves the stored-card endpoints.
type CardHandler struct {
	service  CardService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(service CardService, log *slog.Logger) *CardHandler {
	if log == nil {
		log = slog.Default()
	}

	return &CardHandler{
		service:  service,
		validate: validator.New(),
		logger:   log.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards?type={payout|recurrent}. Query parameters
// other than type form the payout eligibility check context.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requireClientID(w, r)
	if !ok {
		return
	}

	cardType := domain.CardType(r.URL.Query().Get("type"))

	// Only payout listings take a check context; for them every extra query
	// parameter becomes a check criterion.
	var checkCtx map[string]string
	if cardType == domain.CardTypePayout {
		for key, values := range r.URL.Query() {
			if key == "type" || len(values) == 0 {
				continue
			}
			if checkCtx == nil {
				checkCtx = make(map[string]string)
			}
			checkCtx[key] = values[0]
		}
	}

	cards, err := h.service.GetCards(r.Context(), clientID, cardType, checkCtx)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CardListResponse{Cards: cards})
}

// BindCard handles POST /cards/bind and returns the provider's hosted
// binding page URL.
func (h *CardHandler) BindCard(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requireClientID(w, r)
	if !ok {
		return
	}

	var req BindCardRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	url, err := h.service.BindCard(r.Context(), gateway.BindCardRequest{
		ClientID: clientID,
		Company:  req.Company,
		Method:   req.Method,
		Provider: req.Provider,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BindCardResponse{URL: url})
}

// RemoveCard handles DELETE /cards/{id}, running the provider unbind cascade
// before deletion.
func (h *CardHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireClientID(w, r); !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.RemoveBankCard(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
