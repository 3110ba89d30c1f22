package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/api/shared"
	"github.com/corepay/gateway/internal/gateway"
)

// PaymentService is the slice of the gateway facade the payment handler
// consumes.
type PaymentService interface {
	CreatePayment(ctx context.Context, req gateway.RoutedPaymentRequest) (*gateway.PaymentResult, error)
	CreatePayoutTransaction(ctx context.Context, req gateway.PayoutRequest) (uuid.UUID, error)
	GetTransactionInfoByID(ctx context.Context, id, clientID uuid.UUID) (*gateway.TransactionInfo, error)
}

// PaymentHandler serves payment, payout and transaction read endpoints.
type PaymentHandler struct {
	service  PaymentService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service PaymentService, log *slog.Logger) *PaymentHandler {
	if log == nil {
		log = slog.Default()
	}

	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
		logger:   log.With(slog.String("component", "payment_handler")),
	}
}

// CreatePayment handles POST /payments. The payment is executed
// synchronously; the response carries the terminal transaction state.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requireClientID(w, r)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	result, err := h.service.CreatePayment(r.Context(), gateway.RoutedPaymentRequest{
		ServiceType: gateway.ServiceType(req.ServiceType),
		Payment: gateway.PaymentRequest{
			Company:  req.Company,
			Method:   req.Method,
			Provider: req.Provider,
			Amount:   req.Amount,
			ClientID: clientID,
			Receipt:  req.Receipt,
			Data:     req.Data,
			Meta:     req.Meta,
		},
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newTransactionResponse(result.Transaction))
}

// CreatePayout handles POST /payouts. The payout is created durably in the
// created status; execution is asynchronous.
func (h *PaymentHandler) CreatePayout(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requireClientID(w, r)
	if !ok {
		return
	}

	var req CreatePayoutRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	id, err := h.service.CreatePayoutTransaction(r.Context(), gateway.PayoutRequest{
		Company:      req.Company,
		Method:       req.Method,
		Provider:     req.Provider,
		Amount:       req.Amount,
		ClientID:     clientID,
		CardID:       req.CardID,
		CheckContext: req.CheckContext,
		Meta:         req.Meta,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreatePayoutResponse{TransactionID: id})
}

// GetTransaction handles GET /transactions/{id}. Transactions owned by other
// clients read as not found.
func (h *PaymentHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requireClientID(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	info, err := h.service.GetTransactionInfoByID(r.Context(), id, clientID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTransactionInfoResponse(info))
}
