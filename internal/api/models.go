package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/gateway"
)

// CreatePaymentRequest is the request body for payment creation.
type CreatePaymentRequest struct {
	ServiceType string `json:"service_type" validate:"required,oneof=loan option"`
	Company     string `json:"company"      validate:"required"`
	Method      string `json:"method"       validate:"required"`
	Provider    string `json:"provider"     validate:"required"`
	Amount      int64  `json:"amount"       validate:"required,gt=0"`

	// Receipt is the raw fiscal receipt payload; omitted means no receipt.
	Receipt json.RawMessage   `json:"receipt,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// CreatePayoutRequest is the request body for payout creation.
type CreatePayoutRequest struct {
	Company      string            `json:"company"  validate:"required"`
	Method       string            `json:"method"   validate:"required"`
	Provider     string            `json:"provider" validate:"required"`
	Amount       int64             `json:"amount"   validate:"required,gt=0"`
	CardID       uuid.UUID         `json:"card_id"  validate:"required"`
	CheckContext map[string]string `json:"check_context,omitempty"`
	Meta         map[string]string `json:"meta,omitempty"`
}

// CreatePayoutResponse returns the id of the durably created payout.
type CreatePayoutResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}

// TransactionResponse is the client-facing transaction representation.
type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	MethodAlias string    `json:"method_alias,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// newTransactionResponse builds a TransactionResponse from a domain transaction.
func newTransactionResponse(tx *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:        tx.ID,
		Type:      string(tx.Type),
		Status:    string(tx.Status),
		Amount:    tx.Amount,
		Currency:  tx.Currency,
		CreatedAt: tx.CreatedAt,
	}
	if tx.MethodCompany != nil {
		resp.MethodAlias = tx.MethodCompany.MethodAlias
	}
	return resp
}

// newTransactionInfoResponse builds a TransactionResponse from the
// ownership-checked view.
func newTransactionInfoResponse(info *gateway.TransactionInfo) TransactionResponse {
	return TransactionResponse{
		ID:          info.ID,
		Type:        string(info.Type),
		Status:      string(info.Status),
		Amount:      info.Amount,
		Currency:    info.Currency,
		MethodAlias: info.MethodAlias,
		CreatedAt:   info.CreatedAt,
	}
}

// BindCardRequest is the request body for starting a card binding flow.
type BindCardRequest struct {
	Company  string `json:"company"  validate:"required"`
	Method   string `json:"method"   validate:"required"`
	Provider string `json:"provider" validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Phone    string `json:"phone"    validate:"omitempty,e164"`
}

// BindCardResponse returns the provider's hosted binding page URL.
type BindCardResponse struct {
	URL string `json:"url"`
}

// CardListResponse is the card listing response body.
type CardListResponse struct {
	Cards []gateway.BankCardView `json:"cards"`
}

// ContextMethodsRequest is the request body for context-driven method listing.
type ContextMethodsRequest struct {
	ServiceType string            `json:"service_type" validate:"required,oneof=loan option"`
	Company     string            `json:"company"      validate:"required"`
	Platform    string            `json:"platform,omitempty"`
	Context     map[string]string `json:"context,omitempty"`
}
