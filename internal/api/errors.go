package api

import (
	"errors"
	"net/http"

	"github.com/corepay/gateway/internal/api/shared"
	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/gateway"
	"github.com/corepay/gateway/internal/provider"
	"github.com/corepay/gateway/internal/service/auth"
	"github.com/corepay/gateway/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var (
		payoutRejected *gateway.PayoutRejectedError
		invalidService *gateway.InvalidServiceTypeError
		generalErr     *gateway.GeneralGatewayError
		adapterErr     *provider.AdapterError
		validationErr  *domain.ValidationError
	)

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Payout rejections: ownership and eligibility both read as forbidden
	case errors.As(err, &payoutRejected),
		errors.Is(err, gateway.ErrBlockedPayoutByCard):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, gateway.ErrCompanyNotFound),
		errors.Is(err, gateway.ErrMethodsNotFound),
		errors.Is(err, gateway.ErrMethodCompanyNotFound),
		errors.Is(err, gateway.ErrProviderNotFound),
		errors.Is(err, gateway.ErrBankCardNotFound),
		errors.Is(err, gateway.ErrTransactionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.As(err, &invalidService),
		errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidCardType),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Upstream provider failures
	case errors.As(err, &generalErr),
		errors.As(err, &adapterErr):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		payoutRejected *gateway.PayoutRejectedError
		invalidService *gateway.InvalidServiceTypeError
		generalErr     *gateway.GeneralGatewayError
		adapterErr     *provider.AdapterError
		validationErr  *domain.ValidationError
	)

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"

	// Payout rejections
	case errors.As(err, &payoutRejected):
		return "Payout rejected"
	case errors.Is(err, gateway.ErrBlockedPayoutByCard):
		return "Card is not eligible for payouts"

	// Not found errors
	case errors.Is(err, gateway.ErrCompanyNotFound):
		return "Company not found"
	case errors.Is(err, gateway.ErrMethodsNotFound):
		return "No payment methods available"
	case errors.Is(err, gateway.ErrMethodCompanyNotFound),
		errors.Is(err, gateway.ErrProviderNotFound):
		return "Payment method not available"
	case errors.Is(err, gateway.ErrBankCardNotFound):
		return "Bank card not found"
	case errors.Is(err, gateway.ErrTransactionNotFound):
		return "Transaction not found"

	// Bad request errors
	case errors.As(err, &invalidService):
		return "Unknown service type"
	case errors.As(err, &validationErr):
		return "Invalid request: " + validationErr.Field
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Amount must be positive"
	case errors.Is(err, domain.ErrInvalidDirection):
		return "Direction must be income or outcome"
	case errors.Is(err, domain.ErrInvalidCardType):
		return "Card type must be payout or recurrent"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	// Upstream provider failures
	case errors.As(err, &generalErr),
		errors.As(err, &adapterErr):
		return "Payment provider is unavailable"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the sanitized error response for err, using
// defaultMsg over the derived safe message when provided.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := defaultMsg
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
