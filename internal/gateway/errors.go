// Package gateway implements the transaction orchestration core: method and
// configuration resolution, payment/payout creation with guaranteed
// persistence and metric emission, card lifecycle management and
// service-type routing.
package gateway

import (
	"errors"
	"fmt"
)

// Gateway error taxonomy. Validation and not-found errors from resolution
// steps propagate unmodified to the caller; adapter errors during payment
// creation are recorded and re-raised; unbind failures are re-wrapped as
// GeneralGatewayError.
var (
	// ErrCompanyNotFound is returned when no company carries the requested alias.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrMethodsNotFound is returned when a company has no methods in the
	// requested direction.
	ErrMethodsNotFound = errors.New("methods not found")

	// ErrMethodCompanyNotFound is returned when no method/company/provider
	// binding exists for the requested keys and direction.
	ErrMethodCompanyNotFound = errors.New("method company not found")

	// ErrProviderNotFound is returned when no integration configuration
	// could be resolved. It deliberately masks whether the rule set was
	// corrupt or genuinely had no match; diagnosis relies on logs.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrBankCardNotFound is returned when a card does not exist or is not
	// eligible for the requested card operation.
	ErrBankCardNotFound = errors.New("bank card not found")

	// ErrTransactionNotFound is returned when a transaction read misses,
	// including ownership-masked reads.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrBlockedPayoutByCard is the eligibility checker's rejection signal
	// for a specific card. Implementations return it (possibly wrapped).
	ErrBlockedPayoutByCard = errors.New("payout blocked by card")
)

// PayoutRejectionReason classifies why a payout request was rejected before
// any transaction was created.
type PayoutRejectionReason string

const (
	RejectionOwnership   PayoutRejectionReason = "ownership"
	RejectionEligibility PayoutRejectionReason = "eligibility"
)

// PayoutRejectedError rejects a payout request. No transaction exists when
// this error is returned.
type PayoutRejectedError struct {
	Reason PayoutRejectionReason
	Err    error
}

// Error implements the error interface for PayoutRejectedError.
func (e *PayoutRejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payout rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("payout rejected (%s)", e.Reason)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PayoutRejectedError) Unwrap() error {
	return e.Err
}

// NewPayoutRejectedError creates a PayoutRejectedError with the given reason.
func NewPayoutRejectedError(reason PayoutRejectionReason, err error) *PayoutRejectedError {
	return &PayoutRejectedError{Reason: reason, Err: err}
}

// InvalidServiceTypeError is returned by the payment router when the
// request carries an unrecognized service-type tag. No collaborator is
// invoked in that case.
type InvalidServiceTypeError struct {
	Tag string
}

// Error implements the error interface for InvalidServiceTypeError.
func (e *InvalidServiceTypeError) Error() string {
	return fmt.Sprintf("invalid service type %q", e.Tag)
}

// GeneralGatewayError is the catch-all at the bind/unbind boundary. The
// cause has already been logged with full diagnostic context when this is
// returned.
type GeneralGatewayError struct {
	Message string
	Err     error
}

// Error implements the error interface for GeneralGatewayError.
func (e *GeneralGatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GeneralGatewayError) Unwrap() error {
	return e.Err
}

// NewGeneralGatewayError creates a GeneralGatewayError wrapping the cause.
func NewGeneralGatewayError(message string, err error) *GeneralGatewayError {
	return &GeneralGatewayError{Message: message, Err: err}
}
