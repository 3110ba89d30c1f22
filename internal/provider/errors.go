package provider

import (
	"errors"
	"fmt"
)

// FailureKind names the adapter operation that failed.
type FailureKind string

const (
	FailurePayment   FailureKind = "payment"
	FailurePayout    FailureKind = "payout"
	FailureRecurrent FailureKind = "recurrent"
	FailureBind      FailureKind = "bind"
	FailureUnbind    FailureKind = "unbind"
)

var (
	// ErrCardReferenceInvalid is returned by Unbind when the provider
	// reports the card reference as already invalid or unknown. The
	// removal cascade treats this as success.
	ErrCardReferenceInvalid = errors.New("card reference invalid upstream")

	// ErrAdapterNotRegistered is returned by the registry when no adapter
	// is registered for a provider alias. This indicates a wiring gap, not
	// a client error.
	ErrAdapterNotRegistered = errors.New("provider adapter not registered")
)

// AdapterError wraps a failure raised by a provider adapter, carrying the
// operation kind and the provider alias for attribution.
type AdapterError struct {
	Op       FailureKind
	Provider string
	Err      error
}

// Error implements the error interface for AdapterError.
func (e *AdapterError) Error() string {
	return fmt.Sprintf("provider %s %s call failed: %v", e.Provider, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AdapterError) Unwrap() error {
	return e.Err
}

// Kind names the failed operation for metric attribution.
func (e *AdapterError) Kind() string {
	return string(e.Op)
}

// NewAdapterError creates a new AdapterError.
func NewAdapterError(op FailureKind, providerAlias string, err error) *AdapterError {
	return &AdapterError{
		Op:       op,
		Provider: providerAlias,
		Err:      err,
	}
}

func asAdapterError(err error) (*AdapterError, bool) {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func isCardReferenceInvalid(err error) bool {
	return errors.Is(err, ErrCardReferenceInvalid)
}
