// Package metrics defines the payment metric event and the sinks it is
// published to. Publication is fire-and-forget: a sink never returns an
// error and must never block the caller's error path.
package metrics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event kinds.
const (
	// KindSinglePayment is emitted once per createPayment attempt.
	KindSinglePayment = "single_payment"
)

// PaymentEvent captures the outcome of one orchestrated provider call.
// Exactly one event is published per attempt, whether the provider call
// succeeded or raised.
type PaymentEvent struct {
	ID        uuid.UUID `json:"id"`
	Provider  string    `json:"provider"`
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	Terminal  string    `json:"terminal"`
	Exception string    `json:"exception,omitempty"`
	ElapsedMS int64     `json:"elapsed_ms"`
	At        time.Time `json:"at"`
}

// NewPaymentEvent builds an event for the given provider call outcome.
// callErr may be nil; the exception field is then left empty.
func NewPaymentEvent(provider, kind string, amount int64, terminal string, callErr error, elapsed time.Duration) PaymentEvent {
	return PaymentEvent{
		ID:        uuid.New(),
		Provider:  provider,
		Kind:      kind,
		Amount:    amount,
		Terminal:  terminal,
		Exception: ErrorKind(callErr),
		ElapsedMS: elapsed.Milliseconds(),
		At:        time.Now().UTC(),
	}
}

// Sink receives payment events. Implementations must be safe for concurrent
// use and must not block or fail the publisher.
type Sink interface {
	Publish(event PaymentEvent)
}

// ErrorKind names the kind of an error for metric attribution. Errors may
// declare their kind explicitly via a `Kind() string` method; otherwise the
// concrete type name is used, with package path and pointer markers
// stripped. A nil error yields the empty string.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var kinder interface{ Kind() string }
	if errors.As(err, &kinder) {
		return kinder.Kind()
	}

	name := fmt.Sprintf("%T", err)
	name = strings.TrimPrefix(name, "*")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
