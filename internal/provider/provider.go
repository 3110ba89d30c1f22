// Package provider defines the payment provider adapter contract and the
// registry the gateway resolves adapters from. One adapter implementation
// exists per provider alias; how a given gateway authenticates or encodes
// its calls is entirely the adapter's business.
package provider

import (
	"context"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
)

// Adapter is the provider-side contract. Calls are blocking I/O; the
// orchestrator treats any returned error as a terminal functional rejection
// for that call — no retries happen at this layer or above.
type Adapter interface {
	// Pay executes a payment for the transaction. On success the adapter
	// may mark the transaction succeeded itself; the orchestrator ensures
	// the terminal status either way.
	Pay(ctx context.Context, tx *domain.Transaction, meta *domain.TransactionMeta) error

	// BindURL returns the URL a client is redirected to for card binding.
	BindURL(ctx context.Context, clientID uuid.UUID, cfg *domain.IntegrationConfig, email, phone string) (string, error)

	// Unbind releases a bound card upstream. Returns
	// ErrCardReferenceInvalid (possibly wrapped) when the provider no
	// longer knows the card.
	Unbind(ctx context.Context, card *domain.BankCard, meta *domain.TransactionMeta) error
}
