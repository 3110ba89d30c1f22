// Package store defines the persistence interfaces consumed by the gateway
// core. Implementations live under internal/platform.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
)

// CompanyDirectory resolves companies by alias.
type CompanyDirectory interface {
	// ByAlias retrieves a company by its unique alias.
	// Returns ErrCompanyNotFound if no company carries the alias.
	ByAlias(ctx context.Context, alias string) (*domain.Company, error)
}

// MethodCatalog lists the payment methods configured for a company.
type MethodCatalog interface {
	// ByCompanyAndDirection lists the methods a company offers in the given
	// direction, in configuration order. An empty slice is not an error at
	// this layer; the listing service decides how to surface it.
	ByCompanyAndDirection(ctx context.Context, companyAlias string, direction domain.Direction) ([]*domain.Method, error)
}

// MethodCompanyStore resolves method/company/provider/direction bindings.
type MethodCompanyStore interface {
	// GetByKeys retrieves the binding matching all four keys exactly.
	// Returns ErrMethodCompanyNotFound if no exact match exists.
	GetByKeys(ctx context.Context, companyAlias, methodAlias, providerAlias string, direction domain.Direction) (*domain.MethodCompany, error)
}

// TransactionStore persists transactions. Transactions are created exactly
// once per request and never deleted.
type TransactionStore interface {
	// Create saves a transaction. The transaction must already carry its
	// terminal-or-created status; no separate status update call exists.
	Create(ctx context.Context, tx *domain.Transaction) error

	// GetByID retrieves a transaction by its unique ID.
	// Returns ErrTransactionNotFound if the transaction does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
}

// BankCardStore persists stored bank cards. Cards are created by the
// binding flow; this core reads and removes them.
type BankCardStore interface {
	// GetByID retrieves a card by its unique ID.
	// Returns ErrBankCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BankCard, error)

	// ByClientAndType lists a client's cards of the given type in storage
	// order. Storage order matters: recurrent-card deduplication keeps the
	// later card under a repeated mask.
	ByClientAndType(ctx context.Context, clientID uuid.UUID, cardType domain.CardType) ([]*domain.BankCard, error)

	// Remove deletes the card.
	// Returns ErrBankCardNotFound if the card no longer exists.
	Remove(ctx context.Context, card *domain.BankCard) error
}
