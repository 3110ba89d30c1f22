package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes payments (income) from payouts (outcome).
type TransactionType string

const (
	TransactionPayment TransactionType = "payment"
	TransactionPayout  TransactionType = "payout"
)

// TransactionStatus is the transaction lifecycle state. A transaction is
// created once, transitions to exactly one terminal status, and is never
// deleted.
type TransactionStatus string

const (
	StatusCreated   TransactionStatus = "created"
	StatusSucceeded TransactionStatus = "succeeded"
	StatusFailed    TransactionStatus = "failed"
)

// Terminal reports whether the status is final.
func (s TransactionStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Transaction is a single payment or payout attempt. Writers persist only
// the terminal pre-error state, so readers never observe an intermediate
// status.
type Transaction struct {
	ID            uuid.UUID          `json:"id"`
	Type          TransactionType    `json:"type"`
	Status        TransactionStatus  `json:"status"`
	Amount        int64              `json:"amount"`
	Currency      string             `json:"currency"`
	ClientID      uuid.UUID          `json:"client_id"`
	MethodCompany *MethodCompany     `json:"method_company"`
	Config        *IntegrationConfig `json:"config"`
	Receipt       *Receipt           `json:"receipt,omitempty"`
	Card          *BankCard          `json:"card,omitempty"`
	Meta          map[string]string  `json:"meta,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewPaymentTransaction creates a payment transaction in the created status.
// The method company must have been resolved for the income direction.
func NewPaymentTransaction(
	amount int64,
	currency string,
	clientID uuid.UUID,
	mc *MethodCompany,
	cfg *IntegrationConfig,
	receipt *Receipt,
	meta map[string]string,
) (*Transaction, error) {
	tx := &Transaction{
		ID:            uuid.New(),
		Type:          TransactionPayment,
		Status:        StatusCreated,
		Amount:        amount,
		Currency:      currency,
		ClientID:      clientID,
		MethodCompany: mc,
		Config:        cfg,
		Receipt:       receipt,
		Meta:          meta,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// NewPayoutTransaction creates a payout transaction in the created status.
// The method company must have been resolved for the outcome direction and
// the card must belong to the client.
func NewPayoutTransaction(
	amount int64,
	currency string,
	clientID uuid.UUID,
	mc *MethodCompany,
	cfg *IntegrationConfig,
	card *BankCard,
	meta map[string]string,
) (*Transaction, error) {
	tx := &Transaction{
		ID:            uuid.New(),
		Type:          TransactionPayout,
		Status:        StatusCreated,
		Amount:        amount,
		Currency:      currency,
		ClientID:      clientID,
		MethodCompany: mc,
		Config:        cfg,
		Card:          card,
		Meta:          meta,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// Validate checks if the Transaction has valid data, including the
// type/direction pairing invariant.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrValidation)
	}
	if t.Amount <= 0 {
		return NewValidationError("amount", "must be positive", ErrInvalidAmount)
	}
	if t.ClientID == uuid.Nil {
		return NewValidationError("client_id", "cannot be empty", ErrValidation)
	}
	if t.MethodCompany == nil {
		return NewValidationError("method_company", "cannot be nil", ErrValidation)
	}
	if t.Config == nil {
		return NewValidationError("config", "cannot be nil", ErrValidation)
	}

	switch t.Type {
	case TransactionPayment:
		if t.MethodCompany.Direction != DirectionIncome {
			return ErrDirectionMismatch
		}
	case TransactionPayout:
		if t.MethodCompany.Direction != DirectionOutcome {
			return ErrDirectionMismatch
		}
		if t.Card == nil {
			return NewValidationError("card", "payout requires a bound card", ErrValidation)
		}
	default:
		return NewValidationError("type", "must be payment or payout", ErrValidation)
	}

	return nil
}

// MarkSucceeded transitions the transaction to the succeeded status.
// Returns ErrStatusFinal if a terminal status was already reached.
func (t *Transaction) MarkSucceeded() error {
	if t.Status.Terminal() {
		return ErrStatusFinal
	}
	t.Status = StatusSucceeded
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkFailed transitions the transaction to the failed status.
// Returns ErrStatusFinal if a terminal status was already reached.
func (t *Transaction) MarkFailed() error {
	if t.Status.Terminal() {
		return ErrStatusFinal
	}
	t.Status = StatusFailed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// TransactionMeta is the provider-call-scoped payload built from a
// transaction plus caller-supplied data parameters. It is handed to the
// provider adapter and never persisted on its own.
type TransactionMeta struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	ClientID      uuid.UUID `json:"client_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Terminal      string    `json:"terminal"`

	// Config is the integration configuration selected for this call.
	// Adapters read their endpoint params from here.
	Config *IntegrationConfig `json:"-"`

	Data map[string]string `json:"data,omitempty"`
}

// NewTransactionMeta builds the adapter payload for a transaction.
func NewTransactionMeta(tx *Transaction, data map[string]string) *TransactionMeta {
	meta := &TransactionMeta{
		TransactionID: tx.ID,
		ClientID:      tx.ClientID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Config:        tx.Config,
		Data:          data,
	}
	if tx.Config != nil {
		meta.Terminal = tx.Config.Terminal
	}
	return meta
}

// NewUnbindMeta builds the adapter payload for a card unbind call. cfg is
// the configuration the lifecycle manager selected: the bind record's own
// config when the card carries one, otherwise the default unbind config.
func NewUnbindMeta(card *BankCard, cfg *IntegrationConfig) *TransactionMeta {
	meta := &TransactionMeta{
		ClientID: card.ClientID,
		Config:   cfg,
	}
	if card.Bind != nil {
		meta.Data = map[string]string{"bind_token": card.Bind.Token}
	}
	if cfg != nil {
		meta.Terminal = cfg.Terminal
	}
	return meta
}
