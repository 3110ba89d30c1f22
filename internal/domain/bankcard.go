package domain

import (
	"time"

	"github.com/google/uuid"
)

// CardType classifies a stored bank card.
type CardType string

const (
	// CardTypePayout marks a card stored as a payout destination.
	CardTypePayout CardType = "payout"

	// CardTypeRecurrent marks a card bound for repeat charges.
	CardTypeRecurrent CardType = "recurrent"
)

// Valid reports whether the card type is one of the known values.
func (t CardType) Valid() bool {
	return t == CardTypePayout || t == CardTypeRecurrent
}

// BindRecord is the artifact of a prior successful card-binding flow. It
// carries the provider-side token and the integration config the binding
// was performed against, which is reused for a later unbind.
type BindRecord struct {
	Token     string             `json:"token"`
	Config    *IntegrationConfig `json:"config,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// BankCard is a client's stored card reference. Cards are created by the
// binding flow; this core only lists, filters and removes them.
type BankCard struct {
	ID        uuid.UUID   `json:"id"`
	ClientID  uuid.UUID   `json:"client_id"`
	Mask      string      `json:"mask"`
	ExpMonth  int         `json:"exp_month"`
	ExpYear   int         `json:"exp_year"`
	Type      CardType    `json:"type"`
	Bind      *BindRecord `json:"bind,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Validate checks if the BankCard has valid data.
func (c *BankCard) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrValidation)
	}
	if c.ClientID == uuid.Nil {
		return NewValidationError("client_id", "cannot be empty", ErrValidation)
	}
	if c.Mask == "" {
		return NewValidationError("mask", "cannot be empty", ErrValidation)
	}
	if !c.Type.Valid() {
		return NewValidationError("type", "must be payout or recurrent", ErrInvalidCardType)
	}
	return nil
}

// OwnedBy reports whether the card belongs to the given client.
func (c *BankCard) OwnedBy(clientID uuid.UUID) bool {
	return c.ClientID == clientID
}
