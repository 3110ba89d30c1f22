package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomeMethodCompany() *MethodCompany {
	return &MethodCompany{
		ID:            uuid.New(),
		CompanyAlias:  "acme",
		MethodAlias:   "card",
		ProviderAlias: "demo",
		Direction:     DirectionIncome,
	}
}

func outcomeMethodCompany() *MethodCompany {
	mc := incomeMethodCompany()
	mc.Direction = DirectionOutcome
	return mc
}

func testConfig() *IntegrationConfig {
	return &IntegrationConfig{
		Name:          "demo-main",
		Action:        ActionPayment,
		CompanyAlias:  "acme",
		ProviderAlias: "demo",
		Terminal:      "demo-terminal-1",
	}
}

func payoutCard(clientID uuid.UUID) *BankCard {
	return &BankCard{
		ID:       uuid.New(),
		ClientID: clientID,
		Mask:     "411111******1111",
		ExpMonth: 12,
		ExpYear:  2028,
		Type:     CardTypePayout,
	}
}

func TestNewPaymentTransaction(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name    string
		amount  int64
		mc      *MethodCompany
		cfg     *IntegrationConfig
		wantErr error
	}{
		{
			name:   "valid payment",
			amount: 100,
			mc:     incomeMethodCompany(),
			cfg:    testConfig(),
		},
		{
			name:    "zero amount",
			amount:  0,
			mc:      incomeMethodCompany(),
			cfg:     testConfig(),
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			amount:  -5,
			mc:      incomeMethodCompany(),
			cfg:     testConfig(),
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "nil method company",
			amount:  100,
			mc:      nil,
			cfg:     testConfig(),
			wantErr: ErrValidation,
		},
		{
			name:    "nil config",
			amount:  100,
			mc:      incomeMethodCompany(),
			cfg:     nil,
			wantErr: ErrValidation,
		},
		{
			name:    "outcome direction rejected for payment",
			amount:  100,
			mc:      outcomeMethodCompany(),
			cfg:     testConfig(),
			wantErr: ErrDirectionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewPaymentTransaction(tt.amount, "EUR", clientID, tt.mc, tt.cfg, nil, nil)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tx)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, TransactionPayment, tx.Type)
			assert.Equal(t, StatusCreated, tx.Status)
			assert.Equal(t, tt.amount, tx.Amount)
			assert.NotEqual(t, uuid.Nil, tx.ID)
		})
	}
}

func TestNewPayoutTransaction(t *testing.T) {
	clientID := uuid.New()

	t.Run("valid payout", func(t *testing.T) {
		tx, err := NewPayoutTransaction(
			250, "EUR", clientID, outcomeMethodCompany(), testConfig(), payoutCard(clientID), nil)
		require.NoError(t, err)
		assert.Equal(t, TransactionPayout, tx.Type)
		assert.Equal(t, StatusCreated, tx.Status)
		assert.NotNil(t, tx.Card)
	})

	t.Run("income direction rejected for payout", func(t *testing.T) {
		_, err := NewPayoutTransaction(
			250, "EUR", clientID, incomeMethodCompany(), testConfig(), payoutCard(clientID), nil)
		assert.ErrorIs(t, err, ErrDirectionMismatch)
	})

	t.Run("missing card rejected", func(t *testing.T) {
		_, err := NewPayoutTransaction(
			250, "EUR", clientID, outcomeMethodCompany(), testConfig(), nil, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTransactionStatusTransitions(t *testing.T) {
	clientID := uuid.New()

	newTx := func(t *testing.T) *Transaction {
		t.Helper()
		tx, err := NewPaymentTransaction(100, "EUR", clientID, incomeMethodCompany(), testConfig(), nil, nil)
		require.NoError(t, err)
		return tx
	}

	t.Run("created to succeeded", func(t *testing.T) {
		tx := newTx(t)
		require.NoError(t, tx.MarkSucceeded())
		assert.Equal(t, StatusSucceeded, tx.Status)
	})

	t.Run("created to failed", func(t *testing.T) {
		tx := newTx(t)
		require.NoError(t, tx.MarkFailed())
		assert.Equal(t, StatusFailed, tx.Status)
	})

	t.Run("terminal status is sticky", func(t *testing.T) {
		tx := newTx(t)
		require.NoError(t, tx.MarkSucceeded())
		assert.ErrorIs(t, tx.MarkFailed(), ErrStatusFinal)
		assert.ErrorIs(t, tx.MarkSucceeded(), ErrStatusFinal)
		assert.Equal(t, StatusSucceeded, tx.Status)
	})
}

func TestNewTransactionMeta(t *testing.T) {
	clientID := uuid.New()
	tx, err := NewPaymentTransaction(100, "EUR", clientID, incomeMethodCompany(), testConfig(), nil, nil)
	require.NoError(t, err)

	meta := NewTransactionMeta(tx, map[string]string{"order_id": "42"})

	assert.Equal(t, tx.ID, meta.TransactionID)
	assert.Equal(t, clientID, meta.ClientID)
	assert.Equal(t, int64(100), meta.Amount)
	assert.Equal(t, "demo-terminal-1", meta.Terminal)
	assert.Equal(t, "42", meta.Data["order_id"])
}
