package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/metrics"
	"github.com/corepay/gateway/internal/receipt"
	"github.com/corepay/gateway/internal/rules"
	"github.com/corepay/gateway/internal/store"
)

// doTransactionError stands in for a typed provider failure whose type name
// must surface verbatim in the metric event's exception field.
type doTransactionError struct {
	msg string
}

func (e *doTransactionError) Error() string {
	return e.msg
}

func paymentRequest(clientID uuid.UUID) PaymentRequest {
	return PaymentRequest{
		Company:  "acme",
		Method:   "card",
		Provider: "demo",
		Amount:   2500,
		ClientID: clientID,
		Data:     map[string]string{"order_id": "ord-77"},
	}
}

func TestCreatePayment_Success(t *testing.T) {
	h := newOrchestratorHarness(t, nil)
	clientID := uuid.New()
	req := paymentRequest(clientID)

	mc := testIncomeMC()
	cfg := testIntegrationConfig(domain.ActionPayment)
	h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).Return(mc, nil)
	h.engine.On("Match", mock.Anything, mock.Anything, mc).Return(cfg, nil)
	h.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)
	h.adapter.markSuccess = true

	result, err := h.orch.CreatePayment(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, domain.StatusSucceeded, result.Transaction.Status)
	assert.Equal(t, domain.TransactionPayment, result.Transaction.Type)
	assert.Equal(t, int64(2500), result.Transaction.Amount)
	assert.Equal(t, "EUR", result.Transaction.Currency)
	assert.Equal(t, clientID, result.Transaction.ClientID)

	// Adapter saw the call-scoped meta, not the transaction itself.
	require.NotNil(t, h.adapter.lastMeta)
	assert.Equal(t, result.Transaction.ID, h.adapter.lastMeta.TransactionID)
	assert.Equal(t, cfg.Terminal, h.adapter.lastMeta.Terminal)
	assert.Equal(t, "ord-77", h.adapter.lastMeta.Data["order_id"])

	// Exactly one persisted row and one metric event.
	require.Len(t, h.transactions.Created, 1)
	assert.Same(t, result.Transaction, h.transactions.Created[0])

	events := h.sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "demo", events[0].Provider)
	assert.Equal(t, metrics.KindSinglePayment, events[0].Kind)
	assert.Equal(t, int64(2500), events[0].Amount)
	assert.Equal(t, cfg.Terminal, events[0].Terminal)
	assert.Empty(t, events[0].Exception)
}

func TestCreatePayment_MarksSuccessWhenAdapterDoesNot(t *testing.T) {
	h := newOrchestratorHarness(t, nil)

	h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).
		Return(testIncomeMC(), nil)
	h.engine.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Return(testIntegrationConfig(domain.ActionPayment), nil)
	h.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)
	h.adapter.markSuccess = false

	result, err := h.orch.CreatePayment(context.Background(), paymentRequest(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, result.Transaction.Status)
}

func TestCreatePayment_AdapterFailure(t *testing.T) {
	h := newOrchestratorHarness(t, nil)

	h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).
		Return(testIncomeMC(), nil)
	h.engine.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Return(testIntegrationConfig(domain.ActionPayment), nil)
	h.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

	payErr := &doTransactionError{msg: "issuer declined"}
	h.adapter.payErr = payErr

	result, err := h.orch.CreatePayment(context.Background(), paymentRequest(uuid.New()))
	assert.Nil(t, result)

	// The adapter's error reaches the caller unmodified.
	var typed *doTransactionError
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, payErr, typed)

	// The attempt is still fully recorded: failed row plus metric event
	// carrying the error's type name.
	require.Len(t, h.transactions.Created, 1)
	assert.Equal(t, domain.StatusFailed, h.transactions.Created[0].Status)

	events := h.sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "doTransactionError", events[0].Exception)
}

func TestCreatePayment_ResolutionFailuresHaveNoSideEffects(t *testing.T) {
	t.Run("method company not found", func(t *testing.T) {
		h := newOrchestratorHarness(t, nil)
		h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).
			Return(nil, store.ErrMethodCompanyNotFound)

		result, err := h.orch.CreatePayment(context.Background(), paymentRequest(uuid.New()))
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrMethodCompanyNotFound)

		assert.Zero(t, h.adapter.payCalls)
		assert.Empty(t, h.transactions.Created)
		assert.Empty(t, h.sink.Events())
	})

	t.Run("no integration configuration", func(t *testing.T) {
		h := newOrchestratorHarness(t, nil)
		h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).
			Return(testIncomeMC(), nil)
		h.engine.On("Match", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, rules.ErrNoRuleMatched)

		result, err := h.orch.CreatePayment(context.Background(), paymentRequest(uuid.New()))
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrProviderNotFound)

		assert.Zero(t, h.adapter.payCalls)
		assert.Empty(t, h.transactions.Created)
		assert.Empty(t, h.sink.Events())
	})

	t.Run("malformed receipt", func(t *testing.T) {
		h := newOrchestratorHarness(t, nil)
		h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).
			Return(testIncomeMC(), nil)
		h.engine.On("Match", mock.Anything, mock.Anything, mock.Anything).
			Return(testIntegrationConfig(domain.ActionPayment), nil)

		req := paymentRequest(uuid.New())
		req.Receipt = []byte("{not json")

		result, err := h.orch.CreatePayment(context.Background(), req)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, receipt.ErrMalformedReceipt)

		assert.Zero(t, h.adapter.payCalls)
		assert.Empty(t, h.transactions.Created)
		assert.Empty(t, h.sink.Events())
	})
}

func TestCreatePayment_PersistFailureOnSuccessPath(t *testing.T) {
	h := newOrchestratorHarness(t, nil)

	h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).
		Return(testIncomeMC(), nil)
	h.engine.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Return(testIntegrationConfig(domain.ActionPayment), nil)

	persistErr := errors.New("connection reset")
	h.transactions.On("Create", mock.Anything, mock.Anything).Return(persistErr)
	h.adapter.markSuccess = true

	result, err := h.orch.CreatePayment(context.Background(), paymentRequest(uuid.New()))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, persistErr)

	// The adapter call still happened and the metric event still went out.
	assert.Equal(t, 1, h.adapter.payCalls)
	events := h.sink.Events()
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Exception)
}

func TestCreatePayment_AdapterErrorWinsOverPersistError(t *testing.T) {
	h := newOrchestratorHarness(t, nil)

	h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionIncome).
		Return(testIncomeMC(), nil)
	h.engine.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Return(testIntegrationConfig(domain.ActionPayment), nil)
	h.transactions.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	payErr := &doTransactionError{msg: "issuer declined"}
	h.adapter.payErr = payErr

	_, err := h.orch.CreatePayment(context.Background(), paymentRequest(uuid.New()))

	var typed *doTransactionError
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, payErr, typed)
}

func payoutRequest(clientID, cardID uuid.UUID) PayoutRequest {
	return PayoutRequest{
		Company:  "acme",
		Method:   "card",
		Provider: "demo",
		Amount:   5000,
		ClientID: clientID,
		CardID:   cardID,
	}
}

func TestCreatePayout_Success(t *testing.T) {
	h := newOrchestratorHarness(t, nil)
	clientID := uuid.New()
	card := testPayoutCard(clientID)

	mc := testOutcomeMC()
	cfg := testIntegrationConfig(domain.ActionPayout)
	h.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	h.bindings.On("GetByKeys", mock.Anything, "acme", "card", "demo", domain.DirectionOutcome).Return(mc, nil)
	// The payout configuration lookup is anchored to the operating company,
	// not the request's company.
	h.engine.On("Match", mock.Anything, mock.MatchedBy(func(criteria map[string]string) bool {
		return criteria[rules.CriteriaAction] == domain.ActionPayout &&
			criteria[rules.CriteriaCompany] == testPayoutCompany
	}), mc).Return(cfg, nil)
	h.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

	id, err := h.orch.CreatePayout(context.Background(), payoutRequest(clientID, card.ID))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, h.transactions.Created, 1)
	created := h.transactions.Created[0]
	assert.Equal(t, id, created.ID)
	assert.Equal(t, domain.TransactionPayout, created.Type)
	assert.Equal(t, domain.StatusCreated, created.Status)
	assert.Same(t, card, created.Card)
}

func TestCreatePayout_Rejections(t *testing.T) {
	t.Run("card not found", func(t *testing.T) {
		h := newOrchestratorHarness(t, nil)
		cardID := uuid.New()
		h.cards.On("GetByID", mock.Anything, cardID).Return(nil, store.ErrBankCardNotFound)

		_, err := h.orch.CreatePayout(context.Background(), payoutRequest(uuid.New(), cardID))

		var rejected *PayoutRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, RejectionOwnership, rejected.Reason)
		assert.Empty(t, h.transactions.Created)
	})

	t.Run("card owned by another client", func(t *testing.T) {
		h := newOrchestratorHarness(t, nil)
		card := testPayoutCard(uuid.New())
		h.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)

		_, err := h.orch.CreatePayout(context.Background(), payoutRequest(uuid.New(), card.ID))

		var rejected *PayoutRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, RejectionOwnership, rejected.Reason)
		assert.Empty(t, h.transactions.Created)
	})

	t.Run("card blocked for payouts", func(t *testing.T) {
		blocked := checkerFunc(func(context.Context, string, map[string]string) error {
			return ErrBlockedPayoutByCard
		})
		h := newOrchestratorHarness(t, blocked)
		clientID := uuid.New()
		card := testPayoutCard(clientID)
		h.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)

		_, err := h.orch.CreatePayout(context.Background(), payoutRequest(clientID, card.ID))

		var rejected *PayoutRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, RejectionEligibility, rejected.Reason)
		assert.ErrorIs(t, err, ErrBlockedPayoutByCard)
		assert.Empty(t, h.transactions.Created)
	})

	t.Run("checker failure is not a rejection", func(t *testing.T) {
		checkErr := errors.New("scoring service unavailable")
		failing := checkerFunc(func(context.Context, string, map[string]string) error {
			return checkErr
		})
		h := newOrchestratorHarness(t, failing)
		clientID := uuid.New()
		card := testPayoutCard(clientID)
		h.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)

		_, err := h.orch.CreatePayout(context.Background(), payoutRequest(clientID, card.ID))

		assert.ErrorIs(t, err, checkErr)
		var rejected *PayoutRejectedError
		assert.False(t, errors.As(err, &rejected))
		assert.Empty(t, h.transactions.Created)
	})
}
