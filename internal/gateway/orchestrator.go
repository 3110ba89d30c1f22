package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/metrics"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/provider"
	"github.com/corepay/gateway/internal/receipt"
	"github.com/corepay/gateway/internal/rules"
	"github.com/corepay/gateway/internal/store"
)

// PaymentRequest carries everything needed to create a payment transaction.
type PaymentRequest struct {
	Company  string
	Method   string
	Provider string
	Amount   int64
	ClientID uuid.UUID

	// Receipt is the raw fiscal receipt payload; empty means no receipt.
	Receipt []byte

	// Data is handed to the provider adapter inside the transaction meta.
	Data map[string]string

	// Meta is stored on the transaction as free-form attributes.
	Meta map[string]string
}

// PaymentResult is the outcome of a synchronous payment creation.
type PaymentResult struct {
	Transaction *domain.Transaction
}

// PayoutRequest carries everything needed to create a payout transaction.
type PayoutRequest struct {
	Company  string
	Method   string
	Provider string
	Amount   int64
	ClientID uuid.UUID
	CardID   uuid.UUID

	// CheckContext is passed to the payout eligibility check.
	CheckContext map[string]string

	Meta map[string]string
}

// TransactionOrchestrator owns transaction construction and the guaranteed
// persistence/metric contract around the provider call. It holds no mutable
// state between calls; one instance safely serves concurrent requests.
type TransactionOrchestrator struct {
	methodCompanies *MethodCompanyResolver
	configs         *IntegrationConfigResolver
	adapters        *provider.Registry
	transactions    store.TransactionStore
	cards           store.BankCardStore
	receipts        receipt.Parser
	eligibility     CardEligibilityChecker
	metrics         metrics.Sink

	// payoutCompany anchors every payout configuration lookup to the
	// designated operating company, regardless of the request's company.
	payoutCompany string
	currency      string
	logger        *slog.Logger
}

// OrchestratorDeps bundles the orchestrator's collaborators.
type OrchestratorDeps struct {
	MethodCompanies *MethodCompanyResolver
	Configs         *IntegrationConfigResolver
	Adapters        *provider.Registry
	Transactions    store.TransactionStore
	Cards           store.BankCardStore
	Receipts        receipt.Parser
	Eligibility     CardEligibilityChecker
	Metrics         metrics.Sink
	PayoutCompany   string
	Currency        string
	Logger          *slog.Logger
}

// NewTransactionOrchestrator creates a TransactionOrchestrator.
// It returns an error if any required dependency is missing.
func NewTransactionOrchestrator(deps OrchestratorDeps) (*TransactionOrchestrator, error) {
	switch {
	case deps.MethodCompanies == nil:
		return nil, domain.NewValidationError("methodCompanies", "cannot be nil", domain.ErrValidation)
	case deps.Configs == nil:
		return nil, domain.NewValidationError("configs", "cannot be nil", domain.ErrValidation)
	case deps.Adapters == nil:
		return nil, domain.NewValidationError("adapters", "cannot be nil", domain.ErrValidation)
	case deps.Transactions == nil:
		return nil, domain.NewValidationError("transactions", "cannot be nil", domain.ErrValidation)
	case deps.Cards == nil:
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	case deps.Receipts == nil:
		return nil, domain.NewValidationError("receipts", "cannot be nil", domain.ErrValidation)
	case deps.Eligibility == nil:
		return nil, domain.NewValidationError("eligibility", "cannot be nil", domain.ErrValidation)
	case deps.Metrics == nil:
		return nil, domain.NewValidationError("metrics", "cannot be nil", domain.ErrValidation)
	case deps.PayoutCompany == "":
		return nil, domain.NewValidationError("payoutCompany", "cannot be empty", domain.ErrValidation)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &TransactionOrchestrator{
		methodCompanies: deps.MethodCompanies,
		configs:         deps.Configs,
		adapters:        deps.Adapters,
		transactions:    deps.Transactions,
		cards:           deps.Cards,
		receipts:        deps.Receipts,
		eligibility:     deps.Eligibility,
		metrics:         deps.Metrics,
		payoutCompany:   deps.PayoutCompany,
		currency:        deps.Currency,
		logger:          log.With(slog.String("component", "transaction_orchestrator")),
	}, nil
}

// CreatePayment resolves the method binding and integration configuration,
// constructs the transaction and invokes the provider's payment call.
//
// Resolution failures abort with no side effects. Once the transaction
// exists, the deferred cleanup below persists it exactly once and publishes
// exactly one metric event on every exit path, before any adapter error
// reaches the caller. Adapter errors are re-raised unmodified.
func (o *TransactionOrchestrator) CreatePayment(ctx context.Context, req PaymentRequest) (result *PaymentResult, err error) {
	log := logger.FromContextOrDefault(ctx, o.logger)
	start := time.Now()

	mc, err := o.methodCompanies.Resolve(ctx, req.Company, req.Method, req.Provider, domain.DirectionIncome)
	if err != nil {
		return nil, err
	}

	cfg, err := o.configs.Resolve(ctx, map[string]string{
		rules.CriteriaAction:  domain.ActionPayment,
		rules.CriteriaCompany: req.Company,
	}, mc)
	if err != nil {
		return nil, err
	}

	adapter, err := o.adapters.Get(mc.ProviderAlias)
	if err != nil {
		return nil, err
	}

	var rcpt *domain.Receipt
	if len(req.Receipt) > 0 {
		rcpt, err = o.receipts.FromRaw(req.Receipt)
		if err != nil {
			return nil, err
		}
	}

	tx, err := domain.NewPaymentTransaction(req.Amount, o.currency, req.ClientID, mc, cfg, rcpt, req.Meta)
	if err != nil {
		return nil, err
	}

	meta := domain.NewTransactionMeta(tx, req.Data)

	// From here the attempt is observable: exactly one transaction row and
	// exactly one metric event, whatever the adapter does.
	var callErr error
	defer func() {
		if callErr != nil {
			if markErr := tx.MarkFailed(); markErr != nil {
				log.Warn("transaction already terminal on failure path",
					slog.String("transaction_id", tx.ID.String()),
					slog.String("status", string(tx.Status)))
			}
		} else if !tx.Status.Terminal() {
			// The adapter's success path normally marks the transaction;
			// cover adapters that leave it to us.
			_ = tx.MarkSucceeded()
		}

		if perr := o.transactions.Create(ctx, tx); perr != nil {
			log.Error("failed to persist transaction",
				slog.String("transaction_id", tx.ID.String()),
				slog.String("error", perr.Error()))
			if err == nil {
				result, err = nil, perr
			}
		}

		o.metrics.Publish(metrics.NewPaymentEvent(
			mc.ProviderAlias, metrics.KindSinglePayment, tx.Amount, cfg.Terminal, callErr, time.Since(start)))
	}()

	if callErr = adapter.Pay(ctx, tx, meta); callErr != nil {
		log.Warn("provider payment call failed",
			slog.String("transaction_id", tx.ID.String()),
			slog.String("provider", mc.ProviderAlias),
			slog.String("error", callErr.Error()))
		return nil, callErr
	}

	log.Info("payment transaction succeeded",
		slog.String("transaction_id", tx.ID.String()),
		slog.String("provider", mc.ProviderAlias),
		slog.Int64("amount", tx.Amount))

	return &PaymentResult{Transaction: tx}, nil
}

// CreatePayout validates ownership and eligibility, resolves the outcome
// binding and the payout configuration anchored to the operating company,
// and durably creates the transaction in the created status. No provider is
// called synchronously; payout execution is a downstream concern.
func (o *TransactionOrchestrator) CreatePayout(ctx context.Context, req PayoutRequest) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, o.logger)

	card, err := o.cards.GetByID(ctx, req.CardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return uuid.Nil, NewPayoutRejectedError(RejectionOwnership, err)
		}
		return uuid.Nil, err
	}
	if !card.OwnedBy(req.ClientID) {
		log.Warn("payout card ownership mismatch",
			slog.String("card_id", card.ID.String()),
			slog.String("client_id", req.ClientID.String()))
		return uuid.Nil, NewPayoutRejectedError(RejectionOwnership, nil)
	}

	if err := o.eligibility.CheckPayout(ctx, card.Mask, req.CheckContext); err != nil {
		if isBlockedPayout(err) {
			return uuid.Nil, NewPayoutRejectedError(RejectionEligibility, err)
		}
		return uuid.Nil, err
	}

	mc, err := o.methodCompanies.Resolve(ctx, req.Company, req.Method, req.Provider, domain.DirectionOutcome)
	if err != nil {
		return uuid.Nil, err
	}

	cfg, err := o.configs.Resolve(ctx, map[string]string{
		rules.CriteriaAction:  domain.ActionPayout,
		rules.CriteriaCompany: o.payoutCompany,
	}, mc)
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := domain.NewPayoutTransaction(req.Amount, o.currency, req.ClientID, mc, cfg, card, req.Meta)
	if err != nil {
		return uuid.Nil, err
	}

	if err := o.transactions.Create(ctx, tx); err != nil {
		return uuid.Nil, err
	}

	log.Info("payout transaction created",
		slog.String("transaction_id", tx.ID.String()),
		slog.String("provider", mc.ProviderAlias),
		slog.Int64("amount", tx.Amount))

	return tx.ID, nil
}
