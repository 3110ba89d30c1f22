package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/provider"
	"github.com/corepay/gateway/internal/rules"
	"github.com/corepay/gateway/internal/store"
)

// BindCardRequest asks for a provider bind URL for a client.
type BindCardRequest struct {
	ClientID uuid.UUID
	Company  string
	Method   string
	Provider string
	Email    string
	Phone    string
}

// TransactionInfo is the ownership-checked client view of a transaction.
type TransactionInfo struct {
	ID          uuid.UUID                `json:"id"`
	Type        domain.TransactionType   `json:"type"`
	Status      domain.TransactionStatus `json:"status"`
	Amount      int64                    `json:"amount"`
	Currency    string                   `json:"currency"`
	MethodAlias string                   `json:"method_alias"`
	CreatedAt   time.Time                `json:"created_at"`
}

// Gateway is the transport-agnostic facade over the core components. Every
// exposed operation returns a structured result, never a raw transport
// response.
type Gateway struct {
	orchestrator *TransactionOrchestrator
	cards        *CardLifecycleManager
	methods      *MethodService
	router       *PaymentRouter
	bindings     *MethodCompanyResolver
	configs      *IntegrationConfigResolver
	adapters     *provider.Registry
	companies    store.CompanyDirectory
	transactions store.TransactionStore
	logger       *slog.Logger
}

// GatewayDeps bundles the facade's collaborators.
type GatewayDeps struct {
	Orchestrator *TransactionOrchestrator
	Cards        *CardLifecycleManager
	Methods      *MethodService
	Router       *PaymentRouter
	Bindings     *MethodCompanyResolver
	Configs      *IntegrationConfigResolver
	Adapters     *provider.Registry
	Companies    store.CompanyDirectory
	Transactions store.TransactionStore
	Logger       *slog.Logger
}

// New creates the Gateway facade.
func New(deps GatewayDeps) (*Gateway, error) {
	switch {
	case deps.Orchestrator == nil:
		return nil, domain.NewValidationError("orchestrator", "cannot be nil", domain.ErrValidation)
	case deps.Cards == nil:
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	case deps.Methods == nil:
		return nil, domain.NewValidationError("methods", "cannot be nil", domain.ErrValidation)
	case deps.Router == nil:
		return nil, domain.NewValidationError("router", "cannot be nil", domain.ErrValidation)
	case deps.Bindings == nil:
		return nil, domain.NewValidationError("bindings", "cannot be nil", domain.ErrValidation)
	case deps.Configs == nil:
		return nil, domain.NewValidationError("configs", "cannot be nil", domain.ErrValidation)
	case deps.Adapters == nil:
		return nil, domain.NewValidationError("adapters", "cannot be nil", domain.ErrValidation)
	case deps.Companies == nil:
		return nil, domain.NewValidationError("companies", "cannot be nil", domain.ErrValidation)
	case deps.Transactions == nil:
		return nil, domain.NewValidationError("transactions", "cannot be nil", domain.ErrValidation)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Gateway{
		orchestrator: deps.Orchestrator,
		cards:        deps.Cards,
		methods:      deps.Methods,
		router:       deps.Router,
		bindings:     deps.Bindings,
		configs:      deps.Configs,
		adapters:     deps.Adapters,
		companies:    deps.Companies,
		transactions: deps.Transactions,
		logger:       log.With(slog.String("component", "gateway")),
	}, nil
}

// GetMethods lists a company's methods for a direction, platform-filtered.
func (g *Gateway) GetMethods(ctx context.Context, companyAlias string, direction domain.Direction, platform string) (*MethodList, error) {
	return g.methods.GetMethods(ctx, companyAlias, direction, platform)
}

// CreatePaymentTransaction creates and executes a payment synchronously.
func (g *Gateway) CreatePaymentTransaction(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	return g.orchestrator.CreatePayment(ctx, req)
}

// CreatePayoutTransaction durably creates a payout in the created status
// and returns its id.
func (g *Gateway) CreatePayoutTransaction(ctx context.Context, req PayoutRequest) (uuid.UUID, error) {
	return g.orchestrator.CreatePayout(ctx, req)
}

// BindCard resolves the bind configuration for the client's method choice
// and returns the provider's bind URL. The binding flow itself (and the
// resulting bind record) is the provider's side of the exchange.
func (g *Gateway) BindCard(ctx context.Context, req BindCardRequest) (string, error) {
	mc, err := g.bindings.Resolve(ctx, req.Company, req.Method, req.Provider, domain.DirectionIncome)
	if err != nil {
		return "", err
	}

	cfg, err := g.configs.Resolve(ctx, map[string]string{
		rules.CriteriaAction:  domain.ActionBind,
		rules.CriteriaCompany: req.Company,
	}, mc)
	if err != nil {
		return "", err
	}

	adapter, err := g.adapters.Get(mc.ProviderAlias)
	if err != nil {
		return "", err
	}

	url, err := adapter.BindURL(ctx, req.ClientID, cfg, req.Email, req.Phone)
	if err != nil {
		log := logger.FromContextOrDefault(ctx, g.logger)
		log.Error("bind url request failed",
			slog.String("client_id", req.ClientID.String()),
			slog.String("provider", mc.ProviderAlias),
			slog.String("error", err.Error()))
		return "", NewGeneralGatewayError("card bind failed", err)
	}
	return url, nil
}

// GetCards lists a client's stored cards of the given type.
func (g *Gateway) GetCards(ctx context.Context, clientID uuid.UUID, cardType domain.CardType, checkCtx map[string]string) ([]BankCardView, error) {
	return g.cards.ListCards(ctx, clientID, cardType, checkCtx)
}

// RemoveBankCard removes a payout card through the unbind cascade.
func (g *Gateway) RemoveBankCard(ctx context.Context, cardID uuid.UUID) error {
	return g.cards.RemoveCard(ctx, cardID)
}

// GetTransactionByID is the unrestricted internal transaction read.
func (g *Gateway) GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := g.transactions.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
		}
		return nil, err
	}
	return tx, nil
}

// GetTransactionInfoByID is the client-facing transaction read. A
// transaction owned by another client is reported as not found rather than
// as forbidden; the listing does not leak other clients' transaction ids.
func (g *Gateway) GetTransactionInfoByID(ctx context.Context, id, clientID uuid.UUID) (*TransactionInfo, error) {
	tx, err := g.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.ClientID != clientID {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	info := &TransactionInfo{
		ID:        tx.ID,
		Type:      tx.Type,
		Status:    tx.Status,
		Amount:    tx.Amount,
		Currency:  tx.Currency,
		CreatedAt: tx.CreatedAt,
	}
	if tx.MethodCompany != nil {
		info.MethodAlias = tx.MethodCompany.MethodAlias
	}
	return info, nil
}

// GetCompanyByAlias resolves a company by alias.
func (g *Gateway) GetCompanyByAlias(ctx context.Context, alias string) (*domain.Company, error) {
	company, err := g.companies.ByAlias(ctx, alias)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, alias)
		}
		return nil, err
	}
	return company, nil
}

// CreatePayment is the routed payment entry point.
func (g *Gateway) CreatePayment(ctx context.Context, req RoutedPaymentRequest) (*PaymentResult, error) {
	return g.router.CreatePayment(ctx, req)
}

// GetContextMethods is the routed context-driven method listing.
func (g *Gateway) GetContextMethods(ctx context.Context, req ContextMethodsRequest) (*MethodList, error) {
	return g.router.GetContextMethods(ctx, req)
}
