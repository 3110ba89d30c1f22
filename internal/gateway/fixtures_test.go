package gateway

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/metrics"
	"github.com/corepay/gateway/internal/provider"
	"github.com/corepay/gateway/internal/receipt"
)

const testPayoutCompany = "operating-co"

func testIncomeMC() *domain.MethodCompany {
	return &domain.MethodCompany{
		ID:            uuid.New(),
		CompanyAlias:  "acme",
		MethodAlias:   "card",
		ProviderAlias: "demo",
		Direction:     domain.DirectionIncome,
	}
}

func testOutcomeMC() *domain.MethodCompany {
	mc := testIncomeMC()
	mc.Direction = domain.DirectionOutcome
	return mc
}

func testIntegrationConfig(action string) *domain.IntegrationConfig {
	return &domain.IntegrationConfig{
		Name:          "demo-" + action,
		Action:        action,
		CompanyAlias:  "acme",
		ProviderAlias: "demo",
		Terminal:      "demo-terminal-1",
	}
}

func testPayoutCard(clientID uuid.UUID) *domain.BankCard {
	return &domain.BankCard{
		ID:       uuid.New(),
		ClientID: clientID,
		Mask:     "411111******1111",
		ExpMonth: 12,
		ExpYear:  2028,
		Type:     domain.CardTypePayout,
	}
}

// orchestratorHarness wires a TransactionOrchestrator over mocks.
type orchestratorHarness struct {
	bindings     *MockMethodCompanyStore
	engine       *MockRuleEngine
	adapter      *scriptedAdapter
	registry     *provider.Registry
	transactions *MockTransactionStore
	cards        *MockBankCardStore
	sink         *metrics.MemorySink
	orch         *TransactionOrchestrator
}

func newOrchestratorHarness(t *testing.T, checker CardEligibilityChecker) *orchestratorHarness {
	t.Helper()

	h := &orchestratorHarness{
		bindings:     &MockMethodCompanyStore{},
		engine:       &MockRuleEngine{},
		adapter:      &scriptedAdapter{},
		registry:     provider.NewRegistry(),
		transactions: &MockTransactionStore{},
		cards:        &MockBankCardStore{},
		sink:         metrics.NewMemorySink(),
	}
	h.registry.Register("demo", h.adapter)

	if checker == nil {
		checker = allowAllChecker
	}

	resolver, err := NewMethodCompanyResolver(h.bindings, nil)
	require.NoError(t, err)
	configs, err := NewIntegrationConfigResolver(h.engine, nil)
	require.NoError(t, err)

	h.orch, err = NewTransactionOrchestrator(OrchestratorDeps{
		MethodCompanies: resolver,
		Configs:         configs,
		Adapters:        h.registry,
		Transactions:    h.transactions,
		Cards:           h.cards,
		Receipts:        receipt.NewJSONParser(),
		Eligibility:     checker,
		Metrics:         h.sink,
		PayoutCompany:   testPayoutCompany,
		Currency:        "EUR",
	})
	require.NoError(t, err)

	return h
}
