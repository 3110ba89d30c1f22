package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/corepay/gateway/internal/domain"
)

// MockMethodCompanyStore mocks the store.MethodCompanyStore interface.
type MockMethodCompanyStore struct {
	mock.Mock
}

func (m *MockMethodCompanyStore) GetByKeys(
	ctx context.Context,
	companyAlias, methodAlias, providerAlias string,
	direction domain.Direction,
) (*domain.MethodCompany, error) {
	args := m.Called(ctx, companyAlias, methodAlias, providerAlias, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MethodCompany), args.Error(1)
}

// MockTransactionStore mocks the store.TransactionStore interface.
type MockTransactionStore struct {
	mock.Mock

	// Created records every transaction passed to Create, in call order.
	Created []*domain.Transaction
}

func (m *MockTransactionStore) Create(ctx context.Context, tx *domain.Transaction) error {
	m.Created = append(m.Created, tx)
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockBankCardStore mocks the store.BankCardStore interface.
type MockBankCardStore struct {
	mock.Mock
}

func (m *MockBankCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BankCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankCard), args.Error(1)
}

func (m *MockBankCardStore) ByClientAndType(
	ctx context.Context,
	clientID uuid.UUID,
	cardType domain.CardType,
) ([]*domain.BankCard, error) {
	args := m.Called(ctx, clientID, cardType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankCard), args.Error(1)
}

func (m *MockBankCardStore) Remove(ctx context.Context, card *domain.BankCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

// MockCompanyDirectory mocks the store.CompanyDirectory interface.
type MockCompanyDirectory struct {
	mock.Mock
}

func (m *MockCompanyDirectory) ByAlias(ctx context.Context, alias string) (*domain.Company, error) {
	args := m.Called(ctx, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// MockMethodCatalog mocks the store.MethodCatalog interface.
type MockMethodCatalog struct {
	mock.Mock
}

func (m *MockMethodCatalog) ByCompanyAndDirection(
	ctx context.Context,
	companyAlias string,
	direction domain.Direction,
) ([]*domain.Method, error) {
	args := m.Called(ctx, companyAlias, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Method), args.Error(1)
}

// MockRuleEngine mocks the rules.Engine interface.
type MockRuleEngine struct {
	mock.Mock
}

func (m *MockRuleEngine) Match(
	ctx context.Context,
	criteria map[string]string,
	mc *domain.MethodCompany,
) (*domain.IntegrationConfig, error) {
	args := m.Called(ctx, criteria, mc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationConfig), args.Error(1)
}

// checkerFunc adapts a function to the CardEligibilityChecker interface.
type checkerFunc func(ctx context.Context, mask string, checkCtx map[string]string) error

func (f checkerFunc) CheckPayout(ctx context.Context, mask string, checkCtx map[string]string) error {
	return f(ctx, mask, checkCtx)
}

// allowAllChecker approves every payout card.
var allowAllChecker = checkerFunc(func(context.Context, string, map[string]string) error {
	return nil
})

// scriptedAdapter is a provider.Adapter with scripted outcomes.
type scriptedAdapter struct {
	payErr      error
	markSuccess bool

	bindURL string
	bindErr error

	unbindErr   error
	payCalls    int
	unbindCalls int
	lastMeta    *domain.TransactionMeta
}

func (a *scriptedAdapter) Pay(ctx context.Context, tx *domain.Transaction, meta *domain.TransactionMeta) error {
	a.payCalls++
	a.lastMeta = meta
	if a.payErr != nil {
		return a.payErr
	}
	if a.markSuccess {
		return tx.MarkSucceeded()
	}
	return nil
}

func (a *scriptedAdapter) BindURL(ctx context.Context, clientID uuid.UUID, cfg *domain.IntegrationConfig, email, phone string) (string, error) {
	return a.bindURL, a.bindErr
}

func (a *scriptedAdapter) Unbind(ctx context.Context, card *domain.BankCard, meta *domain.TransactionMeta) error {
	a.unbindCalls++
	a.lastMeta = meta
	return a.unbindErr
}

// MockServiceClient mocks the ServiceClient interface.
type MockServiceClient struct {
	mock.Mock
}

func (m *MockServiceClient) CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentResult), args.Error(1)
}

func (m *MockServiceClient) BuildMethodsRequest(ctx context.Context, req ContextMethodsRequest) (MethodsRequest, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(MethodsRequest), args.Error(1)
}

// fakeCache is an in-memory MethodCache for tests.
type fakeCache struct {
	entries map[string]*MethodList
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*MethodList)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*MethodList, bool) {
	c.gets++
	list, ok := c.entries[key]
	return list, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, list *MethodList) {
	c.sets++
	c.entries[key] = list
}
