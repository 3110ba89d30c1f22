// Package clients provides the per-service-type collaborators the payment
// router dispatches to. Both product lines create payments through the
// shared orchestrator; they differ in how requests are tagged and how a
// context request maps to a method listing.
package clients

import (
	"context"
	"log/slog"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/gateway"
)

// metaServiceKey tags created transactions with the product line that
// originated them.
const metaServiceKey = "service"

// PaymentCreator is the orchestrator slice the clients consume.
type PaymentCreator interface {
	CreatePayment(ctx context.Context, req gateway.PaymentRequest) (*gateway.PaymentResult, error)
}

// LoanClient is the loan product line collaborator.
type LoanClient struct {
	orchestrator PaymentCreator
	logger       *slog.Logger
}

// NewLoanClient creates a LoanClient.
func NewLoanClient(orchestrator PaymentCreator, log *slog.Logger) (*LoanClient, error) {
	if orchestrator == nil {
		return nil, domain.NewValidationError("orchestrator", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &LoanClient{
		orchestrator: orchestrator,
		logger:       log.With(slog.String("component", "loan_client")),
	}, nil
}

// Ensure LoanClient implements gateway.ServiceClient interface
var _ gateway.ServiceClient = (*LoanClient)(nil)

// CreatePayment implements gateway.ServiceClient.CreatePayment.
func (c *LoanClient) CreatePayment(ctx context.Context, req gateway.PaymentRequest) (*gateway.PaymentResult, error) {
	req.Meta = tagService(req.Meta, string(gateway.ServiceTypeLoan))
	return c.orchestrator.CreatePayment(ctx, req)
}

// BuildMethodsRequest implements gateway.ServiceClient.BuildMethodsRequest.
// Loan contexts always list income methods for the request's company.
func (c *LoanClient) BuildMethodsRequest(ctx context.Context, req gateway.ContextMethodsRequest) (gateway.MethodsRequest, error) {
	return gateway.MethodsRequest{
		Company:   req.Company,
		Direction: domain.DirectionIncome,
	}, nil
}

// OptionClient is the option product line collaborator.
type OptionClient struct {
	orchestrator PaymentCreator
	logger       *slog.Logger
}

// NewOptionClient creates an OptionClient.
func NewOptionClient(orchestrator PaymentCreator, log *slog.Logger) (*OptionClient, error) {
	if orchestrator == nil {
		return nil, domain.NewValidationError("orchestrator", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &OptionClient{
		orchestrator: orchestrator,
		logger:       log.With(slog.String("component", "option_client")),
	}, nil
}

// Ensure OptionClient implements gateway.ServiceClient interface
var _ gateway.ServiceClient = (*OptionClient)(nil)

// CreatePayment implements gateway.ServiceClient.CreatePayment.
func (c *OptionClient) CreatePayment(ctx context.Context, req gateway.PaymentRequest) (*gateway.PaymentResult, error) {
	req.Meta = tagService(req.Meta, string(gateway.ServiceTypeOption))
	return c.orchestrator.CreatePayment(ctx, req)
}

// BuildMethodsRequest implements gateway.ServiceClient.BuildMethodsRequest.
// Option contexts may ask for outcome methods through the direction field;
// anything else lists income methods.
func (c *OptionClient) BuildMethodsRequest(ctx context.Context, req gateway.ContextMethodsRequest) (gateway.MethodsRequest, error) {
	direction := domain.DirectionIncome
	if d := domain.Direction(req.Context["direction"]); d == domain.DirectionOutcome {
		direction = domain.DirectionOutcome
	}

	return gateway.MethodsRequest{
		Company:   req.Company,
		Direction: direction,
	}, nil
}

func tagService(meta map[string]string, service string) map[string]string {
	if meta == nil {
		meta = make(map[string]string, 1)
	}
	meta[metaServiceKey] = service
	return meta
}
