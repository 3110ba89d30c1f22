package gateway

import (
	"context"
	"log/slog"

	"github.com/corepay/gateway/internal/domain"
)

// ServiceType tags a routed request with the downstream product line it
// belongs to. The variant set is closed: dispatch is enumerated at compile
// time, never reflective.
type ServiceType string

const (
	ServiceTypeLoan   ServiceType = "loan"
	ServiceTypeOption ServiceType = "option"
)

// RoutedPaymentRequest is a payment creation request entering through the
// service-type router.
type RoutedPaymentRequest struct {
	ServiceType ServiceType
	Payment     PaymentRequest
}

// ContextMethodsRequest asks for the methods applicable to a service-type
// specific context.
type ContextMethodsRequest struct {
	ServiceType ServiceType
	Company     string
	Platform    string

	// Context carries the service-type specific fields the collaborator
	// needs to derive a canonical listing request.
	Context map[string]string
}

// MethodsRequest is the canonical method-listing request a service client
// derives from a context request.
type MethodsRequest struct {
	Company   string
	Direction domain.Direction
}

// ServiceClient is the per-service-type collaborator contract.
type ServiceClient interface {
	// CreatePayment runs the collaborator's own payment-creation flow.
	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)

	// BuildMethodsRequest translates a context request into a canonical
	// method-listing request.
	BuildMethodsRequest(ctx context.Context, req ContextMethodsRequest) (MethodsRequest, error)
}

// PaymentRouter dispatches routed entry points to the Loan or Option
// collaborator. An unknown service-type tag fails before any collaborator
// is invoked.
type PaymentRouter struct {
	loan    ServiceClient
	option  ServiceClient
	methods *MethodService
	logger  *slog.Logger
}

// NewPaymentRouter creates a PaymentRouter.
func NewPaymentRouter(loan, option ServiceClient, methods *MethodService, log *slog.Logger) (*PaymentRouter, error) {
	switch {
	case loan == nil:
		return nil, domain.NewValidationError("loan", "cannot be nil", domain.ErrValidation)
	case option == nil:
		return nil, domain.NewValidationError("option", "cannot be nil", domain.ErrValidation)
	case methods == nil:
		return nil, domain.NewValidationError("methods", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &PaymentRouter{
		loan:    loan,
		option:  option,
		methods: methods,
		logger:  log.With(slog.String("component", "payment_router")),
	}, nil
}

func (r *PaymentRouter) clientFor(tag ServiceType) (ServiceClient, error) {
	switch tag {
	case ServiceTypeLoan:
		return r.loan, nil
	case ServiceTypeOption:
		return r.option, nil
	default:
		return nil, &InvalidServiceTypeError{Tag: string(tag)}
	}
}

// CreatePayment dispatches to the tagged collaborator's payment creation.
func (r *PaymentRouter) CreatePayment(ctx context.Context, req RoutedPaymentRequest) (*PaymentResult, error) {
	client, err := r.clientFor(req.ServiceType)
	if err != nil {
		return nil, err
	}
	return client.CreatePayment(ctx, req.Payment)
}

// GetContextMethods asks the tagged collaborator to derive a canonical
// listing request, then re-enters method listing with the context's
// platform hint.
func (r *PaymentRouter) GetContextMethods(ctx context.Context, req ContextMethodsRequest) (*MethodList, error) {
	client, err := r.clientFor(req.ServiceType)
	if err != nil {
		return nil, err
	}

	mreq, err := client.BuildMethodsRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return r.methods.GetMethods(ctx, mreq.Company, mreq.Direction, req.Platform)
}
