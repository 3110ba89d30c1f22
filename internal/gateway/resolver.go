package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/rules"
	"github.com/corepay/gateway/internal/store"
)

// MethodCompanyResolver resolves the method/company/provider binding for one
// direction. Pure lookup, no side effects: it must succeed before any
// transaction object is constructed.
type MethodCompanyResolver struct {
	bindings store.MethodCompanyStore
	logger   *slog.Logger
}

// NewMethodCompanyResolver creates a MethodCompanyResolver.
func NewMethodCompanyResolver(bindings store.MethodCompanyStore, log *slog.Logger) (*MethodCompanyResolver, error) {
	if bindings == nil {
		return nil, domain.NewValidationError("bindings", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &MethodCompanyResolver{
		bindings: bindings,
		logger:   log.With(slog.String("component", "method_company_resolver")),
	}, nil
}

// Resolve returns the binding matching all four keys exactly.
// Returns ErrMethodCompanyNotFound if no exact match exists.
func (r *MethodCompanyResolver) Resolve(
	ctx context.Context,
	companyAlias, methodAlias, providerAlias string,
	direction domain.Direction,
) (*domain.MethodCompany, error) {
	mc, err := r.bindings.GetByKeys(ctx, companyAlias, methodAlias, providerAlias, direction)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s/%s/%s/%s",
				ErrMethodCompanyNotFound, companyAlias, methodAlias, providerAlias, direction)
		}
		return nil, err
	}
	return mc, nil
}

// IntegrationConfigResolver selects a provider configuration by rule
// matching. Both failure modes of the rule engine surface identically to
// the caller as ErrProviderNotFound; the logs, not the error type, tell a
// corrupt rule set apart from a genuinely missing integration.
type IntegrationConfigResolver struct {
	engine rules.Engine
	logger *slog.Logger
}

// NewIntegrationConfigResolver creates an IntegrationConfigResolver.
func NewIntegrationConfigResolver(engine rules.Engine, log *slog.Logger) (*IntegrationConfigResolver, error) {
	if engine == nil {
		return nil, domain.NewValidationError("engine", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &IntegrationConfigResolver{
		engine: engine,
		logger: log.With(slog.String("component", "integration_config_resolver")),
	}, nil
}

// Resolve evaluates the rule set against the criteria and, if present, the
// resolved method company. Returns ErrProviderNotFound when no
// configuration applies, whatever the underlying cause.
func (r *IntegrationConfigResolver) Resolve(
	ctx context.Context,
	criteria map[string]string,
	mc *domain.MethodCompany,
) (*domain.IntegrationConfig, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	cfg, err := r.engine.Match(ctx, criteria, mc)
	switch {
	case err == nil:
		return cfg, nil

	case errors.Is(err, rules.ErrBadRule):
		log.Error("integration rule set is corrupt",
			slog.Any("criteria", criteria),
			slog.String("error", err.Error()))
		return nil, ErrProviderNotFound

	case errors.Is(err, rules.ErrNoRuleMatched):
		log.Warn("integration missing for criteria",
			slog.Any("criteria", criteria))
		return nil, ErrProviderNotFound

	default:
		return nil, err
	}
}
