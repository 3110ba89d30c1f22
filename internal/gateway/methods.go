package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/store"
)

// MethodView is one entry in a method listing.
type MethodView struct {
	Alias string `json:"alias"`
	Name  string `json:"name"`
}

// MethodList is the platform-filtered method listing for one company and
// direction.
type MethodList struct {
	Company   string           `json:"company"`
	Direction domain.Direction `json:"direction"`
	Methods   []MethodView     `json:"methods"`
}

// MethodCache fronts the method catalog. Implementations absorb their own
// failures: a broken cache degrades listing to the catalog, never fails it.
type MethodCache interface {
	Get(ctx context.Context, key string) (*MethodList, bool)
	Set(ctx context.Context, key string, list *MethodList)
}

// MethodService builds method listings.
type MethodService struct {
	companies store.CompanyDirectory
	catalog   store.MethodCatalog
	cache     MethodCache // nil disables caching
	logger    *slog.Logger
}

// NewMethodService creates a MethodService. cache may be nil.
func NewMethodService(
	companies store.CompanyDirectory,
	catalog store.MethodCatalog,
	cache MethodCache,
	log *slog.Logger,
) (*MethodService, error) {
	if companies == nil {
		return nil, domain.NewValidationError("companies", "cannot be nil", domain.ErrValidation)
	}
	if catalog == nil {
		return nil, domain.NewValidationError("catalog", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &MethodService{
		companies: companies,
		catalog:   catalog,
		cache:     cache,
		logger:    log.With(slog.String("component", "method_service")),
	}, nil
}

// GetMethods resolves the company, lists its methods for the direction and
// filters them by platform. An unknown company returns ErrCompanyNotFound;
// a company with no methods in the direction returns ErrMethodsNotFound.
func (s *MethodService) GetMethods(
	ctx context.Context,
	companyAlias string,
	direction domain.Direction,
	platform string,
) (*MethodList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !direction.Valid() {
		return nil, domain.NewValidationError("direction", "must be income or outcome", domain.ErrInvalidDirection)
	}

	key := listingKey(companyAlias, direction, platform)
	if s.cache != nil {
		if list, ok := s.cache.Get(ctx, key); ok {
			log.Debug("method listing served from cache", slog.String("key", key))
			return list, nil
		}
	}

	company, err := s.companies.ByAlias(ctx, companyAlias)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, companyAlias)
		}
		return nil, err
	}

	methods, err := s.catalog.ByCompanyAndDirection(ctx, company.Alias, direction)
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrMethodsNotFound, companyAlias, direction)
	}

	list := &MethodList{
		Company:   company.Alias,
		Direction: direction,
		Methods:   make([]MethodView, 0, len(methods)),
	}
	for _, method := range methods {
		if !method.AvailableOn(platform) {
			continue
		}
		list.Methods = append(list.Methods, MethodView{
			Alias: method.Alias,
			Name:  method.Name,
		})
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, list)
	}

	return list, nil
}

func listingKey(companyAlias string, direction domain.Direction, platform string) string {
	return fmt.Sprintf("methods:%s:%s:%s", companyAlias, direction, platform)
}
