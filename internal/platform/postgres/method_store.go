package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/store"
)

// PostgresMethodStore implements both the store.MethodCatalog and
// store.MethodCompanyStore interfaces using a PostgreSQL database as the
// storage backend. The two concerns share the same tables so one store
// serves both.
type PostgresMethodStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMethodStore creates a new PostgreSQL implementation of the
// method catalog and binding lookups. If logger is nil, a default logger
// will be used.
func NewPostgresMethodStore(db store.DBTX, log *slog.Logger) *PostgresMethodStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresMethodStore{
		db:     db,
		logger: log.With(slog.String("component", "method_store")),
	}
}

// Ensure PostgresMethodStore implements both store interfaces
var (
	_ store.MethodCatalog      = (*PostgresMethodStore)(nil)
	_ store.MethodCompanyStore = (*PostgresMethodStore)(nil)
)

// ByCompanyAndDirection implements store.MethodCatalog.ByCompanyAndDirection.
// Methods are returned in configuration (position) order.
func (s *PostgresMethodStore) ByCompanyAndDirection(
	ctx context.Context,
	companyAlias string,
	direction domain.Direction,
) ([]*domain.Method, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT m.id, m.alias, m.name, m.direction, m.provider_alias, m.platforms
		FROM methods m
		JOIN company_methods cm ON cm.method_id = m.id
		WHERE cm.company_alias = $1 AND m.direction = $2
		ORDER BY cm.position ASC, m.alias ASC
	`

	rows, err := s.db.QueryContext(ctx, query, companyAlias, direction)
	if err != nil {
		log.Error("failed to query methods",
			slog.String("company_alias", companyAlias),
			slog.String("direction", string(direction)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query methods: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var methods []*domain.Method
	for rows.Next() {
		var (
			m         domain.Method
			platforms []byte
		)
		if err := rows.Scan(&m.ID, &m.Alias, &m.Name, &m.Direction, &m.ProviderAlias, &platforms); err != nil {
			log.Error("failed to scan method row",
				slog.String("company_alias", companyAlias),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan method row: %w", err)
		}
		if len(platforms) > 0 {
			if err := json.Unmarshal(platforms, &m.Platforms); err != nil {
				return nil, fmt.Errorf("failed to decode method platforms: %w", err)
			}
		}
		methods = append(methods, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating method rows: %w", err)
	}

	return methods, nil
}

// GetByKeys implements store.MethodCompanyStore.GetByKeys.
// Returns store.ErrMethodCompanyNotFound if no exact match exists.
func (s *PostgresMethodStore) GetByKeys(
	ctx context.Context,
	companyAlias, methodAlias, providerAlias string,
	direction domain.Direction,
) (*domain.MethodCompany, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, company_alias, method_alias, provider_alias, direction
		FROM method_companies
		WHERE company_alias = $1
		  AND method_alias = $2
		  AND provider_alias = $3
		  AND direction = $4
	`

	var (
		id uuid.UUID
		mc domain.MethodCompany
	)
	err := s.db.QueryRowContext(ctx, query, companyAlias, methodAlias, providerAlias, direction).
		Scan(&id, &mc.CompanyAlias, &mc.MethodAlias, &mc.ProviderAlias, &mc.Direction)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, fmt.Errorf("%w: %s/%s/%s/%s",
				store.ErrMethodCompanyNotFound, companyAlias, methodAlias, providerAlias, direction)
		}
		log.Error("failed to get method company binding",
			slog.String("company_alias", companyAlias),
			slog.String("method_alias", methodAlias),
			slog.String("provider_alias", providerAlias),
			slog.String("direction", string(direction)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get method company binding: %w", mapped)
	}
	mc.ID = id

	return &mc, nil
}
