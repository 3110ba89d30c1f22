package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/store"
)

// PostgresCompanyStore implements the store.CompanyDirectory interface
// using a PostgreSQL database as the storage backend.
type PostgresCompanyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCompanyStore creates a new PostgreSQL implementation of the
// CompanyDirectory interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresCompanyStore(db store.DBTX, log *slog.Logger) *PostgresCompanyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresCompanyStore{
		db:     db,
		logger: log.With(slog.String("component", "company_store")),
	}
}

// Ensure PostgresCompanyStore implements store.CompanyDirectory interface
var _ store.CompanyDirectory = (*PostgresCompanyStore)(nil)

// ByAlias implements store.CompanyDirectory.ByAlias.
// Returns store.ErrCompanyNotFound if no company carries the alias.
func (s *PostgresCompanyStore) ByAlias(ctx context.Context, alias string) (*domain.Company, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, alias, name, created_at
		FROM companies
		WHERE alias = $1
	`

	var (
		id        uuid.UUID
		gotAlias  string
		name      string
		createdAt time.Time
	)
	err := s.db.QueryRowContext(ctx, query, alias).Scan(&id, &gotAlias, &name, &createdAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, fmt.Errorf("%w: %s", store.ErrCompanyNotFound, alias)
		}
		log.Error("failed to get company by alias",
			slog.String("alias", alias),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get company by alias: %w", mapped)
	}

	return &domain.Company{
		ID:        id,
		Alias:     gotAlias,
		Name:      name,
		CreatedAt: createdAt,
	}, nil
}
