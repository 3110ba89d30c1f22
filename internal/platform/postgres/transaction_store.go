package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/store"
)

// PostgresTransactionStore implements the store.TransactionStore interface
// using a PostgreSQL database as the storage backend.
//
// The resolved method company, integration configuration, receipt, card and
// meta are persisted as JSONB snapshots taken at creation time. Transactions
// are immutable records of an attempt; later changes to the configuration
// tables must not rewrite history.
type PostgresTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTransactionStore creates a new PostgreSQL implementation of the
// TransactionStore interface. If logger is nil, a default logger will be used.
func NewPostgresTransactionStore(db store.DBTX, log *slog.Logger) *PostgresTransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTransactionStore{
		db:     db,
		logger: log.With(slog.String("component", "transaction_store")),
	}
}

// Ensure PostgresTransactionStore implements store.TransactionStore interface
var _ store.TransactionStore = (*PostgresTransactionStore)(nil)

// Create implements store.TransactionStore.Create.
func (s *PostgresTransactionStore) Create(ctx context.Context, tx *domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tx.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	methodCompany, err := json.Marshal(tx.MethodCompany)
	if err != nil {
		return fmt.Errorf("failed to encode method company: %w", err)
	}
	config, err := json.Marshal(tx.Config)
	if err != nil {
		return fmt.Errorf("failed to encode integration config: %w", err)
	}
	receipt, err := marshalNullable(tx.Receipt != nil, tx.Receipt)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	card, err := marshalNullable(tx.Card != nil, tx.Card)
	if err != nil {
		return fmt.Errorf("failed to encode card: %w", err)
	}
	meta, err := marshalNullable(len(tx.Meta) > 0, tx.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode meta: %w", err)
	}

	query := `
		INSERT INTO transactions
			(id, type, status, amount, currency, client_id,
			 method_company, config, receipt, card, meta,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = s.db.ExecContext(ctx, query,
		tx.ID,
		tx.Type,
		tx.Status,
		tx.Amount,
		tx.Currency,
		tx.ClientID,
		methodCompany,
		config,
		receipt,
		card,
		meta,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to save transaction",
			slog.String("transaction_id", tx.ID.String()),
			slog.String("type", string(tx.Type)),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to save transaction: %w", MapError(err))
	}

	return nil
}

// GetByID implements store.TransactionStore.GetByID.
// Returns store.ErrTransactionNotFound if the transaction does not exist.
func (s *PostgresTransactionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, type, status, amount, currency, client_id,
		       method_company, config, receipt, card, meta,
		       created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	var (
		tx            domain.Transaction
		methodCompany []byte
		config        []byte
		receipt       []byte
		card          []byte
		meta          []byte
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.Type,
		&tx.Status,
		&tx.Amount,
		&tx.Currency,
		&tx.ClientID,
		&methodCompany,
		&config,
		&receipt,
		&card,
		&meta,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, fmt.Errorf("%w: %s", store.ErrTransactionNotFound, id)
		}
		log.Error("failed to get transaction",
			slog.String("transaction_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get transaction: %w", mapped)
	}

	if err := json.Unmarshal(methodCompany, &tx.MethodCompany); err != nil {
		return nil, fmt.Errorf("failed to decode method company: %w", err)
	}
	if err := json.Unmarshal(config, &tx.Config); err != nil {
		return nil, fmt.Errorf("failed to decode integration config: %w", err)
	}
	if len(receipt) > 0 {
		if err := json.Unmarshal(receipt, &tx.Receipt); err != nil {
			return nil, fmt.Errorf("failed to decode receipt: %w", err)
		}
	}
	if len(card) > 0 {
		if err := json.Unmarshal(card, &tx.Card); err != nil {
			return nil, fmt.Errorf("failed to decode card: %w", err)
		}
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &tx.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode meta: %w", err)
		}
	}
	tx.CreatedAt = createdAt
	tx.UpdatedAt = updatedAt

	return &tx, nil
}

// marshalNullable encodes v as JSON when present is true, otherwise yields a
// SQL NULL.
func marshalNullable(present bool, v any) (any, error) {
	if !present {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}
