package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/store"
)

// PostgresBankCardStore implements the store.BankCardStore interface using a
// PostgreSQL database as the storage backend. The bind record is persisted
// as a JSONB snapshot alongside the card.
type PostgresBankCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBankCardStore creates a new PostgreSQL implementation of the
// BankCardStore interface. If logger is nil, a default logger will be used.
func NewPostgresBankCardStore(db store.DBTX, log *slog.Logger) *PostgresBankCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresBankCardStore{
		db:     db,
		logger: log.With(slog.String("component", "bank_card_store")),
	}
}

// Ensure PostgresBankCardStore implements store.BankCardStore interface
var _ store.BankCardStore = (*PostgresBankCardStore)(nil)

// GetByID implements store.BankCardStore.GetByID.
// Returns store.ErrBankCardNotFound if the card does not exist.
func (s *PostgresBankCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BankCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, client_id, mask, exp_month, exp_year, type, bind, created_at
		FROM bank_cards
		WHERE id = $1
	`

	card, err := s.scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, fmt.Errorf("%w: %s", store.ErrBankCardNotFound, id)
		}
		log.Error("failed to get bank card",
			slog.String("card_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get bank card: %w", mapped)
	}

	return card, nil
}

// ByClientAndType implements store.BankCardStore.ByClientAndType.
//
// Cards are returned in creation order. Listing consumers rely on this:
// recurrent-card deduplication keeps the most recently bound card under a
// repeated mask.
func (s *PostgresBankCardStore) ByClientAndType(
	ctx context.Context,
	clientID uuid.UUID,
	cardType domain.CardType,
) ([]*domain.BankCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, client_id, mask, exp_month, exp_year, type, bind, created_at
		FROM bank_cards
		WHERE client_id = $1 AND type = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, clientID, cardType)
	if err != nil {
		log.Error("failed to query bank cards",
			slog.String("client_id", clientID.String()),
			slog.String("card_type", string(cardType)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query bank cards: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.BankCard
	for rows.Next() {
		card, err := s.scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank card rows: %w", err)
	}

	return cards, nil
}

// Remove implements store.BankCardStore.Remove.
// Returns store.ErrBankCardNotFound if the card no longer exists.
func (s *PostgresBankCardStore) Remove(ctx context.Context, card *domain.BankCard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM bank_cards WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, card.ID)
	if err != nil {
		log.Error("failed to remove bank card",
			slog.String("card_id", card.ID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove bank card: %w", MapError(err))
	}

	return CheckRowsAffected(result, fmt.Errorf("%w: %s", store.ErrBankCardNotFound, card.ID))
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresBankCardStore) scanCard(row rowScanner) (*domain.BankCard, error) {
	var (
		card      domain.BankCard
		bind      []byte
		createdAt time.Time
	)
	if err := row.Scan(
		&card.ID,
		&card.ClientID,
		&card.Mask,
		&card.ExpMonth,
		&card.ExpYear,
		&card.Type,
		&bind,
		&createdAt,
	); err != nil {
		return nil, err
	}

	if len(bind) > 0 {
		if err := json.Unmarshal(bind, &card.Bind); err != nil {
			return nil, fmt.Errorf("failed to decode bind record: %w", err)
		}
	}
	card.CreatedAt = createdAt

	return &card, nil
}
