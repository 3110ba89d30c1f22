package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/corepay/gateway/internal/domain"
	"github.com/corepay/gateway/internal/metrics"
	"github.com/corepay/gateway/internal/platform/logger"
	"github.com/corepay/gateway/internal/provider"
	"github.com/corepay/gateway/internal/rules"
	"github.com/corepay/gateway/internal/store"
)

// CardEligibilityChecker decides whether a card mask may receive payouts in
// the given check context. Implementations return ErrBlockedPayoutByCard
// (possibly wrapped) for a per-card rejection; any other error is treated
// as a checker failure, not a rejection.
type CardEligibilityChecker interface {
	CheckPayout(ctx context.Context, mask string, checkCtx map[string]string) error
}

func isBlockedPayout(err error) bool {
	return errors.Is(err, ErrBlockedPayoutByCard)
}

// BankCardView is the listing representation of a stored card.
type BankCardView struct {
	ID        uuid.UUID `json:"id"`
	Mask      string    `json:"mask"`
	ExpMonth  int       `json:"exp_month"`
	ExpYear   int       `json:"exp_year"`
	Recurrent bool      `json:"recurrent"`
}

// CardLifecycleManager lists, filters and removes stored bank cards,
// including the provider-unbind cascade on removal.
type CardLifecycleManager struct {
	cards       store.BankCardStore
	configs     *IntegrationConfigResolver
	adapters    *provider.Registry
	eligibility CardEligibilityChecker
	logger      *slog.Logger
}

// NewCardLifecycleManager creates a CardLifecycleManager.
func NewCardLifecycleManager(
	cards store.BankCardStore,
	configs *IntegrationConfigResolver,
	adapters *provider.Registry,
	eligibility CardEligibilityChecker,
	log *slog.Logger,
) (*CardLifecycleManager, error) {
	switch {
	case cards == nil:
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	case configs == nil:
		return nil, domain.NewValidationError("configs", "cannot be nil", domain.ErrValidation)
	case adapters == nil:
		return nil, domain.NewValidationError("adapters", "cannot be nil", domain.ErrValidation)
	case eligibility == nil:
		return nil, domain.NewValidationError("eligibility", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &CardLifecycleManager{
		cards:       cards,
		configs:     configs,
		adapters:    adapters,
		eligibility: eligibility,
		logger:      log.With(slog.String("component", "card_lifecycle_manager")),
	}, nil
}

// ListCards returns the client's cards of the given type.
//
// Recurrent listings are deduplicated by masked number; when the same mask
// appears more than once, the later card in fetch order wins. Payout
// listings with a check context silently drop cards the eligibility check
// blocks; any other checker error aborts the whole call.
func (m *CardLifecycleManager) ListCards(
	ctx context.Context,
	clientID uuid.UUID,
	cardType domain.CardType,
	checkCtx map[string]string,
) ([]BankCardView, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if !cardType.Valid() {
		return nil, domain.NewValidationError("card_type", "must be payout or recurrent", domain.ErrInvalidCardType)
	}

	fetched, err := m.cards.ByClientAndType(ctx, clientID, cardType)
	if err != nil {
		return nil, err
	}

	cards := fetched
	if cardType == domain.CardTypeRecurrent {
		cards = dedupeByMask(fetched)
	}

	if cardType == domain.CardTypePayout && checkCtx != nil {
		eligible := cards[:0:0]
		for _, card := range cards {
			err := m.eligibility.CheckPayout(ctx, card.Mask, checkCtx)
			if err == nil {
				eligible = append(eligible, card)
				continue
			}
			if isBlockedPayout(err) {
				log.Debug("card excluded from payout listing",
					slog.String("card_id", card.ID.String()))
				continue
			}
			return nil, err
		}
		cards = eligible
	}

	views := make([]BankCardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, BankCardView{
			ID:        card.ID,
			Mask:      card.Mask,
			ExpMonth:  card.ExpMonth,
			ExpYear:   card.ExpYear,
			Recurrent: card.Type == domain.CardTypeRecurrent,
		})
	}
	return views, nil
}

// dedupeByMask keeps one card per masked number. Result order follows the
// first appearance of each mask; the card kept under a mask is the last
// one fetched.
func dedupeByMask(cards []*domain.BankCard) []*domain.BankCard {
	byMask := make(map[string]int, len(cards))
	out := make([]*domain.BankCard, 0, len(cards))

	for _, card := range cards {
		if idx, seen := byMask[card.Mask]; seen {
			out[idx] = card
			continue
		}
		byMask[card.Mask] = len(out)
		out = append(out, card)
	}
	return out
}

// RemoveCard deletes a payout card, unbinding it upstream first when an
// unbind configuration is available.
//
// A provider report that the card reference is already invalid counts as a
// successful unbind. Any other adapter failure keeps the card and surfaces
// a GeneralGatewayError; the cause is logged with full diagnostic context
// before wrapping.
func (m *CardLifecycleManager) RemoveCard(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	card, err := m.cards.GetByID(ctx, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrBankCardNotFound, cardID)
		}
		return err
	}
	if card.Type != domain.CardTypePayout {
		return fmt.Errorf("%w: %s", ErrBankCardNotFound, cardID)
	}

	cfg, err := m.unbindConfig(ctx, card)
	if err != nil {
		return err
	}

	if cfg != nil {
		if err := m.unbind(ctx, card, cfg, log); err != nil {
			return err
		}
	} else {
		log.Debug("no unbind configuration for card, skipping remote call",
			slog.String("card_id", card.ID.String()))
	}

	return m.cards.Remove(ctx, card)
}

// unbindConfig picks the configuration for the remote unbind call: the bind
// record's config when present, otherwise the default card-unbind
// configuration. A missing default is not an error; the remote call is
// simply skipped.
func (m *CardLifecycleManager) unbindConfig(ctx context.Context, card *domain.BankCard) (*domain.IntegrationConfig, error) {
	if card.Bind != nil && card.Bind.Config != nil {
		return card.Bind.Config, nil
	}

	cfg, err := m.configs.Resolve(ctx, map[string]string{
		rules.CriteriaAction: domain.ActionCardUnbind,
	}, nil)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

func (m *CardLifecycleManager) unbind(ctx context.Context, card *domain.BankCard, cfg *domain.IntegrationConfig, log *slog.Logger) error {
	adapter, err := m.adapters.Get(cfg.ProviderAlias)
	if err != nil {
		log.Error("no adapter for unbind configuration",
			slog.String("card_id", card.ID.String()),
			slog.String("provider", cfg.ProviderAlias),
			slog.String("error", err.Error()))
		return NewGeneralGatewayError("card unbind failed", err)
	}

	meta := domain.NewUnbindMeta(card, cfg)
	if err := adapter.Unbind(ctx, card, meta); err != nil {
		if errors.Is(err, provider.ErrCardReferenceInvalid) {
			log.Info("card reference already invalid upstream, proceeding with removal",
				slog.String("card_id", card.ID.String()),
				slog.String("provider", cfg.ProviderAlias))
			return nil
		}

		log.Error("card unbind failed",
			slog.String("card_id", card.ID.String()),
			slog.String("provider", cfg.ProviderAlias),
			slog.String("error_kind", metrics.ErrorKind(err)),
			slog.String("error", err.Error()),
			slog.String("severity", "critical"))
		return NewGeneralGatewayError("card unbind failed", err)
	}

	return nil
}
