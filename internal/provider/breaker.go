package provider

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/corepay/gateway/internal/domain"
)

// BreakerAdapter decorates an Adapter with a circuit breaker. The breaker
// never retries — it only fails fast once a provider endpoint is known-bad,
// which keeps request latency bounded while an upstream outage lasts.
// Failures surface as the same AdapterError taxonomy the wrapped adapter
// produces.
type BreakerAdapter struct {
	alias   string
	inner   Adapter
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker once this many calls in a row
	// have failed. Zero means the default of 5.
	ConsecutiveFailures uint32
}

// NewBreakerAdapter wraps the inner adapter for the given provider alias.
func NewBreakerAdapter(alias string, inner Adapter, settings BreakerSettings, logger *slog.Logger) *BreakerAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "provider_breaker"), slog.String("provider", alias))

	threshold := settings.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: alias,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("provider breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &BreakerAdapter{
		alias:   alias,
		inner:   inner,
		breaker: cb,
		logger:  logger,
	}
}

// Pay implements Adapter.
func (b *BreakerAdapter) Pay(ctx context.Context, tx *domain.Transaction, meta *domain.TransactionMeta) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.inner.Pay(ctx, tx, meta)
	})
	if err != nil {
		return b.wrap(FailurePayment, err)
	}
	return nil
}

// BindURL implements Adapter.
func (b *BreakerAdapter) BindURL(ctx context.Context, clientID uuid.UUID, cfg *domain.IntegrationConfig, email, phone string) (string, error) {
	url, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.BindURL(ctx, clientID, cfg, email, phone)
	})
	if err != nil {
		return "", b.wrap(FailureBind, err)
	}
	return url.(string), nil
}

// Unbind implements Adapter.
func (b *BreakerAdapter) Unbind(ctx context.Context, card *domain.BankCard, meta *domain.TransactionMeta) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.inner.Unbind(ctx, card, meta)
	})
	if err != nil {
		// The invalid-reference signal must pass through untouched; the
		// card removal cascade depends on recognizing it.
		if isCardReferenceInvalid(err) {
			return err
		}
		return b.wrap(FailureUnbind, err)
	}
	return nil
}

func (b *BreakerAdapter) wrap(op FailureKind, err error) error {
	// Errors already classified by the inner adapter keep their kind.
	if _, ok := asAdapterError(err); ok {
		return err
	}
	return NewAdapterError(op, b.alias, err)
}
