// Package eligibility decides which stored cards may receive payouts.
package eligibility

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corepay/gateway/internal/gateway"
	"github.com/corepay/gateway/internal/platform/logger"
)

// PrefixBlocklist blocks payouts to cards whose number starts with one of
// the configured prefixes. The check runs against the stored mask, so only
// the leading digits a mask preserves can match.
type PrefixBlocklist struct {
	prefixes []string
	logger   *slog.Logger
}

// NewPrefixBlocklist creates a PrefixBlocklist. An empty prefix list allows
// every card.
func NewPrefixBlocklist(prefixes []string, log *slog.Logger) *PrefixBlocklist {
	if log == nil {
		log = slog.Default()
	}

	kept := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	return &PrefixBlocklist{
		prefixes: kept,
		logger:   log.With(slog.String("component", "payout_eligibility")),
	}
}

var _ gateway.CardEligibilityChecker = (*PrefixBlocklist)(nil)

// CheckPayout implements gateway.CardEligibilityChecker.
func (c *PrefixBlocklist) CheckPayout(ctx context.Context, mask string, checkCtx map[string]string) error {
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(mask, prefix) {
			log := logger.FromContextOrDefault(ctx, c.logger)
			log.Debug("card blocked for payout",
				slog.String("prefix", prefix))
			return fmt.Errorf("%w: prefix %s", gateway.ErrBlockedPayoutByCard, prefix)
		}
	}
	return nil
}
