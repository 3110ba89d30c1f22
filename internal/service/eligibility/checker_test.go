package eligibility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corepay/gateway/internal/gateway"
)

func TestPrefixBlocklist_CheckPayout(t *testing.T) {
	checker := NewPrefixBlocklist([]string{"5555", " 2200 ", ""}, nil)

	t.Run("blocked prefix", func(t *testing.T) {
		err := checker.CheckPayout(context.Background(), "555555******4444", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gateway.ErrBlockedPayoutByCard)
	})

	t.Run("trimmed prefix still matches", func(t *testing.T) {
		err := checker.CheckPayout(context.Background(), "220012******0001", nil)
		assert.ErrorIs(t, err, gateway.ErrBlockedPayoutByCard)
	})

	t.Run("unlisted prefix passes", func(t *testing.T) {
		assert.NoError(t, checker.CheckPayout(context.Background(), "411111******1111", nil))
	})

	t.Run("empty blocklist allows everything", func(t *testing.T) {
		open := NewPrefixBlocklist(nil, nil)
		assert.NoError(t, open.CheckPayout(context.Background(), "555555******4444", nil))
	})
}
