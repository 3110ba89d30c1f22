// Package redis provides Redis-backed caching for the gateway. Cache
// failures are absorbed and logged; a broken cache degrades reads to the
// underlying store, never fails them.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/corepay/gateway/internal/gateway"
	"github.com/corepay/gateway/internal/platform/logger"
)

// MethodCache implements gateway.MethodCache on top of a Redis client.
type MethodCache struct {
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewMethodCache creates a MethodCache. If logger is nil, a default logger
// will be used.
func NewMethodCache(client *goredis.Client, ttl time.Duration, log *slog.Logger) *MethodCache {
	if client == nil {
		panic("client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &MethodCache{
		client: client,
		ttl:    ttl,
		logger: log.With(slog.String("component", "method_cache")),
	}
}

// Ensure MethodCache implements gateway.MethodCache interface
var _ gateway.MethodCache = (*MethodCache)(nil)

// Get returns the cached listing for key, reporting a miss on any failure.
func (c *MethodCache) Get(ctx context.Context, key string) (*gateway.MethodList, bool) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Warn("method cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	var list gateway.MethodList
	if err := json.Unmarshal(data, &list); err != nil {
		log.Warn("method cache entry corrupt, dropping",
			slog.String("key", key),
			slog.String("error", err.Error()))
		c.drop(ctx, key)
		return nil, false
	}

	return &list, true
}

// Set stores the listing under key for the configured TTL.
func (c *MethodCache) Set(ctx context.Context, key string, list *gateway.MethodList) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	data, err := json.Marshal(list)
	if err != nil {
		log.Warn("method cache encode failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn("method cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (c *MethodCache) drop(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil && err != goredis.Nil {
		c.logger.Warn("method cache delete failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
