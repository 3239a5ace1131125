package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/pkg/helpers"
)

// Cache keys for the public read views. Every mutation of artifacts or
// projects invalidates these so visitors never see stale visibility.
const (
	CacheKeyPortfolio = "view:portfolio"
	CacheKeyProjects  = "view:projects:public"
)

// CacheKeyProject returns the cache key for one public project detail page.
func CacheKeyProject(id string) string { return "view:project:" + id }

// ViewCache is a best-effort Redis cache for the public views. A nil cache or
// nil client disables caching without changing behavior.
type ViewCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewViewCache(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *ViewCache {
	return &ViewCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Enabled reports whether a backing client is configured.
func (c *ViewCache) Enabled() bool { return c != nil && c.rdb != nil }

// Get loads a cached view into dest, reporting whether it was present.
func (c *ViewCache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, key, dest)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).WithField("key", key).Warn("view cache read failed")
		}
		return false
	}
	return ok
}

// Set stores a view, logging and swallowing failures.
func (c *ViewCache) Set(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}
	if err := helpers.RedisSetJSON(ctx, c.rdb, key, v, c.ttl); err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("key", key).Warn("view cache write failed")
	}
}

// Invalidate drops the given keys. Failures are logged, not returned: a stale
// delete only means a slightly longer TTL window.
func (c *ViewCache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("view cache invalidation failed")
	}
}
