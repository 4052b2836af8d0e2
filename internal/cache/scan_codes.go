// internal/cache/scan_codes.go
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/chaintrace/backend/internal/config"
	"github.com/chaintrace/backend/internal/metrics"
)

// ScanCodeCache is a read-through cache for the scanCode->productID binding.
// The binding is immutable once a product exists, so entries never need
// invalidation. A nil client or a cache error degrades to a database lookup;
// the cache is never a source of failures.
type ScanCodeCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewScanCodeCache(cfg config.RedisConfig) *ScanCodeCache {
	if cfg.Addr == "" {
		return &ScanCodeCache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &ScanCodeCache{rdb: rdb, ttl: 24 * time.Hour}
}

func (c *ScanCodeCache) key(code string) string {
	return "scan_code:" + code
}

func (c *ScanCodeCache) Get(ctx context.Context, code string) (uint64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}

	val, err := c.rdb.Get(ctx, c.key(code)).Result()
	if err == redis.Nil {
		metrics.ScanCodeCacheHits.WithLabelValues("miss").Inc()
		return 0, false
	}
	if err != nil {
		metrics.ScanCodeCacheHits.WithLabelValues("error").Inc()
		logrus.WithError(err).Warn("scan code cache read failed")
		return 0, false
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}

	metrics.ScanCodeCacheHits.WithLabelValues("hit").Inc()
	return id, true
}

func (c *ScanCodeCache) Set(ctx context.Context, code string, productID uint64) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, c.key(code), strconv.FormatUint(productID, 10), c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("scan code cache write failed")
	}
}

func (c *ScanCodeCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
