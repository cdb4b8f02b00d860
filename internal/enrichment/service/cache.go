package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"leadreach_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Cache stores enrichment signals in Redis keyed by location.
// A nil Redis client disables caching without affecting lookups.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewCache creates a new enrichment cache.
func NewCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

// Get returns the cached signal for a location, or nil on a miss.
func (c *Cache) Get(ctx context.Context, city, state, country string) *Signal {
	if c == nil || c.rdb == nil {
		return nil
	}

	raw, err := c.rdb.Get(ctx, cacheKey(city, state, country)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("enrichment cache read failed", "error", err)
		}
		return nil
	}

	var signal Signal
	if err := json.Unmarshal(raw, &signal); err != nil {
		c.log.Debug("enrichment cache entry corrupt", "error", err)
		return nil
	}
	return &signal
}

// Set stores a signal for a location. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, city, state, country string, signal *Signal) {
	if c == nil || c.rdb == nil || signal == nil {
		return
	}

	raw, err := json.Marshal(signal)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(city, state, country), raw, c.ttl).Err(); err != nil {
		c.log.Debug("enrichment cache write failed", "error", err)
	}
}

func cacheKey(city, state, country string) string {
	normalize := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return fmt.Sprintf("enrichment:%s:%s:%s", normalize(city), normalize(state), normalize(country))
}
