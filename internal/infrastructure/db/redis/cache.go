package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// Key format: translation:<sha256 of model|language|prompt>
const cacheKeyPrefix = "translation:"

// TranslationCache stores completed translations with a TTL so repeated
// requests for the same sanitized input skip the backend entirely.
type TranslationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTranslationCache wraps the given Redis client. ttl <= 0 falls back to
// 24 hours.
func NewTranslationCache(client *redis.Client, ttl time.Duration) *TranslationCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TranslationCache{client: client, ttl: ttl}
}

// Get returns the cached result for key, or nil on a miss.
func (c *TranslationCache) Get(ctx context.Context, key string) (*ports.TranslateResult, error) {
	payload, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var res ports.TranslateResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &res, nil
}

// Set stores a completed translation (expires after the configured TTL).
func (c *TranslationCache) Set(ctx context.Context, key string, res *ports.TranslateResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
