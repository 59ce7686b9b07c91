package sentimentclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
)

const (
	cacheKeyPrefix  = "email-classifier:sentiment:"
	defaultCacheTTL = 24 * time.Hour
)

// Cache stores sentiment results by input text. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, text string) (*domain.SentimentResult, bool, error)
	Set(ctx context.Context, text string, res *domain.SentimentResult) error
}

// RedisCache is a Cache backed by Redis string keys with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache. A non-positive ttl takes 24h.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// CacheKey returns the Redis key for text.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, text string) (*domain.SentimentResult, bool, error) {
	raw, err := c.client.Get(ctx, CacheKey(text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var res domain.SentimentResult
	if err = json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("decode cached sentiment: %w", err)
	}
	return &res, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, text string, res *domain.SentimentResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode sentiment: %w", err)
	}
	if err = c.client.Set(ctx, CacheKey(text), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// cached looks text up, treating cache failures as misses.
func (c *Client) cached(ctx context.Context, text string) (*domain.SentimentResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	res, ok, err := c.cache.Get(ctx, text)
	if err != nil {
		c.logger.Warn("Sentiment cache lookup failed", infralogger.Error(err))
		return nil, false
	}
	return res, ok
}

func (c *Client) store(ctx context.Context, text string, res *domain.SentimentResult) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, text, res); err != nil {
		c.logger.Warn("Sentiment cache write failed", infralogger.Error(err))
	}
}
