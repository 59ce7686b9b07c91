// Package redis creates verified go-redis clients.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	infraconfig "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/config"
)

// Config holds Redis connection configuration. It is a runtime value with no yaml or env
// tags: file and environment loading belong to config.RedisConfig, see FromConfig.
type Config struct {
	Address  string
	Password string
	DB       int
}

// FromConfig converts the loaded configuration section into connection settings.
func FromConfig(cfg infraconfig.RedisConfig) Config {
	return Config{Address: cfg.URL, Password: cfg.Password, DB: cfg.DB}
}

// ErrEmptyAddress is returned when Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

const connectionTimeout = 5 * time.Second

// NewClient creates a Redis client and pings it once before returning.
func NewClient(cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
