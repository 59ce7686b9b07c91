package sentimentclient

import (
	"context"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"golang.org/x/time/rate"
)

// RateLimiter throttles outbound calls to the hosted model.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  infralogger.Logger
}

// NewRateLimiter creates a new rate limiter
// rps: requests per second
// burst: maximum burst size
func NewRateLimiter(rps, burst int, logger infralogger.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRateLimit
	}
	if burst <= 0 {
		burst = rps
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Wait waits until rate limit allows the operation
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("Rate limiter wait failed", infralogger.Error(err))
		return err
	}
	return nil
}
