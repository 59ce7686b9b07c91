// Package sentimentclient calls the hosted multilingual sentiment model.
package sentimentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/email-classifier/infrastructure/circuitbreaker"
	infrahttp "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/http"
	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/infrastructure/retry"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/telemetry"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/textnorm"
)

// DefaultURL is the hosted inference endpoint of the sentiment model.
const DefaultURL = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-xlm-roberta-base-sentiment"

const (
	defaultTimeout       = 10 * time.Second
	defaultMaxAttempts   = 2
	defaultRetryDelay    = 2 * time.Second
	defaultMaxInputChars = 500
	defaultRateLimit     = 5
	maxResponseBytes     = 1 << 20
)

var (
	// ErrUnavailable indicates the sentiment service could not be reached or answered with an error.
	ErrUnavailable = errors.New("sentiment service unavailable")
	// ErrModelLoading is returned for 503 answers while the hosted model warms up.
	ErrModelLoading = errors.New("sentiment model loading")
	// ErrEmptyResponse is returned when the service answers with no labels.
	ErrEmptyResponse = errors.New("sentiment service returned no labels")
)

// Config configures the client. Zero values take the defaults.
type Config struct {
	URL   string
	Token string

	// Timeout bounds each attempt.
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration

	MaxInputChars int

	// RateLimit is the number of calls per second; Burst defaults to RateLimit.
	RateLimit int
	Burst     int

	Breaker circuitbreaker.Config
}

func (c *Config) applyDefaults() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.MaxInputChars <= 0 {
		c.MaxInputChars = defaultMaxInputChars
	}
	if c.RateLimit <= 0 {
		c.RateLimit = defaultRateLimit
	}
}

// Client is a rate-limited, retrying, circuit-broken HTTP client for the sentiment model.
// It is safe for concurrent use.
type Client struct {
	cfg       Config
	http      *http.Client
	limiter   *RateLimiter
	breaker   *circuitbreaker.Breaker
	cache     Cache
	telemetry *telemetry.Provider
	logger    infralogger.Logger
}

// NewClient creates a sentiment client. cache and tp may be nil.
func NewClient(cfg Config, cache Cache, tp *telemetry.Provider, logger infralogger.Logger) *Client {
	cfg.applyDefaults()

	breakerCfg := cfg.Breaker
	breakerCfg.OnStateChange = func(from, to circuitbreaker.State) {
		logger.Warn("Sentiment circuit breaker state changed",
			infralogger.String("from", from.String()),
			infralogger.String("to", to.String()),
		)
	}

	return &Client{
		cfg:       cfg,
		http:      infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: cfg.Timeout, ResponseHeaderTimeout: cfg.Timeout}),
		limiter:   NewRateLimiter(cfg.RateLimit, cfg.Burst, logger),
		breaker:   circuitbreaker.New(breakerCfg),
		cache:     cache,
		telemetry: tp,
		logger:    logger,
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the top sentiment label for text, truncated to MaxInputChars.
func (c *Client) Classify(ctx context.Context, text string) (*domain.SentimentResult, error) {
	text = textnorm.Truncate(text, c.cfg.MaxInputChars)

	if res, ok := c.cached(ctx, text); ok {
		c.record(ctx, telemetry.SentimentOutcomeCacheHit, 0)
		return res, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	start := time.Now()
	var result *domain.SentimentResult
	err := c.breaker.Execute(ctx, func() error {
		return retry.Retry(ctx, retry.Config{
			MaxAttempts:  c.cfg.MaxAttempts,
			InitialDelay: c.cfg.RetryDelay,
			MaxDelay:     c.cfg.RetryDelay,
			Multiplier:   1,
			IsRetryable:  func(err error) bool { return errors.Is(err, ErrModelLoading) },
		}, func() error {
			res, doErr := c.do(ctx, text)
			if doErr != nil {
				return doErr
			}
			result = res
			return nil
		})
	})
	if err != nil {
		outcome := telemetry.SentimentOutcomeError
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			outcome = telemetry.SentimentOutcomeCircuitOpen
		}
		c.record(ctx, outcome, time.Since(start))
		return nil, fmt.Errorf("classify sentiment: %w", err)
	}

	c.record(ctx, telemetry.SentimentOutcomeSuccess, time.Since(start))
	c.store(ctx, text, result)
	return result, nil
}

// do performs one attempt.
func (c *Client) do(ctx context.Context, text string) (*domain.SentimentResult, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, ErrModelLoading
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: sentiment service returned %d", ErrUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return decode(raw)
}

// decode accepts both [{label, score}] and [[{label, score}]] and returns the top label.
func decode(raw []byte) (*domain.SentimentResult, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return top(nested[0])
	}

	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode sentiment response: %w", err)
	}
	return top(flat)
}

func top(labels []labelScore) (*domain.SentimentResult, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyResponse
	}

	best := labels[0]
	for _, ls := range labels[1:] {
		if ls.Score > best.Score {
			best = ls
		}
	}
	return &domain.SentimentResult{Label: normalizeLabel(best.Label), Score: best.Score}, nil
}

// normalizeLabel maps model-specific labels onto negative, neutral and positive.
func normalizeLabel(label string) string {
	switch l := strings.ToLower(strings.TrimSpace(label)); l {
	case "label_0", "negative", "neg":
		return "negative"
	case "label_1", "neutral", "neu":
		return "neutral"
	case "label_2", "positive", "pos":
		return "positive"
	default:
		return l
	}
}

// Health reports the circuit state: open means degraded.
func (c *Client) Health(_ context.Context) error {
	if c.breaker.State() == circuitbreaker.StateOpen {
		return fmt.Errorf("%w: circuit open", ErrUnavailable)
	}
	return nil
}

// BreakerStats exposes the circuit breaker counters.
func (c *Client) BreakerStats() circuitbreaker.Stats {
	return c.breaker.GetStats()
}

func (c *Client) record(ctx context.Context, outcome string, d time.Duration) {
	if c.telemetry != nil {
		c.telemetry.RecordSentiment(ctx, outcome, d)
	}
}
