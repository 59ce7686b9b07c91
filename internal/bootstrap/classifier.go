package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/north-cloud/email-classifier/infrastructure/circuitbreaker"
	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	infraredis "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/redis"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/classifier"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/config"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/extract"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/language"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/sentimentclient"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/telemetry"
)

// Components holds the classification pipeline and its optional collaborators.
type Components struct {
	Config     *config.Config
	Logger     infralogger.Logger
	Telemetry  *telemetry.Provider
	Classifier *classifier.Classifier
	Extractor  *extract.Extractor
	// Sentiment is nil unless the hosted model is enabled.
	Sentiment *sentimentclient.Client
	// Redis is nil unless the sentiment cache is enabled.
	Redis *redis.Client
}

// NewComponents builds the pipeline from configuration. tp may be nil.
func NewComponents(cfg *config.Config, logger infralogger.Logger, tp *telemetry.Provider) (*Components, error) {
	comps := &Components{
		Config:    cfg,
		Logger:    logger,
		Telemetry: tp,
		Extractor: extract.New(logger),
	}

	engine := classifier.NewRuleEngine(scoringConfig(cfg.Classification), logger, tp)
	logger.Info("Rule engine initialized",
		infralogger.Int("rules_count", len(engine.Rules())),
		infralogger.Bool("disambiguate_unproductive", cfg.Classification.DisambiguateUnproductive),
	)

	var detector language.Detector
	if !cfg.Language.DisableDetector {
		detector = language.NewWhatlangDetector()
	}
	gate := language.NewGate(detector, language.Config{
		ShortTextWords:   cfg.Language.ShortTextWords,
		MinIndicatorHits: cfg.Language.MinIndicatorHits,
	}, logger)

	pipeline := classifier.Config{
		Gate:      gate,
		Engine:    engine,
		Telemetry: tp,
	}

	if cfg.Sentiment.Enabled {
		combiner, err := comps.setupSentiment(cfg, engine.Config().StrongRuleScore)
		if err != nil {
			return nil, err
		}
		pipeline.Combiner = combiner
	}

	comps.Classifier = classifier.NewClassifier(logger, pipeline)
	logger.Info("Classifier initialized",
		infralogger.Bool("hybrid", comps.Classifier.HybridEnabled()),
		infralogger.Bool("language_detector", detector != nil),
	)
	return comps, nil
}

// setupSentiment creates the sentiment client, its optional Redis cache and the combiner.
func (c *Components) setupSentiment(cfg *config.Config, strongRuleScore int) (*classifier.HybridCombiner, error) {
	sc := cfg.Sentiment

	var cache sentimentclient.Cache
	if cfg.Cache.Enabled {
		client, err := infraredis.NewClient(infraredis.FromConfig(cfg.Cache.Redis))
		if err != nil {
			return nil, fmt.Errorf("connect sentiment cache: %w", err)
		}
		c.Redis = client
		cache = sentimentclient.NewRedisCache(client, cfg.Cache.TTL)
		c.Logger.Info("Sentiment cache enabled",
			infralogger.String("redis", cfg.Cache.Redis.URL),
			infralogger.Duration("ttl", cfg.Cache.TTL),
		)
	}

	c.Sentiment = sentimentclient.NewClient(sentimentclient.Config{
		URL:           sc.URL,
		Token:         sc.Token,
		Timeout:       sc.Timeout,
		MaxAttempts:   sc.MaxAttempts,
		RetryDelay:    sc.RetryDelay,
		MaxInputChars: sc.MaxInputChars,
		RateLimit:     sc.RateLimit,
		Burst:         sc.Burst,
		Breaker: circuitbreaker.Config{
			FailureThreshold: sc.BreakerFailures,
			Timeout:          sc.BreakerTimeout,
		},
	}, cache, c.Telemetry, c.Logger)

	c.Logger.Info("Sentiment model enabled",
		infralogger.String("url", sc.URL),
		infralogger.Bool("token_set", sc.Token != ""),
	)
	return classifier.NewHybridCombiner(c.Sentiment, strongRuleScore, sc.MaxInputChars, c.Logger), nil
}

// EmailTypes lists the rule identifiers the engine can return, in table order.
func (c *Components) EmailTypes() []string {
	rules := c.Classifier.Engine().Rules()
	types := make([]string, 0, len(rules))
	for _, r := range rules {
		types = append(types, string(r.ID))
	}
	return types
}

// Close releases the Redis connection, if any.
func (c *Components) Close() error {
	if c.Redis == nil {
		return nil
	}
	if err := c.Redis.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("close redis: %w", err)
	}
	return nil
}

// pingRedis is the health probe for the sentiment cache.
func (c *Components) pingRedis() error {
	return c.Redis.Ping(context.Background()).Err()
}

func scoringConfig(cc config.ClassificationConfig) classifier.ScoringConfig {
	sc := classifier.DefaultScoringConfig()
	sc.KeywordWeight = cc.KeywordWeight
	sc.PhraseWeight = cc.PhraseWeight
	sc.MinScore = cc.MinScore
	sc.HighConfidenceScore = cc.HighConfidenceScore
	sc.StrongRuleScore = cc.StrongRuleScore
	sc.DisambiguateUnproductive = cc.DisambiguateUnproductive
	return sc
}
