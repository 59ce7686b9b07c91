package config

import (
	"errors"
	"fmt"
	"time"

	infraconfig "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/config"
)

// Default configuration values.
const (
	defaultServiceName      = "email-classifier"
	defaultServiceVersion   = "2.0.0"
	defaultServicePort      = 5000
	defaultMaxUploadBytes   = 16 << 20
	defaultShutdownTimeout  = 15 * time.Second
	defaultKeywordWeight    = 3
	defaultPhraseWeight     = 8
	defaultMinScore         = 3
	defaultHighConfidence   = 8
	defaultStrongRuleScore  = 10
	defaultShortTextWords   = 5
	defaultMinIndicatorHits = 2
	defaultSentimentURL     = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-xlm-roberta-base-sentiment"
	defaultSentimentTimeout = 10 * time.Second
	defaultSentimentRetries = 2
	defaultRetryDelay       = 2 * time.Second
	defaultMaxInputChars    = 500
	defaultRateLimit        = 5
	defaultBreakerFailures  = 5
	defaultBreakerTimeout   = 60 * time.Second
	defaultCacheTTL         = 24 * time.Hour
)

// Config holds all configuration for the email classifier service.
type Config struct {
	Service        ServiceConfig             `yaml:"service"`
	Logging        infraconfig.LoggingConfig `yaml:"logging"`
	Classification ClassificationConfig      `yaml:"classification"`
	Language       LanguageConfig            `yaml:"language"`
	Sentiment      SentimentConfig           `yaml:"sentiment"`
	Cache          CacheConfig               `yaml:"cache"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"EMAIL_CLASSIFIER_PORT" yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"             yaml:"debug"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"          yaml:"cors_origins"`
}

// ClassificationConfig holds rule scoring weights and thresholds.
type ClassificationConfig struct {
	KeywordWeight            int  `yaml:"keyword_weight"`
	PhraseWeight             int  `yaml:"phrase_weight"`
	MinScore                 int  `yaml:"min_score"`
	HighConfidenceScore      int  `yaml:"high_confidence_score"`
	StrongRuleScore          int  `yaml:"strong_rule_score"`
	DisambiguateUnproductive bool `env:"CLASSIFIER_DISAMBIGUATE" yaml:"disambiguate_unproductive"`
}

// LanguageConfig holds Portuguese gate settings.
type LanguageConfig struct {
	ShortTextWords   int  `yaml:"short_text_words"`
	MinIndicatorHits int  `yaml:"min_indicator_hits"`
	DisableDetector  bool `env:"LANGUAGE_DISABLE_DETECTOR" yaml:"disable_detector"`
}

// SentimentConfig holds the hosted sentiment model settings. Disabled by default.
type SentimentConfig struct {
	Enabled         bool          `env:"SENTIMENT_ENABLED" yaml:"enabled"`
	URL             string        `env:"SENTIMENT_API_URL" yaml:"url"`
	Token           string        `env:"HF_API_TOKEN"      yaml:"token"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxAttempts     int           `yaml:"max_attempts"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
	MaxInputChars   int           `yaml:"max_input_chars"`
	RateLimit       int           `yaml:"rate_limit"`
	Burst           int           `yaml:"burst"`
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"`
}

// CacheConfig holds the optional Redis cache for sentiment results.
type CacheConfig struct {
	Enabled bool                    `env:"SENTIMENT_CACHE_ENABLED" yaml:"enabled"`
	Redis   infraconfig.RedisConfig `yaml:"redis"`
	TTL     time.Duration           `yaml:"ttl"`
}

// Load loads configuration from the specified path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		errs = append(errs, err)
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Classification.StrongRuleScore < c.Classification.MinScore {
		errs = append(errs, &infraconfig.ValidationError{
			Field:   "classification.strong_rule_score",
			Message: "must not be below classification.min_score",
		})
	}
	if c.Sentiment.Enabled {
		if err := infraconfig.ValidateRequired("sentiment.url", c.Sentiment.URL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Cache.Enabled {
		if !c.Sentiment.Enabled {
			errs = append(errs, &infraconfig.ValidationError{
				Field:   "cache.enabled",
				Message: "requires sentiment.enabled",
			})
		}
		if err := infraconfig.ValidateRequired("cache.redis.url", c.Cache.Redis.URL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	cfg.Logging.SetDefaults()
	setClassificationDefaults(&cfg.Classification)
	setLanguageDefaults(&cfg.Language)
	setSentimentDefaults(&cfg.Sentiment)
	setCacheDefaults(&cfg.Cache)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.MaxUploadBytes == 0 {
		s.MaxUploadBytes = defaultMaxUploadBytes
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownTimeout
	}
}

func setClassificationDefaults(c *ClassificationConfig) {
	if c.KeywordWeight == 0 {
		c.KeywordWeight = defaultKeywordWeight
	}
	if c.PhraseWeight == 0 {
		c.PhraseWeight = defaultPhraseWeight
	}
	if c.MinScore == 0 {
		c.MinScore = defaultMinScore
	}
	if c.HighConfidenceScore == 0 {
		c.HighConfidenceScore = defaultHighConfidence
	}
	if c.StrongRuleScore == 0 {
		c.StrongRuleScore = defaultStrongRuleScore
	}
}

func setLanguageDefaults(l *LanguageConfig) {
	if l.ShortTextWords == 0 {
		l.ShortTextWords = defaultShortTextWords
	}
	if l.MinIndicatorHits == 0 {
		l.MinIndicatorHits = defaultMinIndicatorHits
	}
}

func setSentimentDefaults(s *SentimentConfig) {
	if s.URL == "" {
		s.URL = defaultSentimentURL
	}
	if s.Timeout == 0 {
		s.Timeout = defaultSentimentTimeout
	}
	if s.MaxAttempts == 0 {
		s.MaxAttempts = defaultSentimentRetries
	}
	if s.RetryDelay == 0 {
		s.RetryDelay = defaultRetryDelay
	}
	if s.MaxInputChars == 0 {
		s.MaxInputChars = defaultMaxInputChars
	}
	if s.RateLimit == 0 {
		s.RateLimit = defaultRateLimit
	}
	if s.BreakerFailures == 0 {
		s.BreakerFailures = defaultBreakerFailures
	}
	if s.BreakerTimeout == 0 {
		s.BreakerTimeout = defaultBreakerTimeout
	}
}

func setCacheDefaults(c *CacheConfig) {
	c.Redis.SetDefaults()
	if c.TTL == 0 {
		c.TTL = defaultCacheTTL
	}
}
