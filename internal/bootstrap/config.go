// Package bootstrap wires configuration, logging and the classification
// pipeline for the email classifier commands.
package bootstrap

import (
	"fmt"

	infraconfig "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/config"
	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/config"
)

const (
	defaultConfigPath = "config.yml"
	serviceName       = "email-classifier"
)

// LoadConfig loads configuration from path, or from CONFIG_PATH / config.yml when path is empty.
// A missing file yields defaults; an invalid one is an error.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = infraconfig.GetConfigPath(defaultConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (infralogger.Logger, error) {
	logger, err := infralogger.New(infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger.With(infralogger.String("service", serviceName)), nil
}
