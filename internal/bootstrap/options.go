package bootstrap

import (
	"fmt"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/config"
)

// Options carries the global command-line flags.
type Options struct {
	// ConfigPath overrides CONFIG_PATH and ./config.yml.
	ConfigPath string
	// Debug forces debug logging and gin debug mode.
	Debug bool
	// Console sends human-readable logs to stderr so stdout stays machine-readable.
	Console bool
}

// Setup loads configuration and creates the logger for a command.
func Setup(opts Options) (*config.Config, infralogger.Logger, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}

	if !opts.Console {
		logger, logErr := CreateLogger(cfg)
		if logErr != nil {
			return nil, nil, logErr
		}
		return cfg, logger, nil
	}

	logger, err := infralogger.New(infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      infralogger.FormatConsole,
		Development: cfg.Service.Debug,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
