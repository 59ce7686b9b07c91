package logger_test

import (
	"context"
	"testing"

	"github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	base := newStderrLogger(t)
	enriched := base.With(logger.String("request_id", "req-42"))

	ctx := logger.WithContext(context.Background(), enriched)
	if got := logger.FromContext(ctx); got != enriched {
		t.Error("FromContext did not return the logger stored by WithContext")
	}
}

func TestFromContext_LaterValueWins(t *testing.T) {
	t.Parallel()

	first := newStderrLogger(t)
	second := newStderrLogger(t)

	ctx := logger.WithContext(context.Background(), first)
	ctx = logger.WithContext(ctx, second)

	if got := logger.FromContext(ctx); got != second {
		t.Error("FromContext returned the shadowed logger")
	}
}

func TestFromContext_FallbackIsSharedAndUsable(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())
	if a == nil || b == nil {
		t.Fatal("fallback logger is nil")
	}
	if a != b {
		t.Error("fallback logger is not shared between calls")
	}

	a.Info("filtered at warn level")
	a.Warn("fallback warning", logger.String("key", "value"))
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Format: logger.FormatConsole, OutputPaths: []string{"stderr"}})
	if err != nil {
		t.Fatalf("New(console) error = %v", err)
	}
	l.Debug("console logger works")
}

func newStderrLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{"stderr"}})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return l
}
