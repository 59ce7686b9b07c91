package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "none.env"))

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "email-classifier", cfg.Service.Name)
	assert.Equal(t, "2.0.0", cfg.Service.Version)
	assert.Equal(t, 5000, cfg.Service.Port)
	assert.Equal(t, int64(16<<20), cfg.Service.MaxUploadBytes)
	assert.Equal(t, 3, cfg.Classification.KeywordWeight)
	assert.Equal(t, 8, cfg.Classification.PhraseWeight)
	assert.Equal(t, 10, cfg.Classification.StrongRuleScore)
	assert.Equal(t, 5, cfg.Language.ShortTextWords)
	assert.False(t, cfg.Sentiment.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Sentiment.Timeout)
	assert.Equal(t, 2, cfg.Sentiment.MaxAttempts)
	assert.Equal(t, 500, cfg.Sentiment.MaxInputChars)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "none.env"))

	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
service:
  port: 8099
classification:
  keyword_weight: 4
  disambiguate_unproductive: true
sentiment:
  enabled: true
  max_attempts: 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("EMAIL_CLASSIFIER_PORT", "7001")
	t.Setenv("HF_API_TOKEN", "hf_secret")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Service.Port, "env overrides file")
	assert.Equal(t, 4, cfg.Classification.KeywordWeight)
	assert.True(t, cfg.Classification.DisambiguateUnproductive)
	assert.True(t, cfg.Sentiment.Enabled)
	assert.Equal(t, 3, cfg.Sentiment.MaxAttempts)
	assert.Equal(t, "hf_secret", cfg.Sentiment.Token)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "bad port", mutate: func(c *config.Config) { c.Service.Port = 70000 }, wantErr: true},
		{name: "bad log level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: true},
		{
			name:    "strong score below minimum",
			mutate:  func(c *config.Config) { c.Classification.StrongRuleScore = 1 },
			wantErr: true,
		},
		{name: "cache without sentiment", mutate: func(c *config.Config) { c.Cache.Enabled = true }, wantErr: true},
		{
			name: "cache with sentiment",
			mutate: func(c *config.Config) {
				c.Sentiment.Enabled = true
				c.Cache.Enabled = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
