package bootstrap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/config"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/sentimentclient"
)

const supportEmail = "Bom dia, o sistema apresenta erro ao fazer login e preciso de suporte técnico urgente. Obrigado."

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewComponents_RulesOnly(t *testing.T) {
	comps, err := bootstrap.NewComponents(config.Default(), infralogger.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = comps.Close() })

	assert.Nil(t, comps.Sentiment)
	assert.Nil(t, comps.Redis)
	assert.False(t, comps.Classifier.HybridEnabled())
	assert.Contains(t, comps.EmailTypes(), string(domain.PatternTechnicalSupport))

	analysis, err := comps.Classifier.Classify(context.Background(), supportEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryProductive, analysis.Verdict.Category)
	assert.Equal(t, domain.PatternTechnicalSupport, analysis.Verdict.PatternType)
}

func TestNewComponents_SentimentWithCache(t *testing.T) {
	mr := miniredis.RunT(t)

	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[{"label":"negative","score":0.91},{"label":"neutral","score":0.06}]]`))
	}))
	t.Cleanup(model.Close)

	cfg := config.Default()
	cfg.Sentiment.Enabled = true
	cfg.Sentiment.URL = model.URL
	cfg.Cache.Enabled = true
	cfg.Cache.Redis.URL = mr.Addr()

	comps, err := bootstrap.NewComponents(cfg, infralogger.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = comps.Close() })

	require.NotNil(t, comps.Sentiment)
	require.NotNil(t, comps.Redis)
	assert.True(t, comps.Classifier.HybridEnabled())

	analysis, err := comps.Classifier.Classify(context.Background(), supportEmail)
	require.NoError(t, err)
	require.NotNil(t, analysis.Verdict.Sentiment)
	assert.Equal(t, sentimentclient.SentimentNegative, analysis.Verdict.Sentiment.Label)
	assert.Equal(t, domain.CategoryProductive, analysis.Verdict.Category)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "email-classifier:sentiment:"))
}

func TestNewComponents_CacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Sentiment.Enabled = true
	cfg.Cache.Enabled = true
	cfg.Cache.Redis.URL = addr

	_, err := bootstrap.NewComponents(cfg, infralogger.NewNop(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentiment cache")
}

func TestNewServer_Routes(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Sentiment.Enabled = true
	cfg.Sentiment.URL = "http://127.0.0.1:1"
	cfg.Cache.Enabled = true
	cfg.Cache.Redis.URL = mr.Addr()

	comps, err := bootstrap.NewComponents(cfg, infralogger.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = comps.Close() })

	router := bootstrap.NewServer(comps).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Checks map[string]struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Checks["sentiment"].Status)
	assert.Equal(t, "circuit closed, 0 consecutive failures", health.Checks["sentiment"].Message)
	assert.Equal(t, "healthy", health.Checks["redis"].Status)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		EmailTypes       []string `json:"email_types"`
		SentimentEnabled bool     `json:"sentiment_enabled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, comps.EmailTypes(), stats.EmailTypes)
	assert.True(t, stats.SentimentEnabled)
}

func TestNewServer_SentimentDegradedWhenCircuitOpen(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(model.Close)

	cfg := config.Default()
	cfg.Sentiment.Enabled = true
	cfg.Sentiment.URL = model.URL
	cfg.Sentiment.BreakerFailures = 1

	comps, err := bootstrap.NewComponents(cfg, infralogger.NewNop(), nil)
	require.NoError(t, err)

	analysis, err := comps.Classifier.Classify(context.Background(), supportEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodRulesOnly, analysis.Verdict.Method)

	router := bootstrap.NewServer(comps).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var health struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "degraded", health.Checks["sentiment"].Status)
	assert.Contains(t, health.Checks["sentiment"].Message, "circuit open since")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "none.env"))

	cfg, err := bootstrap.LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Service.Port, cfg.Service.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "none.env"))

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  enabled: true\n"), 0o600))

	_, err := bootstrap.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestCreateLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	logger, err := bootstrap.CreateLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
