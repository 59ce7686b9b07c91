package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// promauto registers globally, so the whole test binary shares one provider.
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider.Tracer == nil || provider.Metrics == nil || provider.HTTP == nil {
		t.Fatal("provider missing tracer or metrics")
	}
}

func TestRecordClassification(t *testing.T) {
	provider := getTestProvider(t)

	before := testutil.ToFloat64(provider.Metrics.EmailsClassified.WithLabelValues("Produtivo", "status_request", "rules"))
	provider.RecordClassification(context.Background(), "Produtivo", "status_request", "rules", 3*time.Millisecond)
	after := testutil.ToFloat64(provider.Metrics.EmailsClassified.WithLabelValues("Produtivo", "status_request", "rules"))

	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestRecordSentimentAndRejections(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	before := testutil.ToFloat64(provider.Metrics.SentimentRequests.WithLabelValues(telemetry.SentimentOutcomeCacheHit))
	provider.RecordSentiment(ctx, telemetry.SentimentOutcomeCacheHit, 0)
	provider.RecordSentiment(ctx, telemetry.SentimentOutcomeSuccess, 120*time.Millisecond)
	provider.RecordLanguageRejection(ctx)
	provider.RecordInputRejection(ctx, "too_short")
	provider.RecordRuleMatch(ctx, 40*time.Microsecond)

	if got := testutil.ToFloat64(provider.Metrics.SentimentRequests.WithLabelValues(telemetry.SentimentOutcomeCacheHit)) - before; got != 1 {
		t.Errorf("cache hit delta = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	provider := getTestProvider(t)
	provider.RecordLanguageRejection(context.Background())

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if !strings.Contains(w.Body.String(), "email_classifier_language_rejections_total") {
		t.Error("metrics output missing language rejection counter")
	}
}

func TestStartSpan(t *testing.T) {
	provider := getTestProvider(t)

	ctx, span := provider.StartSpan(context.Background(), "test-span")
	defer span.End()

	if ctx == nil {
		t.Fatal("StartSpan returned nil context")
	}
}
