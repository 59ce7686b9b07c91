// Package telemetry provides Prometheus metrics and OpenTelemetry tracing for the email classifier.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonesrussell/north-cloud/email-classifier/infrastructure/metrics"
)

const serviceName = "email-classifier"

// Sentiment call outcomes used as metric labels.
const (
	SentimentOutcomeSuccess     = "success"
	SentimentOutcomeError       = "error"
	SentimentOutcomeCacheHit    = "cache_hit"
	SentimentOutcomeCircuitOpen = "circuit_open"
)

// Metrics holds all classifier Prometheus metrics
type Metrics struct {
	EmailsClassified   *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram
	RuleMatchDuration  prometheus.Histogram
	LanguageRejections prometheus.Counter
	InputRejections    *prometheus.CounterVec

	SentimentRequests *prometheus.CounterVec
	SentimentDuration prometheus.Histogram
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
	HTTP    *metrics.HTTPMetrics
}

// NewProvider registers the metrics with the default Prometheus registry.
// Call it once per process.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
		HTTP:    metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, "email_classifier"),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.EmailsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "email_classifier_emails_classified_total",
		Help: "Emails classified, by category, pattern type and decision method",
	}, []string{"category", "pattern_type", "method"})

	m.ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "email_classifier_processing_duration_seconds",
		Help:    "Time to classify one email, including the sentiment call",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20},
	})

	m.RuleMatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "email_classifier_rule_match_duration_seconds",
		Help:    "Time spent scoring the rule table",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	m.LanguageRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "email_classifier_language_rejections_total",
		Help: "Emails rejected by the Portuguese language gate",
	})

	m.InputRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "email_classifier_input_rejections_total",
		Help: "Requests rejected before classification, by reason",
	}, []string{"reason"})

	m.SentimentRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "email_classifier_sentiment_requests_total",
		Help: "Sentiment service lookups, by outcome",
	}, []string{"outcome"})

	m.SentimentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "email_classifier_sentiment_duration_seconds",
		Help:    "Latency of sentiment service calls, retries included",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	})

	return m
}

// RecordClassification records one completed verdict.
func (p *Provider) RecordClassification(_ context.Context, category, patternType, method string, duration time.Duration) {
	p.Metrics.EmailsClassified.WithLabelValues(category, patternType, method).Inc()
	p.Metrics.ProcessingDuration.Observe(duration.Seconds())
}

// RecordRuleMatch records the time spent scoring rules.
func (p *Provider) RecordRuleMatch(_ context.Context, duration time.Duration) {
	p.Metrics.RuleMatchDuration.Observe(duration.Seconds())
}

// RecordLanguageRejection counts an email turned away by the language gate.
func (p *Provider) RecordLanguageRejection(_ context.Context) {
	p.Metrics.LanguageRejections.Inc()
}

// RecordInputRejection counts a request refused before classification.
func (p *Provider) RecordInputRejection(_ context.Context, reason string) {
	p.Metrics.InputRejections.WithLabelValues(reason).Inc()
}

// RecordSentiment records one sentiment lookup. Duration is ignored for cache hits
// and open-circuit short-circuits.
func (p *Provider) RecordSentiment(_ context.Context, outcome string, duration time.Duration) {
	p.Metrics.SentimentRequests.WithLabelValues(outcome).Inc()
	if outcome == SentimentOutcomeSuccess || outcome == SentimentOutcomeError {
		p.Metrics.SentimentDuration.Observe(duration.Seconds())
	}
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
