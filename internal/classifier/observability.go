package classifier

import (
	"errors"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/email-classifier/infrastructure/circuitbreaker"
	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
)

// classifyErrorType buckets a sentiment-service error for dashboard filtering.
func classifyErrorType(err error) string {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return "circuit_open"
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "deadline exceeded") || strings.Contains(lower, "timeout"):
		return "timeout"
	case strings.Contains(lower, "returned 5") || strings.Contains(lower, "loading"):
		return "5xx"
	case strings.Contains(lower, "returned 4"):
		return "4xx"
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "dial tcp") ||
		strings.Contains(lower, "no such host"):
		return "connection"
	case strings.Contains(lower, "decode") || strings.Contains(lower, "unmarshal") ||
		strings.Contains(lower, "eof"):
		return "decode"
	default:
		return "unknown"
	}
}

func (h *HybridCombiner) logSentimentError(err error, latency time.Duration) {
	h.logger.Warn("Sentiment classification failed, falling back to rules",
		infralogger.String("outcome", "error"),
		infralogger.String("error_type", classifyErrorType(err)),
		infralogger.String("error_detail", err.Error()),
		infralogger.Int64("latency_ms", latency.Milliseconds()),
	)
}

func (c *Classifier) logVerdict(v *domain.Analysis) {
	c.logger.Info("Email classified",
		infralogger.String("category", string(v.Verdict.Category)),
		infralogger.String("pattern_type", string(v.Verdict.PatternType)),
		infralogger.String("priority", v.Verdict.Priority.String()),
		infralogger.String("confidence", v.Verdict.Confidence.String()),
		infralogger.String("method", v.Verdict.Method),
		infralogger.Int("max_score", v.Verdict.Scores.Max()),
		infralogger.Int("word_count", v.WordCount),
		infralogger.Int64("processing_time_us", v.ProcessingTime.Microseconds()),
	)
}
