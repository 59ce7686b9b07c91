package classifier

import (
	"context"
	"time"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/responses"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/telemetry"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/textnorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// LanguageGate decides whether a text is classified at all.
type LanguageGate interface {
	IsPortuguese(text string) bool
}

// Combiner refines a rule verdict. Implementations must not fail.
type Combiner interface {
	Combine(ctx context.Context, text string, rule *RuleResult) domain.Verdict
}

// Classifier runs the full pipeline: language gate, rule scoring, optional
// combination and reply selection.
type Classifier struct {
	gate      LanguageGate
	engine    *RuleEngine
	combiner  Combiner
	telemetry *telemetry.Provider
	logger    infralogger.Logger
}

// Config holds the pipeline collaborators. Combiner and Telemetry are optional.
type Config struct {
	Gate      LanguageGate
	Engine    *RuleEngine
	Combiner  Combiner
	Telemetry *telemetry.Provider
}

// NewClassifier creates a new pipeline.
func NewClassifier(logger infralogger.Logger, cfg Config) *Classifier {
	return &Classifier{
		gate:      cfg.Gate,
		engine:    cfg.Engine,
		combiner:  cfg.Combiner,
		telemetry: cfg.Telemetry,
		logger:    logger,
	}
}

// Engine returns the rule engine the pipeline scores with.
func (c *Classifier) Engine() *RuleEngine {
	return c.engine
}

// HybridEnabled reports whether the sentiment stage is configured.
func (c *Classifier) HybridEnabled() bool {
	return c.combiner != nil
}

// Classify classifies one email. The only error is domain.ErrTextTooShort for texts
// under three characters; a rejected language is a verdict, not an error.
func (c *Classifier) Classify(ctx context.Context, text string) (*domain.Analysis, error) {
	start := time.Now()

	if textnorm.RuneLen(text) < minTextRunes {
		c.recordInputRejection(ctx, "too_short")
		return nil, domain.ErrTextTooShort
	}

	ctx, span := c.startSpan(ctx, "classifier.classify",
		attribute.Int("text.runes", textnorm.RuneLen(text)))
	defer span.End()

	c.logger.Debug("Classifying email", infralogger.Int("word_count", textnorm.WordCount(text)))

	var verdict domain.Verdict
	if !c.gate.IsPortuguese(text) {
		verdict = languageErrorVerdict()
		if c.telemetry != nil {
			c.telemetry.RecordLanguageRejection(ctx)
		}
	} else {
		verdict = c.score(ctx, text)
	}

	analysis := &domain.Analysis{
		Verdict:        verdict,
		Response:       responses.Generate(verdict.PatternType, verdict.Priority),
		WordCount:      textnorm.WordCount(text),
		NormalizedText: textnorm.Normalize(text),
		ProcessingTime: time.Since(start),
	}

	span.SetAttributes(
		attribute.String("verdict.category", string(verdict.Category)),
		attribute.String("verdict.pattern_type", string(verdict.PatternType)),
		attribute.String("verdict.method", verdict.Method),
	)
	if c.telemetry != nil {
		c.telemetry.RecordClassification(ctx, string(verdict.Category), string(verdict.PatternType),
			verdict.Method, analysis.ProcessingTime)
	}
	c.logVerdict(analysis)

	return analysis, nil
}

func (c *Classifier) score(ctx context.Context, text string) domain.Verdict {
	scoreCtx, span := c.startSpan(ctx, "classifier.rules")
	rule := c.engine.Score(scoreCtx, text)
	span.SetAttributes(attribute.Int("rules.max_score", rule.MaxScore))
	span.End()

	if c.combiner == nil || rule.PatternType == domain.PatternEmptyContent {
		return verdictFromRule(rule)
	}

	hybridCtx, hybridSpan := c.startSpan(ctx, "classifier.sentiment")
	defer hybridSpan.End()
	return c.combiner.Combine(hybridCtx, text, rule)
}

func languageErrorVerdict() domain.Verdict {
	return domain.Verdict{
		Category:    domain.CategoryUnproductive,
		PatternType: domain.PatternLanguageError,
		Priority:    domain.PriorityLow,
		Confidence:  domain.ConfidenceHigh,
		Method:      domain.MethodLanguageGate,
		Message:     domain.MsgLanguageRejected,
	}
}

func (c *Classifier) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if c.telemetry == nil {
		return ctx, noop.Span{}
	}
	return c.telemetry.StartSpan(ctx, name, attrs...)
}

func (c *Classifier) recordInputRejection(ctx context.Context, reason string) {
	if c.telemetry != nil {
		c.telemetry.RecordInputRejection(ctx, reason)
	}
}
