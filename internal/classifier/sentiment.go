package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/textnorm"
)

// Normalized sentiment labels.
const (
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentPositive = "positive"
)

const (
	// DefaultSentimentMaxChars is how much of the email is sent to the sentiment service.
	DefaultSentimentMaxChars = 500

	sentimentHighScore   = 0.8
	sentimentMediumScore = 0.5
)

// SentimentClassifier is the external sentiment service as seen by the combiner.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (*domain.SentimentResult, error)
}

// CallWithCharLimit truncates text to maxChars characters and calls the given classify function.
func CallWithCharLimit[T any](
	ctx context.Context,
	text string,
	maxChars int,
	call func(context.Context, string) (*T, error),
) (*T, error) {
	return call(ctx, textnorm.Truncate(text, maxChars))
}

// sentimentGuess is a full category assignment derived from a sentiment label.
type sentimentGuess struct {
	category    domain.Category
	patternType domain.PatternType
	priority    domain.Priority
	confidence  domain.Confidence
}

var (
	technicalMarkers = []string{"erro", "problema", "falha", "não funciona", "acesso", "sistema", "bug", "senha"}
	gratitudeMarkers = []string{"obrigad", "agradeç", "grato", "grata", "valeu"}
	requestMarkers   = []string{"?", "solicit", "precis", "gostaria", "poderia", "favor", "informar", "dúvida"}
)

// guessFromSentiment maps a sentiment label onto a category.
// Negative mail reads as a complaint or a chase, positive mail as thanks or greetings,
// and neutral mail is productive only when it asks for something.
// Unknown labels yield nil.
func guessFromSentiment(res *domain.SentimentResult, lower string) *sentimentGuess {
	switch res.Label {
	case SentimentNegative:
		pattern := domain.PatternStatusRequest
		if containsAny(lower, technicalMarkers) {
			pattern = domain.PatternTechnicalSupport
		}
		return &sentimentGuess{
			category:    domain.CategoryProductive,
			patternType: pattern,
			priority:    domain.PriorityHigh,
			confidence:  sentimentConfidence(res.Score),
		}
	case SentimentPositive:
		pattern := domain.PatternGreetings
		if containsAny(lower, gratitudeMarkers) {
			pattern = domain.PatternGratitude
		}
		return &sentimentGuess{
			category:    domain.CategoryUnproductive,
			patternType: pattern,
			priority:    domain.PriorityLow,
			confidence:  sentimentConfidence(res.Score),
		}
	case SentimentNeutral:
		if containsAny(lower, requestMarkers) {
			return &sentimentGuess{
				category:    domain.CategoryProductive,
				patternType: domain.PatternGeneralProductive,
				priority:    domain.PriorityMedium,
				confidence:  domain.ConfidenceMedium,
			}
		}
		return &sentimentGuess{
			category:    domain.CategoryUnproductive,
			patternType: domain.PatternGeneralUnproductive,
			priority:    domain.PriorityLow,
			confidence:  domain.ConfidenceLow,
		}
	default:
		return nil
	}
}

func sentimentConfidence(score float64) domain.Confidence {
	switch {
	case score >= sentimentHighScore:
		return domain.ConfidenceHigh
	case score >= sentimentMediumScore:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// HybridCombiner merges a rule verdict with an external sentiment guess.
// Any sentiment failure degrades to the rule verdict; Combine never fails.
type HybridCombiner struct {
	client          SentimentClassifier
	strongRuleScore int
	maxChars        int
	logger          infralogger.Logger
}

// NewHybridCombiner creates a combiner. Non-positive limits take the defaults.
func NewHybridCombiner(client SentimentClassifier, strongRuleScore, maxChars int, logger infralogger.Logger) *HybridCombiner {
	if strongRuleScore <= 0 {
		strongRuleScore = DefaultStrongRuleScore
	}
	if maxChars <= 0 {
		maxChars = DefaultSentimentMaxChars
	}
	return &HybridCombiner{
		client:          client,
		strongRuleScore: strongRuleScore,
		maxChars:        maxChars,
		logger:          logger,
	}
}

// Combine asks the sentiment service about text and reconciles its answer with rule.
func (h *HybridCombiner) Combine(ctx context.Context, text string, rule *RuleResult) domain.Verdict {
	start := time.Now()
	res, err := CallWithCharLimit(ctx, text, h.maxChars, h.client.Classify)
	if err != nil {
		h.logSentimentError(err, time.Since(start))
		res = nil
	}

	var guess *sentimentGuess
	if res != nil {
		guess = guessFromSentiment(res, strings.ToLower(text))
		if guess == nil {
			h.logger.Warn("Unrecognised sentiment label", infralogger.String("label", res.Label))
		}
	}

	verdict := h.applyDecisionLogic(rule, res, guess)
	h.logger.Debug("Hybrid decision",
		infralogger.String("decision_path", verdict.Method),
		infralogger.String("pattern_type", string(verdict.PatternType)),
		infralogger.Int("rule_max_score", rule.MaxScore),
		infralogger.Int64("latency_ms", time.Since(start).Milliseconds()),
	)
	return verdict
}

// applyDecisionLogic implements the hybrid decision matrix:
//
//	no usable sentiment            -> rules, Medium confidence
//	categories agree               -> sentiment pattern, max priority, High confidence
//	disagree, rule score >= strong -> rules, Medium confidence
//	disagree otherwise             -> sentiment guess
func (h *HybridCombiner) applyDecisionLogic(rule *RuleResult, res *domain.SentimentResult, guess *sentimentGuess) domain.Verdict {
	verdict := verdictFromRule(rule)

	switch {
	case guess == nil:
		verdict.Confidence = domain.ConfidenceMedium
		verdict.Method = domain.MethodRulesOnly
		verdict.Reasoning = "Análise de sentimento indisponível; classificação apenas por regras."
		return verdict

	case guess.category == rule.Category:
		verdict.PatternType = guess.patternType
		verdict.Priority = domain.MaxPriority(rule.Priority, guess.priority)
		verdict.Confidence = domain.ConfidenceHigh
		verdict.Method = domain.MethodBothAgree
		verdict.Reasoning = fmt.Sprintf("Regras e sentimento (%s, %.2f) concordam na categoria %s.",
			res.Label, res.Score, rule.Category)

	case rule.MaxScore >= h.strongRuleScore:
		verdict.Confidence = domain.ConfidenceMedium
		verdict.Method = domain.MethodRuleOverride
		verdict.Reasoning = fmt.Sprintf("Sentimento (%s, %.2f) discorda, mas a pontuação das regras (%d) é forte.",
			res.Label, res.Score, rule.MaxScore)

	default:
		verdict.Category = guess.category
		verdict.PatternType = guess.patternType
		verdict.Priority = guess.priority
		verdict.Confidence = guess.confidence
		verdict.Method = domain.MethodSentimentOverride
		verdict.Reasoning = fmt.Sprintf("Pontuação das regras (%d) fraca; prevaleceu o sentimento (%s, %.2f).",
			rule.MaxScore, res.Label, res.Score)
	}

	verdict.Sentiment = res
	return verdict
}

func verdictFromRule(rule *RuleResult) domain.Verdict {
	return domain.Verdict{
		Category:     rule.Category,
		PatternType:  rule.PatternType,
		Priority:     rule.Priority,
		Confidence:   rule.Confidence,
		Scores:       rule.Scores,
		Method:       rule.Method,
		MatchedTerms: rule.MatchedTerms,
	}
}
