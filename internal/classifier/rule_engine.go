// Package classifier triages Portuguese business emails: rule scoring, heuristic fallback,
// the optional sentiment combination and the end-to-end pipeline.
package classifier

import (
	"context"
	"strings"
	"time"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/telemetry"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/textnorm"
	"golang.org/x/text/unicode/norm"
)

// minTextRunes is the shortest trimmed text that is scored at all.
const minTextRunes = 3

// RuleResult is the outcome of scoring one text against the rule table.
type RuleResult struct {
	Category    domain.Category
	PatternType domain.PatternType
	Priority    domain.Priority
	Confidence  domain.Confidence
	Scores      domain.Scores
	MaxScore    int
	// Method is rules, heuristic or empty_content.
	Method string
	// MatchedTerms lists the keywords and phrases that contributed, in rule order.
	MatchedTerms []string
}

// RuleEngine scores texts against an immutable rule table.
// It is safe for concurrent use.
type RuleEngine struct {
	cfg       ScoringConfig
	rules     []compiledRule
	telemetry *telemetry.Provider
	logger    infralogger.Logger
}

type compiledRule struct {
	rule     domain.PatternRule
	keywords []string
	phrases  []string
}

// NewRuleEngine compiles cfg. Zero weights take the defaults; tp may be nil.
func NewRuleEngine(cfg ScoringConfig, logger infralogger.Logger, tp *telemetry.Provider) *RuleEngine {
	cfg = cfg.withDefaults()

	compiled := make([]compiledRule, 0, len(cfg.Rules))
	terms := 0
	for _, r := range cfg.Rules {
		cr := compiledRule{
			rule:     r,
			keywords: lowerAll(r.Keywords),
			phrases:  lowerAll(r.Phrases),
		}
		terms += len(cr.keywords) + len(cr.phrases)
		compiled = append(compiled, cr)
	}

	if logger != nil {
		logger.Info("rule engine initialized",
			infralogger.Int("rules", len(compiled)),
			infralogger.Int("terms", terms),
			infralogger.Int("min_score", cfg.MinScore),
		)
	}

	return &RuleEngine{
		cfg:       cfg,
		rules:     compiled,
		telemetry: tp,
		logger:    logger,
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Config returns the scoring configuration the engine was built with.
func (e *RuleEngine) Config() ScoringConfig {
	return e.cfg
}

// Rules returns the rule table in definition order.
func (e *RuleEngine) Rules() []domain.PatternRule {
	out := make([]domain.PatternRule, len(e.rules))
	for i, cr := range e.rules {
		out[i] = cr.rule
	}
	return out
}

// Score assigns text to the best-scoring rule, or to the heuristic fallback when no rule
// reaches MinScore. Texts under three characters yield empty_content with no scores.
func (e *RuleEngine) Score(ctx context.Context, text string) *RuleResult {
	if textnorm.RuneLen(text) < minTextRunes {
		return &RuleResult{
			Category:    domain.CategoryUnproductive,
			PatternType: domain.PatternEmptyContent,
			Priority:    domain.PriorityLow,
			Confidence:  domain.ConfidenceLow,
			Method:      domain.MethodEmptyContent,
		}
	}

	start := time.Now()
	lower := norm.NFC.String(strings.ToLower(text))

	scores := make(domain.Scores, len(e.rules))
	var matched []string
	bestIdx, best := -1, 0

	for i := range e.rules {
		score, terms := e.scoreRule(lower, &e.rules[i])
		scores[i] = domain.RuleScore{Rule: e.rules[i].rule.ID, Score: score}
		matched = append(matched, terms...)

		// Strict comparison: the earlier rule keeps a tie.
		if score > best {
			best, bestIdx = score, i
		}
	}

	if e.telemetry != nil {
		e.telemetry.RecordRuleMatch(ctx, time.Since(start))
	}

	result := &RuleResult{
		Scores:       scores,
		MaxScore:     best,
		Confidence:   e.confidenceFor(best),
		MatchedTerms: matched,
	}

	if bestIdx >= 0 && best >= e.cfg.MinScore {
		winner := e.rules[bestIdx].rule
		result.Category = winner.Category
		result.PatternType = winner.ID
		result.Priority = winner.Priority
		result.Method = domain.MethodRules
		return result
	}

	result.Category, result.PatternType, result.Priority = e.fallback(lower)
	result.Method = domain.MethodHeuristic
	return result
}

// scoreRule adds KeywordWeight per non-overlapping keyword occurrence and PhraseWeight once
// per phrase present.
func (e *RuleEngine) scoreRule(lower string, cr *compiledRule) (int, []string) {
	score := 0
	var terms []string

	for _, kw := range cr.keywords {
		if n := strings.Count(lower, kw); n > 0 {
			score += n * e.cfg.KeywordWeight
			terms = append(terms, kw)
		}
	}
	for _, phrase := range cr.phrases {
		if strings.Contains(lower, phrase) {
			score += e.cfg.PhraseWeight
			terms = append(terms, phrase)
		}
	}

	return score, terms
}

func (e *RuleEngine) confidenceFor(maxScore int) domain.Confidence {
	switch {
	case maxScore >= e.cfg.HighConfidenceScore:
		return domain.ConfidenceHigh
	case maxScore >= e.cfg.MinScore:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// PatternsMatched counts rules with a positive score.
func (r *RuleResult) PatternsMatched() int {
	return r.Scores.Matched()
}
