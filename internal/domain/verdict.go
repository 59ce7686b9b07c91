package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Classification methods recorded on a verdict.
const (
	MethodRules             = "rules"
	MethodHeuristic         = "heuristic"
	MethodLanguageGate      = "language_gate"
	MethodEmptyContent      = "empty_content"
	MethodBothAgree         = "both_agree"
	MethodRuleOverride      = "rule_override"
	MethodRulesOnly         = "rules_only"
	MethodSentimentOverride = "sentiment_override"
)

// RuleScore is the accumulated score of one rule.
type RuleScore struct {
	Rule  PatternType
	Score int
}

// Scores holds one entry per rule in rule-table order. It marshals to a JSON object whose
// keys keep that order.
type Scores []RuleScore

// Max returns the highest score, or 0 when empty.
func (s Scores) Max() int {
	best := 0
	for _, rs := range s {
		if rs.Score > best {
			best = rs.Score
		}
	}
	return best
}

// Matched counts rules with a positive score.
func (s Scores) Matched() int {
	n := 0
	for _, rs := range s {
		if rs.Score > 0 {
			n++
		}
	}
	return n
}

// Get returns the score for rule, or 0 when absent.
func (s Scores) Get(rule PatternType) int {
	for _, rs := range s {
		if rs.Rule == rule {
			return rs.Score
		}
	}
	return 0
}

// MarshalJSON writes Scores as an object keyed by rule identifier.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rs := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(rs.Rule))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(rs.Score))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SentimentResult is the top label returned by the external sentiment service.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Verdict is the outcome of classifying one email.
type Verdict struct {
	Category    Category    `json:"category"`
	PatternType PatternType `json:"pattern_type"`
	Priority    Priority    `json:"priority"`
	Confidence  Confidence  `json:"confidence"`
	Scores      Scores      `json:"confidence_scores"`
	Method      string      `json:"method"`

	// MatchedTerms lists the keywords and phrases that scored, in rule order.
	MatchedTerms []string `json:"matched_terms,omitempty"`

	// Set only when the sentiment stage ran.
	Sentiment *SentimentResult `json:"sentiment,omitempty"`
	Reasoning string           `json:"reasoning,omitempty"`

	// Message carries a client-facing note, e.g. for a rejected language.
	Message string `json:"message,omitempty"`
}

// SuggestedResponse is a reply template addressed to the sender.
type SuggestedResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Analysis bundles a verdict with the reply and the request measurements.
type Analysis struct {
	Verdict        Verdict
	Response       SuggestedResponse
	WordCount      int
	NormalizedText string
	ProcessingTime time.Duration
}
