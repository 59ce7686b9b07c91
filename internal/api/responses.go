package api

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
)

const (
	detailsMethod    = "NLP Pattern Matching"
	detailsAlgorithm = "Financial Domain Specific Rules"

	// languageErrorProcessingTime is reported for rejected languages, which skip scoring.
	languageErrorProcessingTime = 0.1

	millisPerSecond = 1000
)

// AnalyzeRequest is the JSON body of POST /analyze.
type AnalyzeRequest struct {
	EmailText string `json:"email_text" form:"email_text"`
}

// SuggestedResponse is the reply template returned to the client.
type SuggestedResponse struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Priority string `json:"priority,omitempty"`
}

// ClassificationDetails describes how the verdict was reached.
type ClassificationDetails struct {
	Method          string   `json:"method"`
	Algorithm       string   `json:"algorithm"`
	PatternsMatched int      `json:"patterns_matched"`
	MatchedTerms    []string `json:"matched_terms,omitempty"`
	DecisionPath    string   `json:"decision_path"`
}

// AnalyzeResponse is the body returned by POST /analyze.
type AnalyzeResponse struct {
	Category              string                  `json:"category"`
	EmailType             string                  `json:"email_type"`
	Priority              string                  `json:"priority"`
	Confidence            string                  `json:"confidence"`
	ConfidenceScores      domain.Scores           `json:"confidence_scores,omitempty"`
	SuggestedResponse     SuggestedResponse       `json:"suggested_response"`
	ProcessingTime        float64                 `json:"processing_time"`
	WordCount             int                     `json:"word_count"`
	ClassificationDetails *ClassificationDetails  `json:"classification_details,omitempty"`
	Message               string                  `json:"message,omitempty"`
	Sentiment             *domain.SentimentResult `json:"sentiment,omitempty"`
	Reasoning             string                  `json:"reasoning,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	SupportedFormats      []string `json:"supported_formats"`
	MaxFileSize           string   `json:"max_file_size"`
	Categories            []string `json:"categories"`
	EmailTypes            []string `json:"email_types"`
	PriorityLevels        []string `json:"priority_levels"`
	AverageProcessingTime string   `json:"average_processing_time"`
	NLPFeatures           []string `json:"nlp_features"`
	SentimentEnabled      bool     `json:"sentiment_enabled"`
}

// NewAnalyzeResponse shapes an analysis for the wire. Rejected languages keep the raw
// identifiers and carry the explanatory message instead of scores.
func NewAnalyzeResponse(a *domain.Analysis) AnalyzeResponse {
	v := a.Verdict

	if v.PatternType == domain.PatternLanguageError {
		return AnalyzeResponse{
			Category:   string(v.Category),
			EmailType:  string(v.PatternType),
			Priority:   v.Priority.String(),
			Confidence: v.Confidence.String(),
			SuggestedResponse: SuggestedResponse{
				Subject:  a.Response.Subject,
				Body:     a.Response.Body,
				Priority: v.Priority.String(),
			},
			ProcessingTime: languageErrorProcessingTime,
			WordCount:      a.WordCount,
			Message:        v.Message,
		}
	}

	return AnalyzeResponse{
		Category:         string(v.Category),
		EmailType:        titleCase(strings.ReplaceAll(string(v.PatternType), "_", " ")),
		Priority:         titleCase(v.Priority.String()),
		Confidence:       v.Confidence.String(),
		ConfidenceScores: v.Scores,
		SuggestedResponse: SuggestedResponse{
			Subject: a.Response.Subject,
			Body:    a.Response.Body,
		},
		ProcessingTime: roundMillis(a.ProcessingTime.Seconds()),
		WordCount:      a.WordCount,
		ClassificationDetails: &ClassificationDetails{
			Method:          detailsMethod,
			Algorithm:       detailsAlgorithm,
			PatternsMatched: v.Scores.Matched(),
			MatchedTerms:    v.MatchedTerms,
			DecisionPath:    v.Method,
		},
		Message:   v.Message,
		Sentiment: v.Sentiment,
		Reasoning: v.Reasoning,
	}
}

// titleCase builds a fresh Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

func roundMillis(seconds float64) float64 {
	return math.Round(seconds*millisPerSecond) / millisPerSecond
}
