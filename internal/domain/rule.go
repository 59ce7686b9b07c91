package domain

// PatternType identifies the intent a verdict was attributed to. Rule identifiers and
// the synthetic fallback types share this space so the response catalog is keyed by one type.
type PatternType string

// Rule pattern types, in rule-table order.
const (
	PatternStatusRequest    PatternType = "status_request"
	PatternDocumentSharing  PatternType = "document_sharing"
	PatternTechnicalSupport PatternType = "technical_support"
	PatternFinancialInquiry PatternType = "financial_inquiry"
	PatternCaseFollowUp     PatternType = "case_follow_up"
	PatternGreetings        PatternType = "greetings"
	PatternGratitude        PatternType = "gratitude"
	PatternSocialChat       PatternType = "social_chat"
)

// Synthetic pattern types produced when no rule wins or the input is rejected.
const (
	PatternGeneralProductive   PatternType = "general_productive"
	PatternGeneralUnproductive PatternType = "general_unproductive"
	PatternIrrelevant          PatternType = "irrelevant"
	PatternEmptyContent        PatternType = "empty_content"
	PatternLanguageError       PatternType = "language_error"
)

// Category is the binary triage outcome.
type Category string

const (
	CategoryProductive   Category = "Produtivo"
	CategoryUnproductive Category = "Improdutivo"
)

// Priority orders verdicts by urgency. The zero value is not a valid priority.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// String returns the lowercase wire label (baixa, media, alta).
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "alta"
	case PriorityMedium:
		return "media"
	case PriorityLow:
		return "baixa"
	default:
		return "unknown"
	}
}

// MarshalText encodes the priority by its label.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// MaxPriority returns the more urgent of a and b.
func MaxPriority(a, b Priority) Priority {
	if a > b {
		return a
	}
	return b
}

// Confidence is a three-level label for how much a verdict should be trusted.
type Confidence int

const (
	ConfidenceLow Confidence = iota + 1
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the Portuguese label shown to clients.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "Alta"
	case ConfidenceMedium:
		return "Média"
	case ConfidenceLow:
		return "Baixa"
	default:
		return "Desconhecida"
	}
}

// MarshalText encodes the confidence by its label.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// PatternRule is one entry of the rule table. Keywords earn a weight per occurrence;
// phrases earn a flat weight once present.
type PatternRule struct {
	ID       PatternType `json:"id"`
	Keywords []string    `json:"keywords"`
	Phrases  []string    `json:"phrases"`
	Category Category    `json:"category"`
	Priority Priority    `json:"priority"`
}
