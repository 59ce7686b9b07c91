// Package responses holds the reply templates sent back for each pattern type.
package responses

import "github.com/jonesrussell/north-cloud/email-classifier/internal/domain"

// HighPriorityBanner is appended to the body of every High priority reply.
const HighPriorityBanner = "\n\n⚠️ ATENÇÃO: Esta solicitação foi classificada como ALTA PRIORIDADE e receberá tratamento diferenciado."

// Generate returns the reply for patternType. Unknown pattern types get the
// general_productive template.
func Generate(patternType domain.PatternType, priority domain.Priority) domain.SuggestedResponse {
	tmpl, ok := catalog[patternType]
	if !ok {
		tmpl = catalog[domain.PatternGeneralProductive]
	}

	body := tmpl.body
	if priority == domain.PriorityHigh {
		body += HighPriorityBanner
	}

	return domain.SuggestedResponse{Subject: tmpl.subject, Body: body}
}

// Known reports whether patternType has its own template.
func Known(patternType domain.PatternType) bool {
	_, ok := catalog[patternType]
	return ok
}
