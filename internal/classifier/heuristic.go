package classifier

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
)

// Markers counted by the fallback when no rule reaches the minimum score.
// Each pattern contributes its number of non-overlapping matches.
var (
	productiveMarkers = compileAll(
		`\?`, `solicit`, `precis`, `dúvid`, `problem`, `ajud`,
		`inform`, `requer`, `contato`, `urgente`, `prazo`,
	)
	unproductiveMarkers = compileAll(
		`olá|oi\b`, `bom dia|boa tarde|boa noite`, `tudo bem`,
		`abraço`, `saudações`, `obrigad`, `parabéns`,
	)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

func countMarkers(markers []*regexp.Regexp, lower string) int {
	total := 0
	for _, re := range markers {
		total += len(re.FindAllStringIndex(lower, -1))
	}
	return total
}

// fallback picks general_productive when productive markers strictly outnumber
// unproductive ones; ties go to the unproductive side.
func (e *RuleEngine) fallback(lower string) (domain.Category, domain.PatternType, domain.Priority) {
	if countMarkers(productiveMarkers, lower) > countMarkers(unproductiveMarkers, lower) {
		return domain.CategoryProductive, domain.PatternGeneralProductive, domain.PriorityMedium
	}

	if !e.cfg.DisambiguateUnproductive {
		return domain.CategoryUnproductive, domain.PatternGeneralUnproductive, domain.PriorityLow
	}

	for _, id := range []domain.PatternType{domain.PatternGreetings, domain.PatternGratitude} {
		if e.anyKeyword(id, lower) {
			return domain.CategoryUnproductive, id, domain.PriorityLow
		}
	}
	return domain.CategoryUnproductive, domain.PatternIrrelevant, domain.PriorityLow
}

func (e *RuleEngine) anyKeyword(id domain.PatternType, lower string) bool {
	for i := range e.rules {
		if e.rules[i].rule.ID != id {
			continue
		}
		for _, kw := range e.rules[i].keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
