package responses_test

import (
	"strings"
	"testing"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/responses"
)

func TestGenerate_EveryPatternTypeHasTemplate(t *testing.T) {
	t.Parallel()

	types := []domain.PatternType{
		domain.PatternStatusRequest, domain.PatternDocumentSharing, domain.PatternTechnicalSupport,
		domain.PatternFinancialInquiry, domain.PatternCaseFollowUp, domain.PatternGreetings,
		domain.PatternGratitude, domain.PatternSocialChat, domain.PatternGeneralProductive,
		domain.PatternGeneralUnproductive, domain.PatternIrrelevant, domain.PatternEmptyContent,
		domain.PatternLanguageError,
	}

	for _, pt := range types {
		if !responses.Known(pt) {
			t.Errorf("no template for %q", pt)
			continue
		}
		resp := responses.Generate(pt, domain.PriorityLow)
		if resp.Subject == "" || resp.Body == "" {
			t.Errorf("%q: empty subject or body", pt)
		}
	}
}

func TestGenerate_UnknownFallsBackToGeneralProductive(t *testing.T) {
	t.Parallel()

	got := responses.Generate("no_such_type", domain.PriorityMedium)
	want := responses.Generate(domain.PatternGeneralProductive, domain.PriorityMedium)

	if got != want {
		t.Errorf("Generate(unknown) = %+v, want general_productive template", got)
	}
}

func TestGenerate_HighPriorityBanner(t *testing.T) {
	t.Parallel()

	high := responses.Generate(domain.PatternStatusRequest, domain.PriorityHigh)
	medium := responses.Generate(domain.PatternStatusRequest, domain.PriorityMedium)

	if !strings.HasSuffix(high.Body, responses.HighPriorityBanner) {
		t.Error("expected banner at the end of a High priority body")
	}
	if strings.Contains(medium.Body, "ALTA PRIORIDADE") {
		t.Error("banner must not appear below High priority")
	}
	if high.Body != medium.Body+responses.HighPriorityBanner {
		t.Error("banner should be the only difference")
	}
	if high.Subject != "Re: Atualização de Status - Solicitação em Andamento" {
		t.Errorf("subject = %q", high.Subject)
	}
}
