package classifier_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/classifier"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/responses"
)

type stubGate struct {
	accept bool
	calls  int
}

func (g *stubGate) IsPortuguese(string) bool {
	g.calls++
	return g.accept
}

type stubCombiner struct {
	calls int
}

func (c *stubCombiner) Combine(_ context.Context, _ string, rule *classifier.RuleResult) domain.Verdict {
	c.calls++
	return domain.Verdict{
		Category:    rule.Category,
		PatternType: rule.PatternType,
		Priority:    rule.Priority,
		Confidence:  domain.ConfidenceHigh,
		Scores:      rule.Scores,
		Method:      domain.MethodBothAgree,
	}
}

func newPipeline(gate classifier.LanguageGate, combiner classifier.Combiner) *classifier.Classifier {
	engine := classifier.NewRuleEngine(classifier.DefaultScoringConfig(), nil, nil)
	cfg := classifier.Config{Gate: gate, Engine: engine}
	if combiner != nil {
		cfg.Combiner = combiner
	}
	return classifier.NewClassifier(infralogger.NewNop(), cfg)
}

func TestClassifier_Classify_RuleVerdict(t *testing.T) {
	t.Parallel()

	c := newPipeline(&stubGate{accept: true}, nil)
	text := "Olá, qual o status do meu pedido?"

	got, err := c.Classify(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, domain.PatternStatusRequest, got.Verdict.PatternType)
	assert.Equal(t, domain.MethodRules, got.Verdict.Method)
	assert.Equal(t, 7, got.WordCount)
	assert.Equal(t, responses.Generate(domain.PatternStatusRequest, domain.PriorityHigh), got.Response)
	assert.True(t, strings.HasSuffix(got.Response.Body, responses.HighPriorityBanner))
	assert.NotEmpty(t, got.NormalizedText)
}

func TestClassifier_Classify_Idempotent(t *testing.T) {
	t.Parallel()

	c := newPipeline(&stubGate{accept: true}, nil)
	texts := []string{
		"Feliz Natal! Muito obrigado pela parceria.",
		"Qual o status da minha solicitação, protocolo 12345?",
		"Preciso de ajuda urgente?",
	}

	for _, text := range texts {
		first, err := c.Classify(context.Background(), text)
		require.NoError(t, err)
		second, err := c.Classify(context.Background(), text)
		require.NoError(t, err)

		assert.Equal(t, first.Verdict, second.Verdict, text)
		assert.Equal(t, first.Response, second.Response, text)
		assert.Equal(t, first.WordCount, second.WordCount, text)
		assert.Equal(t, first.NormalizedText, second.NormalizedText, text)
	}
}

func TestClassifier_Classify_LanguageRejected(t *testing.T) {
	t.Parallel()

	combiner := &stubCombiner{}
	c := newPipeline(&stubGate{accept: false}, combiner)

	got, err := c.Classify(context.Background(), "This is clearly an English email about the report")
	require.NoError(t, err)

	v := got.Verdict
	assert.Equal(t, domain.PatternLanguageError, v.PatternType)
	assert.Equal(t, domain.CategoryUnproductive, v.Category)
	assert.Equal(t, domain.PriorityLow, v.Priority)
	assert.Equal(t, domain.ConfidenceHigh, v.Confidence)
	assert.Equal(t, domain.MsgLanguageRejected, v.Message)
	assert.Nil(t, v.Scores, "scorer must not run for rejected languages")
	assert.Zero(t, combiner.calls)
	assert.Equal(t, "Re: Mensagem Recebida", got.Response.Subject)
}

func TestClassifier_Classify_TooShort(t *testing.T) {
	t.Parallel()

	gate := &stubGate{accept: true}
	c := newPipeline(gate, nil)

	_, err := c.Classify(context.Background(), " a ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTextTooShort))

	inputErr, ok := domain.AsInputError(err)
	require.True(t, ok)
	assert.Equal(t, domain.MsgTextTooShort, inputErr.Message)
	assert.Zero(t, gate.calls)
}

func TestClassifier_Classify_UsesCombiner(t *testing.T) {
	t.Parallel()

	combiner := &stubCombiner{}
	c := newPipeline(&stubGate{accept: true}, combiner)
	require.True(t, c.HybridEnabled())

	got, err := c.Classify(context.Background(), "Obrigado pela atenção")
	require.NoError(t, err)

	assert.Equal(t, 1, combiner.calls)
	assert.Equal(t, domain.MethodBothAgree, got.Verdict.Method)
	assert.Equal(t, domain.PatternGratitude, got.Verdict.PatternType)
}
