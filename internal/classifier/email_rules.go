package classifier

import (
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
)

// Scoring defaults.
const (
	DefaultKeywordWeight       = 3
	DefaultPhraseWeight        = 8
	DefaultMinScore            = 3
	DefaultHighConfidenceScore = 8
	DefaultStrongRuleScore     = 10
)

// ScoringConfig is the immutable rule table and weights the engine is built from.
// Rule order is significant: on equal scores the earlier rule wins.
type ScoringConfig struct {
	Rules []domain.PatternRule

	// KeywordWeight is added per keyword occurrence.
	KeywordWeight int
	// PhraseWeight is added once per phrase present.
	PhraseWeight int
	// MinScore is the lowest best score that lets a rule decide.
	MinScore int
	// HighConfidenceScore is the best score at which rule confidence is High.
	HighConfidenceScore int
	// StrongRuleScore lets the rules overrule a disagreeing sentiment guess.
	StrongRuleScore int

	// DisambiguateUnproductive splits the unproductive fallback into greetings,
	// gratitude or irrelevant instead of general_unproductive.
	DisambiguateUnproductive bool
}

// DefaultScoringConfig returns the standard rule table with the standard weights.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Rules:               DefaultRules(),
		KeywordWeight:       DefaultKeywordWeight,
		PhraseWeight:        DefaultPhraseWeight,
		MinScore:            DefaultMinScore,
		HighConfidenceScore: DefaultHighConfidenceScore,
		StrongRuleScore:     DefaultStrongRuleScore,
	}
}

// withDefaults fills zero weights so a partially specified config still scores sensibly.
func (c ScoringConfig) withDefaults() ScoringConfig {
	if len(c.Rules) == 0 {
		c.Rules = DefaultRules()
	}
	if c.KeywordWeight <= 0 {
		c.KeywordWeight = DefaultKeywordWeight
	}
	if c.PhraseWeight <= 0 {
		c.PhraseWeight = DefaultPhraseWeight
	}
	if c.MinScore <= 0 {
		c.MinScore = DefaultMinScore
	}
	if c.HighConfidenceScore <= 0 {
		c.HighConfidenceScore = DefaultHighConfidenceScore
	}
	if c.StrongRuleScore <= 0 {
		c.StrongRuleScore = DefaultStrongRuleScore
	}
	return c
}

// DefaultRules returns a fresh copy of the Portuguese business-email rule table.
func DefaultRules() []domain.PatternRule {
	return []domain.PatternRule{
		{
			ID: domain.PatternStatusRequest,
			Keywords: []string{
				"status", "andamento", "situação", "atualização", "progresso",
				"prazos", "quando", "previsão", "cronograma", "acompanhar",
			},
			Phrases: []string{
				"qual o status", "gostaria de saber o andamento", "como está",
				"tem previsão", "prazo para", "situação do",
			},
			Category: domain.CategoryProductive,
			Priority: domain.PriorityHigh,
		},
		{
			ID: domain.PatternDocumentSharing,
			Keywords: []string{
				"anexo", "documento", "arquivo", "envio", "segue",
				"planilha", "relatório", "comprovante", "enviar", "anexar",
			},
			Phrases: []string{
				"segue anexo", "em anexo", "documento solicitado",
				"conforme solicitado", "segue em anexo",
			},
			Category: domain.CategoryProductive,
			Priority: domain.PriorityMedium,
		},
		{
			ID: domain.PatternTechnicalSupport,
			Keywords: []string{
				"erro", "problema", "não funciona", "falha", "bug",
				"sistema", "acesso", "login", "senha", "suporte",
			},
			Phrases: []string{
				"não consigo acessar", "sistema está fora", "erro ao tentar",
				"problema técnico", "não está funcionando",
			},
			Category: domain.CategoryProductive,
			Priority: domain.PriorityHigh,
		},
		{
			ID: domain.PatternFinancialInquiry,
			Keywords: []string{
				"saldo", "extrato", "cobrança", "fatura", "pagamento",
				"valor", "taxa", "juros", "desconto", "conta",
			},
			Phrases: []string{
				"consultar saldo", "verificar cobrança", "dúvida sobre",
				"esclarecimento financeiro", "valor da conta",
			},
			Category: domain.CategoryProductive,
			Priority: domain.PriorityHigh,
		},
		{
			ID: domain.PatternCaseFollowUp,
			Keywords: []string{
				"protocolo", "ticket", "chamado", "caso", "solicitação",
				"pedido", "acompanhamento", "número",
			},
			Phrases: []string{
				"protocolo número", "acompanhar caso", "seguimento do chamado",
				"ticket aberto", "número do protocolo",
			},
			Category: domain.CategoryProductive,
			Priority: domain.PriorityMedium,
		},
		{
			ID: domain.PatternGreetings,
			Keywords: []string{
				"natal", "ano novo", "páscoa", "feliz", "parabéns",
				"aniversário", "festa", "comemoração", "feriado",
			},
			Phrases: []string{
				"feliz natal", "boas festas", "feliz ano novo",
				"parabéns pelo", "desejo sucesso", "bom feriado",
			},
			Category: domain.CategoryUnproductive,
			Priority: domain.PriorityLow,
		},
		{
			ID: domain.PatternGratitude,
			Keywords: []string{
				"obrigado", "obrigada", "agradeço", "grato", "grata",
				"agradecimento", "valeu",
			},
			Phrases: []string{
				"muito obrigado", "agradeço pela", "grato pela atenção",
				"obrigado pelo", "agradeço o",
			},
			Category: domain.CategoryUnproductive,
			Priority: domain.PriorityLow,
		},
		{
			ID: domain.PatternSocialChat,
			Keywords: []string{
				"como vai", "tudo bem", "como está", "família",
				"final de semana", "feriado", "férias",
			},
			Phrases: []string{
				"como você está", "tudo bem contigo", "como foi o",
				"espero que esteja", "como andam as",
			},
			Category: domain.CategoryUnproductive,
			Priority: domain.PriorityLow,
		},
	}
}
