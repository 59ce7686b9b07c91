// Package language decides whether an email is written in Portuguese.
package language

import (
	"fmt"
	"strings"

	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/textnorm"
)

const (
	langPortuguese = "pt"

	minTextRunes = 3

	// DefaultShortTextWords is the word count at or below which indicator words decide alone.
	DefaultShortTextWords = 5
	// DefaultMinIndicatorHits is how many distinct indicators accept a long text the detector rejected.
	DefaultMinIndicatorHits = 2
)

// indicators are Portuguese words and expressions common in email openings and closings.
// Matching is by substring on the lowercased text.
var indicators = []string{
	"olá", "oi", "bom dia", "boa tarde", "boa noite",
	"obrigado", "obrigada", "por favor", "com licença",
	"desculpa", "desculpe", "tudo bem", "como vai",
	"prezado", "prezada", "caro", "cara", "senhor", "senhora",
	"atenciosamente", "cordialmente", "aguardo", "retorno",
	"informação", "solicitação",
}

// Config tunes the gate thresholds.
type Config struct {
	ShortTextWords   int
	MinIndicatorHits int
}

// Gate accepts or rejects texts by language. It holds no mutable state.
type Gate struct {
	detector Detector
	cfg      Config
	logger   infralogger.Logger
}

// NewGate creates a gate. A nil detector leaves only the indicator-word rules.
func NewGate(detector Detector, cfg Config, logger infralogger.Logger) *Gate {
	if cfg.ShortTextWords <= 0 {
		cfg.ShortTextWords = DefaultShortTextWords
	}
	if cfg.MinIndicatorHits <= 0 {
		cfg.MinIndicatorHits = DefaultMinIndicatorHits
	}
	return &Gate{detector: detector, cfg: cfg, logger: logger}
}

// IsPortuguese reports whether text should be classified.
//
// Texts under three characters are rejected. Short texts are accepted on any indicator
// word, or on a reliable Portuguese detection. Longer texts are accepted when the detector
// says Portuguese; otherwise they need several distinct indicators.
// Detector failures never escape: they fall through to the indicator count.
func (g *Gate) IsPortuguese(text string) bool {
	if textnorm.RuneLen(text) < minTextRunes {
		return false
	}

	lower := strings.ToLower(text)
	words := textnorm.WordCount(text)

	if words <= g.cfg.ShortTextWords {
		if countIndicators(lower) > 0 {
			return true
		}
		det, ok := g.detect(text)
		return ok && det.Lang == langPortuguese && det.Reliable
	}

	if det, ok := g.detect(text); ok && det.Lang == langPortuguese {
		return true
	}

	return countIndicators(lower) >= g.cfg.MinIndicatorHits
}

// detect runs the detector, converting errors and panics into ok=false.
func (g *Gate) detect(text string) (det Detection, ok bool) {
	if g.detector == nil {
		return Detection{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			g.logger.Warn("Language detector panicked", infralogger.String("panic", fmt.Sprint(r)))
			det, ok = Detection{}, false
		}
	}()

	det, err := g.detector.Detect(text)
	if err != nil {
		g.logger.Debug("Language detection failed", infralogger.Error(err))
		return Detection{}, false
	}
	if det.Lang == "" {
		return Detection{}, false
	}
	return det, true
}

// countIndicators returns how many distinct indicators occur in lower.
func countIndicators(lower string) int {
	hits := 0
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			hits++
		}
	}
	return hits
}
