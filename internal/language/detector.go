package language

import (
	"github.com/abadojack/whatlanggo"
)

// Detection is the outcome of statistical language identification.
type Detection struct {
	// Lang is the ISO 639-1 code, or "" when nothing was identified.
	Lang string
	// Reliable reports whether the detector trusts its own answer.
	Reliable bool
}

// Detector identifies the language of a text.
type Detector interface {
	Detect(text string) (Detection, error)
}

// WhatlangDetector identifies languages with trigram statistics.
type WhatlangDetector struct{}

// NewWhatlangDetector returns a detector backed by whatlanggo.
func NewWhatlangDetector() *WhatlangDetector {
	return &WhatlangDetector{}
}

// Detect never returns an error; unidentifiable text yields an empty Lang.
func (WhatlangDetector) Detect(text string) (Detection, error) {
	info := whatlanggo.Detect(text)
	if info.Lang < 0 {
		return Detection{}, nil
	}
	if info.Lang == whatlanggo.Por {
		return Detection{Lang: langPortuguese, Reliable: info.IsReliable()}, nil
	}
	return Detection{Lang: info.Lang.Iso6391(), Reliable: info.IsReliable()}, nil
}
