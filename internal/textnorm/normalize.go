// Package textnorm prepares email text for analysis: lowercasing, Unicode composition,
// symbol stripping and stop-word removal.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenRunes is the shortest token kept after normalization.
const minTokenRunes = 3

// stopWords are Portuguese function words carrying no intent.
var stopWords = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"a": {}, "o": {}, "as": {}, "os": {},
	"um": {}, "uma": {}, "uns": {}, "umas": {},
	"para": {}, "por": {}, "com": {}, "sem": {},
	"em": {}, "na": {}, "no": {}, "nas": {}, "nos": {},
	"que": {}, "e": {}, "ou": {}, "mas": {}, "se": {},
	"ao": {}, "aos": {}, "à": {}, "às": {},
	"pelo": {}, "pela": {}, "pelos": {}, "pelas": {},
}

// keepPunct lists the punctuation that survives symbol stripping.
const keepPunct = ".,!?-@()"

// symbolsToSpace composes accents first so "á" is one letter rune, then replaces every
// rune that is not a letter, digit, underscore, whitespace or kept punctuation with a space.
func symbolsToSpace() transform.Transformer {
	return transform.Chain(norm.NFC, runes.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r), r == '_':
			return r
		case strings.ContainsRune(keepPunct, r):
			return r
		default:
			return ' '
		}
	}))
}

// Normalize lowercases text, strips symbols, collapses whitespace and drops stop words
// and tokens shorter than three characters. It never fails; empty input yields "".
func Normalize(text string) string {
	cleaned, _, err := transform.String(symbolsToSpace(), strings.ToLower(text))
	if err != nil {
		// runes.Map and NFC do not fail on valid input; fall back to the lowercased text.
		cleaned = strings.ToLower(text)
	}

	tokens := strings.Fields(cleaned)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if utf8.RuneCountInString(tok) < minTokenRunes {
			continue
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}

// WordCount returns the number of whitespace-separated words in the raw text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// RuneLen returns the number of characters in the trimmed text.
func RuneLen(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

// Truncate returns at most n characters of text, cutting on a rune boundary.
func Truncate(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
