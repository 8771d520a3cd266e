package dedup

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Tokenize normalizes a title into a token set: case-folded, non-alphanumeric
// runes replaced by spaces (Hangul and Latin/digit runes are token bearers),
// split on whitespace. Tokens of a single rune carry no discriminative weight
// and are discarded.
func Tokenize(text string) map[string]struct{} {
	folded := cases.Fold().String(text)

	normalized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)

	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(normalized) {
		if len([]rune(token)) <= 1 {
			continue
		}
		tokens[token] = struct{}{}
	}

	return tokens
}

// Jaccard computes |A ∩ B| / |A ∪ B| over token sets. Two empty sets score 0.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
