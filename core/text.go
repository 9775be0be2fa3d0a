package core

import "strings"

// Stop words to filter out when tokenizing text for matching
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// NormalizeText canonicalizes text for matching and cache keying:
// leading/trailing whitespace trimmed, case folded to lower.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Tokenize splits text into words, lowercases, trims punctuation, and removes
// stop words. The same tokenization is used by the lexical index and by the
// curation boosts so term matching agrees across both.
func Tokenize(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// TokenSet returns the deduplicated token set of text.
func TokenSet(text string) map[string]bool {
	tokens := Tokenize(text)
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[token] = true
	}
	return set
}
