package quality

import "strings"

// tokenize lowercases text and splits it into words, trimming surrounding
// punctuation but preserving interior characters (so "ci/cd" survives).
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(f, ".,!?;:\"'()[]{}")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// wordCount counts whitespace-separated words without normalization.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// termFrequency builds a term-count vector from tokens.
func termFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}
