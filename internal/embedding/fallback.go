package embedding

import (
	"strings"
	"unicode"
)

// FallbackDimensions is the fixed dimensionality of the fallback vector.
// The fallback must always produce exactly this many dimensions so
// downstream cosine-similarity code never sees a length mismatch from
// this path.
const FallbackDimensions = 50

// FallbackEmbed computes a deterministic term-frequency vector for text.
// Tokens are lowercased words longer than two characters; the vector
// holds count/totalTokens for the first FallbackDimensions distinct
// tokens in encounter order, zero-padded when fewer exist. It is
// intentionally crude: it keeps the pipeline functional when the
// embedding backend is unavailable, nothing more.
func FallbackEmbed(text string) []float64 {
	vector := make([]float64, FallbackDimensions)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vector
	}

	counts := make(map[string]int)
	order := make([]string, 0, FallbackDimensions)
	for _, tok := range tokens {
		if _, seen := counts[tok]; !seen && len(order) < FallbackDimensions {
			order = append(order, tok)
		}
		counts[tok]++
	}

	total := float64(len(tokens))
	for i, tok := range order {
		vector[i] = float64(counts[tok]) / total
	}
	return vector
}

// tokenize splits text into lowercase word tokens, discarding words of
// length <= 2
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
