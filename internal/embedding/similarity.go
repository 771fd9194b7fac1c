package embedding

import (
	"math"

	"github.com/jonathan/job-matcher/internal/llm"
)

// CosineSimilarity computes the cosine similarity of two vectors.
// Returns a DimensionError when the vectors differ in length; callers
// must treat that as "no similarity available" (score 0), since
// primary-path vectors are never dimension-compatible with fallback
// vectors. Similarity against an all-zero vector is 0, not NaN.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &llm.DimensionError{LenA: len(a), LenB: len(b)}
	}
	if len(a) == 0 {
		return 0, nil
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Guard against floating point drift past the defined range
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return sim, nil
}
