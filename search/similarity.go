package search

import (
	"math"

	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters: standard Winkler boost threshold and prefix size.
const (
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// powerMeanExponent is the exponent of the power mean used to aggregate
// per-token similarities. A high exponent approximates a soft minimum, so
// documents that match only some query tokens well are penalized.
const powerMeanExponent = 4

// lexicalScore compares query tokens against document tokens. Each query
// token keeps its best Jaro-Winkler similarity against any document token;
// the per-token maxima are then aggregated with a power mean:
//
//	(mean(score_i^4))^(1/4)
//
// Returns a value in [0, 1]; zero when either side has no tokens.
func lexicalScore(queryTokens, docTokens []string) float64 {
	if len(queryTokens) == 0 || len(docTokens) == 0 {
		return 0
	}
	var sum float64
	for _, q := range queryTokens {
		best := 0.0
		for _, d := range docTokens {
			if s := smetrics.JaroWinkler(q, d, jaroWinklerBoostThreshold, jaroWinklerPrefixSize); s > best {
				best = s
			}
		}
		sum += math.Pow(best, powerMeanExponent)
	}
	return math.Pow(sum/float64(len(queryTokens)), 1.0/powerMeanExponent)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
