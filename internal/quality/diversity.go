package quality

import (
	"math"
	"strings"
)

// Diversity sub-score weights. Similarity to the nearest accepted sample
// dominates: the most similar neighbor is what makes a near-duplicate.
const (
	diversitySimilarityWeight = 0.6
	diversityVocabularyWeight = 0.2
	diversityTrigramWeight    = 0.2
)

// DiversityResult is the breakdown of the diversity evaluation.
type DiversityResult struct {
	// MaxSimilarity is the highest cosine similarity between the candidate
	// and any accepted sample (0 with no history)
	MaxSimilarity float64 `json:"max_similarity"`

	// VocabularyDiversity is the unique-word ratio over history + candidate
	VocabularyDiversity float64 `json:"vocabulary_diversity"`

	// TrigramDiversity is the unique-trigram ratio over history + candidate
	TrigramDiversity float64 `json:"trigram_diversity"`

	// Score is the combined diversity sub-score (0-100)
	Score float64 `json:"score"`

	// CeilingExceeded is true when MaxSimilarity is above the ceiling;
	// this is a hard gate regardless of Score
	CeilingExceeded bool `json:"ceiling_exceeded"`
}

// DiversityEvaluator scores candidates against the accepted-sample history.
// It is read-only over the history and holds no state between calls.
type DiversityEvaluator struct {
	// SimilarityCeiling is the hard gate on nearest-neighbor similarity
	SimilarityCeiling float64
}

// Evaluate scores one candidate against the accepted texts.
// The history must contain only samples accepted strictly before the
// candidate, in acceptance order; the caller owns that ordering.
//
// With an empty history the candidate scores the maximum: there is no
// basis for penalizing similarity on a first sample.
func (e DiversityEvaluator) Evaluate(candidate string, history []string) DiversityResult {
	if len(history) == 0 {
		return DiversityResult{
			MaxSimilarity:       0,
			VocabularyDiversity: 1,
			TrigramDiversity:    1,
			Score:               100,
		}
	}

	candidateTokens := tokenize(candidate)
	candidateTF := termFrequency(candidateTokens)

	var maxSim float64
	for _, prior := range history {
		sim := cosineSimilarity(candidateTF, termFrequency(tokenize(prior)))
		if sim > maxSim {
			maxSim = sim
		}
	}

	all := make([]string, 0, len(history)+1)
	all = append(all, history...)
	all = append(all, candidate)

	vocab := vocabularyDiversity(all)
	trigram := ngramDiversity(all, 3)

	score := (diversitySimilarityWeight*(1-maxSim) +
		diversityVocabularyWeight*vocab +
		diversityTrigramWeight*trigram) * 100

	return DiversityResult{
		MaxSimilarity:       maxSim,
		VocabularyDiversity: vocab,
		TrigramDiversity:    trigram,
		Score:               score,
		CeilingExceeded:     maxSim > e.SimilarityCeiling,
	}
}

// cosineSimilarity computes the cosine of two term-frequency vectors.
// Returns 0 when either vector is empty.
func cosineSimilarity(a, b map[string]float64) float64 {
	var dot float64
	for term, av := range a {
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	if dot == 0 {
		return 0
	}

	var normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// vocabularyDiversity is the ratio of unique words to total words.
func vocabularyDiversity(texts []string) float64 {
	seen := make(map[string]struct{})
	var total int
	for _, text := range texts {
		for _, tok := range tokenize(text) {
			seen[tok] = struct{}{}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(len(seen)) / float64(total)
}

// ngramDiversity is the ratio of unique word n-grams to total n-grams.
func ngramDiversity(texts []string, n int) float64 {
	seen := make(map[string]struct{})
	var total int
	for _, text := range texts {
		tokens := tokenize(text)
		for i := 0; i+n <= len(tokens); i++ {
			seen[strings.Join(tokens[i:i+n], " ")] = struct{}{}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(len(seen)) / float64(total)
}
