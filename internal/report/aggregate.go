package report

import (
	"github.com/kessler-oss/revgen/internal/pipeline"
)

// aggregates holds the per-dataset summary statistics the report sections
// draw from. Computed once per render.
type aggregates struct {
	count int

	avgOverall float64
	minOverall float64
	maxOverall float64

	avgDiversity float64
	avgBias      float64
	avgRealism   float64

	avgMaxSimilarity    float64
	avgVocabDiversity   float64
	avgTrigramDiversity float64

	alignedFraction   float64
	anomalousFraction float64

	avgTechTerms    float64
	featureFraction float64
	useCaseFraction float64

	avgRating    float64
	avgWords     float64
	ratingCounts map[int]int
	wordCounts   []int
}

func aggregate(ds *pipeline.Dataset) aggregates {
	agg := aggregates{ratingCounts: make(map[int]int)}
	if len(ds.Samples) == 0 {
		return agg
	}

	agg.count = len(ds.Samples)
	agg.minOverall = ds.Samples[0].Score.Overall
	agg.maxOverall = ds.Samples[0].Score.Overall

	var aligned, anomalous, features, useCases int
	for _, s := range ds.Samples {
		sc := s.Score
		agg.avgOverall += sc.Overall
		agg.avgDiversity += sc.Diversity
		agg.avgBias += sc.Bias
		agg.avgRealism += sc.Realism
		if sc.Overall < agg.minOverall {
			agg.minOverall = sc.Overall
		}
		if sc.Overall > agg.maxOverall {
			agg.maxOverall = sc.Overall
		}

		agg.avgMaxSimilarity += sc.DiversityDetail.MaxSimilarity
		agg.avgVocabDiversity += sc.DiversityDetail.VocabularyDiversity
		agg.avgTrigramDiversity += sc.DiversityDetail.TrigramDiversity

		if sc.BiasDetail.Aligned {
			aligned++
		}
		if sc.BiasDetail.LengthAnomalous {
			anomalous++
		}

		agg.avgTechTerms += float64(sc.RealismDetail.TechnicalTermCount)
		if sc.RealismDetail.MentionsFeatures {
			features++
		}
		if sc.RealismDetail.MentionsUseCase {
			useCases++
		}

		agg.avgRating += float64(s.Request.Rating)
		agg.avgWords += float64(sc.BiasDetail.WordCount)
		agg.ratingCounts[s.Request.Rating]++
		agg.wordCounts = append(agg.wordCounts, sc.BiasDetail.WordCount)
	}

	n := float64(agg.count)
	agg.avgOverall /= n
	agg.avgDiversity /= n
	agg.avgBias /= n
	agg.avgRealism /= n
	agg.avgMaxSimilarity /= n
	agg.avgVocabDiversity /= n
	agg.avgTrigramDiversity /= n
	agg.avgTechTerms /= n
	agg.avgRating /= n
	agg.avgWords /= n
	agg.alignedFraction = float64(aligned) / n
	agg.anomalousFraction = float64(anomalous) / n
	agg.featureFraction = float64(features) / n
	agg.useCaseFraction = float64(useCases) / n

	return agg
}
