package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessler-oss/revgen/internal/collector"
	"github.com/kessler-oss/revgen/internal/events"
	"github.com/kessler-oss/revgen/internal/generator"
	"github.com/kessler-oss/revgen/internal/pipeline"
	"github.com/kessler-oss/revgen/internal/quality"
)

func sampleDataset() *pipeline.Dataset {
	mkSample := func(slot, rating, words int, model, tool string, overall float64) pipeline.AcceptedSample {
		return pipeline.AcceptedSample{
			ID:         "s",
			Slot:       slot,
			Attempts:   1,
			Request:    generator.Request{PersonaName: "Backend Engineer", Tool: tool, Rating: rating},
			ReviewText: "Solid tool with a clean CLI and good API docs.",
			Metadata:   generator.Metadata{Model: model, TotalTokens: 40, Elapsed: 2 * time.Second},
			Score: quality.Score{
				Diversity: 80, Bias: 100, Realism: 90, Overall: overall, Pass: true,
				DiversityDetail: quality.DiversityResult{MaxSimilarity: 0.3, VocabularyDiversity: 0.7, TrigramDiversity: 0.9},
				BiasDetail:      quality.BiasResult{Aligned: true, WordCount: words},
				RealismDetail:   quality.RealismResult{TechnicalTermCount: 4, MentionsFeatures: true, MentionsUseCase: true},
			},
			AcceptedAt: time.Now(),
		}
	}

	return &pipeline.Dataset{
		RunID:       "run-123",
		GeneratedAt: time.Now(),
		Samples: []pipeline.AcceptedSample{
			mkSample(0, 5, 60, "gpt-4o-mini", "Postman", 88.5),
			mkSample(1, 4, 90, "mistral-small", "CircleCI", 75.0),
			mkSample(2, 2, 45, "gpt-4o-mini", "SonarQube", 70.2),
		},
		Rejections: []pipeline.RejectionRecord{
			{Slot: 1, Attempt: 1, Model: "mistral-small", Reason: quality.ReasonTooSimilar, Context: "x"},
			{Slot: 2, Attempt: 1, Model: "gpt-4o-mini", Reason: quality.ReasonLengthAnomalous, Context: "y"},
			{Slot: 2, Attempt: 2, Model: "gpt-4o-mini", Reason: quality.ReasonLengthAnomalous, Context: "y"},
		},
		Stats: pipeline.RunStatistics{
			RequestedCount: 3,
			TotalAttempts:  6,
			TotalAccepted:  3,
			TotalRejected:  3,
			RejectionsByReason: map[quality.Reason]int{
				quality.ReasonTooSimilar:      1,
				quality.ReasonLengthAnomalous: 2,
			},
			PerModel: map[string]pipeline.ModelStats{
				"gpt-4o-mini":   {Attempts: 4, Accepted: 2, Rejected: 2, TotalTokens: 120, Elapsed: 5 * time.Second},
				"mistral-small": {Attempts: 2, Accepted: 1, Rejected: 1, TotalTokens: 60, Elapsed: 3 * time.Second},
			},
			Duration: 12 * time.Second,
		},
	}
}

func TestRenderCoversAllSections(t *testing.T) {
	content := Render(sampleDataset(), nil)

	for _, heading := range []string{
		"# Synthetic Review Generator - Quality Report",
		"## Executive Summary",
		"## Quality Metrics",
		"## Model Comparison",
		"## Distributions",
		"## Quality Guardrails Effectiveness",
		"## Rejection Analysis",
		"## Sample Excerpts",
	} {
		assert.Contains(t, content, heading)
	}

	assert.Contains(t, content, "run-123")
	assert.Contains(t, content, "gpt-4o-mini")
	assert.Contains(t, content, "length_anomalous | 2")
	assert.Contains(t, content, "similarity_exceeded | 1")
}

func TestRenderBaselineComparison(t *testing.T) {
	baseline := []collector.BaselineReview{
		{Rating: 5, WordCount: 40},
		{Rating: 3, WordCount: 50},
	}

	content := Render(sampleDataset(), baseline)
	assert.Contains(t, content, "### Synthetic vs Real")
	assert.Contains(t, content, "**Real Average Rating**: 4.00/5")
	assert.Contains(t, content, "**Real Average Length**: 45 words")

	// Without a baseline the comparison is omitted
	assert.NotContains(t, Render(sampleDataset(), nil), "### Synthetic vs Real")
}

func TestRenderEmptyDataset(t *testing.T) {
	ds := &pipeline.Dataset{
		RunID:       "run-empty",
		GeneratedAt: time.Now(),
		Stats: pipeline.RunStatistics{
			RequestedCount:     1,
			TotalAttempts:      3,
			TotalRejected:      3,
			AbandonedSlots:     1,
			RejectionsByReason: map[quality.Reason]int{quality.ReasonGenerationError: 3},
		},
	}

	content := Render(ds, nil)
	assert.Contains(t, content, "## Executive Summary")
	assert.Contains(t, content, "generation_error | 3")
	assert.NotContains(t, content, "## Sample Excerpts")
}

func TestRenderCapacityWarning(t *testing.T) {
	ds := sampleDataset()
	ds.Stats.CapacityExceeded = true
	ds.Stats.Warning = "global attempt ceiling (6) reached with 3/5 slots filled"

	content := Render(ds, nil)
	assert.Contains(t, content, "> **Warning**: global attempt ceiling")
}

func TestGenerateWritesFile(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus()
	var seen []events.EventType
	bus.Subscribe(func(e events.Event) { seen = append(seen, e.Type) })

	g := New(dir, bus)
	path, err := g.Generate(sampleDataset(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Synthetic Review Generator"))
	assert.Equal(t, []events.EventType{events.ReportStarted, events.ReportCompleted}, seen)
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", barWidth), bar(10, 10))
	assert.Equal(t, strings.Repeat(" ", barWidth), bar(0, 10))
	// A tiny non-zero count still shows one block
	assert.True(t, strings.HasPrefix(bar(1, 1000), "█"))
}

func TestLengthBuckets(t *testing.T) {
	buckets, labels := lengthBuckets([]int{10, 60, 60, 140, 260})
	require.Equal(t, []string{"0-49", "50-99", "100-149", "150-199", "200-249", "250+"}, labels)
	assert.Equal(t, []int{1, 2, 1, 0, 0, 1}, buckets)
}
