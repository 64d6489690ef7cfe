// Package report renders the markdown quality report for a generated
// dataset, optionally comparing it against the baseline corpus.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kessler-oss/revgen/internal/collector"
	"github.com/kessler-oss/revgen/internal/events"
	"github.com/kessler-oss/revgen/internal/pipeline"
)

// reportFileName is the markdown file written under the output directory.
const reportFileName = "quality_report.md"

// excerptCount caps the sample excerpts section.
const excerptCount = 3

// Generator renders quality reports.
type Generator struct {
	outputDir string
	bus       *events.Bus
}

// New creates a report generator writing under outputDir.
func New(outputDir string, bus *events.Bus) *Generator {
	return &Generator{outputDir: outputDir, bus: bus}
}

// OutputPath returns the report file path.
func (g *Generator) OutputPath() string {
	return filepath.Join(g.outputDir, reportFileName)
}

// Generate renders the report for ds and writes it to the output
// directory. baseline may be nil; the comparison section is omitted then.
// Returns the written file path.
func (g *Generator) Generate(ds *pipeline.Dataset, baseline []collector.BaselineReview) (string, error) {
	g.bus.Emit(events.NewEvent(events.ReportStarted).WithPayload(map[string]any{
		"run_id":  ds.RunID,
		"samples": len(ds.Samples),
	}))

	content := Render(ds, baseline)

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		err = fmt.Errorf("create report dir: %w", err)
		g.bus.Emit(events.NewEvent(events.ReportFailed).WithError(err))
		return "", err
	}

	path := g.OutputPath()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		err = fmt.Errorf("write report: %w", err)
		g.bus.Emit(events.NewEvent(events.ReportFailed).WithError(err))
		return "", err
	}

	g.bus.Emit(events.NewEvent(events.ReportCompleted).WithPayload(map[string]any{
		"path": path,
	}))
	return path, nil
}

// Render produces the markdown report content without touching the
// filesystem. Deterministic for a given dataset and baseline.
func Render(ds *pipeline.Dataset, baseline []collector.BaselineReview) string {
	var b strings.Builder
	agg := aggregate(ds)

	b.WriteString("# Synthetic Review Generator - Quality Report\n\n")

	writeSummary(&b, ds, agg, baseline)
	writeDimensions(&b, agg)
	writeModelComparison(&b, ds)
	writeDistributions(&b, ds, agg, baseline)
	writeGuardrails(&b, ds, agg)
	writeRejections(&b, ds)
	writeExcerpts(&b, ds)

	fmt.Fprintf(&b, "---\n\n**Run**: `%s`  \n**Generated on**: %s\n",
		ds.RunID, ds.GeneratedAt.Format(time.RFC3339))

	return b.String()
}

func writeSummary(b *strings.Builder, ds *pipeline.Dataset, agg aggregates, baseline []collector.BaselineReview) {
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(b, "- **Synthetic Reviews Generated**: %d of %d requested\n",
		ds.Stats.TotalAccepted, ds.Stats.RequestedCount)
	if baseline != nil {
		fmt.Fprintf(b, "- **Real Reviews Collected**: %d\n", len(baseline))
	}
	if len(ds.Samples) > 0 {
		fmt.Fprintf(b, "- **Average Quality Score**: %.1f/100\n", agg.avgOverall)
		fmt.Fprintf(b, "- **Quality Range**: %.1f - %.1f\n", agg.minOverall, agg.maxOverall)
	}
	fmt.Fprintf(b, "- **Total Generation Time**: %.1fs\n", ds.Stats.Duration.Seconds())
	fmt.Fprintf(b, "- **Total Attempts**: %d\n", ds.Stats.TotalAttempts)
	fmt.Fprintf(b, "- **Rejections**: %d (%.1f%% of attempts)\n",
		ds.Stats.TotalRejected, ds.Stats.RejectionRate()*100)
	if ds.Stats.AbandonedSlots > 0 {
		fmt.Fprintf(b, "- **Abandoned Slots**: %d\n", ds.Stats.AbandonedSlots)
	}
	if ds.Stats.SalvagedSlots > 0 {
		fmt.Fprintf(b, "- **Below-Threshold Samples (salvaged)**: %d\n", ds.Stats.SalvagedSlots)
	}
	if ds.Stats.CapacityExceeded {
		fmt.Fprintf(b, "\n> **Warning**: %s\n", ds.Stats.Warning)
	}
	b.WriteString("\n---\n\n")
}

func writeDimensions(b *strings.Builder, agg aggregates) {
	if agg.count == 0 {
		return
	}
	b.WriteString("## Quality Metrics\n\n")
	b.WriteString("### Dimension Breakdown\n\n")
	b.WriteString("| Dimension | Average Score | Description |\n")
	b.WriteString("|-----------|--------------|-------------|\n")
	fmt.Fprintf(b, "| **Diversity** | %.1f/100 | Vocabulary and semantic uniqueness |\n", agg.avgDiversity)
	fmt.Fprintf(b, "| **Bias Detection** | %.1f/100 | Sentiment-rating alignment, length appropriateness |\n", agg.avgBias)
	fmt.Fprintf(b, "| **Realism** | %.1f/100 | Technical vocabulary, feature mentions, balanced critique |\n", agg.avgRealism)
	b.WriteString("\n---\n\n")
}

func writeModelComparison(b *strings.Builder, ds *pipeline.Dataset) {
	if len(ds.Stats.PerModel) == 0 {
		return
	}

	models := make([]string, 0, len(ds.Stats.PerModel))
	for m := range ds.Stats.PerModel {
		models = append(models, m)
	}
	sort.Strings(models)

	b.WriteString("## Model Comparison\n\n")
	b.WriteString("| Model | Attempts | Accepted | Rejected | Avg Quality | Tokens | Time |\n")
	b.WriteString("|-------|----------|----------|----------|-------------|--------|------|\n")
	for _, m := range models {
		ms := ds.Stats.PerModel[m]
		fmt.Fprintf(b, "| %s | %d | %d | %d | %s | %d | %.1fs |\n",
			m, ms.Attempts, ms.Accepted, ms.Rejected,
			formatAvgQuality(ds, m), ms.TotalTokens, ms.Elapsed.Seconds())
	}
	b.WriteString("\n---\n\n")
}

func writeDistributions(b *strings.Builder, ds *pipeline.Dataset, agg aggregates, baseline []collector.BaselineReview) {
	if len(ds.Samples) == 0 {
		return
	}

	b.WriteString("## Distributions\n\n")

	b.WriteString("### Rating Distribution\n\n")
	b.WriteString("```\n")
	maxCount := 0
	for _, c := range agg.ratingCounts {
		if c > maxCount {
			maxCount = c
		}
	}
	for rating := 1; rating <= 5; rating++ {
		fmt.Fprintf(b, "%d star %s %d\n", rating, bar(agg.ratingCounts[rating], maxCount), agg.ratingCounts[rating])
	}
	b.WriteString("```\n\n")

	b.WriteString("### Length Distribution\n\n")
	b.WriteString("```\n")
	buckets, labels := lengthBuckets(agg.wordCounts)
	maxBucket := 0
	for _, c := range buckets {
		if c > maxBucket {
			maxBucket = c
		}
	}
	for i, label := range labels {
		fmt.Fprintf(b, "%-8s %s %d\n", label, bar(buckets[i], maxBucket), buckets[i])
	}
	b.WriteString("```\n\n")

	if len(baseline) > 0 {
		b.WriteString("### Synthetic vs Real\n\n")
		fmt.Fprintf(b, "- **Synthetic Average Rating**: %.2f/5\n", agg.avgRating)
		fmt.Fprintf(b, "- **Real Average Rating**: %.2f/5\n", baselineAvgRating(baseline))
		fmt.Fprintf(b, "- **Synthetic Average Length**: %.0f words\n", agg.avgWords)
		fmt.Fprintf(b, "- **Real Average Length**: %.0f words\n", collector.AverageWordCount(baseline))
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
}

func writeGuardrails(b *strings.Builder, ds *pipeline.Dataset, agg aggregates) {
	if agg.count == 0 {
		return
	}

	b.WriteString("## Quality Guardrails Effectiveness\n\n")

	b.WriteString("### Diversity\n\n")
	fmt.Fprintf(b, "- **Average Max Similarity**: %.3f\n", agg.avgMaxSimilarity)
	fmt.Fprintf(b, "- **Vocabulary Diversity**: %.3f\n", agg.avgVocabDiversity)
	fmt.Fprintf(b, "- **Trigram Diversity**: %.3f\n\n", agg.avgTrigramDiversity)

	b.WriteString("### Bias Detection\n\n")
	fmt.Fprintf(b, "- **Sentiment-Rating Alignment**: %.1f%% aligned\n", agg.alignedFraction*100)
	fmt.Fprintf(b, "- **Length Anomalies**: %.1f%% anomalous\n\n", agg.anomalousFraction*100)

	b.WriteString("### Realism\n\n")
	fmt.Fprintf(b, "- **Average Technical Terms**: %.1f per review\n", agg.avgTechTerms)
	fmt.Fprintf(b, "- **Feature Mentions**: %.1f%%\n", agg.featureFraction*100)
	fmt.Fprintf(b, "- **Use Case Mentions**: %.1f%%\n\n", agg.useCaseFraction*100)

	b.WriteString("---\n\n")
}

func writeRejections(b *strings.Builder, ds *pipeline.Dataset) {
	b.WriteString("## Rejection Analysis\n\n")
	fmt.Fprintf(b, "**Total Attempts**: %d  \n**Accepted**: %d  \n**Rejected**: %d\n\n",
		ds.Stats.TotalAttempts, ds.Stats.TotalAccepted, ds.Stats.TotalRejected)

	if len(ds.Stats.RejectionsByReason) == 0 {
		b.WriteString("No rejections: every accepted review passed on its recorded attempt.\n\n---\n\n")
		return
	}

	type reasonCount struct {
		reason string
		count  int
	}
	counts := make([]reasonCount, 0, len(ds.Stats.RejectionsByReason))
	for reason, count := range ds.Stats.RejectionsByReason {
		counts = append(counts, reasonCount{string(reason), count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].reason < counts[j].reason
	})

	b.WriteString("| Reason | Count |\n|--------|-------|\n")
	for _, rc := range counts {
		fmt.Fprintf(b, "| %s | %d |\n", rc.reason, rc.count)
	}
	b.WriteString("\n---\n\n")
}

func writeExcerpts(b *strings.Builder, ds *pipeline.Dataset) {
	if len(ds.Samples) == 0 {
		return
	}

	b.WriteString("## Sample Excerpts\n\n")
	n := excerptCount
	if len(ds.Samples) < n {
		n = len(ds.Samples)
	}
	for _, s := range ds.Samples[:n] {
		fmt.Fprintf(b, "**%s reviewing %s (%d stars, score %.1f)**\n\n> %s\n\n",
			s.Request.PersonaName, s.Request.Tool, s.Request.Rating,
			s.Score.Overall, s.ReviewText)
	}
	b.WriteString("---\n\n")
}

// formatAvgQuality renders the mean overall score of a model's accepted
// samples, or a dash when it accepted none.
func formatAvgQuality(ds *pipeline.Dataset, model string) string {
	var sum float64
	var n int
	for _, s := range ds.Samples {
		if s.Metadata.Model == model {
			sum += s.Score.Overall
			n++
		}
	}
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", sum/float64(n))
}

func baselineAvgRating(reviews []collector.BaselineReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
