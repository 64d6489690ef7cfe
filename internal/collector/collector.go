// Package collector builds the baseline corpus of real-world style dev
// tool reviews that generated datasets are compared against in reports.
package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kessler-oss/revgen/internal/events"
)

// baselineFileName is the corpus file written under the output directory.
const baselineFileName = "real_reviews.json"

// BaselineReview is one review in the baseline corpus.
type BaselineReview struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
	Tool     string `json:"tool"`
	Category string `json:"category"`

	// Source names where the review came from. The built-in corpus is
	// curated sample data; a scraper would record its origin site here.
	Source string `json:"source"`

	WordCount   int       `json:"word_count"`
	CollectedAt time.Time `json:"collected_at"`
}

// Collector assembles and persists the baseline corpus.
type Collector struct {
	outputDir string
	bus       *events.Bus
}

// New creates a collector writing under outputDir.
func New(outputDir string, bus *events.Bus) *Collector {
	return &Collector{outputDir: outputDir, bus: bus}
}

// OutputPath returns the corpus file path.
func (c *Collector) OutputPath() string {
	return filepath.Join(c.outputDir, baselineFileName)
}

// Collect builds a corpus of count reviews by cycling the curated
// templates, writes it to the output directory, and returns it.
func (c *Collector) Collect(count int) ([]BaselineReview, error) {
	c.bus.Emit(events.NewEvent(events.CollectStarted).WithPayload(map[string]any{
		"count": count,
	}))

	now := time.Now()
	reviews := make([]BaselineReview, 0, count)
	for i := 0; i < count; i++ {
		tpl := baselineTemplates[i%len(baselineTemplates)]
		reviews = append(reviews, BaselineReview{
			ID:          fmt.Sprintf("real_review_%d", i+1),
			Text:        tpl.Text,
			Rating:      tpl.Rating,
			Tool:        tpl.Tool,
			Category:    tpl.Category,
			Source:      "sample_data",
			WordCount:   len(strings.Fields(tpl.Text)),
			CollectedAt: now,
		})
	}

	if err := c.write(reviews); err != nil {
		return nil, err
	}

	c.bus.Emit(events.NewEvent(events.CollectCompleted).WithPayload(map[string]any{
		"count": len(reviews),
		"path":  c.OutputPath(),
	}))
	return reviews, nil
}

// Load reads a previously collected corpus from the output directory.
func (c *Collector) Load() ([]BaselineReview, error) {
	data, err := os.ReadFile(c.OutputPath())
	if err != nil {
		return nil, fmt.Errorf("read baseline corpus: %w", err)
	}

	var reviews []BaselineReview
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("parse baseline corpus: %w", err)
	}
	return reviews, nil
}

func (c *Collector) write(reviews []BaselineReview) error {
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("encode baseline corpus: %w", err)
	}

	if err := os.WriteFile(c.OutputPath(), data, 0o644); err != nil {
		return fmt.Errorf("write baseline corpus: %w", err)
	}
	return nil
}

// AverageWordCount returns the mean review length of the corpus.
func AverageWordCount(reviews []BaselineReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var total int
	for _, r := range reviews {
		total += r.WordCount
	}
	return float64(total) / float64(len(reviews))
}

// RatingDistribution returns the fraction of reviews per star rating.
func RatingDistribution(reviews []BaselineReview) map[int]float64 {
	dist := make(map[int]float64)
	if len(reviews) == 0 {
		return dist
	}
	for _, r := range reviews {
		dist[r.Rating]++
	}
	for rating := range dist {
		dist[rating] /= float64(len(reviews))
	}
	return dist
}
