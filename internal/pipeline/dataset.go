package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kessler-oss/revgen/internal/generator"
	"github.com/kessler-oss/revgen/internal/quality"
)

// AcceptedSample is one accepted review plus everything needed to audit
// it: the request context, the generation metadata, and the full quality
// score. Once appended to the dataset it is never re-evaluated or mutated.
type AcceptedSample struct {
	// ID is a stable unique identifier for the sample
	ID string `json:"id"`

	// Slot is the output slot this sample fills
	Slot int `json:"slot"`

	// Attempts is how many generation attempts the slot consumed
	Attempts int `json:"attempts"`

	// Request is the drawn generation context
	Request generator.Request `json:"request"`

	// ReviewText is the accepted review
	ReviewText string `json:"review_text"`

	// Metadata records the producing model and usage
	Metadata generator.Metadata `json:"metadata"`

	// Score is the full quality assessment
	Score quality.Score `json:"quality_score"`

	// BelowThreshold marks samples salvaged under the accept_best
	// policy; they did not pass the guardrails
	BelowThreshold bool `json:"below_threshold,omitempty"`

	AcceptedAt time.Time `json:"accepted_at"`
}

// RejectionRecord documents one rejected (non-accepted) attempt.
// Appended to the run-level rejection log; never deleted.
type RejectionRecord struct {
	// Slot and Attempt locate the rejected attempt
	Slot    int `json:"slot"`
	Attempt int `json:"attempt"`

	// Model is the backend that produced the attempt
	Model string `json:"model"`

	// Reason is the single highest-priority failing check
	Reason quality.Reason `json:"reason"`

	// Detail carries the adapter error for generation failures
	Detail string `json:"detail,omitempty"`

	// Context summarizes the request (persona / tool / rating)
	Context string `json:"context"`
}

// Dataset is the immutable output of a run: accepted samples, the
// rejection log, and run statistics.
type Dataset struct {
	// RunID identifies the producing run
	RunID string `json:"run_id"`

	GeneratedAt time.Time `json:"generated_at"`

	// Samples are the accepted reviews in acceptance order
	Samples []AcceptedSample `json:"samples"`

	// Rejections is the run-level rejection log in occurrence order
	Rejections []RejectionRecord `json:"rejections"`

	// Stats is the finalized run summary
	Stats RunStatistics `json:"stats"`
}

// WriteFile serializes the dataset as indented JSON, creating parent
// directories as needed. The format is human-diffable by design.
func (d *Dataset) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// LoadDataset reads a dataset previously written with WriteFile.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &d, nil
}
