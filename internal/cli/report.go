package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kessler-oss/revgen/internal/collector"
	"github.com/kessler-oss/revgen/internal/events"
	"github.com/kessler-oss/revgen/internal/pipeline"
	"github.com/kessler-oss/revgen/internal/report"
)

// DefaultReportDir is where report writes when --output-dir is not given.
const DefaultReportDir = "reports"

// ReportOptions holds flags for the report command
type ReportOptions struct {
	Dataset     string // Dataset file to report on
	OutputDir   string // Report output directory
	BaselineDir string // Baseline corpus directory ("" skips comparison)
}

// Validate checks ReportOptions for validity
func (opts ReportOptions) Validate() error {
	if opts.Dataset == "" {
		return fmt.Errorf("dataset path must not be empty")
	}
	if opts.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// NewReportCmd creates the report command
func NewReportCmd(app *App) *cobra.Command {
	opts := ReportOptions{
		Dataset:   DefaultDatasetPath,
		OutputDir: DefaultReportDir,
	}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the markdown quality report for a dataset",
		Long: `Report renders quality metrics, model comparison, distributions, and
rejection analysis for a generated dataset. When a baseline corpus
directory is given, the report also compares synthetic against real
reviews.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(2)
			}

			return app.RunReport(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dataset, "dataset", "d", DefaultDatasetPath, "Dataset file to report on")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", DefaultReportDir, "Report output directory")
	cmd.Flags().StringVar(&opts.BaselineDir, "baseline-dir", "", "Baseline corpus directory for comparison")

	return cmd
}

// RunReport renders the quality report for an existing dataset.
func (a *App) RunReport(opts ReportOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	ds, err := pipeline.LoadDataset(opts.Dataset)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	bus := events.NewBus()
	defer bus.Close()

	if a.verbose {
		bus.Subscribe(events.LogHandler(events.LogConfig{Writer: os.Stderr, IncludePayload: true}))
	}

	var baseline []collector.BaselineReview
	if opts.BaselineDir != "" {
		baseline, err = collector.New(opts.BaselineDir, bus).Load()
		if err != nil {
			return fmt.Errorf("failed to load baseline corpus: %w", err)
		}
	}

	path, err := report.New(opts.OutputDir, bus).Generate(ds, baseline)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}
