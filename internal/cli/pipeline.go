package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kessler-oss/revgen/internal/collector"
	"github.com/kessler-oss/revgen/internal/config"
	"github.com/kessler-oss/revgen/internal/events"
	"github.com/kessler-oss/revgen/internal/report"
)

// PipelineOptions holds flags for the pipeline command
type PipelineOptions struct {
	Count         int    // Target sample count (0: config default)
	Seed          int64  // Draw seed (0: time-based)
	Output        string // Dataset output path
	BaselineCount int    // Number of baseline reviews
	BaselineDir   string // Baseline corpus directory
	ReportDir     string // Report output directory
	NoTUI         bool   // Disable TUI even when stdout is a TTY
	JSON          bool   // Force newline-delimited JSON event output
}

// Validate checks PipelineOptions for validity
func (opts PipelineOptions) Validate() error {
	if opts.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", opts.Count)
	}
	if opts.BaselineCount <= 0 {
		return fmt.Errorf("baseline count must be greater than 0, got %d", opts.BaselineCount)
	}
	if opts.Output == "" || opts.BaselineDir == "" || opts.ReportDir == "" {
		return fmt.Errorf("output paths must not be empty")
	}
	return nil
}

// NewPipelineCmd creates the pipeline command
func NewPipelineCmd(app *App) *cobra.Command {
	opts := PipelineOptions{
		Output:        DefaultDatasetPath,
		BaselineCount: 50,
		BaselineDir:   DefaultBaselineDir,
		ReportDir:     DefaultReportDir,
	}

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run collect, generate, and report end to end",
		Long: `Pipeline runs the full workflow: collect the baseline corpus,
generate the quality-gated dataset, and render the comparison report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(2)
			}

			return app.RunFullPipeline(context.Background(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "Number of reviews to generate (default from config)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Request draw seed for reproducible runs (default time-based)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultDatasetPath, "Dataset output path")
	cmd.Flags().IntVar(&opts.BaselineCount, "baseline-count", 50, "Number of baseline reviews")
	cmd.Flags().StringVar(&opts.BaselineDir, "baseline-dir", DefaultBaselineDir, "Baseline corpus directory")
	cmd.Flags().StringVar(&opts.ReportDir, "report-dir", DefaultReportDir, "Report output directory")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable interactive display (use log output)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit newline-delimited JSON events on stdout")

	return cmd
}

// RunFullPipeline executes collect, generate, and report in sequence.
// A failed generation run still produces a dataset and report for
// whatever was accepted before the failure.
func (a *App) RunFullPipeline(ctx context.Context, opts PipelineOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler := NewSignalHandler(cancel)
	handler.OnShutdown(func() {
		fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
	})
	handler.Start()
	defer handler.Stop()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	count := opts.Count
	if count == 0 {
		count = cfg.Generation.DefaultCount
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bus := events.NewBus()
	defer bus.Close()

	// Stage 1: baseline corpus
	c := collector.New(opts.BaselineDir, bus)
	baseline, err := c.Collect(opts.BaselineCount)
	if err != nil {
		return fmt.Errorf("failed to collect baseline corpus: %w", err)
	}
	fmt.Printf("Collected %d baseline reviews to %s\n", len(baseline), c.OutputPath())

	// Stage 2: generation run
	genOpts := GenerateOptions{
		Count:  count,
		Seed:   seed,
		Output: opts.Output,
		NoTUI:  opts.NoTUI,
		JSON:   opts.JSON,
	}
	ds, runErr := a.runPipeline(ctx, cfg, bus, count, seed, genOpts)
	if ds == nil {
		return runErr
	}
	if err := ds.WriteFile(opts.Output); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	printRunSummary(ds, opts.Output)

	// Stage 3: report
	path, err := report.New(opts.ReportDir, bus).Generate(ds, baseline)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	fmt.Printf("Report written to %s\n", path)

	return runErr
}
