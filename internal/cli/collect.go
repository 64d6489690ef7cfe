package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kessler-oss/revgen/internal/collector"
	"github.com/kessler-oss/revgen/internal/events"
)

// DefaultBaselineDir is where collect writes the baseline corpus when
// --output-dir is not given.
const DefaultBaselineDir = "data/real_reviews"

// CollectOptions holds flags for the collect command
type CollectOptions struct {
	Count     int    // Number of baseline reviews to collect
	OutputDir string // Corpus output directory
}

// Validate checks CollectOptions for validity
func (opts CollectOptions) Validate() error {
	if opts.Count <= 0 {
		return fmt.Errorf("count must be greater than 0, got %d", opts.Count)
	}
	if opts.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// NewCollectCmd creates the collect command
func NewCollectCmd(app *App) *cobra.Command {
	opts := CollectOptions{
		Count:     50,
		OutputDir: DefaultBaselineDir,
	}

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect the baseline corpus of real-style reviews",
		Long: `Collect assembles the baseline review corpus used by reports to
compare generated datasets against real-world style reviews.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(2)
			}

			return app.RunCollect(opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 50, "Number of baseline reviews")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", DefaultBaselineDir, "Corpus output directory")

	return cmd
}

// RunCollect builds and persists the baseline corpus.
func (a *App) RunCollect(opts CollectOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	bus := events.NewBus()
	defer bus.Close()

	if a.verbose {
		bus.Subscribe(events.LogHandler(events.LogConfig{Writer: os.Stderr, IncludePayload: true}))
	}

	c := collector.New(opts.OutputDir, bus)
	reviews, err := c.Collect(opts.Count)
	if err != nil {
		return fmt.Errorf("failed to collect baseline corpus: %w", err)
	}

	fmt.Printf("Collected %d reviews to %s\n", len(reviews), c.OutputPath())
	return nil
}
