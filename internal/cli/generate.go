package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kessler-oss/revgen/internal/cli/tui"
	"github.com/kessler-oss/revgen/internal/config"
	"github.com/kessler-oss/revgen/internal/events"
	"github.com/kessler-oss/revgen/internal/generator"
	"github.com/kessler-oss/revgen/internal/pipeline"
)

// DefaultDatasetPath is where generate writes the dataset when --output
// is not given.
const DefaultDatasetPath = "data/synthetic_reviews.json"

// GenerateOptions holds flags for the generate command
type GenerateOptions struct {
	Count  int    // Target sample count (0: config default)
	Seed   int64  // Draw seed (0: time-based)
	Output string // Dataset output path
	NoTUI  bool   // Disable TUI even when stdout is a TTY
	JSON   bool   // Force newline-delimited JSON event output
}

// Validate checks GenerateOptions for validity
func (opts GenerateOptions) Validate() error {
	if opts.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", opts.Count)
	}
	if opts.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	return nil
}

// NewGenerateCmd creates the generate command
func NewGenerateCmd(app *App) *cobra.Command {
	opts := GenerateOptions{
		Output: DefaultDatasetPath,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a quality-gated synthetic review dataset",
		Long: `Generate runs the guardrail loop: each output slot draws a review
request, invokes a generation backend, and scores the candidate against
diversity, bias, and realism evaluators. Rejected candidates are retried
up to the per-slot attempt cap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(2)
			}

			return app.RunGenerate(context.Background(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "Number of reviews to generate (default from config)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Request draw seed for reproducible runs (default time-based)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultDatasetPath, "Dataset output path")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable interactive display (use log output)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit newline-delimited JSON events on stdout")

	return cmd
}

// RunGenerate executes the generation run and writes the dataset.
func (a *App) RunGenerate(ctx context.Context, opts GenerateOptions) error {
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

	ds, err := a.runPipeline(ctx, cfg, bus, count, seed, opts)
	if ds != nil {
		if werr := ds.WriteFile(opts.Output); werr != nil {
			if err == nil {
				err = werr
			}
		} else {
			printRunSummary(ds, opts.Output)
		}
	}

	return err
}

// runPipeline wires the display, generators, and guardrail loop, and
// executes one run.
func (a *App) runPipeline(ctx context.Context, cfg *config.Config, bus *events.Bus, count int, seed int64, opts GenerateOptions) (*pipeline.Dataset, error) {
	useTUI := !opts.NoTUI && !opts.JSON && term.IsTerminal(int(os.Stdout.Fd()))

	if useTUI {
		model := tui.NewModel(count)
		program := tea.NewProgram(model, tea.WithAltScreen())
		bridge := tui.NewBridge(program)
		bus.Subscribe(bridge.Handler())

		go func() {
			if _, err := program.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "display error: %v\n", err)
			}
		}()
		defer bridge.SendDone()
	} else if events.IsJSONMode(opts.JSON) {
		emitter := events.NewJSONEmitter(os.Stdout)
		bus.Subscribe(events.JSONEmitterHandler(emitter))
	} else {
		bus.Subscribe(events.LogHandler(events.LogConfig{
			Writer:         os.Stderr,
			IncludePayload: a.verbose,
		}))
		bus.Subscribe(progressHandler(os.Stderr, count, cfg.Generation.BatchSize))
	}

	generators, err := buildGenerators(ctx, cfg)
	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(cfg, seed, pipeline.Dependencies{
		Generators: generators,
		Bus:        bus,
	})
	if err != nil {
		return nil, err
	}

	return p.Run(ctx, count)
}

// progressHandler prints a progress line every batchSize accepted slots
// (and on run completion) when the TUI is off.
func progressHandler(w io.Writer, requested, batchSize int) events.Handler {
	if batchSize < 1 {
		batchSize = 1
	}

	var accepted, rejected int
	return func(e events.Event) {
		switch e.Type {
		case events.SlotAccepted, events.SlotSalvaged:
			accepted++
			if accepted%batchSize == 0 {
				fmt.Fprintf(w, "Progress: %d/%d accepted, %d rejected\n", accepted, requested, rejected)
			}
		case events.AttemptRejected, events.AttemptFailed:
			rejected++
		case events.RunCompleted:
			if accepted%batchSize != 0 {
				fmt.Fprintf(w, "Progress: %d/%d accepted, %d rejected\n", accepted, requested, rejected)
			}
		}
	}
}

// buildGenerators creates one backend adapter per enabled model.
func buildGenerators(ctx context.Context, cfg *config.Config) ([]generator.Generator, error) {
	models := cfg.EnabledModels()
	if len(models) == 0 {
		return nil, fmt.Errorf("no enabled models in configuration")
	}

	generators := make([]generator.Generator, 0, len(models))
	for _, mc := range models {
		g, err := generator.FromModelConfig(ctx, mc)
		if err != nil {
			return nil, fmt.Errorf("failed to create generator for %s: %w", mc.Name, err)
		}
		generators = append(generators, g)
	}
	return generators, nil
}

// printRunSummary prints the post-run summary lines.
func printRunSummary(ds *pipeline.Dataset, output string) {
	fmt.Printf("\nGeneration complete:\n")
	fmt.Printf("  Accepted:        %d/%d\n", ds.Stats.TotalAccepted, ds.Stats.RequestedCount)
	fmt.Printf("  Attempts:        %d\n", ds.Stats.TotalAttempts)
	fmt.Printf("  Rejected:        %d (%.1f%%)\n", ds.Stats.TotalRejected, ds.Stats.RejectionRate()*100)
	if ds.Stats.AbandonedSlots > 0 {
		fmt.Printf("  Abandoned:       %d\n", ds.Stats.AbandonedSlots)
	}
	if ds.Stats.SalvagedSlots > 0 {
		fmt.Printf("  Salvaged:        %d\n", ds.Stats.SalvagedSlots)
	}
	fmt.Printf("  Duration:        %s\n", ds.Stats.Duration.Round(time.Millisecond))
	if ds.Stats.CapacityExceeded {
		fmt.Printf("  Warning:         %s\n", ds.Stats.Warning)
	}
	fmt.Printf("  Dataset:         %s\n", output)
}
