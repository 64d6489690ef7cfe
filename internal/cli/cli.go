// Package cli wires the revgen commands: baseline collection, dataset
// generation, report rendering, and the end-to-end pipeline.
package cli

import (
	"github.com/spf13/cobra"
)

// VersionInfo holds build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Global flags
	verbose    bool
	configPath string

	// Version information
	versionInfo VersionInfo
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()

	app.rootCmd.AddCommand(NewGenerateCmd(app))
	app.rootCmd.AddCommand(NewCollectCmd(app))
	app.rootCmd.AddCommand(NewReportCmd(app))
	app.rootCmd.AddCommand(NewPipelineCmd(app))
	app.rootCmd.AddCommand(NewVersionCmd(app))

	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version information for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "revgen",
		Short: "Synthetic dev tool review generator",
		Long: `Revgen generates synthetic developer-tool reviews with LLM backends,
filtering every candidate through diversity, bias, and realism guardrails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")
	a.rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Path to YAML configuration (built-in defaults when omitted)")
}
