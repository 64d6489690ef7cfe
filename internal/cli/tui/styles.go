package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all lipgloss styles for the run display
type Styles struct {
	// Header styling
	Title lipgloss.Style
	Timer lipgloss.Style
	Model lipgloss.Style

	// Slot styling
	SlotActive lipgloss.Style
	SlotName   lipgloss.Style

	// Progress bar colors
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style

	// Phase icons and text
	PhaseIcon lipgloss.Style
	PhaseText lipgloss.Style

	// Footer styling
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Status counts
	StatusAccepted lipgloss.Style
	StatusRejected lipgloss.Style
	StatusWarning  lipgloss.Style

	// Log area styling
	LogTitle lipgloss.Style
	LogLine  lipgloss.Style
}

// DefaultStyles returns the default run display styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Timer: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Model: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		SlotActive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		SlotName:   lipgloss.NewStyle().Bold(true),

		ProgressFilled: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ProgressEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		PhaseIcon: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		PhaseText: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),

		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		FooterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),

		StatusAccepted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StatusRejected: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		StatusWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		LogTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
		LogLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Icons used in the run display
const (
	IconActive    = "●"
	IconAccepted  = "✓"
	IconRejected  = "✗"
	IconGenerate  = "✍"
	IconEvaluate  = "⚖"
	IconAbandoned = "∅"
	IconWaiting   = "⏳"
)
