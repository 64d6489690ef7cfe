package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SlotState tracks the slot currently being filled.
type SlotState struct {
	Slot    int
	Attempt int
	Model   string
	Context string
	Phase   string
	Icon    string
}

// Model is the bubbletea model for the generation run display.
type Model struct {
	// Configuration
	Requested int
	Models    []string
	Styles    Styles

	// State
	Current        *SlotState
	Accepted       int
	Rejected       int
	Abandoned      int
	Salvaged       int
	CapacityWarned bool
	StartTime      time.Time
	LogLines       []string
	LogLimit       int

	// Control
	Quitting bool
	Done     bool
}

// NewModel creates a run display for the requested sample count.
func NewModel(requested int) *Model {
	return &Model{
		Requested: requested,
		Styles:    DefaultStyles(),
		StartTime: time.Now(),
		LogLimit:  8,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// TickMsg is sent every second to update the timer
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// DoneMsg signals the display should exit
type DoneMsg struct{}

// QuitMsg signals the user requested quit (q or Ctrl+C)
type QuitMsg struct{}

// RunStartedMsg carries the run parameters
type RunStartedMsg struct {
	Requested int
	Models    []string
}

// SlotStartedMsg indicates work began on an output slot
type SlotStartedMsg struct {
	Slot    int
	Model   string
	Context string
}

// AttemptStartedMsg indicates a generation attempt began
type AttemptStartedMsg struct {
	Slot    int
	Attempt int
	Model   string
}

// AttemptRejectedMsg indicates an attempt failed the guardrails
type AttemptRejectedMsg struct {
	Slot    int
	Attempt int
	Reason  string
}

// SlotAcceptedMsg indicates a slot was filled with a passing sample
type SlotAcceptedMsg struct {
	Slot     int
	Attempts int
	Score    float64
}

// SlotAbandonedMsg indicates a slot exhausted its attempts unfilled
type SlotAbandonedMsg struct {
	Slot int
}

// SlotSalvagedMsg indicates a slot was filled below threshold
type SlotSalvagedMsg struct {
	Slot  int
	Score float64
}

// CapacityExceededMsg indicates the global attempt ceiling was reached
type CapacityExceededMsg struct{}
