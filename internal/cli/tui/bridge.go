package tui

import (
	"github.com/kessler-oss/revgen/internal/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Bridge connects the event bus to the bubbletea program
type Bridge struct {
	program *tea.Program
}

// NewBridge creates a new bridge for the given program
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{
		program: program,
	}
}

// Handler returns an event handler function for the event bus
func (b *Bridge) Handler() events.Handler {
	return func(evt events.Event) {
		msg := b.eventToMsg(evt)
		if msg != nil {
			b.program.Send(msg)
		}
	}
}

// eventToMsg converts an events.Event to a tea.Msg
func (b *Bridge) eventToMsg(evt events.Event) tea.Msg {
	payload, _ := evt.Payload.(map[string]any)

	switch evt.Type {
	case events.RunStarted:
		msg := RunStartedMsg{}
		if r, ok := payload["requested"].(int); ok {
			msg.Requested = r
		}
		if models, ok := payload["models"].([]string); ok {
			msg.Models = models
		}
		return msg

	case events.SlotStarted:
		msg := SlotStartedMsg{Model: evt.Model}
		if evt.Slot != nil {
			msg.Slot = *evt.Slot
		}
		if c, ok := payload["context"].(string); ok {
			msg.Context = c
		}
		return msg

	case events.AttemptStarted:
		msg := AttemptStartedMsg{Model: evt.Model}
		if evt.Slot != nil {
			msg.Slot = *evt.Slot
		}
		if evt.Attempt != nil {
			msg.Attempt = *evt.Attempt
		}
		return msg

	case events.AttemptRejected, events.AttemptFailed:
		msg := AttemptRejectedMsg{}
		if evt.Slot != nil {
			msg.Slot = *evt.Slot
		}
		if evt.Attempt != nil {
			msg.Attempt = *evt.Attempt
		}
		if r, ok := payload["reason"].(string); ok {
			msg.Reason = r
		} else if evt.Error != "" {
			msg.Reason = "generation_error"
		}
		return msg

	case events.SlotAccepted:
		msg := SlotAcceptedMsg{}
		if evt.Slot != nil {
			msg.Slot = *evt.Slot
		}
		if s, ok := payload["overall"].(float64); ok {
			msg.Score = s
		}
		if a, ok := payload["attempts"].(int); ok {
			msg.Attempts = a
		}
		return msg

	case events.SlotAbandoned:
		msg := SlotAbandonedMsg{}
		if evt.Slot != nil {
			msg.Slot = *evt.Slot
		}
		return msg

	case events.SlotSalvaged:
		msg := SlotSalvagedMsg{}
		if evt.Slot != nil {
			msg.Slot = *evt.Slot
		}
		if s, ok := payload["score"].(float64); ok {
			msg.Score = s
		}
		return msg

	case events.RunCapacityExceeded:
		return CapacityExceededMsg{}

	default:
		return nil
	}
}

// SendDone sends a DoneMsg to the program
func (b *Bridge) SendDone() {
	b.program.Send(DoneMsg{})
}

// SendQuit sends a QuitMsg to the program
func (b *Bridge) SendQuit() {
	b.program.Send(QuitMsg{})
}
