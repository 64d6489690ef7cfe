package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		}

	case TickMsg:
		// Continue ticking for timer updates
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		return m, tea.Quit

	case QuitMsg:
		m.Quitting = true
		return m, tea.Quit

	case RunStartedMsg:
		m.Requested = msg.Requested
		m.Models = msg.Models

	case SlotStartedMsg:
		m.Current = &SlotState{
			Slot:    msg.Slot,
			Model:   msg.Model,
			Context: msg.Context,
			Phase:   "starting",
			Icon:    IconWaiting,
		}

	case AttemptStartedMsg:
		if m.Current != nil && m.Current.Slot == msg.Slot {
			m.Current.Attempt = msg.Attempt
			m.Current.Model = msg.Model
			m.Current.Phase = "generating"
			m.Current.Icon = IconGenerate
		}

	case AttemptRejectedMsg:
		m.Rejected++
		if m.Current != nil && m.Current.Slot == msg.Slot {
			m.Current.Phase = fmt.Sprintf("rejected: %s", msg.Reason)
			m.Current.Icon = IconRejected
		}
		m.appendLog(fmt.Sprintf("%s slot %d attempt %d rejected (%s)",
			IconRejected, msg.Slot, msg.Attempt, msg.Reason))

	case SlotAcceptedMsg:
		m.Accepted++
		m.Current = nil
		m.appendLog(fmt.Sprintf("%s slot %d accepted (score %.1f, %d attempt(s))",
			IconAccepted, msg.Slot, msg.Score, msg.Attempts))

	case SlotAbandonedMsg:
		m.Abandoned++
		m.Current = nil
		m.appendLog(fmt.Sprintf("%s slot %d abandoned after attempt cap", IconAbandoned, msg.Slot))

	case SlotSalvagedMsg:
		m.Accepted++
		m.Salvaged++
		m.Current = nil
		m.appendLog(fmt.Sprintf("%s slot %d salvaged below threshold (score %.1f)",
			IconWaiting, msg.Slot, msg.Score))

	case CapacityExceededMsg:
		m.CapacityWarned = true
		m.appendLog("global attempt ceiling reached")
	}

	return m, nil
}

// appendLog adds a line to the rolling activity log.
func (m *Model) appendLog(line string) {
	m.LogLines = append(m.LogLines, line)
	if len(m.LogLines) > m.LogLimit {
		m.LogLines = m.LogLines[len(m.LogLines)-m.LogLimit:]
	}
}
