package tui

import (
	"fmt"
	"strings"
	"time"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.Done || m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderProgress())
	b.WriteString("\n")

	b.WriteString(m.renderCurrentSlot())

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")

	b.WriteString(m.renderLog())

	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with timer and model rotation
func (m *Model) renderHeader() string {
	elapsed := time.Since(m.StartTime).Round(time.Second)
	timer := fmt.Sprintf("[%s]", formatDuration(elapsed))
	models := fmt.Sprintf("Models: %s", strings.Join(m.Models, ", "))

	return fmt.Sprintf("%s  %s  %s",
		m.Styles.Title.Render("Revgen"),
		m.Styles.Timer.Render(timer),
		m.Styles.Model.Render(models),
	)
}

// renderProgress renders the overall bar: [████░░░░░░] 12/30 samples
func (m *Model) renderProgress() string {
	progress := m.renderProgressBar(m.Accepted, m.Requested, 30)
	return fmt.Sprintf("  %s %d/%d samples\n", progress, m.Accepted, m.Requested)
}

// renderCurrentSlot renders the slot being filled, if any
func (m *Model) renderCurrentSlot() string {
	if m.Current == nil {
		return "\n"
	}

	icon := m.Styles.SlotActive.Render(IconActive)
	name := m.Styles.SlotName.Render(fmt.Sprintf("slot %d", m.Current.Slot))
	detail := fmt.Sprintf("attempt %d · %s", m.Current.Attempt, m.Current.Model)

	phaseIcon := m.Styles.PhaseIcon.Render(m.Current.Icon)
	phaseText := m.Styles.PhaseText.Render(fmt.Sprintf("%s: %s", m.Current.Context, m.Current.Phase))

	return fmt.Sprintf("  %s %s %s\n      %s %s\n\n", icon, name, detail, phaseIcon, phaseText)
}

// renderProgressBar creates a progress bar of the given width
func (m *Model) renderProgressBar(completed, total, width int) string {
	if total == 0 {
		total = 1
	}

	filled := min((completed*width)/total, width)

	filledStr := strings.Repeat("█", filled)
	emptyStr := strings.Repeat("░", width-filled)

	return "[" +
		m.Styles.ProgressFilled.Render(filledStr) +
		m.Styles.ProgressEmpty.Render(emptyStr) +
		"]"
}

// renderStatusLine renders the summary status line
func (m *Model) renderStatusLine() string {
	accepted := m.Styles.StatusAccepted.Render(fmt.Sprintf("%d accepted", m.Accepted))
	rejected := m.Styles.StatusRejected.Render(fmt.Sprintf("%d rejected", m.Rejected))

	line := fmt.Sprintf("  %s | %s", accepted, rejected)
	if m.Abandoned > 0 {
		line += " | " + m.Styles.StatusWarning.Render(fmt.Sprintf("%d abandoned", m.Abandoned))
	}
	if m.Salvaged > 0 {
		line += " | " + m.Styles.StatusWarning.Render(fmt.Sprintf("%d salvaged", m.Salvaged))
	}
	if m.CapacityWarned {
		line += " | " + m.Styles.StatusWarning.Render("attempt ceiling reached")
	}
	return line
}

// renderLog renders the rolling activity log
func (m *Model) renderLog() string {
	if len(m.LogLines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + m.Styles.LogTitle.Render("Recent") + "\n")
	for _, line := range m.LogLines {
		b.WriteString("  " + m.Styles.LogLine.Render(line) + "\n")
	}
	return b.String()
}

// renderFooter renders the help text
func (m *Model) renderFooter() string {
	key := m.Styles.FooterKey.Render("q")
	return m.Styles.Footer.Render(fmt.Sprintf("  Press %s to quit", key))
}

// formatDuration formats a duration as HH:MM:SS
func formatDuration(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	min := d / time.Minute
	d -= min * time.Minute
	s := d / time.Second

	return fmt.Sprintf("%02d:%02d:%02d", h, min, s)
}
