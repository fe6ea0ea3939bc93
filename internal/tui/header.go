package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/txt2pptx/internal/format"
	"github.com/agbru/txt2pptx/internal/orchestration"
)

// HeaderModel renders the top bar: title, version, state and elapsed time
// of the current generation.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	state     orchestration.State
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// Start restarts the elapsed timer for a new generation.
func (h *HeaderModel) Start(now time.Time) {
	h.startTime = now
	h.endTime = time.Time{}
	h.state = orchestration.StateRunning
}

// Finish freezes the elapsed timer.
func (h *HeaderModel) Finish(now time.Time, state orchestration.State) {
	if h.endTime.IsZero() {
		h.endTime = now
	}
	h.state = state
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time spent on the current generation.
func (h HeaderModel) Elapsed(now time.Time) time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case !h.endTime.IsZero():
		return h.endTime.Sub(h.startTime)
	}
	return now.Sub(h.startTime)
}

// View renders the header.
func (h HeaderModel) View(now time.Time) string {
	titleText := "txt2pptx"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	status := statusStyles[h.state.String()].Render(h.state.String())
	elapsed := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed(now))))
	pipe := dimStyle.Render(" | ")

	row := titleStyle.Render(titleText) + pipe + status + pipe + elapsed
	gap := h.width - 2 - lipgloss.Width(row)
	return headerStyle.Render(row + spaces(gap))
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
