package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

// tickCmd drives the per-tick pipeline at display rate. The effective audio
// frame rate is lower: a frame is only produced when the device has consumed
// the previous one.
func tickCmd() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
