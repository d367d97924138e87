package ui

import (
	"fmt"

	"github.com/olivier-w/climid/internal/media"
	"github.com/olivier-w/climid/internal/util"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 50
	}

	header := headerStyle.Render("climid")
	title := titleStyle.Render(m.meta.Title)
	subtitle := metaStyle.Render(describeMeta(m.meta))

	var ratio float64
	if m.duration > 0 {
		ratio = float64(m.elapsed) / float64(m.duration)
	}
	if ratio > 1 {
		ratio = 1
	}
	elapsedStr := timeStyle.Render(util.FormatDuration(m.elapsed))
	durationStr := timeStyle.Render(util.FormatDuration(m.duration))
	progressLine := fmt.Sprintf("%s %s %s", elapsedStr, m.progress.ViewAs(ratio), durationStr)

	statusIcon := "▶"
	statusText := "playing"
	if m.paused {
		statusIcon = "❚❚"
		statusText = "paused"
	}
	leftText := fmt.Sprintf("%s  %s  [%s]", statusIcon, statusText, m.modes[m.mode].Name())
	if icon := m.repeatMode.Icon(); icon != "" {
		leftText += "  " + icon
	}
	if icon := m.shuffleMode.Icon(); icon != "" {
		leftText += "  " + icon
	}
	if m.queue != nil {
		leftText += fmt.Sprintf("  %d/%d", m.queue.CurrentIndex()+1, m.queue.Len())
	}
	volStr := renderVolumePercent(m.volume)
	gap := w - len([]rune(leftText)) - len(volStr) - 4
	if gap < 2 {
		gap = 2
	}
	statusLine := statusStyle.Render(leftText) + spaces(gap) + statusStyle.Render(volStr)

	lines := "\n"
	lines += "  " + header + "\n"
	lines += "\n"
	lines += "  " + title + "\n"
	if m.meta.Tracks > 0 {
		lines += "  " + subtitle + "\n"
	}
	lines += "\n"
	lines += m.modes[m.mode].View() + "\n"
	lines += "\n"
	lines += "  " + progressLine + "\n"
	lines += "\n"
	lines += "  " + statusLine + "\n"
	if m.errMsg != "" {
		lines += "  " + helpStyle.Render(m.errMsg) + "\n"
	}
	lines += "\n"
	lines += "  " + helpStyle.Render(helpText(m.queue != nil)) + "\n"

	return lines
}

// describeMeta summarizes the SMF header for the subtitle line.
func describeMeta(meta media.Metadata) string {
	s := fmt.Sprintf("format %d · %d track", meta.Format, meta.Tracks)
	if meta.Tracks != 1 {
		s += "s"
	}
	if meta.BPM > 0 {
		s += fmt.Sprintf(" · %.0f bpm", meta.BPM)
	}
	return s
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " — climid"
	}
	return "▶ " + title + " — climid"
}
