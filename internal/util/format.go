// Package util holds small shared helpers.
package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a playback position as m:ss, or h:mm:ss once it
// reaches an hour. Negative durations render as 0:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
