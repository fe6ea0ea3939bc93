// Package format holds pure string formatting helpers shared by the CLI and
// the dashboard.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a duration for display.
// It shows microseconds below a millisecond, milliseconds below a second,
// and tenths of a second otherwise.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

// FormatBytes renders a byte count using binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatPercent renders a progress percentage, clamped to 0..100.
func FormatPercent(p int) string {
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	return fmt.Sprintf("%3d%%", p)
}
