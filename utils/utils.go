package utils

import (
	"fmt"
	"time"
)

// FormatTime renders a duration as compact hour/minute/second segments,
// omitting the units that are zero at the front.
func FormatTime(d time.Duration) string {
	seconds := int64(d.Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm:%ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh:%dm:%ds", seconds/3600, seconds%3600/60, seconds%60)
	}
}
