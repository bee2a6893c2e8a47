package util

import "fmt"

// FormatSeconds renders a second offset as an HH:MM:SS.mmm timecode.
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds / 3600)
	minutes := int(seconds/60) % 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}
