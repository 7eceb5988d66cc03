package timestamp

import (
	"fmt"
	"math"
)

// Format renders an offset in seconds as HH:MM:SS.mmm. The value is truncated to whole
// milliseconds and hours are not wrapped at 24. Negative input is treated as zero.
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	totalMs := int64(seconds * 1000)
	hours := totalMs / 3_600_000
	remainder := totalMs % 3_600_000
	minutes := remainder / 60_000
	remainder %= 60_000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, remainder/1000, remainder%1000)
}
