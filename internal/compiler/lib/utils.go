package lib

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration in whole milliseconds, e.g. "12ms".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// ExecutionTime is the timing line shared by every report.
func ExecutionTime(d time.Duration) string {
	return "Execution time: " + FormatElapsed(d)
}
