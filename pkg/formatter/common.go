package formatter

import (
	"fmt"
	"io"
	"time"
)

// PrintTimestamp prints when the evaluation ran and how long it took
func PrintTimestamp(writer io.Writer, startTime time.Time, duration time.Duration) {
	timeStr := startTime.Format("2006-01-02 15:04:05 MST")
	durationStr := fmt.Sprintf("%.2fs", duration.Seconds())

	fmt.Fprintf(writer, "Evaluated at %s (took %s)\n", timeStr, durationStr)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
