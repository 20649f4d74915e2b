package models

import "time"

// Signal names used in snapshots, logs and warnings
const (
	SignalCPU          = "cpu"
	SignalConnections  = "connections"
	SignalLastActivity = "last_activity"
)

// ActivitySnapshot holds the activity signals measured by one evaluation.
// A signal whose source could not be read is marked unavailable and the
// numeric field keeps its zero value.
type ActivitySnapshot struct {
	CPUPercent    float64   // Mean CPU utilization over the sampling window
	CPUSamples    int       // Number of samples averaged into CPUPercent
	CPUAvailable  bool      // Whether the CPU signal could be measured
	Connections   int       // Established user connections to service ports
	ConnIgnored   bool      // Connections are not an activity signal for this run
	ConnAvailable bool      // Whether the connection signal could be measured
	LastActivity  time.Time // Most recent user activity seen by any source
	LastSource    string    // Which source reported LastActivity
	LastAvailable bool      // Whether any last-activity source could be read
	CollectedAt   time.Time // When collection finished
	Warnings      []string  // Degraded signals, one message each
}

// IdleDuration returns how long the host has been idle at the given time.
// It never returns a negative duration.
func (s ActivitySnapshot) IdleDuration(now time.Time) time.Duration {
	if !s.LastAvailable || s.LastActivity.IsZero() {
		return 0
	}
	d := now.Sub(s.LastActivity)
	if d < 0 {
		return 0
	}
	return d
}
