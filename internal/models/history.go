package models

import "time"

// HistoryEntry is one persisted sample of the smoothing history
type HistoryEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	CPUPercent  float64   `json:"cpu_percent"`
	Connections int       `json:"connections"`
}
