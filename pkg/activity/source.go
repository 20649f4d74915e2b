// Package activity gathers the signals used to decide whether the host is idle.
package activity

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoActivity is returned by last-activity sources that were read
// successfully but have never recorded any user activity.
var ErrNoActivity = errors.New("no activity recorded")

// Reading is what one source measured. Only the fields belonging to the
// source's signal are meaningful.
type Reading struct {
	CPUPercent   float64
	CPUSamples   int
	Connections  int
	LastActivity time.Time
}

// ActivitySource measures one activity signal
type ActivitySource interface {
	// Name identifies the source in logs
	Name() string
	// Signal is one of models.SignalCPU, SignalConnections, SignalLastActivity
	Signal() string
	Read(ctx context.Context) (Reading, error)
}

// SignalUnavailableError reports a source that could not be read. The
// collector degrades the signal instead of aborting the evaluation.
type SignalUnavailableError struct {
	Signal string
	Source string
	Err    error
}

func (e *SignalUnavailableError) Error() string {
	return fmt.Sprintf("%s signal unavailable from %s: %v", e.Signal, e.Source, e.Err)
}

func (e *SignalUnavailableError) Unwrap() error {
	return e.Err
}
