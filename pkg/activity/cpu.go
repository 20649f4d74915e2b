package activity

import (
	"context"
	"fmt"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/prometheus/procfs"
	"github.com/younsl/autostop/internal/models"
)

// CPUTimes holds aggregate CPU time in seconds
type CPUTimes struct {
	Total float64
	Idle  float64
}

// NewCPUTimes folds the kernel counters into busy and idle time. Guest time
// is already part of user time and is not added again.
func NewCPUTimes(s procfs.CPUStat) CPUTimes {
	return CPUTimes{
		Total: s.User + s.Nice + s.System + s.Idle + s.Iowait + s.IRQ + s.SoftIRQ + s.Steal,
		Idle:  s.Idle + s.Iowait,
	}
}

// BusyPercent returns utilization between prev and t
func (t CPUTimes) BusyPercent(prev CPUTimes) float64 {
	total := t.Total - prev.Total
	if total <= 0 {
		return 0
	}
	idle := max(t.Idle-prev.Idle, 0)
	return max((total-idle)/total*100, 0)
}

// ProcStatSampler averages CPU utilization over a window by sampling the
// kernel stat counters once per interval.
type ProcStatSampler struct {
	Root     string
	Clock    clock.Clock
	Duration time.Duration
	Interval time.Duration
}

func (s *ProcStatSampler) Name() string   { return "procstat" }
func (s *ProcStatSampler) Signal() string { return models.SignalCPU }

// Read blocks for the sampling window. A window that yields fewer than two
// samples is an error: one sample is not a reliable utilization figure.
func (s *ProcStatSampler) Read(ctx context.Context) (Reading, error) {
	fs, err := openProcFS(s.Root)
	if err != nil {
		return Reading{}, err
	}

	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}
	count := int(s.Duration / interval)

	prev, err := readCPUTimes(fs)
	if err != nil {
		return Reading{}, err
	}

	var sum float64
	samples := 0
	for i := 0; i < count; i++ {
		timer := s.Clock.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Reading{}, fmt.Errorf("cpu sampling interrupted after %d samples: %w", samples, ctx.Err())
		case <-timer.C():
		}

		cur, err := readCPUTimes(fs)
		if err != nil {
			return Reading{}, err
		}
		sum += cur.BusyPercent(prev)
		samples++
		prev = cur
	}

	if samples < 2 {
		return Reading{}, fmt.Errorf("cpu sampling needs at least 2 samples, got %d", samples)
	}
	return Reading{CPUPercent: sum / float64(samples), CPUSamples: samples}, nil
}

func readCPUTimes(fs procfs.FS) (CPUTimes, error) {
	stat, err := fs.Stat()
	if err != nil {
		return CPUTimes{}, fmt.Errorf("error reading cpu counters: %w", err)
	}
	return NewCPUTimes(stat.CPUTotal), nil
}
