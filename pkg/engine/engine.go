package engine

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/younsl/autostop/internal/config"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/retry"
)

// Target is the platform control plane of the watched resource. Both calls
// must be safe to repeat.
type Target interface {
	Describe(ctx context.Context, id string) (models.TargetInfo, error)
	Stop(ctx context.Context, id string) error
}

// Collector measures the activity signals
type Collector interface {
	Collect(ctx context.Context) models.ActivitySnapshot
}

// History smooths a snapshot with the ones kept from previous runs
type History interface {
	Smooth(now time.Time, snap models.ActivitySnapshot) (models.ActivitySnapshot, error)
}

// Recorder receives every finished decision
type Recorder interface {
	Record(ctx context.Context, d models.Decision, snap models.ActivitySnapshot) error
}

// ErrCancelled is returned when the run was interrupted before a stop
// request was issued
var ErrCancelled = errors.New("evaluation cancelled before stop request")

type Engine struct {
	logger    lager.Logger
	clock     clock.Clock
	cfg       *config.Config
	collector Collector
	target    Target
	history   History
	recorders []Recorder
}

// NewEngine creates an Engine. history may be nil.
func NewEngine(logger lager.Logger, clk clock.Clock, cfg *config.Config, collector Collector, target Target, history History, recorders ...Recorder) *Engine {
	return &Engine{
		logger:    logger.Session("engine", lager.Data{"target": cfg.TargetIdentifier}),
		clock:     clk,
		cfg:       cfg,
		collector: collector,
		target:    target,
		history:   history,
		recorders: recorders,
	}
}

// Run performs one evaluation. The returned error is non-nil only when a
// stop request failed after all attempts or the run was cancelled.
func (e *Engine) Run(ctx context.Context) (models.Decision, error) {
	if d, suppressed := activeHours(e.clock.Now(), e.cfg); suppressed {
		e.finish(ctx, d, models.ActivitySnapshot{})
		return d, nil
	}

	snap := e.Snapshot(ctx)
	d := Evaluate(e.clock.Now(), e.cfg, snap)
	if d.State != models.StateIdleEligible {
		e.finish(ctx, d, snap)
		return d, nil
	}

	if ctx.Err() != nil {
		d.Action = models.ActionContinue
		d.Reason = "cancelled before stop request: " + d.Reason
		e.finish(ctx, d, snap)
		return d, ErrCancelled
	}

	d, err := e.stop(ctx, d)
	e.finish(ctx, d, snap)
	return d, err
}

// Snapshot collects the signals and applies the smoothing history when
// one is configured
func (e *Engine) Snapshot(ctx context.Context) models.ActivitySnapshot {
	snap := e.collector.Collect(ctx)
	if e.history == nil {
		return snap
	}

	smoothed, err := e.history.Smooth(e.clock.Now(), snap)
	if err != nil {
		e.logger.Error("history-unavailable", err)
		snap.Warnings = append(snap.Warnings, "history: "+err.Error())
		return snap
	}
	return smoothed
}

func (e *Engine) stop(ctx context.Context, d models.Decision) (models.Decision, error) {
	logger := e.logger.Session("stop")
	id := e.cfg.TargetIdentifier

	d.State = models.StateStopRequested
	logger.Info("stop-requested", lager.Data{"reason": d.Reason})

	policy := retry.Policy{
		MaxAttempts: e.cfg.Retry.MaxAttempts,
		BaseDelay:   e.cfg.Retry.BaseDelay,
		Jitter:      e.cfg.Retry.Jitter,
	}
	// An attempt in flight is never cut short by cancellation of ctx, only
	// by its own timeout. Cancellation is honoured between attempts.
	attempt := func(ctx context.Context, n int) error {
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.Retry.AttemptTimeout)
		defer cancel()
		return e.target.Stop(actx, id)
	}
	notify := func(n int, err error, wait time.Duration) {
		logger.Error("stop-attempt-failed", err, lager.Data{"attempt": n, "retry_in": wait.String()})
	}

	attempts, err := retry.Do(ctx, e.clock, policy, attempt, notify)
	d.Attempts = attempts
	if err != nil {
		d.State = models.StateStopFailed
		d.Action = models.ActionContinue
		stopErr := &StopRequestError{Target: id, Attempts: attempts, Err: err}
		d.Reason = stopErr.Error()
		logger.Error("stop-failed", stopErr)
		return d, stopErr
	}

	d.State = models.StateStopConfirmed
	d.Action = models.ActionStop
	logger.Info("stop-confirmed", lager.Data{"attempts": attempts})
	return d, nil
}

func (e *Engine) finish(ctx context.Context, d models.Decision, snap models.ActivitySnapshot) {
	data := lager.Data{
		"state":        d.State,
		"decision":     d.Action,
		"reason":       d.Reason,
		"cpu_percent":  d.CPUPercent,
		"connections":  d.Connections,
		"idle_seconds": int64(d.IdleDuration / time.Second),
	}
	if d.Attempts > 0 {
		data["attempts"] = d.Attempts
	}
	if len(snap.Warnings) > 0 {
		data["warnings"] = snap.Warnings
	}
	e.logger.Info("decision", data)

	for _, r := range e.recorders {
		if err := r.Record(ctx, d, snap); err != nil {
			e.logger.Error("record-decision-failed", err)
		}
	}
}
