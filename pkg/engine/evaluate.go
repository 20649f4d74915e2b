// Package engine turns activity snapshots into autostop decisions and
// carries out the stop request.
package engine

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/autostop/internal/config"
	"github.com/younsl/autostop/internal/models"
)

// Evaluate applies the decision rules, in order, to one snapshot. It never
// returns a stop state beyond IDLE_ELIGIBLE: requesting the stop is the
// Engine's job.
func Evaluate(now time.Time, cfg *config.Config, snap models.ActivitySnapshot) models.Decision {
	if d, suppressed := activeHours(now, cfg); suppressed {
		return d
	}

	d := models.Decision{
		Action:      models.ActionContinue,
		CPUPercent:  snap.CPUPercent,
		Connections: snap.Connections,
		EvaluatedAt: now,
	}

	if reason, busy := busyReason(cfg, snap); busy {
		d.State = models.StateBusy
		d.Reason = reason
		return d
	}

	d.IdleDuration = snap.IdleDuration(now)
	if d.IdleDuration < cfg.IdleThreshold {
		d.State = models.StateIdleBelowThreshold
		if !snap.LastAvailable {
			d.Reason = fmt.Sprintf("last activity unknown, idle time counted as 0 (threshold %s)", cfg.IdleThreshold)
		} else {
			d.Reason = fmt.Sprintf("idle for %s, below threshold %s (last activity %s via %s)",
				d.IdleDuration.Truncate(time.Second), cfg.IdleThreshold,
				humanize.RelTime(snap.LastActivity, now, "ago", "from now"), snap.LastSource)
		}
		return d
	}

	d.State = models.StateIdleEligible
	d.Action = models.ActionStop
	d.Reason = fmt.Sprintf("idle for %s, reached threshold %s", d.IdleDuration.Truncate(time.Second), cfg.IdleThreshold)
	return d
}

func activeHours(now time.Time, cfg *config.Config) (models.Decision, bool) {
	ev := cfg.Window.Evaluate(now)
	if !ev.Within {
		return models.Decision{}, false
	}
	return models.Decision{
		State:       models.StateActiveHoursSuppressed,
		Action:      models.ActionContinue,
		Reason:      ev.Reason,
		EvaluatedAt: now,
	}, true
}

// busyReason reports why the host counts as busy. Unmeasured CPU or
// connections count as activity.
func busyReason(cfg *config.Config, snap models.ActivitySnapshot) (string, bool) {
	if !snap.CPUAvailable {
		return "busy: cpu utilization could not be measured", true
	}
	if snap.CPUPercent > cfg.CPUThresholdPercent {
		return fmt.Sprintf("busy: cpu %.1f%% above threshold %.1f%%", snap.CPUPercent, cfg.CPUThresholdPercent), true
	}
	if cfg.IgnoreConnections || snap.ConnIgnored {
		return "", false
	}
	if !snap.ConnAvailable {
		return "busy: connections could not be counted", true
	}
	if snap.Connections > 0 {
		return fmt.Sprintf("busy: %d active connection(s)", snap.Connections), true
	}
	return "", false
}
