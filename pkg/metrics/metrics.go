// Package metrics exposes the last evaluation as Prometheus gauges in a
// node_exporter textfile.
package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/younsl/autostop/internal/models"
)

const namespace = "autostop"

var states = []models.State{
	models.StateActiveHoursSuppressed,
	models.StateBusy,
	models.StateIdleBelowThreshold,
	models.StateIdleEligible,
	models.StateStopRequested,
	models.StateStopConfirmed,
	models.StateStopFailed,
}

// Textfile writes one gauge family per signal after every decision
type Textfile struct {
	path     string
	registry *prometheus.Registry

	cpu          prometheus.Gauge
	connections  prometheus.Gauge
	idle         prometheus.Gauge
	state        *prometheus.GaugeVec
	available    *prometheus.GaugeVec
	stopAttempts prometheus.Gauge
	lastRun      prometheus.Gauge
}

func NewTextfile(path, target string) *Textfile {
	labels := prometheus.Labels{"target": target}
	t := &Textfile{
		path:     path,
		registry: prometheus.NewRegistry(),
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "cpu_percent",
			Help:        "Mean CPU utilization over the last sampling window.",
			ConstLabels: labels,
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "connections",
			Help:        "Established user connections to the service ports.",
			ConstLabels: labels,
		}),
		idle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "idle_seconds",
			Help:        "Time since the last user activity.",
			ConstLabels: labels,
		}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "state",
			Help:        "Decision state of the last evaluation, 1 for the current state.",
			ConstLabels: labels,
		}, []string{"state"}),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "signal_available",
			Help:        "Whether a signal could be measured in the last evaluation.",
			ConstLabels: labels,
		}, []string{"signal"}),
		stopAttempts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "stop_attempts",
			Help:        "Stop requests sent during the last evaluation.",
			ConstLabels: labels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_evaluation_timestamp_seconds",
			Help:        "Unix time of the last evaluation.",
			ConstLabels: labels,
		}),
	}
	t.registry.MustRegister(t.cpu, t.connections, t.idle, t.state, t.available, t.stopAttempts, t.lastRun)
	return t
}

// Registry returns the registry holding the gauges
func (t *Textfile) Registry() *prometheus.Registry {
	return t.registry
}

// Record updates the gauges and rewrites the textfile
func (t *Textfile) Record(ctx context.Context, d models.Decision, snap models.ActivitySnapshot) error {
	t.Update(d, snap)

	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("error creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(t.path, t.registry); err != nil {
		return fmt.Errorf("error writing metrics textfile %s: %w", t.path, err)
	}
	return nil
}

// Update sets the gauges from a decision
func (t *Textfile) Update(d models.Decision, snap models.ActivitySnapshot) {
	t.cpu.Set(snap.CPUPercent)
	t.connections.Set(float64(snap.Connections))
	t.idle.Set(d.IdleDuration.Seconds())
	t.stopAttempts.Set(float64(d.Attempts))
	t.lastRun.Set(float64(d.EvaluatedAt.Unix()))

	for _, s := range states {
		value := 0.0
		if s == d.State {
			value = 1
		}
		t.state.WithLabelValues(string(s)).Set(value)
	}

	t.available.WithLabelValues(models.SignalCPU).Set(boolValue(snap.CPUAvailable))
	t.available.WithLabelValues(models.SignalConnections).Set(boolValue(snap.ConnAvailable))
	t.available.WithLabelValues(models.SignalLastActivity).Set(boolValue(snap.LastAvailable))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
