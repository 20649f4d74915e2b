package activity

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/younsl/autostop/internal/models"
)

// Collector reads every source once and builds an ActivitySnapshot. A
// source that fails degrades its signal to a value that keeps the instance
// running; collection itself never fails.
type Collector struct {
	logger            lager.Logger
	clock             clock.Clock
	sources           []ActivitySource
	ignoreConnections bool
	bootTime          func() (time.Time, error)
}

// NewCollector creates a Collector over sources
func NewCollector(logger lager.Logger, clk clock.Clock, ignoreConnections bool, sources ...ActivitySource) *Collector {
	return &Collector{
		logger:            logger.Session("collect"),
		clock:             clk,
		sources:           sources,
		ignoreConnections: ignoreConnections,
	}
}

// SetBootTime installs the fallback used when every last-activity source
// answered without error but none has recorded activity: the host has been
// idle since boot.
func (c *Collector) SetBootTime(f func() (time.Time, error)) {
	c.bootTime = f
}

// Sources returns the configured sources
func (c *Collector) Sources() []ActivitySource {
	return c.sources
}

// Collect measures all signals
func (c *Collector) Collect(ctx context.Context) models.ActivitySnapshot {
	snap := models.ActivitySnapshot{ConnIgnored: c.ignoreConnections}

	var (
		cpuSeen, connSeen, lastSeen bool
		connFailed, lastFailed      bool
		noActivity                  bool
	)

	for _, src := range c.sources {
		signal := src.Signal()
		if signal == models.SignalConnections && c.ignoreConnections {
			continue
		}

		c.logger.Debug("reading-source", lager.Data{"source": src.Name(), "signal": signal})
		reading, err := src.Read(ctx)

		switch signal {
		case models.SignalCPU:
			cpuSeen = true
			if err != nil {
				c.degrade(&snap, signal, src.Name(), err)
				continue
			}
			if !snap.CPUAvailable {
				snap.CPUAvailable = true
				snap.CPUPercent = reading.CPUPercent
				snap.CPUSamples = reading.CPUSamples
			}

		case models.SignalConnections:
			connSeen = true
			if err != nil {
				connFailed = true
				c.degrade(&snap, signal, src.Name(), err)
				continue
			}
			snap.Connections += reading.Connections

		case models.SignalLastActivity:
			lastSeen = true
			if errors.Is(err, ErrNoActivity) {
				noActivity = true
				c.logger.Debug("no-activity-recorded", lager.Data{"source": src.Name()})
				continue
			}
			if err != nil {
				lastFailed = true
				c.degrade(&snap, signal, src.Name(), err)
				continue
			}
			if reading.LastActivity.After(snap.LastActivity) {
				snap.LastActivity = reading.LastActivity
				snap.LastSource = src.Name()
			}

		default:
			c.logger.Info("unknown-signal", lager.Data{"source": src.Name(), "signal": signal})
		}
	}

	if !cpuSeen {
		c.degrade(&snap, models.SignalCPU, "none", errors.New("no source configured"))
	}

	switch {
	case c.ignoreConnections:
		snap.ConnAvailable = true
		snap.Connections = 0
	case !connSeen:
		c.degrade(&snap, models.SignalConnections, "none", errors.New("no source configured"))
	case connFailed:
		snap.Connections = 0
	default:
		snap.ConnAvailable = true
	}

	// One unreadable source may hide more recent activity than the others saw
	switch {
	case lastFailed:
		snap.LastActivity = time.Time{}
		snap.LastSource = ""
	case !snap.LastActivity.IsZero():
		snap.LastAvailable = true
	case !lastSeen:
		c.degrade(&snap, models.SignalLastActivity, "none", errors.New("no source configured"))
	case noActivity && c.bootTime != nil:
		boot, err := c.bootTime()
		if err != nil {
			c.degrade(&snap, models.SignalLastActivity, "boot-time", err)
			break
		}
		snap.LastActivity = boot
		snap.LastSource = "boot-time"
		snap.LastAvailable = true
	case noActivity:
		c.degrade(&snap, models.SignalLastActivity, "boot-time", errors.New("no activity recorded and boot time unknown"))
	}

	snap.CollectedAt = c.clock.Now()
	return snap
}

func (c *Collector) degrade(snap *models.ActivitySnapshot, signal, source string, err error) {
	unavailable := &SignalUnavailableError{Signal: signal, Source: source, Err: err}
	snap.Warnings = append(snap.Warnings, unavailable.Error())
	c.logger.Error("signal-unavailable", unavailable, lager.Data{
		"signal": signal,
		"source": source,
		"effect": degradedEffect[signal],
	})
}

var degradedEffect = map[string]string{
	models.SignalCPU:          "cpu treated as busy",
	models.SignalConnections:  "connections treated as busy",
	models.SignalLastActivity: "idle time treated as zero",
}
