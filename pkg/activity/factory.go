package activity

import (
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/younsl/autostop/internal/config"
)

// NewCollectorFromConfig wires the host sources described by cfg
func NewCollectorFromConfig(logger lager.Logger, clk clock.Clock, cfg *config.Config) *Collector {
	sources := []ActivitySource{
		&ProcStatSampler{
			Root:     DefaultProcRoot,
			Clock:    clk,
			Duration: cfg.CPUCheckDuration,
			Interval: cfg.CPUSampleInterval,
		},
	}

	if !cfg.IgnoreConnections {
		sources = append(sources, &ProcNetCounter{Root: DefaultProcRoot, Ports: cfg.ServicePorts})
	}

	if cfg.LivenessPath != "" {
		sources = append(sources, &LivenessFile{Path: cfg.LivenessPath})
	}

	if cfg.JupyterURL != "" {
		client := NewJupyterClient(cfg.JupyterURL)
		sources = append(sources, &JupyterSessions{Client: client})
		if !cfg.IgnoreConnections {
			sources = append(sources, &JupyterKernels{Client: client})
		}
	}

	collector := NewCollector(logger, clk, cfg.IgnoreConnections, sources...)
	collector.SetBootTime(func() (time.Time, error) {
		return BootTime(DefaultProcRoot)
	})
	return collector
}
