package config

import (
	"strconv"
	"strings"
)

// Summary is the effective configuration in printable form
type Summary struct {
	IdleThresholdSeconds int      `yaml:"idle_threshold_seconds"`
	ActiveWindow         string   `yaml:"active_window"`
	ActiveDays           []int    `yaml:"active_days"`
	CPUThresholdPercent  float64  `yaml:"cpu_threshold_percent"`
	CPUCheckSeconds      int      `yaml:"cpu_check_duration_seconds"`
	CPUIntervalSeconds   int      `yaml:"cpu_sample_interval_seconds"`
	IgnoreConnections    bool     `yaml:"ignore_connections"`
	ServicePorts         string   `yaml:"service_ports,omitempty"`
	Target               string   `yaml:"target"`
	AWSRegion            string   `yaml:"aws_region"`
	AWSProfile           string   `yaml:"aws_profile,omitempty"`
	Stop                 StopView `yaml:"stop"`
	LockPath             string   `yaml:"lock_path"`
	LivenessPath         string   `yaml:"liveness_path,omitempty"`
	JupyterURL           string   `yaml:"jupyter_url,omitempty"`
	LogLevel             string   `yaml:"log_level"`
	LogFile              string   `yaml:"log_file,omitempty"`
	MetricsTextfile      string   `yaml:"metrics_textfile,omitempty"`
	CloudWatchNamespace  string   `yaml:"cloudwatch_namespace,omitempty"`
	CloudWatchLogGroup   string   `yaml:"cloudwatch_log_group,omitempty"`
	HistoryPath          string   `yaml:"history_path,omitempty"`
	EstimateSavings      bool     `yaml:"estimate_savings"`
}

// StopView summarizes the stop retry policy
type StopView struct {
	MaxAttempts    int     `yaml:"max_attempts"`
	BackoffSeconds float64 `yaml:"backoff_base_seconds"`
	Jitter         float64 `yaml:"jitter"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

// Summary returns the printable view of c
func (c *Config) Summary() Summary {
	ports := make([]string, 0, len(c.ServicePorts))
	for _, p := range c.ServicePorts {
		ports = append(ports, strconv.Itoa(p))
	}

	return Summary{
		IdleThresholdSeconds: int(c.IdleThreshold.Seconds()),
		ActiveWindow:         c.Window.String(),
		ActiveDays:           c.Window.Days,
		CPUThresholdPercent:  c.CPUThresholdPercent,
		CPUCheckSeconds:      int(c.CPUCheckDuration.Seconds()),
		CPUIntervalSeconds:   int(c.CPUSampleInterval.Seconds()),
		IgnoreConnections:    c.IgnoreConnections,
		ServicePorts:         strings.Join(ports, ","),
		Target:               c.TargetKind + "/" + c.TargetIdentifier,
		AWSRegion:            c.AWSRegion,
		AWSProfile:           c.AWSProfile,
		Stop: StopView{
			MaxAttempts:    c.Retry.MaxAttempts,
			BackoffSeconds: c.Retry.BaseDelay.Seconds(),
			Jitter:         c.Retry.Jitter,
			TimeoutSeconds: c.Retry.AttemptTimeout.Seconds(),
		},
		LockPath:            c.LockPath,
		LivenessPath:        c.LivenessPath,
		JupyterURL:          c.JupyterURL,
		LogLevel:            c.LogLevel,
		LogFile:             c.LogFile,
		MetricsTextfile:     c.MetricsTextfile,
		CloudWatchNamespace: c.CloudWatchNamespace,
		CloudWatchLogGroup:  c.CloudWatchLogGroup,
		HistoryPath:         c.History.Path,
		EstimateSavings:     c.EstimateSavings,
	}
}
