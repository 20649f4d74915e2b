// Package config loads and validates the autostop configuration.
package config

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/schedule"
)

const (
	MinIdleThreshold = 300 * time.Second
	MaxIdleThreshold = 86400 * time.Second
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "error": true, "fatal": true,
}

var validTargetKinds = map[string]bool{
	models.TargetKindSageMaker: true,
	models.TargetKindEC2:       true,
}

// RetryConfig controls how the stop request is retried
type RetryConfig struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	Jitter         float64
	AttemptTimeout time.Duration
}

// HistoryConfig controls the optional smoothing history
type HistoryConfig struct {
	Path string
	Size int
	TTL  time.Duration
}

// Enabled reports whether snapshots are persisted between runs
func (h HistoryConfig) Enabled() bool {
	return h.Path != ""
}

// Config is the validated configuration of one evaluation. It is not
// modified after Validate returns.
type Config struct {
	IdleThreshold       time.Duration
	Window              schedule.Window
	CPUThresholdPercent float64
	CPUCheckDuration    time.Duration
	CPUSampleInterval   time.Duration
	IgnoreConnections   bool
	ServicePorts        []int
	TargetIdentifier    string
	TargetKind          string
	AWSRegion           string
	AWSProfile          string
	Retry               RetryConfig
	LockPath            string
	LivenessPath        string
	JupyterURL          string
	LogLevel            string
	LogFile             string
	MetricsTextfile     string
	CloudWatchNamespace string
	CloudWatchLogGroup  string
	History             HistoryConfig
	EstimateSavings     bool
}

// Validate turns raw configuration into a Config. It fails with a
// *ConfigError naming the first invalid field in Keys order.
func Validate(raw Raw) (*Config, error) {
	p := parser{raw: raw}
	c := &Config{}

	idle := p.int(KeyIdleThreshold, int(MinIdleThreshold.Seconds()), int(MaxIdleThreshold.Seconds()))
	c.IdleThreshold = time.Duration(idle) * time.Second

	start := schedule.TimeOfDay{
		Hour:   p.int(KeyStartHour, 0, 23),
		Minute: p.int(KeyStartMinute, 0, 59),
	}
	end := schedule.TimeOfDay{
		Hour:   p.int(KeyEndHour, 0, 23),
		Minute: p.int(KeyEndMinute, 0, 59),
	}
	if p.err == nil && end.Minutes() <= start.Minutes() {
		p.fail(KeyEndHour, end.String(), "must be after the active start %s; windows crossing midnight are not supported", start)
	}

	loc := p.location(KeyTimezone)
	days := p.days(KeyActiveDays)
	if p.err == nil {
		c.Window = schedule.Window{Start: start, End: end, Location: loc, Days: days}
	}

	c.CPUThresholdPercent = p.float(KeyCPUThreshold, 0, 100)
	if p.err == nil && c.CPUThresholdPercent == 0 {
		p.fail(KeyCPUThreshold, raw[KeyCPUThreshold], "must be greater than 0")
	}
	checkDuration := p.int(KeyCPUCheckDuration, 1, 3600)
	interval := p.int(KeyCPUSampleInterval, 1, 600)
	if p.err == nil && checkDuration < 2*interval {
		p.fail(KeyCPUCheckDuration, raw[KeyCPUCheckDuration], "must cover at least two samples of %ds", interval)
	}
	c.CPUCheckDuration = time.Duration(checkDuration) * time.Second
	c.CPUSampleInterval = time.Duration(interval) * time.Second

	c.IgnoreConnections = p.bool(KeyIgnoreConnections)
	c.ServicePorts = p.ports(KeyServicePorts, !c.IgnoreConnections)

	c.TargetIdentifier = p.str(KeyTargetIdentifier, true)
	c.TargetKind = strings.ToLower(p.str(KeyTargetKind, true))
	if p.err == nil && !validTargetKinds[c.TargetKind] {
		p.fail(KeyTargetKind, c.TargetKind, "must be one of sagemaker, ec2")
	}
	c.AWSRegion = p.str(KeyAWSRegion, true)
	c.AWSProfile = p.str(KeyAWSProfile, false)

	c.Retry.MaxAttempts = p.int(KeyStopMaxAttempts, 1, 10)
	c.Retry.BaseDelay = p.seconds(KeyStopBackoffBase)
	c.Retry.Jitter = p.float(KeyStopBackoffJitter, 0, 0.99)
	c.Retry.AttemptTimeout = p.seconds(KeyStopTimeout)

	c.LockPath = p.str(KeyLockPath, true)
	c.LivenessPath = p.str(KeyLivenessPath, false)
	c.JupyterURL = p.url(KeyJupyterURL)

	c.LogLevel = strings.ToLower(p.str(KeyLogLevel, true))
	if p.err == nil && !validLogLevels[c.LogLevel] {
		p.fail(KeyLogLevel, c.LogLevel, "must be one of debug, info, error, fatal")
	}
	c.LogFile = p.str(KeyLogFile, false)
	c.MetricsTextfile = p.str(KeyMetricsTextfile, false)
	c.CloudWatchNamespace = p.str(KeyCloudWatchNS, false)
	c.CloudWatchLogGroup = p.str(KeyCloudWatchLogGroup, false)

	c.History.Path = p.str(KeyHistoryPath, false)
	c.History.Size = p.int(KeyHistorySize, 1, 1000)
	c.History.TTL = time.Duration(p.int(KeyHistoryTTL, 60, 7*86400)) * time.Second

	c.EstimateSavings = p.bool(KeyEstimateSavings)

	if p.err != nil {
		return nil, p.err
	}
	return c, nil
}

// parser converts raw values and remembers the first failure. Once a field
// has failed every later call is a no-op returning a zero value.
type parser struct {
	raw Raw
	err *ConfigError
}

func (p *parser) fail(field, value, format string, args ...interface{}) {
	if p.err == nil {
		p.err = newConfigError(field, value, format, args...)
	}
}

func (p *parser) value(key string) (string, bool) {
	v, ok := p.raw[key]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) required(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.value(key)
	if !ok {
		p.fail(key, "", "is required")
		return "", false
	}
	return v, true
}

func (p *parser) int(key string, min, max int) int {
	v, ok := p.required(key)
	if !ok {
		return 0
	}
	n, err := cast.ToIntE(trimLeadingZeros(v))
	if err != nil {
		p.fail(key, v, "is not a whole number")
		return 0
	}
	if n < min || n > max {
		p.fail(key, v, "must be between %d and %d", min, max)
		return 0
	}
	return n
}

func (p *parser) float(key string, min, max float64) float64 {
	v, ok := p.required(key)
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !finite(f) {
		p.fail(key, v, "is not a number")
		return 0
	}
	if f < min || f > max {
		p.fail(key, v, "must be between %g and %g", min, max)
		return 0
	}
	return f
}

func (p *parser) seconds(key string) time.Duration {
	v, ok := p.required(key)
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !finite(f) {
		p.fail(key, v, "is not a number of seconds")
		return 0
	}
	if f <= 0 || f > MaxIdleThreshold.Seconds() {
		p.fail(key, v, "must be greater than 0 and at most %g", MaxIdleThreshold.Seconds())
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (p *parser) bool(key string) bool {
	if p.err != nil {
		return false
	}
	v, ok := p.value(key)
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(strings.ToLower(v))
	if err != nil {
		p.fail(key, v, "is not a boolean")
		return false
	}
	return b
}

func (p *parser) str(key string, required bool) string {
	if required {
		v, _ := p.required(key)
		return v
	}
	if p.err != nil {
		return ""
	}
	v, _ := p.value(key)
	return v
}

func (p *parser) location(key string) *time.Location {
	v, ok := p.required(key)
	if !ok {
		return nil
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		p.fail(key, v, "is not a known timezone: %v", err)
		return nil
	}
	return loc
}

func (p *parser) days(key string) []int {
	v, ok := p.required(key)
	if !ok {
		return nil
	}
	days, err := schedule.ParseDays(v)
	if err != nil {
		p.fail(key, v, "%v", err)
		return nil
	}
	return days
}

func (p *parser) ports(key string, required bool) []int {
	if p.err != nil {
		return nil
	}
	v, ok := p.value(key)
	if !ok {
		if required {
			p.fail(key, "", "is required unless %s is set", KeyIgnoreConnections)
		}
		return nil
	}

	var ports []int
	for _, field := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := cast.ToIntE(trimLeadingZeros(field))
		if err != nil || n < 1 || n > 65535 {
			p.fail(key, v, "contains invalid port %q", field)
			return nil
		}
		ports = append(ports, n)
	}
	return ports
}

func (p *parser) url(key string) string {
	if p.err != nil {
		return ""
	}
	v, ok := p.value(key)
	if !ok {
		return ""
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		p.fail(key, v, "is not an absolute URL")
		return ""
	}
	return strings.TrimRight(v, "/")
}

// trimLeadingZeros keeps "08" from being read as an octal literal
func trimLeadingZeros(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	if neg {
		return "-" + s
	}
	return s
}
