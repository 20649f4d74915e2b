package config

// Configuration keys. Environment variables use the AUTOSTOP_ prefix and the
// upper-cased key, e.g. AUTOSTOP_IDLE_THRESHOLD_SECONDS.
const (
	KeyIdleThreshold      = "idle_threshold_seconds"
	KeyStartHour          = "active_start_hour"
	KeyStartMinute        = "active_start_minute"
	KeyEndHour            = "active_end_hour"
	KeyEndMinute          = "active_end_minute"
	KeyTimezone           = "timezone"
	KeyActiveDays         = "active_days"
	KeyCPUThreshold       = "cpu_threshold_percent"
	KeyCPUCheckDuration   = "cpu_check_duration_seconds"
	KeyCPUSampleInterval  = "cpu_sample_interval_seconds"
	KeyIgnoreConnections  = "ignore_connections"
	KeyServicePorts       = "service_ports"
	KeyTargetIdentifier   = "target_identifier"
	KeyTargetKind         = "target_kind"
	KeyAWSRegion          = "aws_region"
	KeyAWSProfile         = "aws_profile"
	KeyStopMaxAttempts    = "stop_max_attempts"
	KeyStopBackoffBase    = "stop_backoff_base_seconds"
	KeyStopBackoffJitter  = "stop_backoff_jitter"
	KeyStopTimeout        = "stop_timeout_seconds"
	KeyLockPath           = "lock_path"
	KeyLivenessPath       = "liveness_path"
	KeyJupyterURL         = "jupyter_url"
	KeyLogLevel           = "log_level"
	KeyLogFile            = "log_file"
	KeyMetricsTextfile    = "metrics_textfile"
	KeyCloudWatchNS       = "cloudwatch_namespace"
	KeyCloudWatchLogGroup = "cloudwatch_log_group"
	KeyHistoryPath        = "history_path"
	KeyHistorySize        = "history_size"
	KeyHistoryTTL         = "history_ttl_seconds"
	KeyEstimateSavings    = "estimate_savings"
)

// Keys lists every configuration key in validation order. The first invalid
// key in this order is the one reported by Validate.
var Keys = []string{
	KeyIdleThreshold,
	KeyStartHour,
	KeyStartMinute,
	KeyEndHour,
	KeyEndMinute,
	KeyTimezone,
	KeyActiveDays,
	KeyCPUThreshold,
	KeyCPUCheckDuration,
	KeyCPUSampleInterval,
	KeyIgnoreConnections,
	KeyServicePorts,
	KeyTargetIdentifier,
	KeyTargetKind,
	KeyAWSRegion,
	KeyAWSProfile,
	KeyStopMaxAttempts,
	KeyStopBackoffBase,
	KeyStopBackoffJitter,
	KeyStopTimeout,
	KeyLockPath,
	KeyLivenessPath,
	KeyJupyterURL,
	KeyLogLevel,
	KeyLogFile,
	KeyMetricsTextfile,
	KeyCloudWatchNS,
	KeyCloudWatchLogGroup,
	KeyHistoryPath,
	KeyHistorySize,
	KeyHistoryTTL,
	KeyEstimateSavings,
}

// Defaults for optional keys. The active window bounds and the target
// identifier have no default.
var Defaults = map[string]interface{}{
	KeyIdleThreshold:      5400,
	KeyStartMinute:        0,
	KeyEndMinute:          0,
	KeyTimezone:           "UTC",
	KeyActiveDays:         "1,2,3,4,5",
	KeyCPUThreshold:       10,
	KeyCPUCheckDuration:   60,
	KeyCPUSampleInterval:  1,
	KeyIgnoreConnections:  false,
	KeyServicePorts:       "8443",
	KeyTargetKind:         "sagemaker",
	KeyAWSRegion:          "eu-west-1",
	KeyAWSProfile:         "",
	KeyStopMaxAttempts:    3,
	KeyStopBackoffBase:    2,
	KeyStopBackoffJitter:  0.2,
	KeyStopTimeout:        30,
	KeyLockPath:           "/var/run/autostop.lock",
	KeyLivenessPath:       "/var/log/code-server/activity",
	KeyJupyterURL:         "",
	KeyLogLevel:           "info",
	KeyLogFile:            "",
	KeyMetricsTextfile:    "",
	KeyCloudWatchNS:       "",
	KeyCloudWatchLogGroup: "",
	KeyHistoryPath:        "",
	KeyHistorySize:        12,
	KeyHistoryTTL:         3600,
	KeyEstimateSavings:    false,
}

// legacyKeys maps keys of the original autostop_config.env file to their
// current names.
var legacyKeys = map[string]string{
	"idle_time": KeyIdleThreshold,
}

// legacyEnv maps un-prefixed environment variables still honoured
var legacyEnv = map[string]string{
	KeyIdleThreshold: "IDLE_TIME",
	KeyTimezone:      "TIMEZONE",
	KeyAWSRegion:     "AWS_REGION",
	KeyAWSProfile:    "AWS_PROFILE",
	KeyLogLevel:      "LOG_LEVEL",
	KeyLogFile:       "LOG_FILE",
}
