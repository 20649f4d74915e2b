package models

// Target kinds that can be stopped
const (
	TargetKindSageMaker = "sagemaker"
	TargetKindEC2       = "ec2"
)

// Normalized target statuses
const (
	TargetStatusPending  = "Pending"
	TargetStatusRunning  = "InService"
	TargetStatusStopping = "Stopping"
	TargetStatusStopped  = "Stopped"
	TargetStatusFailed   = "Failed"
	TargetStatusUnknown  = "Unknown"
)

// TargetInfo represents the compute resource watched by autostop
type TargetInfo struct {
	Identifier   string // Notebook instance name or EC2 instance ID
	Kind         string // sagemaker or ec2
	Name         string // Display name (Name tag for EC2)
	Status       string // Normalized status, see TargetStatus constants
	RawStatus    string // Status string as returned by the platform
	InstanceType string // e.g. ml.t3.medium or t3.large
	Region       string
	ARN          string
}

// IsStoppedOrStopping reports whether a stop request would be a no-op
func (t TargetInfo) IsStoppedOrStopping() bool {
	return t.Status == TargetStatusStopped || t.Status == TargetStatusStopping
}
