package models

import "time"

// CallerIdentity is the AWS principal autostop runs as
type CallerIdentity struct {
	Account string
	ARN     string
	UserID  string
	Profile string
}

// RoleInfo represents an IAM role that carries SageMaker permissions
type RoleInfo struct {
	RoleName         string     // IAM role name
	ARN              string     // Full ARN of the role
	Path             string     // Path to the role
	CreateDate       *time.Time // When the role was created
	MatchedPolicies  []string   // Attached policies that matched the SageMaker filter
	AttachedPolicies int        // Number of managed policies attached to the role
}
