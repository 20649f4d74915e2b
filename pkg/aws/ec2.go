package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/retry"
	"github.com/younsl/autostop/pkg/utils"
)

// EC2API is the part of the EC2 API used by autostop
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

// EC2Client stops a plain EC2 instance running the editor
type EC2Client struct {
	client EC2API
	region string
}

// NewEC2Client creates a new EC2Client
func NewEC2Client(cfg aws.Config) *EC2Client {
	return NewEC2ClientWithAPI(ec2.NewFromConfig(cfg), cfg.Region)
}

// NewEC2ClientWithAPI wraps an existing API implementation
func NewEC2ClientWithAPI(api EC2API, region string) *EC2Client {
	return &EC2Client{client: api, region: region}
}

// Describe returns the instance state
func (c *EC2Client) Describe(ctx context.Context, instanceID string) (models.TargetInfo, error) {
	result, err := c.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return models.TargetInfo{}, fmt.Errorf("error querying EC2 instance %s: %w", instanceID, err)
	}

	for _, reservation := range result.Reservations {
		for _, instance := range reservation.Instances {
			if utils.SafeDeref(instance.InstanceId) != instanceID {
				continue
			}
			var state types.InstanceStateName
			if instance.State != nil {
				state = instance.State.Name
			}
			return models.TargetInfo{
				Identifier:   instanceID,
				Kind:         models.TargetKindEC2,
				Name:         utils.GetName(instance.Tags),
				Status:       instanceStatus(state),
				RawStatus:    string(state),
				InstanceType: string(instance.InstanceType),
				Region:       c.region,
			}, nil
		}
	}
	return models.TargetInfo{}, fmt.Errorf("EC2 instance %s not found", instanceID)
}

// Stop stops the instance. StopInstances is idempotent for stopping and
// stopped instances; a terminated instance cannot be stopped.
func (c *EC2Client) Stop(ctx context.Context, instanceID string) error {
	info, err := c.Describe(ctx, instanceID)
	if err != nil {
		return classify(err)
	}
	if info.IsStoppedOrStopping() {
		return nil
	}
	if info.RawStatus == string(types.InstanceStateNameTerminated) || info.RawStatus == string(types.InstanceStateNameShuttingDown) {
		return retry.Permanent(fmt.Errorf("EC2 instance %s is %s", instanceID, info.RawStatus))
	}

	_, err = c.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return classify(fmt.Errorf("error stopping EC2 instance %s: %w", instanceID, err))
	}
	return nil
}

func instanceStatus(s types.InstanceStateName) string {
	switch s {
	case types.InstanceStateNameRunning:
		return models.TargetStatusRunning
	case types.InstanceStateNamePending:
		return models.TargetStatusPending
	case types.InstanceStateNameStopping:
		return models.TargetStatusStopping
	case types.InstanceStateNameStopped:
		return models.TargetStatusStopped
	case types.InstanceStateNameShuttingDown, types.InstanceStateNameTerminated:
		return models.TargetStatusFailed
	}
	return models.TargetStatusUnknown
}
