package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/utils"
)

// SageMakerAPI is the part of the SageMaker API used by autostop
type SageMakerAPI interface {
	DescribeNotebookInstance(ctx context.Context, params *sagemaker.DescribeNotebookInstanceInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeNotebookInstanceOutput, error)
	StopNotebookInstance(ctx context.Context, params *sagemaker.StopNotebookInstanceInput, optFns ...func(*sagemaker.Options)) (*sagemaker.StopNotebookInstanceOutput, error)
}

// SageMakerClient stops notebook instances
type SageMakerClient struct {
	client SageMakerAPI
	region string
}

// NewSageMakerClient creates a new SageMakerClient
func NewSageMakerClient(cfg aws.Config) *SageMakerClient {
	return NewSageMakerClientWithAPI(sagemaker.NewFromConfig(cfg), cfg.Region)
}

// NewSageMakerClientWithAPI wraps an existing API implementation
func NewSageMakerClientWithAPI(api SageMakerAPI, region string) *SageMakerClient {
	return &SageMakerClient{client: api, region: region}
}

// Describe returns the notebook instance status
func (c *SageMakerClient) Describe(ctx context.Context, name string) (models.TargetInfo, error) {
	out, err := c.client.DescribeNotebookInstance(ctx, &sagemaker.DescribeNotebookInstanceInput{
		NotebookInstanceName: aws.String(name),
	})
	if err != nil {
		return models.TargetInfo{}, fmt.Errorf("error describing notebook instance %s: %w", name, err)
	}

	raw := string(out.NotebookInstanceStatus)
	return models.TargetInfo{
		Identifier:   name,
		Kind:         models.TargetKindSageMaker,
		Name:         utils.StringOr(out.NotebookInstanceName, name),
		Status:       notebookStatus(out.NotebookInstanceStatus),
		RawStatus:    raw,
		InstanceType: string(out.InstanceType),
		Region:       c.region,
		ARN:          utils.StringOr(out.NotebookInstanceArn, ""),
	}, nil
}

// Stop requests the notebook instance to stop. A notebook that is already
// stopping or stopped is left alone, so repeated calls succeed.
func (c *SageMakerClient) Stop(ctx context.Context, name string) error {
	info, err := c.Describe(ctx, name)
	if err != nil {
		return classify(err)
	}
	if info.IsStoppedOrStopping() {
		return nil
	}

	_, err = c.client.StopNotebookInstance(ctx, &sagemaker.StopNotebookInstanceInput{
		NotebookInstanceName: aws.String(name),
	})
	if err == nil {
		return nil
	}

	// A concurrent stop makes the API reject the call with a validation error
	if ErrorCode(err) == "ValidationException" {
		if after, derr := c.Describe(ctx, name); derr == nil && after.IsStoppedOrStopping() {
			return nil
		}
	}
	return classify(fmt.Errorf("error stopping notebook instance %s: %w", name, err))
}

func notebookStatus(s types.NotebookInstanceStatus) string {
	switch s {
	case types.NotebookInstanceStatusInService:
		return models.TargetStatusRunning
	case types.NotebookInstanceStatusStopping:
		return models.TargetStatusStopping
	case types.NotebookInstanceStatusStopped:
		return models.TargetStatusStopped
	case types.NotebookInstanceStatusPending, types.NotebookInstanceStatusUpdating:
		return models.TargetStatusPending
	case types.NotebookInstanceStatusFailed, types.NotebookInstanceStatusDeleting:
		return models.TargetStatusFailed
	}
	return models.TargetStatusUnknown
}
