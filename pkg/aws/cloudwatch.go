package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/autostop/internal/models"
)

// CloudWatchAPI is the part of the CloudWatch API used to publish metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricPublisher sends the signals of every decision to CloudWatch
type MetricPublisher struct {
	client    CloudWatchAPI
	namespace string
	target    string
}

// NewMetricPublisher creates a new MetricPublisher
func NewMetricPublisher(cfg aws.Config, namespace, target string) *MetricPublisher {
	return NewMetricPublisherWithAPI(cloudwatch.NewFromConfig(cfg), namespace, target)
}

// NewMetricPublisherWithAPI wraps an existing API implementation
func NewMetricPublisherWithAPI(api CloudWatchAPI, namespace, target string) *MetricPublisher {
	return &MetricPublisher{client: api, namespace: namespace, target: target}
}

// Record publishes the decision metrics. Unmeasured signals are skipped.
func (p *MetricPublisher) Record(ctx context.Context, d models.Decision, snap models.ActivitySnapshot) error {
	dimensions := []types.Dimension{{Name: aws.String("Target"), Value: aws.String(p.target)}}
	datum := func(name string, unit types.StandardUnit, value float64) types.MetricDatum {
		return types.MetricDatum{
			MetricName: aws.String(name),
			Unit:       unit,
			Value:      aws.Float64(value),
			Dimensions: dimensions,
			Timestamp:  aws.Time(d.EvaluatedAt),
		}
	}

	stopped := 0.0
	if d.Stopped() {
		stopped = 1
	}
	data := []types.MetricDatum{
		datum("IdleSeconds", types.StandardUnitSeconds, d.IdleDuration.Seconds()),
		datum("StopRequested", types.StandardUnitCount, stopped),
	}
	if snap.CPUAvailable {
		data = append(data, datum("CPUUtilization", types.StandardUnitPercent, snap.CPUPercent))
	}
	if snap.ConnAvailable && !snap.ConnIgnored {
		data = append(data, datum("ActiveConnections", types.StandardUnitCount, float64(snap.Connections)))
	}

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("error publishing metrics to %s: %w", p.namespace, err)
	}
	return nil
}
