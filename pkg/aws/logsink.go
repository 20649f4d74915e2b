package aws

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// CloudWatchLogsAPI is the part of the CloudWatch Logs API used by the sink
type CloudWatchLogsAPI interface {
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// LogSink is a lager sink that buffers log lines and ships them to a
// CloudWatch Logs stream on Flush. One stream is used per target and day.
type LogSink struct {
	client   CloudWatchLogsAPI
	clock    clock.Clock
	group    string
	stream   string
	minLevel lager.LogLevel

	mu     sync.Mutex
	events []types.InputLogEvent
}

// NewLogSink creates a new LogSink
func NewLogSink(cfg aws.Config, clk clock.Clock, group, target string, minLevel lager.LogLevel) *LogSink {
	return NewLogSinkWithAPI(cloudwatchlogs.NewFromConfig(cfg), clk, group, target, minLevel)
}

// NewLogSinkWithAPI wraps an existing API implementation
func NewLogSinkWithAPI(api CloudWatchLogsAPI, clk clock.Clock, group, target string, minLevel lager.LogLevel) *LogSink {
	return &LogSink{
		client:   api,
		clock:    clk,
		group:    group,
		stream:   fmt.Sprintf("%s/%s", target, clk.Now().UTC().Format("2006-01-02")),
		minLevel: minLevel,
	}
}

// Log implements lager.Sink
func (s *LogSink) Log(log lager.LogFormat) {
	if log.LogLevel < s.minLevel {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, types.InputLogEvent{
		Message:   aws.String(string(log.ToJSON())),
		Timestamp: aws.Int64(s.clock.Now().UnixMilli()),
	})
}

// Stream returns the log stream name
func (s *LogSink) Stream() string {
	return s.stream
}

// Flush sends the buffered events. The stream is created on first use.
func (s *LogSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	events := s.events
	s.events = nil
	s.mu.Unlock()

	if len(events) == 0 {
		return nil
	}

	_, err := s.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(s.stream),
	})
	var exists *types.ResourceAlreadyExistsException
	if err != nil && !errors.As(err, &exists) {
		return fmt.Errorf("error creating log stream %s: %w", s.stream, err)
	}

	_, err = s.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(s.stream),
		LogEvents:     events,
	})
	if err != nil {
		return fmt.Errorf("error shipping %d log events to %s: %w", len(events), s.group, err)
	}
	return nil
}
