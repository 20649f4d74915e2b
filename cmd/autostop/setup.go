package main

import (
	"context"
	"io"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/viper"
	"github.com/younsl/autostop/internal/config"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/aws"
	"github.com/younsl/autostop/pkg/engine"
	"github.com/younsl/autostop/pkg/logging"
	"github.com/younsl/autostop/pkg/metrics"
	"github.com/younsl/autostop/pkg/pricing"
)

// loadConfig reads the config file, builds the logger, discovers the target
// when none is configured and validates the result. Any error is a
// configuration error.
func loadConfig(ctx context.Context, v *viper.Viper, opts *options, logOut io.Writer) (*config.Config, *logging.Logger, error) {
	path, required := opts.configPath, true
	if path == "" {
		path, required = config.DefaultConfigFile, false
	}
	if err := config.ReadFile(v, path, required); err != nil {
		return nil, nil, exitWith(exitConfig, err)
	}

	logger, err := logging.New("autostop", logging.Options{
		Level:  v.GetString(config.KeyLogLevel),
		File:   v.GetString(config.KeyLogFile),
		Stdout: logOut,
	})
	if err != nil {
		return nil, nil, exitWith(exitConfig, err)
	}

	discoverer := aws.NewDiscoverer(logger)
	if strings.TrimSpace(v.GetString(config.KeyTargetIdentifier)) == "" {
		kind := strings.ToLower(v.GetString(config.KeyTargetKind))
		id, source, err := discoverer.TargetIdentifier(ctx, kind)
		if err != nil {
			logger.Error("target-discovery-failed", err)
		} else {
			logger.Info("target-discovered", lager.Data{"target": id, "source": source})
			v.Set(config.KeyTargetIdentifier, id)
		}
	}

	if opts.discoverRegion {
		region, err := discoverer.Region(ctx)
		if err != nil {
			logger.Error("region-discovery-failed", err)
		} else {
			v.Set(config.KeyAWSRegion, region)
		}
	}

	cfg, err := config.Validate(config.RawFrom(v))
	if err != nil {
		logger.Error("invalid-configuration", err)
		logger.Close()
		return nil, nil, exitWith(exitConfig, err)
	}

	logger.Debug("configuration-loaded", lager.Data{
		"target":      cfg.TargetIdentifier,
		"target_kind": cfg.TargetKind,
		"region":      cfg.AWSRegion,
		"window":      cfg.Window.String(),
	})
	return cfg, logger, nil
}

// newTarget returns the platform adapter for the target kind
func newTarget(awsCfg awssdk.Config, kind string) engine.Target {
	if kind == models.TargetKindEC2 {
		return aws.NewEC2Client(awsCfg)
	}
	return aws.NewSageMakerClient(awsCfg)
}

// newRecorders returns the outputs configured for finished decisions
func newRecorders(ctx context.Context, logger lager.Logger, cfg *config.Config, awsCfg awssdk.Config, t engine.Target) []engine.Recorder {
	var recorders []engine.Recorder

	if cfg.MetricsTextfile != "" {
		recorders = append(recorders, metrics.NewTextfile(cfg.MetricsTextfile, cfg.TargetIdentifier))
	}

	if cfg.CloudWatchNamespace != "" {
		recorders = append(recorders, aws.NewMetricPublisher(awsCfg, cfg.CloudWatchNamespace, cfg.TargetIdentifier))
	}

	if cfg.EstimateSavings {
		if r := newSavingsRecorder(ctx, logger, cfg, t); r != nil {
			recorders = append(recorders, r)
		}
	}

	return recorders
}

func newSavingsRecorder(ctx context.Context, logger lager.Logger, cfg *config.Config, t engine.Target) *pricing.SavingsRecorder {
	info, err := t.Describe(ctx, cfg.TargetIdentifier)
	if err != nil {
		logger.Error("describe-target-failed", err)
		return nil
	}

	client, err := pricing.NewClient(ctx, logger, cfg.AWSProfile)
	if err != nil {
		logger.Error("pricing-client-failed", err)
		client = pricing.NewClientWithAPI(logger, nil)
	}
	return pricing.NewSavingsRecorder(logger, client, info)
}
