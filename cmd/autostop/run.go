package main

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/spf13/viper"
	"github.com/younsl/autostop/pkg/activity"
	"github.com/younsl/autostop/pkg/aws"
	"github.com/younsl/autostop/pkg/engine"
	"github.com/younsl/autostop/pkg/history"
	"github.com/younsl/autostop/pkg/lock"
)

const logFlushTimeout = 10 * time.Second

// runEvaluation performs one guarded evaluation and maps its outcome to an
// exit code
func runEvaluation(ctx context.Context, v *viper.Viper, opts *options) error {
	cfg, logger, err := loadConfig(ctx, v, opts, nil)
	if err != nil {
		return err
	}
	defer logger.Close()

	guard, err := lock.Acquire(cfg.LockPath)
	if errors.Is(err, lock.ErrConcurrentInvocation) {
		logger.Info("skipped", lager.Data{"reason": err.Error(), "lock_path": cfg.LockPath})
		return nil
	}
	if err != nil {
		logger.Error("lock-failed", err, lager.Data{"lock_path": cfg.LockPath})
		return exitWith(exitFatal, err)
	}
	defer guard.Release()

	awsCfg, err := aws.LoadConfig(ctx, cfg.AWSRegion, cfg.AWSProfile)
	if err != nil {
		logger.Error("aws-config-failed", err)
		return exitWith(exitFatal, err)
	}

	clk := clock.NewClock()

	if cfg.CloudWatchLogGroup != "" {
		sink := aws.NewLogSink(awsCfg, clk, cfg.CloudWatchLogGroup, cfg.TargetIdentifier, logger.Level)
		logger.RegisterSink(sink)
		defer func() {
			// ctx may already be cancelled by a signal
			fctx, cancel := context.WithTimeout(context.Background(), logFlushTimeout)
			defer cancel()
			if err := sink.Flush(fctx); err != nil {
				logger.Error("log-flush-failed", err, lager.Data{"stream": sink.Stream()})
			}
		}()
	}

	t := newTarget(awsCfg, cfg.TargetKind)
	recorders := newRecorders(ctx, logger, cfg, awsCfg, t)
	collector := activity.NewCollectorFromConfig(logger, clk, cfg)

	var hist engine.History
	if cfg.History.Enabled() {
		hist = history.NewStore(cfg.History.Path, cfg.History.Size, cfg.History.TTL)
	}

	eng := engine.NewEngine(logger, clk, cfg, collector, t, hist, recorders...)
	if _, err := eng.Run(ctx); err != nil {
		var stopErr *engine.StopRequestError
		if errors.As(err, &stopErr) {
			return exitWith(exitStopFailed, err)
		}
		return exitWith(exitFatal, err)
	}
	return nil
}
