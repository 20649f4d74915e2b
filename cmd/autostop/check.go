package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/autostop/internal/config"
	"github.com/younsl/autostop/internal/models"
	"github.com/younsl/autostop/pkg/activity"
	"github.com/younsl/autostop/pkg/aws"
	"github.com/younsl/autostop/pkg/engine"
	"github.com/younsl/autostop/pkg/formatter"
	"github.com/younsl/autostop/pkg/pricing"
	"github.com/younsl/autostop/pkg/utils"
)

func newCheckCmd(v *viper.Viper, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show the activity signals and the decision without stopping anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), v, opts)
		},
	}
}

func runCheck(ctx context.Context, v *viper.Viper, opts *options) error {
	// Log lines go to stderr so the tables stay readable
	cfg, logger, err := loadConfig(ctx, v, opts, os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	clk := clock.NewClock()
	startTime := clk.Now()

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Sampling CPU for %s ...", utils.FormatDuration(cfg.CPUCheckDuration))
	s.FinalMSG = "✓ Activity signals collected\n"
	s.Start()
	snap := activity.NewCollectorFromConfig(logger, clk, cfg).Collect(ctx)
	s.Stop()

	if ctx.Err() != nil {
		return exitWith(exitFatal, ctx.Err())
	}

	now := clk.Now()
	d := engine.Evaluate(now, cfg, snap)

	fmt.Println()
	printTarget(ctx, logger, cfg)

	fmt.Println("\n## Activity signals")
	formatter.FormatSignalTable(os.Stdout, snap, now)
	formatter.FormatDecision(os.Stdout, d)
	if d.Action == models.ActionStop {
		fmt.Println("\nDry run: no stop request was issued.")
	}

	fmt.Println()
	formatter.PrintTimestamp(os.Stdout, startTime, clk.Since(startTime))
	return nil
}

// printTarget describes the target and, when enabled, its hourly price.
// Failures are printed and do not fail the check.
func printTarget(ctx context.Context, logger lager.Logger, cfg *config.Config) {
	fmt.Println("## Target")

	awsCfg, err := aws.LoadConfig(ctx, cfg.AWSRegion, cfg.AWSProfile)
	if err != nil {
		fmt.Printf("Unable to load AWS config: %v\n", err)
		return
	}

	info, err := newTarget(awsCfg, cfg.TargetKind).Describe(ctx, cfg.TargetIdentifier)
	if err != nil {
		fmt.Printf("Unable to describe %s: %v\n", cfg.TargetIdentifier, err)
		return
	}
	formatter.FormatTargetTable(os.Stdout, info)

	if !cfg.EstimateSavings || info.InstanceType == "" {
		return
	}

	client, err := pricing.NewClient(ctx, logger, cfg.AWSProfile)
	if err != nil {
		fmt.Printf("Unable to create pricing client: %v\n", err)
		return
	}
	client.ShowProgress(os.Stderr)

	hourly, source := client.HourlyPrice(ctx, info.Kind, info.InstanceType, info.Region)
	if source == pricing.PricingSourceNA {
		fmt.Printf("\nNo price found for %s in %s\n", info.InstanceType, info.Region)
	} else {
		fmt.Printf("\nHourly price: $%.4f (%s), about $%.2f per month while running\n",
			hourly, source, pricing.MonthlyCost(hourly))
	}
	formatter.PrintPricingStats(os.Stdout, client.Stats())
}
