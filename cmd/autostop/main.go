package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/autostop/internal/config"
	"github.com/younsl/autostop/internal/version"
	"github.com/younsl/autostop/pkg/engine"

	_ "time/tzdata" // timezone database for hosts without zoneinfo
)

// Process exit codes
const (
	exitOK         = 0
	exitConfig     = 1
	exitStopFailed = 2
	exitFatal      = 3
)

// options are the flags that are not configuration keys
type options struct {
	configPath     string
	discoverRegion bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := config.NewViper()
	rootCmd := newRootCmd(v)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(exitCode(err))
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "autostop",
		Short: "Stop idle SageMaker notebook instances outside active hours",
		Long: `autostop evaluates CPU utilization, user connections and last activity
of the notebook instance it runs on, and stops the instance once it has been
idle for longer than the configured threshold outside active hours.

It is meant to be invoked periodically by cron or a systemd timer. Each
invocation performs exactly one evaluation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluation(cmd.Context(), v, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "",
		fmt.Sprintf("Config file (.env, .yaml, .json or .toml, default: %s)", config.DefaultConfigFile))
	flags.BoolVar(&opts.discoverRegion, "discover-region", false, "Read the AWS region from instance metadata")
	flags.StringP("target", "t", "", "Notebook instance name or EC2 instance ID (discovered when empty)")
	flags.String("target-kind", "", "Target kind: sagemaker or ec2")
	flags.StringP("region", "r", "", "AWS region")
	flags.StringP("profile", "p", "", "AWS shared config profile")
	flags.String("log-level", "", "Log level: debug, info, error or fatal")
	flags.Bool("ignore-connections", false, "Do not count open connections as activity")

	bindings := map[string]string{
		"target":             config.KeyTargetIdentifier,
		"target-kind":        config.KeyTargetKind,
		"region":             config.KeyAWSRegion,
		"profile":            config.KeyAWSProfile,
		"log-level":          config.KeyLogLevel,
		"ignore-connections": config.KeyIgnoreConnections,
	}
	for flag, key := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		newRunCmd(v, opts),
		newCheckCmd(v, opts),
		newPreflightCmd(v, opts),
		newConfigCmd(v, opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			},
		},
	)

	return rootCmd
}

func newRunCmd(v *viper.Viper, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Evaluate once and stop the target when it is idle (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluation(cmd.Context(), v, opts)
		},
	}
}

// exitError carries the process exit code of a failed command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return exitConfig
	}

	var stopErr *engine.StopRequestError
	if errors.As(err, &stopErr) {
		return exitStopFailed
	}

	return exitFatal
}
