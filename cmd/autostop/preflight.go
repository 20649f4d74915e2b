package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/autostop/pkg/aws"
	"github.com/younsl/autostop/pkg/formatter"
)

func newPreflightCmd(v *viper.Viper, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Validate AWS credentials, the target and SageMaker IAM roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreflight(cmd.Context(), v, opts)
		},
	}
}

func runPreflight(ctx context.Context, v *viper.Viper, opts *options) error {
	cfg, logger, err := loadConfig(ctx, v, opts, os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	awsCfg, err := aws.LoadConfig(ctx, cfg.AWSRegion, cfg.AWSProfile)
	if err != nil {
		return exitWith(exitFatal, err)
	}

	identity := aws.NewIdentityClient(awsCfg, cfg.AWSProfile)
	identity.ShowProgress(os.Stderr)

	fmt.Println("## AWS identity")
	caller, err := identity.CallerIdentity(ctx)
	if err != nil {
		return exitWith(exitFatal, err)
	}
	formatter.FormatIdentity(os.Stdout, caller)

	fmt.Println("\n## Target")
	info, err := newTarget(awsCfg, cfg.TargetKind).Describe(ctx, cfg.TargetIdentifier)
	if err != nil {
		return exitWith(exitFatal, fmt.Errorf("error describing target %s: %w", cfg.TargetIdentifier, err))
	}
	formatter.FormatTargetTable(os.Stdout, info)

	fmt.Println("\n## IAM roles with SageMaker permissions")
	roles, err := identity.SageMakerRoles(ctx)
	if err != nil {
		// Listing roles needs iam:ListRoles, which notebook roles often lack
		logger.Error("list-roles-failed", err)
		fmt.Printf("Unable to list IAM roles: %v\n", err)
		return nil
	}
	formatter.FormatRoleTable(os.Stdout, roles)
	return nil
}
