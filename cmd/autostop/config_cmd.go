package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(v *viper.Viper, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.Context(), v, opts)
		},
	}
}

func runConfig(ctx context.Context, v *viper.Viper, opts *options) error {
	cfg, logger, err := loadConfig(ctx, v, opts, os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Summary()); err != nil {
		return exitWith(exitFatal, fmt.Errorf("error encoding configuration: %w", err))
	}
	return enc.Close()
}
