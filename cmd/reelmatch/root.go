// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		if path != "" {
			c.config, c.configErr = config.LoadFrom(path)
			return
		}
		c.config, c.configErr = config.Load()
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool

	ctx := &commandContext{configFlag: &configFlag, verboseFlag: &verbose}

	rootCmd := &cobra.Command{
		Use:           "reelmatch",
		Short:         "Similar movie recommendations with TMDB posters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logging.Init(logging.Config{
				Level:     level,
				Format:    "console",
				Timestamp: true,
				Output:    cmd.ErrOrStderr(),
			})
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newTitlesCommand(ctx))
	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// shouldSkipConfig reports whether cmd or a parent opted out of loading
// configuration.
func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
