// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/dataset"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download missing dataset artifacts without loading them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			catalogPath, similarityPath, err := dataset.Ensure(cmd.Context(), app.DatasetConfig(cfg), app.NewArtifactStore(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog:    %s\n", catalogPath)
			fmt.Fprintf(out, "Similarity: %s\n", similarityPath)
			return nil
		},
	}
}
