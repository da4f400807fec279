// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/dataset"
)

type titleRow struct {
	Position int                `json:"position"`
	Title    string             `json:"title"`
	MovieID  catalog.ExternalID `json:"movie_id"`
}

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	var search string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List selectable movie titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			ds, err := dataset.Load(cmd.Context(), app.DatasetConfig(cfg), app.NewArtifactStore(cfg))
			if err != nil {
				return err
			}

			positions := ds.Catalog.SearchPositions(search, limit)
			rows := make([]titleRow, len(positions))
			for i, pos := range positions {
				rec := ds.Catalog.At(pos)
				rows[i] = titleRow{Position: pos, Title: rec.Title, MovieID: rec.MovieID}
			}

			if asJSON {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No matching titles")
				return nil
			}
			table := make([][]string, len(rows))
			for i, row := range rows {
				table[i] = []string{strconv.Itoa(row.Position), row.Title, row.MovieID.String()}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Position", "Title", "Movie ID"},
				table,
				[]columnAlignment{alignRight, alignLeft, alignRight},
				shouldColorize(out),
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive substring filter")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of titles (0 lists all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
