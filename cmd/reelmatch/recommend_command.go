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
	"github.com/tomtom215/reelmatch/internal/recommend"
)

type recommendationRow struct {
	recommend.Recommendation
	PosterURL   string `json:"poster_url,omitempty"`
	PosterError string `json:"poster_error,omitempty"`
}

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var k int
	var withPosters bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "List the movies most similar to a title",
		Long: "List the movies most similar to a title. The title must match a catalog " +
			"entry exactly, including case; use `reelmatch titles --search` to find it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			engine, err := app.LoadEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("k") {
				k = engine.DefaultK()
			}

			recs, err := engine.Recommend(cmd.Context(), args[0], k)
			if err != nil {
				return err
			}

			rows := make([]recommendationRow, len(recs))
			for i, rec := range recs {
				rows[i] = recommendationRow{Recommendation: rec}
			}

			if withPosters && len(recs) > 0 {
				stack, err := app.NewPosterStack(cfg)
				if err != nil {
					return err
				}
				defer stack.Close()

				ids := make([]catalog.ExternalID, len(recs))
				for i, rec := range recs {
					ids[i] = rec.MovieID
				}
				for i, res := range stack.Resolver.ResolveAll(cmd.Context(), ids) {
					rows[i].PosterURL = res.URL
					if res.Err != nil {
						rows[i].PosterError = res.Err.Error()
					}
				}
			}

			if asJSON {
				return writeJSON(cmd, rows)
			}
			return printRecommendations(cmd, args[0], rows, withPosters)
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 5, "Number of recommendations (defaults to recommend.default_k)")
	cmd.Flags().BoolVarP(&withPosters, "posters", "p", false, "Resolve TMDB poster URLs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func printRecommendations(cmd *cobra.Command, title string, rows []recommendationRow, withPosters bool) error {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintf(out, "No recommendations for %q\n", title)
		return nil
	}

	headers := []string{"#", "Title", "Movie ID", "Score"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight}
	if withPosters {
		headers = append(headers, "Poster")
		aligns = append(aligns, alignLeft)
	}

	table := make([][]string, len(rows))
	for i, row := range rows {
		line := []string{
			strconv.Itoa(row.Rank),
			row.Title,
			row.MovieID.String(),
			strconv.FormatFloat(row.Score, 'f', 4, 64),
		}
		if withPosters {
			poster := row.PosterURL
			if row.PosterError != "" {
				poster += " (lookup failed)"
			}
			line = append(line, poster)
		}
		table[i] = line
	}

	fmt.Fprintf(out, "Movies similar to %q:\n", title)
	fmt.Fprintln(out, renderTable(headers, table, aligns, shouldColorize(out)))
	return nil
}
