// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var errNoSearchResults = errors.New("no movies found for your search")

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find movies whose title contains a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = ctx.config.API.SearchLimit
			}
			movies := cat.Search(strings.Join(args, " "), limit)
			if len(movies) == 0 {
				return errNoSearchResults
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), movies)
			}

			rows := make([][]string, 0, len(movies))
			for i := range movies {
				m := &movies[i]
				rows = append(rows, []string{
					m.Title,
					strings.Join(m.Genres, ", "),
					m.ReleaseDate,
					strconv.FormatFloat(m.VoteAverage, 'f', 1, 64),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Genres", "Released", "Rating"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				shouldColorize(out),
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results (0 uses the configured search limit)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the results as JSON")
	return cmd
}
