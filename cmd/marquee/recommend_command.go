// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/recommend"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies similar to one title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := ctx.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			result, err := engine.RecommendSingle(cmd.Context(), title, limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd, fmt.Sprintf("Recommendations for %q", title), &result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "cap", 0, "Maximum recommendations (0 uses the configured cap)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	return cmd
}

func newWatchlistCommand(ctx *commandContext) *cobra.Command {
	var topN int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "watchlist <title>...",
		Short: "Recommend movies for a watchlist",
		Long: "Recommend movies for a watchlist. Titles are matched fuzzily; when fewer than\n" +
			"two resolve a fixed fallback list is returned.",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := ctx.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			result, err := engine.RecommendFromWatchlist(cmd.Context(), args, topN)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd, fmt.Sprintf("Recommendations for %d watchlist titles", len(args)), &result)
			if len(result.Resolved) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Matched: %s\n", strings.Join(result.Resolved, ", "))
			}
			if len(result.Unresolved) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Not found: %s\n", strings.Join(result.Unresolved, ", "))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", 0, "Number of recommendations (0 uses the configured default)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	return cmd
}

func printResult(cmd *cobra.Command, heading string, result *recommend.Result) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintln(out, heading)
	fmt.Fprintln(out, renderOutcome(result.Outcome, colorize))
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No recommendations.")
		return
	}

	rows := make([][]string, 0, len(result.Items))
	for i, item := range result.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.Title,
			string(item.Reason),
			strconv.FormatFloat(item.Score, 'f', 3, 64),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Reason", "Score"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
		colorize,
	))
}
