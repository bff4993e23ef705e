// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/catalog"
)

func newSnapshotCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Import the configured catalog into the snapshot store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.snapshotFlag != nil && *ctx.snapshotFlag {
				return errors.New("snapshot cannot read from the snapshot it writes")
			}
			cfg := ctx.config
			if cfg.Catalog.SnapshotPath == "" {
				return errNoSnapshotPath
			}

			cat, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			store, err := catalog.OpenSnapshot(catalog.SnapshotConfig{
				Path:       cfg.Catalog.SnapshotPath,
				SyncWrites: true,
			})
			if err != nil {
				return err
			}
			defer store.Close()

			meta, err := store.Save(cmd.Context(), cat.Movies(), cat.Source())
			if err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Build", "Movies", "Source", "Saved"},
				[][]string{{meta.BuildID, strconv.Itoa(meta.Count), meta.Source, meta.SavedAt.Format(time.RFC3339)}},
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
				shouldColorize(out),
			))
			return nil
		},
	}
}
