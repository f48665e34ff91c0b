package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"starsort/internal/catalog"
	"starsort/internal/config"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var dbPath string

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the frame catalog",
	}
	catalogCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Catalog database path")

	catalogCmd.AddCommand(newCatalogSessionsCommand(ctx, &dbPath))
	catalogCmd.AddCommand(newCatalogFramesCommand(ctx, &dbPath))
	catalogCmd.AddCommand(newCatalogRunsCommand(ctx, &dbPath))

	return catalogCmd
}

// resolveCatalogPath picks the database location: the --db flag first, then
// the configured catalog path. There is no output-directory fallback here
// because query commands do not know which output tree to look in.
func resolveCatalogPath(ctx *commandContext, dbPath *string) (string, error) {
	if *dbPath != "" {
		return config.ExpandPath(*dbPath)
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Catalog.Path != "" {
		return cfg.Catalog.Path, nil
	}
	return "", errors.New("no catalog database configured; pass --db or set catalog.path in the config")
}

func withCatalog(ctx *commandContext, dbPath *string, fn func(*catalog.Store) error) error {
	path, err := resolveCatalogPath(ctx, dbPath)
	if err != nil {
		return err
	}
	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newCatalogSessionsCommand(ctx *commandContext, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List observing nights with per-category frame counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(ctx, dbPath, func(store *catalog.Store) error {
				sessions, err := store.Sessions(cmd.Context())
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No sessions cataloged in %s\n", store.Path())
					return nil
				}

				tbl := newCatalogTable("Session", "Targets", "Lights", "Flats", "Darks", "Bias")
				for _, s := range sessions {
					tbl.addRow(s.Date, s.Targets, s.Lights, s.Flats, s.Darks, s.Biases)
				}
				fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
				return nil
			})
		},
	}
}

func newCatalogFramesCommand(ctx *commandContext, dbPath *string) *cobra.Command {
	var target, filter string

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "List cataloged frames, optionally filtered by target and filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(ctx, dbPath, func(store *catalog.Store) error {
				frames, err := store.Frames(cmd.Context(), target, filter)
				if err != nil {
					return err
				}
				if len(frames) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No frames match")
					return nil
				}

				titler := cases.Title(language.Und)
				tbl := newCatalogTable("Session", "Type", "Target", "Filter", "Exposure", "Gain", "Temp", "Destination")
				for _, f := range frames {
					var exposure measure
					if f.FrameType == "light" || f.FrameType == "dark" {
						exposure = measure(strconv.FormatFloat(f.ExposureSec, 'f', -1, 64) + "s")
					}
					tbl.addRow(
						f.SessionDate,
						titler.String(f.FrameType),
						titler.String(f.Target),
						f.Filter,
						exposure,
						f.Gain,
						f.TempFolder,
						f.Destination,
					)
				}
				fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Only frames of this target (sanitized name, e.g. m31)")
	cmd.Flags().StringVar(&filter, "filter", "", "Only frames shot through this filter")
	return cmd
}

func newCatalogRunsCommand(ctx *commandContext, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded organize runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(ctx, dbPath, func(store *catalog.Store) error {
				runs, err := store.Runs(cmd.Context())
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}

				tbl := newCatalogTable("Started", "Run", "Input", "Found", "Copied", "Skipped", "Unreadable")
				for _, r := range runs {
					tbl.addRow(
						r.StartedAt.Local().Format("2006-01-02 15:04:05"),
						r.ID,
						r.InputDir,
						r.Found,
						r.Copied,
						r.Skipped,
						r.Unreadable,
					)
				}
				fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
				return nil
			})
		},
	}
}
