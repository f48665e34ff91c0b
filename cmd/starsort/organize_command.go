package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"starsort/internal/config"
	"starsort/internal/organizer"
)

const timeRounding = 10 * time.Millisecond

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var (
		tzOffset    float64
		noCalib     bool
		noRename    bool
		skipCatalog bool
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "organize <input-dir> <output-dir>",
		Short: "Classify and copy FITS exposures into the session library",
		Long: `Organize scans the input directory for FITS exposures, classifies each
frame by its header, and copies it into a deterministic hierarchy under the
output directory. Originals are never modified. Every run writes a TSV audit
log into the output directory and records itself in the catalog.

The timezone offset positions each exposure in local capture time so frames
from one observing night share a session date even when captures cross
midnight UTC.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			inputDir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input directory: %w", err)
			}
			outputDir, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}

			logger, closer, err := ctx.newLogger()
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			opts := organizer.Options{
				InputDir:           inputDir,
				OutputDir:          outputDir,
				TZOffsetHours:      tzOffset,
				CalibrationLibrary: cfg.Organize.CalibrationLibrary && !noCalib,
				RenameFiles:        cfg.Organize.RenameFiles && !noRename,
				ToleranceC:         cfg.Organize.TempToleranceC,
				Extensions:         cfg.Organize.Extensions,
				SkipCatalog:        !cfg.Catalog.Enabled || skipCatalog,
				CatalogPath:        firstNonEmpty(catalogPath, cfg.Catalog.Path),
			}

			org, err := organizer.New(opts, logger)
			if err != nil {
				return err
			}
			summary, err := org.Run(cmd.Context())
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().Float64Var(&tzOffset, "tz-offset", 0, "Hours to add to UTC header timestamps (e.g. -6 for CST)")
	cmd.Flags().BoolVar(&noCalib, "no-calib-library", false, "Keep darks and biases with their session instead of the calibration library")
	cmd.Flags().BoolVar(&noRename, "no-rename", false, "Keep original filenames (a capture timestamp suffix is still appended)")
	cmd.Flags().BoolVar(&skipCatalog, "skip-catalog", false, "Do not record this run in the catalog")
	cmd.Flags().StringVar(&catalogPath, "db", "", "Catalog database path (defaults to starsort.db in the output directory)")
	_ = cmd.MarkFlagRequired("tz-offset")

	return cmd
}

func printSummary(cmd *cobra.Command, summary organizer.Summary) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintln(out, "Organize complete")
	fmt.Fprintln(out, renderStatusLine("Found", statusInfo, fmt.Sprintf("%d", summary.Found), colorize))
	fmt.Fprintln(out, renderStatusLine("Copied", statusOK, fmt.Sprintf("%d", summary.Copied), colorize))

	skippedKind := statusInfo
	if summary.Skipped > 0 {
		skippedKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Skipped", skippedKind, fmt.Sprintf("%d", summary.Skipped), colorize))

	errorKind := statusInfo
	if summary.Errors > 0 || summary.Unreadable > 0 {
		errorKind = statusError
	}
	fmt.Fprintln(out, renderStatusLine("Errors", errorKind, fmt.Sprintf("%d", summary.Errors), colorize))
	fmt.Fprintln(out, renderStatusLine("Unreadable", errorKind, fmt.Sprintf("%d", summary.Unreadable), colorize))
	fmt.Fprintln(out, renderStatusLine("Elapsed", statusInfo, summary.Elapsed.Round(timeRounding).String(), colorize))
	fmt.Fprintln(out, renderStatusLine("Audit log", statusInfo, summary.LogPath, colorize))
	if summary.CatalogPath != "" {
		fmt.Fprintln(out, renderStatusLine("Catalog", statusInfo, summary.CatalogPath, colorize))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
