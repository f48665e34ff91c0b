package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"starsort/internal/auditlog"
)

// Run describes one organizer invocation for the runs table.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	InputDir      string
	OutputDir     string
	TZOffsetHours float64
	Found         int
	Copied        int
	Skipped       int
	Unreadable    int
	LogFile       string
}

// ImportRun records a finished run and its copied frames in one transaction.
// Only rows whose action is copied become frame records; skipped and
// unreadable files are visible through the run counters and the audit log.
// Re-importing a destination that is already cataloged is a no-op.
func (s *Store) ImportRun(ctx context.Context, run Run, entries []auditlog.Entry) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin import tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, started_at, finished_at, input_dir, output_dir, tz_offset_hours,
    frames_found, frames_copied, frames_skipped, frames_unreadable, log_file)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.StartedAt.UTC().Format(time.RFC3339),
			run.FinishedAt.UTC().Format(time.RFC3339),
			run.InputDir,
			run.OutputDir,
			run.TZOffsetHours,
			run.Found,
			run.Copied,
			run.Skipped,
			run.Unreadable,
			run.LogFile,
		)
		if err != nil {
			return fmt.Errorf("insert run %s: %w", run.ID, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO frames (run_id, sequence_number, origin_file, destination_file,
    frame_type, target, filter, exposure_sec, gain, temperature_c, temp_folder,
    captured_at, session_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare frame insert: %w", err)
		}
		defer stmt.Close()

		for _, entry := range entries {
			if entry.Action != auditlog.ActionCopied {
				continue
			}
			_, err := stmt.ExecContext(ctx,
				run.ID,
				entry.Sequence,
				entry.Origin,
				entry.Destination,
				entry.FrameType,
				nullString(entry.Target),
				nullString(entry.Filter),
				nullFloat(entry.ExposureSec),
				nullInt(entry.Gain),
				nullFloat(entry.TempC),
				nullString(entry.TempFolder),
				nullString(entry.Timestamp),
				nullString(entry.SessionDate),
			)
			if err != nil {
				return fmt.Errorf("insert frame %s: %w", entry.Destination, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit import: %w", err)
		}
		return nil
	})
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullFloat(value string) sql.NullFloat64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: parsed, Valid: true}
}

func nullInt(value string) sql.NullInt64 {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: parsed, Valid: true}
}
