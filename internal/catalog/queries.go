package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionSummary aggregates cataloged frames for one observing night.
type SessionSummary struct {
	Date    string
	Targets int
	Lights  int
	Flats   int
	Darks   int
	Biases  int
}

// FrameRow is one cataloged frame. Numeric fields are zero when the source
// frame category carries no such value.
type FrameRow struct {
	RunID       string
	Sequence    int
	Origin      string
	Destination string
	FrameType   string
	Target      string
	Filter      string
	ExposureSec float64
	Gain        int
	TempC       float64
	TempFolder  string
	CapturedAt  string
	SessionDate string
}

// RunRow is one recorded organizer invocation.
type RunRow struct {
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

// Sessions returns per-night frame counts, newest first.
func (s *Store) Sessions(ctx context.Context) ([]SessionSummary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
SELECT session_date,
    COUNT(DISTINCT CASE WHEN frame_type = 'light' THEN target END),
    SUM(CASE WHEN frame_type = 'light' THEN 1 ELSE 0 END),
    SUM(CASE WHEN frame_type = 'flat' THEN 1 ELSE 0 END),
    SUM(CASE WHEN frame_type = 'dark' THEN 1 ELSE 0 END),
    SUM(CASE WHEN frame_type = 'bias' THEN 1 ELSE 0 END)
FROM frames
WHERE session_date IS NOT NULL
GROUP BY session_date
ORDER BY session_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var summary SessionSummary
		if err := rows.Scan(&summary.Date, &summary.Targets, &summary.Lights, &summary.Flats, &summary.Darks, &summary.Biases); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, summary)
	}
	return sessions, rows.Err()
}

// Frames returns cataloged frames, optionally filtered by target and filter
// name, ordered by capture time.
func (s *Store) Frames(ctx context.Context, target, filter string) ([]FrameRow, error) {
	ctx = ensureContext(ctx)
	query := `
SELECT run_id, sequence_number, origin_file, destination_file, frame_type,
    target, filter, exposure_sec, gain, temperature_c, temp_folder,
    captured_at, session_date
FROM frames`
	var (
		conds []string
		args  []any
	)
	if target != "" {
		conds = append(conds, "target = ?")
		args = append(args, target)
	}
	if filter != "" {
		conds = append(conds, "filter = ?")
		args = append(args, filter)
	}
	for i, cond := range conds {
		if i == 0 {
			query += "\nWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += "\nORDER BY captured_at, sequence_number"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var frames []FrameRow
	for rows.Next() {
		var (
			row        FrameRow
			target     sql.NullString
			filterName sql.NullString
			exposure   sql.NullFloat64
			gain       sql.NullInt64
			temp       sql.NullFloat64
			tempFolder sql.NullString
			capturedAt sql.NullString
			session    sql.NullString
		)
		err := rows.Scan(&row.RunID, &row.Sequence, &row.Origin, &row.Destination, &row.FrameType,
			&target, &filterName, &exposure, &gain, &temp, &tempFolder, &capturedAt, &session)
		if err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		row.Target = target.String
		row.Filter = filterName.String
		row.ExposureSec = exposure.Float64
		row.Gain = int(gain.Int64)
		row.TempC = temp.Float64
		row.TempFolder = tempFolder.String
		row.CapturedAt = capturedAt.String
		row.SessionDate = session.String
		frames = append(frames, row)
	}
	return frames, rows.Err()
}

// Runs returns all recorded runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunRow, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, finished_at, input_dir, output_dir, tz_offset_hours,
    frames_found, frames_copied, frames_skipped, frames_unreadable, log_file
FROM runs
ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var (
			row      RunRow
			started  string
			finished string
		)
		err := rows.Scan(&row.ID, &started, &finished, &row.InputDir, &row.OutputDir, &row.TZOffsetHours,
			&row.Found, &row.Copied, &row.Skipped, &row.Unreadable, &row.LogFile)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, started); err == nil {
			row.StartedAt = ts
		}
		if ts, err := time.Parse(time.RFC3339, finished); err == nil {
			row.FinishedAt = ts
		}
		runs = append(runs, row)
	}
	return runs, rows.Err()
}
