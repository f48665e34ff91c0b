// Package auditlog writes the per-run TSV record of every decision the
// organizer made. One row per input frame, in chronological order, with
// skipped and unreadable files included so a run can be audited or replayed
// into the catalog later.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Actions recorded per frame.
const (
	ActionCopied            = "copied"
	ActionSkippedExists     = "skipped_exists"
	ActionSkippedError      = "skipped_error"
	ActionSkippedUnreadable = "skipped_unreadable"
)

var columns = []string{
	"sequence_number",
	"origin_file",
	"destination_file",
	"action",
	"frame_type",
	"target",
	"filter",
	"exposure_sec",
	"gain",
	"temperature_c",
	"temp_folder",
	"timestamp",
	"session_date",
	"tz_offset_hours",
}

// Entry is one audit log row. Fields that do not apply to a frame category
// (or could not be read) stay empty.
type Entry struct {
	Sequence    int
	Origin      string
	Destination string
	Action      string
	FrameType   string
	Target      string
	Filter      string
	ExposureSec string
	Gain        string
	TempC       string
	TempFolder  string
	Timestamp   string
	SessionDate string
	TZOffset    string
}

// LogFileName derives the audit log filename for a run started at now.
func LogFileName(now time.Time) string {
	return fmt.Sprintf("organize_log_%s_%03d.tsv", now.Format("20060102_150405"), now.Nanosecond()/1e6)
}

// Writer appends entries to a TSV audit log.
type Writer struct {
	file *os.File
	tsv  *csv.Writer
}

// NewWriter creates the audit log at path and writes the header row.
func NewWriter(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create audit log: %w", err)
	}
	tsv := csv.NewWriter(file)
	tsv.Comma = '\t'
	if err := tsv.Write(columns); err != nil {
		file.Close()
		return nil, fmt.Errorf("write audit log header: %w", err)
	}
	return &Writer{file: file, tsv: tsv}, nil
}

// Append writes one entry row.
func (w *Writer) Append(e Entry) error {
	row := []string{
		strconv.Itoa(e.Sequence),
		e.Origin,
		e.Destination,
		e.Action,
		e.FrameType,
		e.Target,
		e.Filter,
		e.ExposureSec,
		e.Gain,
		e.TempC,
		e.TempFolder,
		e.Timestamp,
		e.SessionDate,
		e.TZOffset,
	}
	if err := w.tsv.Write(row); err != nil {
		return fmt.Errorf("write audit log row: %w", err)
	}
	return nil
}

// Close flushes and closes the log file.
func (w *Writer) Close() error {
	w.tsv.Flush()
	if err := w.tsv.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush audit log: %w", err)
	}
	return w.file.Close()
}

// Read loads a complete audit log back into entries, validating the header.
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()

	tsv := csv.NewReader(file)
	tsv.Comma = '\t'
	tsv.FieldsPerRecord = len(columns)

	rows, err := tsv.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse audit log %s: %w", path, err)
	}
	if len(rows) == 0 || rows[0][0] != columns[0] {
		return nil, fmt.Errorf("audit log %s: missing header row", path)
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		seq, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("audit log %s: bad sequence number %q", path, row[0])
		}
		entries = append(entries, Entry{
			Sequence:    seq,
			Origin:      row[1],
			Destination: row[2],
			Action:      row[3],
			FrameType:   row[4],
			Target:      row[5],
			Filter:      row[6],
			ExposureSec: row[7],
			Gain:        row[8],
			TempC:       row[9],
			TempFolder:  row[10],
			Timestamp:   row[11],
			SessionDate: row[12],
			TZOffset:    row[13],
		})
	}
	return entries, nil
}
