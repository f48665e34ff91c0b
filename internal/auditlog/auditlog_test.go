package auditlog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"starsort/internal/auditlog"
)

func sampleEntry(seq int) auditlog.Entry {
	return auditlog.Entry{
		Sequence:    seq,
		Origin:      "/raw/Light_0001.fit",
		Destination: "sessions/20240114/m31/gain120/300s/ha/minus21c_to_minus18c/light_20240115_031209_345_m31_ha_gain120_300s_minus19c.fit",
		Action:      auditlog.ActionCopied,
		FrameType:   "light",
		Target:      "m31",
		Filter:      "ha",
		ExposureSec: "300",
		Gain:        "120",
		TempC:       "-19.4",
		TempFolder:  "minus21c_to_minus18c",
		Timestamp:   "2024-01-15T03:12:09.345",
		SessionDate: "20240114",
		TZOffset:    "-6",
	}
}

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), auditlog.LogFileName(time.Now()))
	w, err := auditlog.NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	first := sampleEntry(1)
	second := sampleEntry(2)
	second.Action = auditlog.ActionSkippedExists
	second.Destination = ""
	if err := w.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := auditlog.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0] != first {
		t.Fatalf("first entry round trip mismatch: %+v", entries[0])
	}
	if entries[1].Action != auditlog.ActionSkippedExists || entries[1].Destination != "" {
		t.Fatalf("second entry mismatch: %+v", entries[1])
	}
}

func TestHeaderRowAndTabDelimiting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.tsv")
	w, err := auditlog.NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Append(sampleEntry(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "sequence_number\torigin_file\tdestination_file\taction") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if got := strings.Count(lines[1], "\t"); got != 13 {
		t.Fatalf("row has %d tabs, want 13", got)
	}
}

func TestNewWriterRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.tsv")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := auditlog.NewWriter(path); err == nil {
		t.Fatal("expected error when the log file already exists")
	}
}

func TestLogFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 3, 12, 9, 345e6, time.UTC)
	if got := auditlog.LogFileName(now); got != "organize_log_20240115_031209_345.tsv" {
		t.Fatalf("LogFileName = %q", got)
	}
}

func TestReadRejectsHeaderlessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.tsv")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := auditlog.Read(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}
