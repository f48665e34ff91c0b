package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerLiftsComponentIntoPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	NewComponentLogger(logger, "organizer").Info("scan complete",
		Args(Int("frames", 42), Bool("rename", true), String("input", "/data/raw night"))...)

	line := buf.String()
	if !strings.Contains(line, " INFO organizer: scan complete") {
		t.Fatalf("missing component prefix in %q", line)
	}
	if !strings.Contains(line, "frames=42") || !strings.Contains(line, "rename=true") {
		t.Fatalf("missing attrs in %q", line)
	}
	if !strings.Contains(line, `input="/data/raw night"`) {
		t.Fatalf("value with spaces should be quoted in %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", Args(Error(errors.New("disk full")))...)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `error="disk full"`) {
		t.Fatalf("warn line missing or malformed: %q", out)
	}
}

func TestJSONFormatSelectsJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("imported", Args(Int("rows", 3))...)
	out := buf.String()
	for _, want := range []string{`"msg":"imported"`, `"level":"info"`, `"rows":3`} {
		if !strings.Contains(out, want) {
			t.Fatalf("json output missing %s: %q", want, out)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger must not be enabled")
	}
}
