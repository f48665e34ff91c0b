package fitshdr_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"starsort/internal/fitshdr"
	"starsort/internal/testsupport"
)

func TestExtractReadsTypicalLightFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "light.fit")
	testsupport.WriteFITS(t, path,
		testsupport.Card{Name: "FRAME", Value: "Light"},
		testsupport.Card{Name: "OBJECT", Value: "M 31"},
		testsupport.Card{Name: "FILTER", Value: "Ha"},
		testsupport.Card{Name: "GAIN", Value: 120},
		testsupport.Card{Name: "EXPTIME", Value: 300.0},
		testsupport.Card{Name: "CCD-TEMP", Value: -19.4},
		testsupport.Card{Name: "DATE-OBS", Value: "2024-01-15T03:12:09.345"},
	)

	rec, err := fitshdr.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.FrameType != "Light" || rec.Target != "M 31" || rec.Filter != "Ha" {
		t.Fatalf("string fields mismatch: %+v", rec)
	}
	if !rec.HasGain || rec.Gain != 120 {
		t.Fatalf("gain mismatch: %+v", rec)
	}
	if !rec.HasExposure || rec.ExposureSec != 300 {
		t.Fatalf("exposure mismatch: %+v", rec)
	}
	if !rec.HasTemp || rec.TempC != -19.4 {
		t.Fatalf("temperature mismatch: %+v", rec)
	}
	want := time.Date(2024, 1, 15, 3, 12, 9, 345e6, time.UTC)
	if !rec.CaptureTime.Equal(want) {
		t.Fatalf("capture time = %v, want %v", rec.CaptureTime, want)
	}
}

func TestExtractFallbackKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.fit")
	testsupport.WriteFITS(t, path,
		testsupport.Card{Name: "IMAGETYP", Value: "Dark Frame"},
		testsupport.Card{Name: "GAIN", Value: 120.6},
		testsupport.Card{Name: "EXPOSURE", Value: 120.0},
		testsupport.Card{Name: "SET-TEMP", Value: -20.0},
		testsupport.Card{Name: "DATE-OBS", Value: "2024-01-15T03:12:09"},
	)

	rec, err := fitshdr.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.FrameType != "Dark Frame" {
		t.Fatalf("IMAGETYP fallback failed: %q", rec.FrameType)
	}
	if rec.Gain != 121 {
		t.Fatalf("gain should round to nearest integer, got %d", rec.Gain)
	}
	if !rec.HasExposure || rec.ExposureSec != 120 {
		t.Fatalf("EXPOSURE fallback failed: %+v", rec)
	}
	if !rec.HasTemp || rec.TempC != -20 {
		t.Fatalf("SET-TEMP fallback failed: %+v", rec)
	}
}

func TestExtractMissingKeywordsDoNotFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.fit")
	testsupport.WriteFITS(t, path)

	rec, err := fitshdr.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.FrameType != "" || rec.HasGain || rec.HasExposure || rec.HasTemp {
		t.Fatalf("absent keywords should stay unset: %+v", rec)
	}
	if rec.CaptureTime.IsZero() {
		t.Fatal("capture time should fall back to file modification time")
	}
}

func TestExtractUsesModTimeWithoutDateObs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodate.fit")
	testsupport.WriteFITS(t, path,
		testsupport.Card{Name: "FRAME", Value: "Bias"},
		testsupport.Card{Name: "GAIN", Value: 120},
	)
	mtime := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	rec, err := fitshdr.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !rec.CaptureTime.Equal(mtime) {
		t.Fatalf("capture time = %v, want file mtime %v", rec.CaptureTime, mtime)
	}
}

func TestExtractUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.fit")
	if err := os.WriteFile(path, []byte("not a fits file"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := fitshdr.Extract(path)
	if !errors.Is(err, fitshdr.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}

	_, err = fitshdr.Extract(filepath.Join(t.TempDir(), "absent.fit"))
	if !errors.Is(err, fitshdr.ErrUnreadable) {
		t.Fatalf("missing file should be unreadable, got %v", err)
	}
}
