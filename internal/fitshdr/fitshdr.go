// Package fitshdr adapts the FITS header-parsing library into the metadata
// record the classifier consumes. It is deliberately thin: every policy
// decision about the fields lives in frame, thermal, and layout.
package fitshdr

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/astrogo/fitsio"

	"starsort/internal/frame"
)

// ErrUnreadable marks files whose primary header cannot be parsed. The
// orchestrator records them as skipped_unreadable and moves on.
var ErrUnreadable = errors.New("unreadable fits file")

// DATE-OBS layouts seen in the wild. FITS timestamps carry no zone
// designator and are UTC by convention; a trailing Z shows up anyway in
// some capture software.
var captureLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Extract reads the primary HDU header of the file at path and returns the
// metadata record for classification. A file the library cannot parse
// yields an error wrapping ErrUnreadable. Missing keywords do not fail
// extraction; the classifier decides which absences matter per category.
func Extract(path string) (frame.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return frame.Record{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	fits, err := fitsio.Open(f)
	if err != nil {
		return frame.Record{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer fits.Close()

	hdr := fits.HDU(0).Header()
	rec := frame.Record{Path: path}

	rec.FrameType, _ = stringValue(hdr, "FRAME", "IMAGETYP")
	rec.Target, _ = stringValue(hdr, "OBJECT", "OBJNAME")
	rec.Filter, _ = stringValue(hdr, "FILTER")

	if gain, ok := floatValue(hdr, "GAIN"); ok {
		rec.Gain = int(gain + 0.5)
		rec.HasGain = true
	}
	if exp, ok := floatValue(hdr, "EXPTIME", "EXPOSURE"); ok {
		rec.ExposureSec = exp
		rec.HasExposure = true
	}
	if temp, ok := floatValue(hdr, "CCD-TEMP", "SET-TEMP"); ok {
		rec.TempC = temp
		rec.HasTemp = true
	}

	rec.CaptureTime = captureTime(hdr, path)
	return rec, nil
}

// captureTime parses DATE-OBS (falling back to DATE) with millisecond
// precision. Without a usable header timestamp the file's modification time
// stands in, matching what capture software sets on write.
func captureTime(hdr *fitsio.Header, path string) time.Time {
	if raw, ok := stringValue(hdr, "DATE-OBS", "DATE"); ok {
		for _, layout := range captureLayouts {
			if ts, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
				return ts.UTC().Truncate(time.Millisecond)
			}
		}
	}
	if info, err := os.Stat(path); err == nil {
		return info.ModTime().UTC().Truncate(time.Millisecond)
	}
	return time.Now().UTC().Truncate(time.Millisecond)
}

func stringValue(hdr *fitsio.Header, keys ...string) (string, bool) {
	for _, key := range keys {
		card := hdr.Get(key)
		if card == nil || card.Value == nil {
			continue
		}
		if s := strings.TrimSpace(fmt.Sprint(card.Value)); s != "" {
			return s, true
		}
	}
	return "", false
}

func floatValue(hdr *fitsio.Header, keys ...string) (float64, bool) {
	for _, key := range keys {
		card := hdr.Get(key)
		if card == nil || card.Value == nil {
			continue
		}
		switch v := card.Value.(type) {
		case float64:
			return v, true
		case float32:
			return float64(v), true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}
