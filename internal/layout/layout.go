package layout

import (
	"fmt"
	"path"
	"time"

	"starsort/internal/frame"
	"starsort/internal/thermal"
)

// AdjustedTime shifts a capture timestamp by the run's timezone offset. FITS
// DATE-OBS values are UTC; local wall time drives session grouping and
// renamed filenames.
func AdjustedTime(capture time.Time, tzOffsetHours float64) time.Time {
	return capture.UTC().Add(time.Duration(tzOffsetHours * float64(time.Hour)))
}

// SessionDate derives the session folder date from a capture timestamp.
// Captures before local noon belong to the previous calendar day, so an
// overnight session that crosses midnight stays under one date.
func SessionDate(capture time.Time, tzOffsetHours float64) string {
	local := AdjustedTime(capture, tzOffsetHours)
	if local.Hour() < 12 {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format("20060102")
}

// GainToken renders a gain value as a path segment, e.g. "gain120".
func GainToken(gain int) string {
	return fmt.Sprintf("gain%d", gain)
}

// ExposureToken renders an exposure duration as a path segment: whole
// seconds for exposures of one second or more, milliseconds below that, and
// "0s" for zero (some capture software writes bias exposures as 0).
func ExposureToken(seconds float64) string {
	switch {
	case seconds == 0:
		return "0s"
	case seconds < 1:
		return fmt.Sprintf("%dms", int(seconds*1000))
	default:
		return fmt.Sprintf("%ds", int(seconds))
	}
}

// Dir builds the relative destination directory for one classified frame.
//
//	calibration library:  calibration/darks/<gain>/<exposure>/<temp>/
//	                      calibration/bias/<gain>/
//	session frames:       sessions/<date>/<target>/<gain>/<exposure>/<filter?>/<temp>/
//	                      sessions/<date>/flats/<gain>/<filter?>/
//	                      sessions/<date>/dark/<gain>/<exposure>/<temp>/
//	                      sessions/<date>/bias/<gain>/
//
// Gain sits above exposure in every branch so lights and flats, which must
// be gain-matched rather than exposure-matched, share a gain-level ancestor.
// Optional segments are omitted entirely, never written as empty strings.
func Dir(cls frame.Classification, bucket thermal.Bucket, date string, calibLibrary bool) string {
	gain := GainToken(cls.Gain)

	if cls.Calibration(calibLibrary) {
		if cls.Type == frame.Dark {
			return path.Join("calibration", "darks", gain, ExposureToken(cls.ExposureSec), bucket.Label())
		}
		return path.Join("calibration", "bias", gain)
	}

	base := path.Join("sessions", date)
	switch cls.Type {
	case frame.Light:
		segments := []string{base, cls.Target, gain, ExposureToken(cls.ExposureSec)}
		if cls.Filter != "" {
			segments = append(segments, cls.Filter)
		}
		segments = append(segments, bucket.Label())
		return path.Join(segments...)
	case frame.Flat:
		if cls.Filter != "" {
			return path.Join(base, "flats", gain, cls.Filter)
		}
		return path.Join(base, "flats", gain)
	case frame.Dark:
		return path.Join(base, "dark", gain, ExposureToken(cls.ExposureSec), bucket.Label())
	default: // bias
		return path.Join(base, "bias", gain)
	}
}
