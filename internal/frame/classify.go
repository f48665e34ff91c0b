package frame

import "time"

// Classification is the normalized, category-specific view of a record.
// Fields a category drops are left at their zero value: flats and bias never
// carry a temperature, darks and bias never carry a target or filter, bias
// never carries an exposure.
type Classification struct {
	Type        Type
	Target      string // sanitized; light only
	Filter      string // sanitized; light and flat only, may be empty
	Gain        int
	ExposureSec float64 // light and dark only
	TempC       float64 // light and dark only
	HasTemp     bool
	CaptureTime time.Time
}

// Calibration reports whether this classification belongs in the reusable
// calibration library under the given policy. Only darks and bias frames
// qualify; lights and flats are always session-scoped.
func (c Classification) Calibration(libraryEnabled bool) bool {
	return libraryEnabled && (c.Type == Dark || c.Type == Bias)
}

// Classify maps a record to its frame category and extracts the normalized
// fields that category needs. It is a pure function over the record: a
// missing required field yields a MissingFieldError naming the field, an
// unknown frame-type keyword yields an UnrecognizedTypeError. Either failure
// applies to this file only.
func Classify(rec Record) (Classification, error) {
	t, err := ParseType(rec.FrameType)
	if err != nil {
		return Classification{}, err
	}

	cls := Classification{Type: t, CaptureTime: rec.CaptureTime}

	if !rec.HasGain {
		return Classification{}, &MissingFieldError{Field: "gain", Frame: t}
	}
	cls.Gain = rec.Gain

	switch t {
	case Light:
		if rec.Target == "" {
			return Classification{}, &MissingFieldError{Field: "target", Frame: t}
		}
		if !rec.HasExposure {
			return Classification{}, &MissingFieldError{Field: "exposure", Frame: t}
		}
		if !rec.HasTemp {
			return Classification{}, &MissingFieldError{Field: "temperature", Frame: t}
		}
		cls.Target = SanitizeTarget(rec.Target)
		cls.Filter = sanitizeFilter(rec.Filter)
		cls.ExposureSec = rec.ExposureSec
		cls.TempC = rec.TempC
		cls.HasTemp = true
	case Dark:
		if !rec.HasExposure {
			return Classification{}, &MissingFieldError{Field: "exposure", Frame: t}
		}
		if !rec.HasTemp {
			return Classification{}, &MissingFieldError{Field: "temperature", Frame: t}
		}
		cls.ExposureSec = rec.ExposureSec
		cls.TempC = rec.TempC
		cls.HasTemp = true
	case Flat:
		// Flats match lights by gain and filter; temperature and target are
		// dropped even when the header carries them.
		cls.Filter = sanitizeFilter(rec.Filter)
	case Bias:
		// Bias frames represent read noise only: exposure, temperature,
		// target, and filter are all dropped.
	}

	return cls, nil
}

func sanitizeFilter(filter string) string {
	if filter == "" {
		return ""
	}
	return Sanitize(filter)
}
