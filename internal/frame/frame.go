package frame

import (
	"strings"
	"time"
)

// Type enumerates the astronomical roles an exposure can play. The set is
// closed; Path Builder and Namer switch exhaustively over it.
type Type int

const (
	Light Type = iota
	Flat
	Dark
	Bias
)

func (t Type) String() string {
	switch t {
	case Light:
		return "light"
	case Flat:
		return "flat"
	case Dark:
		return "dark"
	case Bias:
		return "bias"
	default:
		return "unknown"
	}
}

// typeSynonyms maps normalized header frame-type keywords to frame types.
// Capture software disagrees on vocabulary: ASIAIR writes "Light", NINA
// writes "LIGHT", older SBIG tooling writes "Object" and "Zero".
var typeSynonyms = map[string]Type{
	"light":  Light,
	"object": Light,
	"flat":   Flat,
	"dark":   Dark,
	"bias":   Bias,
	"zero":   Bias,
}

// ParseType resolves a raw header frame-type keyword against the synonym
// table. Matching is case-insensitive and tolerates the common
// "Light Frame" / "Dark Frame" suffix style.
func ParseType(raw string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.TrimSuffix(normalized, " frame")
	normalized = strings.TrimSpace(normalized)
	if t, ok := typeSynonyms[normalized]; ok {
		return t, nil
	}
	return 0, &UnrecognizedTypeError{Value: raw}
}

// Record is the immutable metadata read from one exposure file's header.
// It is created once by the extraction adapter and never mutated.
type Record struct {
	Path        string
	FrameType   string    // raw header value, e.g. "Light Frame"
	CaptureTime time.Time // millisecond precision, as written (UTC)
	Target      string
	Filter      string
	Gain        int
	HasGain     bool
	ExposureSec float64
	HasExposure bool
	TempC       float64
	HasTemp     bool
}
