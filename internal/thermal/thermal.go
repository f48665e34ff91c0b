package thermal

import (
	"fmt"
	"math"
)

// BucketKind discriminates the temperature bucket variants.
type BucketKind int

const (
	// Rounded is a single integer-degree bucket used by calibration darks.
	Rounded BucketKind = iota
	// Range is a floor/ceil bucket shared by session frames whose
	// temperatures fall within the tolerance window of each other.
	Range
	// Outlier marks a frame whose temperature falls outside its group's
	// representative range.
	Outlier
)

// Direction locates an outlier relative to its group's range.
type Direction int

const (
	Below Direction = iota
	Above
)

// Bucket is the discrete temperature slot assigned to one frame.
type Bucket struct {
	Kind      BucketKind
	Value     int // Rounded bucket degree, or the outlier's rounded degree
	Floor     int // Range bounds, inclusive
	Ceil      int
	Direction Direction
}

// Round rounds a Celsius value half away from zero, so -19.5 rounds to -20
// and 19.5 rounds to 20. Applied before any floor/ceil computation so range
// bounds are always integers.
func Round(tempC float64) int {
	if tempC < 0 {
		return -int(math.Floor(-tempC + 0.5))
	}
	return int(math.Floor(tempC + 0.5))
}

// RoundedBucket buckets a calibration dark: each integer degree is its own
// folder, maximizing reuse granularity.
func RoundedBucket(tempC float64) Bucket {
	return Bucket{Kind: Rounded, Value: Round(tempC)}
}

// Label renders the bucket as a path segment. A literal minus would be
// hostile to shells and some filesystems, so negative degrees spell the
// sign out: Range(-21,-18) renders "minus21c_to_minus18c", Outlier(above,-10)
// renders "above_minus10c", Rounded(-15) renders "minus15c".
func (b Bucket) Label() string {
	switch b.Kind {
	case Range:
		return degrees(b.Floor) + "_to_" + degrees(b.Ceil)
	case Outlier:
		if b.Direction == Above {
			return "above_" + degrees(b.Value)
		}
		return "below_" + degrees(b.Value)
	default:
		return degrees(b.Value)
	}
}

func degrees(v int) string {
	if v < 0 {
		return fmt.Sprintf("minus%dc", -v)
	}
	return fmt.Sprintf("%dc", v)
}
