package thermal_test

import (
	"testing"

	"starsort/internal/thermal"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-19.4, -19},
		{-18.9, -19},
		{-22.8, -23},
		{-19.5, -20},
		{19.5, 20},
		{0.4, 0},
		{-0.5, -1},
		{0, 0},
	}
	for _, tc := range cases {
		if got := thermal.Round(tc.in); got != tc.want {
			t.Errorf("Round(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestBucketLabels(t *testing.T) {
	cases := []struct {
		bucket thermal.Bucket
		want   string
	}{
		{thermal.Bucket{Kind: thermal.Range, Floor: -21, Ceil: -18}, "minus21c_to_minus18c"},
		{thermal.Bucket{Kind: thermal.Range, Floor: 0, Ceil: 2}, "0c_to_2c"},
		{thermal.Bucket{Kind: thermal.Outlier, Value: -10, Direction: thermal.Above}, "above_minus10c"},
		{thermal.Bucket{Kind: thermal.Outlier, Value: -23, Direction: thermal.Below}, "below_minus23c"},
		{thermal.Bucket{Kind: thermal.Rounded, Value: -15}, "minus15c"},
		{thermal.Bucket{Kind: thermal.Rounded, Value: 5}, "5c"},
	}
	for _, tc := range cases {
		if got := tc.bucket.Label(); got != tc.want {
			t.Errorf("Label() = %q, want %q", got, tc.want)
		}
	}
}

func TestRoundedBucket(t *testing.T) {
	b := thermal.RoundedBucket(-14.6)
	if b.Kind != thermal.Rounded || b.Value != -15 {
		t.Fatalf("unexpected bucket: %+v", b)
	}
}

func TestObserveFirstFrameSeedsZeroWidthRange(t *testing.T) {
	ctx := thermal.NewContext(4)
	key := thermal.GroupKey{Date: "20240115", Target: "m31", Gain: 120, ExposureSec: 300}

	b := ctx.Observe(key, -19.4)
	if b.Kind != thermal.Range {
		t.Fatalf("first frame must never be an outlier, got %+v", b)
	}
	if b.Floor != -19 || b.Ceil != -19 {
		t.Fatalf("expected zero-width seed at -19, got [%d,%d]", b.Floor, b.Ceil)
	}
}

func TestObserveAbsorbsWithinToleranceAndExtendsRange(t *testing.T) {
	ctx := thermal.NewContext(4)
	key := thermal.GroupKey{Date: "20240115", Target: "m31", Gain: 120, ExposureSec: 300}

	ctx.Observe(key, -19.0)
	b := ctx.Observe(key, -17.2)
	if b.Kind != thermal.Range || b.Floor != -19 || b.Ceil != -17 {
		t.Fatalf("expected range [-19,-17], got %+v", b)
	}

	settled, ok := ctx.RangeOf(key)
	if !ok || settled.Floor != -19 || settled.Ceil != -17 {
		t.Fatalf("unexpected settled range: %+v ok=%v", settled, ok)
	}
}

// Three lights at -19.4, -18.9, -22.8 with tolerance 4: the first two share
// one range bucket and the third is a below outlier at its rounded degree.
func TestObserveOutlierScenario(t *testing.T) {
	ctx := thermal.NewContext(4)
	key := thermal.GroupKey{Date: "20240115", Target: "m31", Gain: 120, ExposureSec: 300}

	first := ctx.Observe(key, -19.4)
	second := ctx.Observe(key, -18.9)
	third := ctx.Observe(key, -22.8)

	if first.Kind != thermal.Range || second.Kind != thermal.Range {
		t.Fatalf("expected first two frames in range buckets: %+v %+v", first, second)
	}
	if third.Kind != thermal.Outlier {
		t.Fatalf("expected third frame to be an outlier, got %+v", third)
	}
	if third.Direction != thermal.Below || third.Value != -23 {
		t.Fatalf("expected Outlier(below, -23), got %+v", third)
	}
	if third.Label() != "below_minus23c" {
		t.Fatalf("unexpected outlier label %q", third.Label())
	}

	settled, _ := ctx.RangeOf(key)
	if settled.Floor != -19 || settled.Ceil != -19 {
		t.Fatalf("outlier must not widen the range, got [%d,%d]", settled.Floor, settled.Ceil)
	}
}

func TestObserveOutlierDoesNotWidenRange(t *testing.T) {
	ctx := thermal.NewContext(4)
	key := thermal.GroupKey{Date: "20240116", Target: "ngc7000", Gain: 100, ExposureSec: 120}

	ctx.Observe(key, -15)
	if b := ctx.Observe(key, -7.8); b.Kind != thermal.Outlier || b.Direction != thermal.Above {
		t.Fatalf("expected above outlier, got %+v", b)
	}
	// A frame near the original seed still lands in the range afterwards.
	if b := ctx.Observe(key, -14.5); b.Kind != thermal.Range {
		t.Fatalf("expected range after outlier, got %+v", b)
	}
}

func TestObserveAbsorptionClippedToToleranceWidth(t *testing.T) {
	ctx := thermal.NewContext(4)
	key := thermal.GroupKey{Date: "20240117", Target: "m42", Gain: 120, ExposureSec: 60}

	ctx.Observe(key, -19)
	ctx.Observe(key, -16) // range now [-19,-16]
	// -22 is 3 degrees below the floor (inside tolerance) but absorbing it
	// would stretch the window to 6 degrees.
	b := ctx.Observe(key, -22)
	if b.Kind != thermal.Outlier || b.Direction != thermal.Below || b.Value != -22 {
		t.Fatalf("expected Outlier(below, -22), got %+v", b)
	}
}

func TestObserveKeysGroupsIndependently(t *testing.T) {
	ctx := thermal.NewContext(4)
	a := thermal.GroupKey{Date: "20240115", Target: "m31", Gain: 120, ExposureSec: 300}
	b := thermal.GroupKey{Date: "20240115", Target: "m31", Gain: 120, ExposureSec: 180}

	ctx.Observe(a, -19)
	got := ctx.Observe(b, -10)
	if got.Kind != thermal.Range {
		t.Fatalf("separate group must seed its own range, got %+v", got)
	}

	if _, ok := ctx.RangeOf(thermal.GroupKey{Date: "20240199"}); ok {
		t.Fatal("RangeOf must report false for unobserved groups")
	}
}
