package frame_test

import (
	"errors"
	"testing"
	"time"

	"starsort/internal/frame"
)

func lightRecord() frame.Record {
	return frame.Record{
		Path:        "/raw/light_0001.fit",
		FrameType:   "Light",
		CaptureTime: time.Date(2024, 1, 15, 3, 12, 9, 345e6, time.UTC),
		Target:      "M 31",
		Filter:      "Ha",
		Gain:        120,
		HasGain:     true,
		ExposureSec: 300,
		HasExposure: true,
		TempC:       -19.4,
		HasTemp:     true,
	}
}

func TestParseTypeSynonyms(t *testing.T) {
	cases := []struct {
		raw  string
		want frame.Type
	}{
		{"Light", frame.Light},
		{"LIGHT", frame.Light},
		{"OBJECT", frame.Light},
		{"Light Frame", frame.Light},
		{"flat", frame.Flat},
		{"Dark Frame", frame.Dark},
		{"BIAS", frame.Bias},
		{"Zero", frame.Bias},
	}
	for _, tc := range cases {
		got, err := frame.ParseType(tc.raw)
		if err != nil {
			t.Fatalf("ParseType(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Errorf("ParseType(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseTypeUnrecognized(t *testing.T) {
	_, err := frame.ParseType("TRICOLOR")
	var unrec *frame.UnrecognizedTypeError
	if !errors.As(err, &unrec) {
		t.Fatalf("expected UnrecognizedTypeError, got %v", err)
	}
	if unrec.Value != "TRICOLOR" {
		t.Fatalf("error should carry the raw value, got %q", unrec.Value)
	}
}

func TestClassifyLight(t *testing.T) {
	cls, err := frame.Classify(lightRecord())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if cls.Type != frame.Light {
		t.Fatalf("unexpected type %v", cls.Type)
	}
	if cls.Target != "m31" {
		t.Fatalf("expected catalog spacing fixed, got target %q", cls.Target)
	}
	if cls.Filter != "ha" {
		t.Fatalf("unexpected filter %q", cls.Filter)
	}
	if !cls.HasTemp || cls.TempC != -19.4 {
		t.Fatalf("light classification must keep temperature, got %+v", cls)
	}
}

func TestClassifyLightMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*frame.Record)
		field  string
	}{
		{"target", func(r *frame.Record) { r.Target = "" }, "target"},
		{"gain", func(r *frame.Record) { r.HasGain = false }, "gain"},
		{"exposure", func(r *frame.Record) { r.HasExposure = false }, "exposure"},
		{"temperature", func(r *frame.Record) { r.HasTemp = false }, "temperature"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := lightRecord()
			tc.mutate(&rec)
			_, err := frame.Classify(rec)
			var missing *frame.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tc.field {
				t.Fatalf("expected missing field %q, got %q", tc.field, missing.Field)
			}
			if missing.Frame != frame.Light {
				t.Fatalf("error should name the frame type, got %v", missing.Frame)
			}
		})
	}
}

func TestClassifyFlatDropsTemperatureAndTarget(t *testing.T) {
	rec := lightRecord()
	rec.FrameType = "Flat"
	cls, err := frame.Classify(rec)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if cls.HasTemp {
		t.Fatal("flat classification must not carry a temperature")
	}
	if cls.Target != "" {
		t.Fatalf("flat classification must drop target, got %q", cls.Target)
	}
	if cls.Filter != "ha" {
		t.Fatalf("flat keeps filter, got %q", cls.Filter)
	}
}

func TestClassifyDarkDropsTargetAndFilter(t *testing.T) {
	rec := lightRecord()
	rec.FrameType = "Dark"
	cls, err := frame.Classify(rec)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if cls.Target != "" || cls.Filter != "" {
		t.Fatalf("dark must drop target and filter, got %+v", cls)
	}
	if !cls.HasTemp || cls.ExposureSec != 300 {
		t.Fatalf("dark keeps exposure and temperature, got %+v", cls)
	}
}

func TestClassifyBiasKeepsOnlyGain(t *testing.T) {
	rec := lightRecord()
	rec.FrameType = "Zero"
	rec.HasExposure = false
	rec.HasTemp = false
	rec.Target = ""
	cls, err := frame.Classify(rec)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if cls.Type != frame.Bias || cls.Gain != 120 {
		t.Fatalf("unexpected classification %+v", cls)
	}
	if cls.HasTemp || cls.ExposureSec != 0 || cls.Filter != "" {
		t.Fatalf("bias must keep only gain, got %+v", cls)
	}
}

func TestCalibrationPolicy(t *testing.T) {
	dark := frame.Classification{Type: frame.Dark}
	light := frame.Classification{Type: frame.Light}
	if !dark.Calibration(true) {
		t.Fatal("dark belongs in the calibration library when enabled")
	}
	if dark.Calibration(false) {
		t.Fatal("dark stays in sessions when the library is disabled")
	}
	if light.Calibration(true) {
		t.Fatal("lights never enter the calibration library")
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"NGC 7000 (North America)", "ngc7000_north_america"},
		{"M 31", "m31"},
		{"  ", "unknown"},
		{"Ha 7nm", "ha_7nm"},
		{"gain_120", "gain_120"},
	}
	for _, tc := range cases {
		if got := frame.SanitizeTarget(tc.in); got != tc.want {
			t.Errorf("SanitizeTarget(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
