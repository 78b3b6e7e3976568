package format

import (
	"math"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestInstant(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	instant := time.Date(2024, 8, 2, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		name     string
		input    *time.Time
		loc      *time.Location
		expected string
	}{
		{name: "utc", input: &instant, loc: time.UTC, expected: "2024-08-02 14:05:09"},
		{name: "converted to location", input: &instant, loc: shanghai, expected: "2024-08-02 22:05:09"},
		{name: "keeps own location", input: &instant, loc: nil, expected: "2024-08-02 14:05:09"},
		{name: "nil", input: nil, loc: time.UTC, expected: Unknown},
		{name: "zero", input: &time.Time{}, loc: time.UTC, expected: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Instant(tt.input, tt.loc); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInstantZeroPads(t *testing.T) {
	instant := time.Date(987, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := Instant(&instant, time.UTC); got != "0987-01-02 03:04:05" {
		t.Errorf("Expected zero-padded output, got %q", got)
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name      string
		input     *float64
		precision int
		expected  string
	}{
		{name: "default precision", input: ptr(12.345678), precision: AnglePrecision, expected: "12.3457°"},
		{name: "negative", input: ptr(-29.0078), precision: AnglePrecision, expected: "-29.0078°"},
		{name: "negative zero", input: ptr(math.Copysign(0, -1)), precision: 2, expected: "0.00°"},
		{name: "nil", input: nil, precision: AnglePrecision, expected: Unknown},
		{name: "NaN", input: ptr(math.NaN()), precision: AnglePrecision, expected: Unknown},
		{name: "infinite", input: ptr(math.Inf(-1)), precision: AnglePrecision, expected: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Angle(tt.input, tt.precision); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input     *float64
		precision int
		expected  string
	}{
		{input: ptr(48.49), precision: NumberPrecision, expected: "48.49"},
		{input: ptr(2.8), precision: 1, expected: "2.8"},
		{input: ptr(35), precision: 1, expected: "35.0"},
		{input: nil, precision: 2, expected: Unknown},
	}

	for _, tt := range tests {
		if got := Number(tt.input, tt.precision); got != tt.expected {
			t.Errorf("Number(%v): Expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestOr(t *testing.T) {
	if got := Or(""); got != Unknown {
		t.Errorf("Expected %q, got %q", Unknown, got)
	}
	if got := Or("Canon"); got != "Canon" {
		t.Errorf("Expected Canon, got %q", got)
	}
}
