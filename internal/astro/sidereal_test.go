package astro

import (
	"math"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// angularDiff is the absolute separation of two angles in degrees, accounting
// for wrap-around at 360.
func angularDiff(a, b float64) float64 {
	d := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	return math.Min(d, 360-d)
}

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected float64
	}{
		{name: "unix epoch", instant: time.Unix(0, 0).UTC(), expected: 2440587.5},
		{name: "J2000", instant: time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), expected: 2451545.0},
		{name: "Meeus 12.a", instant: time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC), expected: 2446895.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianDate(tt.instant); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGMSTAlmanac(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected float64
	}{
		{name: "J2000 epoch", instant: time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), expected: 280.46061837},
		// Meeus, Astronomical Algorithms, example 12.a: 13h10m46.3668s
		{name: "1987-04-10 0h UT", instant: time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC), expected: 197.693195},
		// Meeus example 12.b: 8h34m57.0896s
		{name: "1987-04-10 19:21 UT", instant: time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC), expected: 128.7378734},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GMST(tt.instant)
			if angularDiff(got, tt.expected) > 0.01 {
				t.Errorf("Expected GMST %.6f, got %.6f", tt.expected, got)
			}
		})
	}
}

func TestLocalSiderealTimeAtGreenwich(t *testing.T) {
	// Royal Observatory, Greenwich: 51.4769N 0E
	instant := time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC)
	lst := LocalSiderealTime(instant, 0)
	if angularDiff(lst, 128.7378734) > 0.01 {
		t.Errorf("Expected LST 128.7378734 at Greenwich, got %.6f", lst)
	}

	pos, err := Horizontal(instant, Observer{Latitude: 51.4769, Longitude: 0}, GalacticCenter)
	if err != nil {
		t.Fatalf("Horizontal: %v", err)
	}
	if angularDiff(pos.LocalSiderealTimeDegrees, lst) > 1e-9 {
		t.Errorf("Expected position LST %v, got %v", lst, pos.LocalSiderealTimeDegrees)
	}
}

func TestLocalSiderealTimeShiftsWithLongitude(t *testing.T) {
	instant := time.Date(2024, 8, 12, 21, 30, 0, 0, time.UTC)
	gmst := GMST(instant)

	for _, lon := range []float64{-179.5, -75.3776, 0, 15, 120.2, 359} {
		got := LocalSiderealTime(instant, lon)
		if angularDiff(got, gmst+lon) > 1e-9 {
			t.Errorf("lon %v: Expected %v, got %v", lon, NormalizeDegrees(gmst+lon), got)
		}
	}
}

// go-satellite implements the IAU 1982 GMST expression independently; the two
// should agree far inside the almanac tolerance.
func TestGMSTMatchesSatelliteLibrary(t *testing.T) {
	instants := []time.Time{
		time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 10, 2, 13, 47, 12, 0, time.UTC),
		time.Date(2024, 6, 21, 22, 30, 0, 0, time.UTC),
		time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, instant := range instants {
		year, month, day := instant.Date()
		hour, min, sec := instant.Clock()
		jd := satellite.JDay(year, int(month), day, hour, min, sec)
		reference := ToDegrees(satellite.ThetaG_JD(jd))

		if got := GMST(instant); angularDiff(got, reference) > 0.01 {
			t.Errorf("%s: Expected GMST near %.6f, got %.6f", instant, NormalizeDegrees(reference), got)
		}
	}
}

func TestGMSTRange(t *testing.T) {
	start := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2000; i++ {
		instant := start.Add(time.Duration(i) * 311 * time.Hour)
		if got := GMST(instant); got < 0 || got >= 360 || math.IsNaN(got) {
			t.Fatalf("Expected GMST in [0,360) for %s, got %v", instant, got)
		}
	}
}
