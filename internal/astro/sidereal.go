package astro

import "time"

const (
	unixEpochJD = 2440587.5
	j2000JD     = 2451545.0
	msPerDay    = 86400000.0
)

// JulianDate returns the Julian Date of t at millisecond precision.
func JulianDate(t time.Time) float64 {
	return float64(t.UnixMilli())/msPerDay + unixEpochJD
}

// GMST returns Greenwich Mean Sidereal Time in degrees, in [0, 360).
//
// This is the low-order IAU series (Meeus 12.4) with no nutation or
// leap-second correction.
func GMST(t time.Time) float64 {
	jd := JulianDate(t)
	d := jd - j2000JD
	c := d / 36525
	s := 280.46061837 + 360.98564736629*d + 0.000387933*c*c - c*c*c/38710000
	return NormalizeDegrees(s)
}

// LocalSiderealTime returns GMST shifted by an east-positive longitude, in degrees.
func LocalSiderealTime(t time.Time, longitude float64) float64 {
	return NormalizeDegrees(GMST(t) + longitude)
}
