package ephemeris

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/lehigh-university-libraries/skyreport/internal/astro"
)

const (
	rad        = math.Pi / 180
	j1970      = 2440588.0
	j2000      = 2451545.0
	dayMs      = 86400000.0
	obliquity  = rad * 23.4397
	moonMeanKm = 385001.0
)

// SunPosition returns the sun's altitude and South-origin azimuth.
func SunPosition(t time.Time, obs astro.Observer) Position {
	p := suncalc.GetPosition(t, obs.Latitude, obs.Longitude)
	return Position{AltitudeDegrees: astro.ToDegrees(p.Altitude), AzimuthDegrees: astro.ToDegrees(p.Azimuth)}
}

// MoonIllumination returns the illuminated fraction of the lunar disc, in [0, 1].
func MoonIllumination(t time.Time) float64 {
	return suncalc.GetMoonIllumination(t).Fraction
}

// MoonPosition returns the moon's unrefracted altitude, South-origin azimuth
// and geocentric distance in kilometres.
//
// suncalc.GetMoonPosition adds atmospheric refraction to the altitude, so the
// lunar series is evaluated here with the same coefficients minus that term.
func MoonPosition(t time.Time, obs astro.Observer) (Position, float64) {
	d := float64(t.UnixMilli())/dayMs - 0.5 + j1970 - j2000

	lon := rad * (218.316 + 13.176396*d)
	anomaly := rad * (134.963 + 13.064993*d)
	node := rad * (93.272 + 13.229350*d)
	l := lon + rad*6.289*math.Sin(anomaly)
	b := rad * 5.128 * math.Sin(node)

	ra := math.Atan2(math.Sin(l)*math.Cos(obliquity)-math.Tan(b)*math.Sin(obliquity), math.Cos(l))
	dec := math.Asin(math.Sin(b)*math.Cos(obliquity) + math.Cos(b)*math.Sin(obliquity)*math.Sin(l))
	dist := moonMeanKm - 20905*math.Cos(anomaly)

	phi := rad * obs.Latitude
	h := rad*(280.16+360.9856235*d) + rad*obs.Longitude - ra
	az := math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
	alt := math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(h))

	return Position{AltitudeDegrees: astro.ToDegrees(alt), AzimuthDegrees: astro.ToDegrees(az)}, dist
}
