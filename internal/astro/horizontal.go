package astro

import (
	"errors"
	"math"
	"time"
)

// ErrNonFinite is returned when an observer coordinate is NaN or infinite, or
// the instant is the zero time.
var ErrNonFinite = errors.New("observer latitude, longitude and instant must be finite")

// CelestialTarget is a fixed equatorial position.
type CelestialTarget struct {
	Name                string  `json:"name" yaml:"name"`
	RightAscensionHours float64 `json:"right_ascension_hours" yaml:"right_ascension_hours"`
	DeclinationDegrees  float64 `json:"declination_degrees" yaml:"declination_degrees"`
}

// GalacticCenter is the catalog position of Sagittarius A*, RA 17h45m40s.
var GalacticCenter = CelestialTarget{
	Name:                "Galactic Center",
	RightAscensionHours: 17 + 45.0/60 + 40.0/3600,
	DeclinationDegrees:  -29.0078,
}

// Observer is a geographic position in degrees, longitude east-positive.
type Observer struct {
	Latitude  float64
	Longitude float64
}

// HorizontalPosition is a target's place in the observer's sky.
//
// Azimuth is astronomical azimuth measured from North, increasing eastward,
// in [0, 360). Altitude is in [-90, 90].
type HorizontalPosition struct {
	AltitudeDegrees          float64 `json:"altitude_degrees"`
	AzimuthDegrees           float64 `json:"azimuth_degrees"`
	LocalSiderealTimeDegrees float64 `json:"local_sidereal_time_degrees"`
}

// Horizontal converts target to altitude/azimuth for obs at instant t.
// Atmospheric refraction is not applied.
func Horizontal(t time.Time, obs Observer, target CelestialTarget) (HorizontalPosition, error) {
	if t.IsZero() || !finite(obs.Latitude, obs.Longitude, target.RightAscensionHours, target.DeclinationDegrees) {
		return HorizontalPosition{}, ErrNonFinite
	}

	lst := LocalSiderealTime(t, obs.Longitude)
	ha := normalizeHourAngle(lst - target.RightAscensionHours*15)
	alt, az := altAz(obs.Latitude, target.DeclinationDegrees, ha)

	return HorizontalPosition{
		AltitudeDegrees:          alt,
		AzimuthDegrees:           az,
		LocalSiderealTimeDegrees: lst,
	}, nil
}

// altAz solves the spherical triangle for a target at declination dec and
// hour angle ha (all degrees). atan2 stays bounded when the denominator
// diverges at dec = ±90, giving an azimuth of 0 or 180.
func altAz(lat, dec, ha float64) (float64, float64) {
	latR := ToRadians(lat)
	decR := ToRadians(dec)
	haR := ToRadians(ha)

	sinAlt := math.Sin(decR)*math.Sin(latR) + math.Cos(decR)*math.Cos(latR)*math.Cos(haR)
	// rounding can push the identity a hair outside asin's domain
	sinAlt = math.Max(-1, math.Min(1, sinAlt))
	alt := math.Asin(sinAlt)

	y := -math.Sin(haR)
	x := math.Tan(decR)*math.Cos(latR) - math.Sin(latR)*math.Cos(haR)
	az := NormalizeDegrees(ToDegrees(math.Atan2(y, x)))

	return ToDegrees(alt), az
}
