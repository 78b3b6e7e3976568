// Package ephemeris computes low-precision sun and moon positions, lunar
// illumination and astronomical twilight for an observer.
//
// Sun position and lunar phase come from suncalc and twilight from go-sunrise.
// Azimuths are measured from South, increasing westward, which is the
// convention callers of this package convert from.
package ephemeris

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/lehigh-university-libraries/skyreport/internal/astro"
)

// astronomicalTwilight is the sun elevation that bounds astronomical night.
const astronomicalTwilight = -18.0

// Position is a body's place in the sky, in degrees. Azimuth is South-origin.
type Position struct {
	AltitudeDegrees float64 `json:"altitude_degrees"`
	AzimuthDegrees  float64 `json:"azimuth_degrees"`
}

// Observation is everything the ephemeris knows about one instant and place.
// Dawn and dusk are zero when the sun never reaches -18° on that date.
type Observation struct {
	Sun              Position  `json:"sun"`
	Moon             Position  `json:"moon"`
	MoonIllumination float64   `json:"moon_illumination"`
	MoonDistanceKm   float64   `json:"moon_distance_km"`
	AstronomicalDawn time.Time `json:"astronomical_dawn"`
	AstronomicalDusk time.Time `json:"astronomical_dusk"`
}

// Provider answers ephemeris queries.
type Provider interface {
	Observe(t time.Time, obs astro.Observer) Observation
}

// Calculator is the built-in Provider.
type Calculator struct {
	// Location decides which calendar date twilight is computed for.
	Location *time.Location
}

// NewCalculator returns a Calculator that picks twilight dates in loc.
func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{Location: loc}
}

// Observe implements Provider.
func (c *Calculator) Observe(t time.Time, obs astro.Observer) Observation {
	sun := SunPosition(t, obs)
	moon, dist := MoonPosition(t, obs)
	dawn, dusk := Twilight(t.In(c.Location), obs)

	return Observation{
		Sun:              sun,
		Moon:             moon,
		MoonIllumination: MoonIllumination(t),
		MoonDistanceKm:   dist,
		AstronomicalDawn: dawn,
		AstronomicalDusk: dusk,
	}
}

// Twilight returns the morning and evening instants when the sun crosses
// -18° on t's calendar date.
func Twilight(t time.Time, obs astro.Observer) (time.Time, time.Time) {
	y, m, d := t.Date()
	return sunrise.TimeOfElevation(obs.Latitude, obs.Longitude, astronomicalTwilight, y, m, d)
}
