// Package astro computes sidereal time and horizontal coordinates for fixed
// equatorial targets. Every function is pure and safe for concurrent use.
package astro

import "math"

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees wraps x into [0, 360). Negative inputs are handled by the
// second modulo; math.Mod alone keeps the sign of x.
func NormalizeDegrees(x float64) float64 {
	return math.Mod(math.Mod(x, 360)+360, 360)
}

// normalizeHourAngle wraps x into [-180, 180).
func normalizeHourAngle(x float64) float64 {
	return NormalizeDegrees(x+180) - 180
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
