// Package format renders report values as display strings. Absent or
// non-finite inputs render as Unknown, never as an empty string.
package format

import (
	"math"
	"strconv"
	"time"
)

// Unknown is the sentinel shown for any value that is missing or invalid.
const Unknown = "unknown"

const (
	AnglePrecision  = 4
	NumberPrecision = 2

	instantLayout = "2006-01-02 15:04:05"
)

// Instant formats t as YYYY-MM-DD HH:MM:SS on the wall clock of loc.
// A nil loc keeps t's own location.
func Instant(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return Unknown
	}
	if loc != nil {
		return t.In(loc).Format(instantLayout)
	}
	return t.Format(instantLayout)
}

// Angle formats v with the given number of decimals and a trailing degree sign.
func Angle(v *float64, precision int) string {
	s := Number(v, precision)
	if s == Unknown {
		return s
	}
	return s + "°"
}

// Number formats v with the given number of decimals.
func Number(v *float64, precision int) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Unknown
	}
	n := *v
	if n == 0 {
		// drop the sign of negative zero
		n = 0
	}
	return strconv.FormatFloat(n, 'f', precision, 64)
}

// Degrees is Angle at the default precision for a computed value.
func Degrees(v float64) string {
	return Angle(&v, AnglePrecision)
}

// Or returns s, or Unknown when s is empty.
func Or(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
