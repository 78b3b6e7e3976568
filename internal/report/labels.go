package report

// Basic section labels.
const (
	LabelFileName  = "File Name"
	LabelFileSize  = "File Size"
	LabelMediaType = "Media Type"
	LabelWidth     = "Width"
	LabelHeight    = "Height"
	LabelCamera    = "Camera"
	LabelLens      = "Lens"
)

// Capture section labels.
const (
	LabelCaptureTime  = "Capture Time"
	LabelLatitude     = "Latitude"
	LabelLongitude    = "Longitude"
	LabelAltitude     = "Altitude"
	LabelDirection    = "Direction"
	LabelISO          = "ISO"
	LabelShutterSpeed = "Shutter Speed"
	LabelAperture     = "Aperture"
	LabelFocalLength  = "Focal Length"
	LabelWhiteBalance = "White Balance"
)

// Astronomical section labels.
const (
	LabelSunAltitude              = "Sun Altitude"
	LabelSunAzimuth               = "Sun Azimuth"
	LabelMoonAltitude             = "Moon Altitude"
	LabelMoonAzimuth              = "Moon Azimuth"
	LabelMoonIllumination         = "Moon Illumination"
	LabelLocalSiderealTime        = "Local Sidereal Time"
	LabelGalacticCenterAltitude   = "Galactic Center Altitude (estimated)"
	LabelGalacticCenterAzimuth    = "Galactic Center Azimuth (estimated)"
	LabelAstronomicalDawn         = "Astronomical Dawn"
	LabelAstronomicalDusk         = "Astronomical Dusk"
	LabelNote                     = "Note"
	NoteAstronomyUnavailable      = "Astronomical data requires a full capture time and GPS latitude/longitude."
	noteAstronomyWithoutEphemeris = "Astronomical data is unavailable: no ephemeris is configured."
)
