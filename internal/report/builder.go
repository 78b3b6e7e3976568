package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/skyreport/internal/astro"
	"github.com/lehigh-university-libraries/skyreport/internal/ephemeris"
	"github.com/lehigh-university-libraries/skyreport/internal/format"
	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/models"
)

const bytesPerMB = 1024 * 1024

// Builder turns raw metadata into a Report.
type Builder struct {
	// Ephemeris is nil when no ephemeris is available; the astronomical
	// section then holds only the placeholder note.
	Ephemeris ephemeris.Provider
	// Location interprets and displays wall-clock instants.
	Location *time.Location
	Target   astro.CelestialTarget

	now func() time.Time
}

// NewBuilder returns a Builder for the galactic center.
func NewBuilder(eph ephemeris.Provider, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{
		Ephemeris: eph,
		Location:  loc,
		Target:    astro.GalacticCenter,
		now:       time.Now,
	}
}

// Generate extracts metadata from img and builds its report. Extraction
// failure is the only error it returns.
func (b *Builder) Generate(ctx context.Context, ex metadata.Extractor, img models.ImageFile) (*Report, error) {
	raw, err := ex.Extract(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("failed to extract metadata from %s: %w", img.Name, err)
	}
	return b.Build(img, raw), nil
}

// Build never fails: missing optional fields render as format.Unknown.
func (b *Builder) Build(img models.ImageFile, raw metadata.Raw) *Report {
	fields := metadata.Resolve(raw, b.Location)

	src := img
	src.Data = nil

	r := &Report{
		Source:       src,
		Basic:        b.basic(img, fields),
		Capture:      b.capture(fields),
		Astronomical: b.astronomical(fields),
		Raw:          raw,
		Fields:       fields,
		BuiltAt:      b.clock(),
	}

	slog.Debug("Report built",
		"file", img.Name,
		"raw_fields", len(raw),
		"astronomy", r.HasAstronomy())
	return r
}

func (b *Builder) clock() time.Time {
	if b.now == nil {
		return time.Now()
	}
	return b.now()
}

func (b *Builder) basic(img models.ImageFile, f metadata.Fields) Section {
	var s Section
	size := float64(img.Size) / bytesPerMB
	s.add(LabelFileName, format.Or(img.Name))
	s.add(LabelFileSize, format.Number(&size, format.NumberPrecision)+" MB")
	s.add(LabelMediaType, format.Or(img.MediaType))
	s.add(LabelWidth, valueText(f.Width))
	s.add(LabelHeight, valueText(f.Height))
	s.add(LabelCamera, camera(f.Make, f.Model))
	s.add(LabelLens, valueText(f.Lens))
	return s
}

func (b *Builder) capture(f metadata.Fields) Section {
	var s Section
	s.add(LabelCaptureTime, format.Instant(f.CaptureTime, b.Location))
	s.add(LabelLatitude, format.Angle(f.Latitude, format.AnglePrecision))
	s.add(LabelLongitude, format.Angle(f.Longitude, format.AnglePrecision))
	s.add(LabelAltitude, suffixed(format.Number(f.Altitude, format.NumberPrecision), " m"))
	s.add(LabelDirection, format.Angle(f.Direction, format.AnglePrecision))
	s.add(LabelISO, valueText(f.ISO))
	s.add(LabelShutterSpeed, shutter(f.ExposureTime))
	s.add(LabelAperture, prefixed("f/", format.Number(f.FNumber, 1)))
	s.add(LabelFocalLength, suffixed(format.Number(f.FocalLength, 1), " mm"))
	s.add(LabelWhiteBalance, valueText(f.WhiteBalance))
	return s
}

// astronomical is all or nothing: either every computed field or the single
// placeholder note.
func (b *Builder) astronomical(f metadata.Fields) Section {
	placeholder := Section{{Label: LabelNote, Value: NoteAstronomyUnavailable}}
	if f.CaptureTime == nil || !f.HasLocation() {
		return placeholder
	}
	if b.Ephemeris == nil {
		return Section{{Label: LabelNote, Value: noteAstronomyWithoutEphemeris}}
	}

	t := *f.CaptureTime
	obs := astro.Observer{Latitude: *f.Latitude, Longitude: *f.Longitude}
	target, err := astro.Horizontal(t, obs, b.Target)
	if err != nil {
		slog.Warn("Skipping astronomical section", "err", err)
		return placeholder
	}
	o := b.Ephemeris.Observe(t, obs)

	illumination := o.MoonIllumination * 100
	var s Section
	s.add(LabelSunAltitude, format.Degrees(o.Sun.AltitudeDegrees))
	s.add(LabelSunAzimuth, format.Degrees(northAzimuth(o.Sun.AzimuthDegrees)))
	s.add(LabelMoonAltitude, format.Degrees(o.Moon.AltitudeDegrees))
	s.add(LabelMoonAzimuth, format.Degrees(northAzimuth(o.Moon.AzimuthDegrees)))
	s.add(LabelMoonIllumination, suffixed(format.Number(&illumination, format.NumberPrecision), "%"))
	s.add(LabelLocalSiderealTime, format.Degrees(target.LocalSiderealTimeDegrees))
	s.add(LabelGalacticCenterAltitude, format.Degrees(target.AltitudeDegrees))
	s.add(LabelGalacticCenterAzimuth, format.Degrees(target.AzimuthDegrees))
	s.add(LabelAstronomicalDawn, format.Instant(&o.AstronomicalDawn, b.Location))
	s.add(LabelAstronomicalDusk, format.Instant(&o.AstronomicalDusk, b.Location))
	return s
}

// northAzimuth converts a South-origin azimuth to North-origin.
func northAzimuth(south float64) float64 {
	return astro.NormalizeDegrees(south + 180)
}

func camera(maker, model string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{maker, model} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return format.Or(strings.Join(parts, " "))
}

func valueText(v *metadata.Value) string {
	if v == nil {
		return format.Unknown
	}
	return format.Or(v.Text())
}

func shutter(v *metadata.Value) string {
	if v == nil {
		return format.Unknown
	}
	n, ok := v.AsNumber()
	if !ok {
		return format.Unknown
	}
	return metadata.Number(n).Text() + "s"
}

func prefixed(prefix, s string) string {
	if s == format.Unknown {
		return s
	}
	return prefix + s
}

func suffixed(s, suffix string) string {
	if s == format.Unknown {
		return s
	}
	return s + suffix
}
