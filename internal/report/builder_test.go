package report

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/skyreport/internal/astro"
	"github.com/lehigh-university-libraries/skyreport/internal/ephemeris"
	"github.com/lehigh-university-libraries/skyreport/internal/format"
	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/models"
)

type stubEphemeris struct {
	observation ephemeris.Observation
	calls       int
}

func (s *stubEphemeris) Observe(t time.Time, obs astro.Observer) ephemeris.Observation {
	s.calls++
	return s.observation
}

type stubExtractor struct {
	raw metadata.Raw
	err error
}

func (s stubExtractor) Extract(ctx context.Context, img models.ImageFile) (metadata.Raw, error) {
	return s.raw, s.err
}

var (
	edt     = time.FixedZone("EDT", -4*3600)
	capture = time.Date(2024, 8, 12, 22, 15, 30, 0, edt)
)

func fullRaw() metadata.Raw {
	return metadata.Raw{
		metadata.DateTimeOriginal: metadata.Time(capture),
		metadata.Latitude:         metadata.Number(40.6066),
		metadata.Longitude:        metadata.Number(-75.3776),
		metadata.GPSAltitude:      metadata.Number(-120.5),
		metadata.GPSImgDirection:  metadata.Number(180),
		metadata.ExifImageWidth:   metadata.Number(6000),
		metadata.ExifImageHeight:  metadata.Number(4000),
		metadata.Make:             metadata.String("Canon"),
		metadata.Model:            metadata.String("EOS R6"),
		metadata.LensModel:        metadata.String("RF 15-35mm F2.8"),
		metadata.ISO:              metadata.Number(3200),
		metadata.ExposureTime:     metadata.Number(0.004),
		metadata.FNumber:          metadata.Number(2.8),
		metadata.FocalLength:      metadata.Number(35),
		metadata.WhiteBalance:     metadata.String("Auto"),
	}
}

func sampleImage() models.ImageFile {
	return models.ImageFile{Name: "milky-way.jpg", Size: 2621440, MediaType: "image/jpeg", Data: []byte{0xFF, 0xD8}}
}

func stubObservation() ephemeris.Observation {
	return ephemeris.Observation{
		Sun:              ephemeris.Position{AltitudeDegrees: -25.5, AzimuthDegrees: -170},
		Moon:             ephemeris.Position{AltitudeDegrees: 12.25, AzimuthDegrees: 30},
		MoonIllumination: 0.4848,
		AstronomicalDawn: time.Date(2024, 8, 12, 8, 31, 0, 0, time.UTC),
	}
}

func TestBuildPlaceholderWithoutTimeOrLocation(t *testing.T) {
	raw := metadata.Raw{metadata.Make: metadata.String("Sony")}

	for _, eph := range []ephemeris.Provider{nil, &stubEphemeris{}} {
		r := NewBuilder(eph, edt).Build(sampleImage(), raw)
		if len(r.Astronomical) != 1 {
			t.Fatalf("Expected exactly one astronomical entry, got %v", r.Astronomical)
		}
		if r.Astronomical[0].Label != LabelNote {
			t.Errorf("Expected the placeholder note, got %q", r.Astronomical[0].Label)
		}
		if r.HasAstronomy() {
			t.Errorf("Expected HasAstronomy to be false")
		}
	}
}

func TestBuildLocationWithoutTime(t *testing.T) {
	raw := metadata.Raw{
		metadata.Latitude:  metadata.Number(51.4769),
		metadata.Longitude: metadata.Number(0),
	}
	eph := &stubEphemeris{observation: stubObservation()}
	r := NewBuilder(eph, time.UTC).Build(sampleImage(), raw)

	if got, _ := r.Capture.Get(LabelLatitude); got != "51.4769°" {
		t.Errorf("Expected latitude 51.4769°, got %q", got)
	}
	if got, _ := r.Capture.Get(LabelLongitude); got != "0.0000°" {
		t.Errorf("Expected longitude 0.0000°, got %q", got)
	}
	if got, _ := r.Capture.Get(LabelCaptureTime); got != format.Unknown {
		t.Errorf("Expected unknown capture time, got %q", got)
	}
	if len(r.Astronomical) != 1 || r.Astronomical[0].Label != LabelNote {
		t.Errorf("Expected only the placeholder, got %v", r.Astronomical)
	}
	if eph.calls != 0 {
		t.Errorf("Expected the ephemeris not to be consulted, got %d calls", eph.calls)
	}
}

func TestBuildWithoutEphemeris(t *testing.T) {
	r := NewBuilder(nil, edt).Build(sampleImage(), fullRaw())
	if len(r.Astronomical) != 1 || r.Astronomical[0].Label != LabelNote {
		t.Errorf("Expected a single note without an ephemeris, got %v", r.Astronomical)
	}
}

func TestBuildAstronomicalSection(t *testing.T) {
	eph := &stubEphemeris{observation: stubObservation()}
	r := NewBuilder(eph, edt).Build(sampleImage(), fullRaw())

	wantLabels := []string{
		LabelSunAltitude, LabelSunAzimuth,
		LabelMoonAltitude, LabelMoonAzimuth,
		LabelMoonIllumination, LabelLocalSiderealTime,
		LabelGalacticCenterAltitude, LabelGalacticCenterAzimuth,
		LabelAstronomicalDawn, LabelAstronomicalDusk,
	}
	gotLabels := r.Astronomical.Labels()
	if len(gotLabels) != len(wantLabels) {
		t.Fatalf("Expected %d astronomical entries, got %v", len(wantLabels), gotLabels)
	}
	for i := range wantLabels {
		if gotLabels[i] != wantLabels[i] {
			t.Errorf("Expected label %d to be %q, got %q", i, wantLabels[i], gotLabels[i])
		}
	}

	gc, err := astro.Horizontal(capture, astro.Observer{Latitude: 40.6066, Longitude: -75.3776}, astro.GalacticCenter)
	if err != nil {
		t.Fatalf("Horizontal: %v", err)
	}

	tests := []struct {
		label    string
		expected string
	}{
		{LabelSunAltitude, "-25.5000°"},
		{LabelSunAzimuth, "10.0000°"},
		{LabelMoonAltitude, "12.2500°"},
		{LabelMoonAzimuth, "210.0000°"},
		{LabelMoonIllumination, "48.48%"},
		{LabelLocalSiderealTime, format.Degrees(gc.LocalSiderealTimeDegrees)},
		{LabelGalacticCenterAltitude, format.Degrees(gc.AltitudeDegrees)},
		{LabelGalacticCenterAzimuth, format.Degrees(gc.AzimuthDegrees)},
		{LabelAstronomicalDawn, "2024-08-12 04:31:00"},
		{LabelAstronomicalDusk, format.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got, _ := r.Astronomical.Get(tt.label); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}

	if !r.HasAstronomy() {
		t.Errorf("Expected HasAstronomy to be true")
	}
}

func TestBuildNonFiniteIllumination(t *testing.T) {
	o := stubObservation()
	o.MoonIllumination = math.NaN()
	r := NewBuilder(&stubEphemeris{observation: o}, edt).Build(sampleImage(), fullRaw())

	if got, _ := r.Astronomical.Get(LabelMoonIllumination); got != format.Unknown {
		t.Errorf("Expected %q, got %q", format.Unknown, got)
	}
}

func TestBuildBlankOriginalTimestamp(t *testing.T) {
	raw := metadata.Raw{
		metadata.DateTimeOriginal: metadata.String(""),
		metadata.CreateDate:       metadata.Time(time.Date(2024, 8, 12, 22, 0, 0, 0, time.UTC)),
		metadata.Latitude:         metadata.Number(40),
		metadata.Longitude:        metadata.Number(-75),
	}
	r := NewBuilder(ephemeris.NewCalculator(time.UTC), time.UTC).Build(sampleImage(), raw)

	if got, _ := r.Capture.Get(LabelCaptureTime); got != "2024-08-12 22:00:00" {
		t.Errorf("Expected the create date as capture time, got %q", got)
	}
	if !r.HasAstronomy() || len(r.Astronomical) != 10 {
		t.Errorf("Expected the full astronomical section, got %v", r.Astronomical)
	}
}

func TestBuildBasicAndCapture(t *testing.T) {
	r := NewBuilder(nil, edt).Build(sampleImage(), fullRaw())

	tests := []struct {
		section  Section
		label    string
		expected string
	}{
		{r.Basic, LabelFileName, "milky-way.jpg"},
		{r.Basic, LabelFileSize, "2.50 MB"},
		{r.Basic, LabelMediaType, "image/jpeg"},
		{r.Basic, LabelWidth, "6000"},
		{r.Basic, LabelHeight, "4000"},
		{r.Basic, LabelCamera, "Canon EOS R6"},
		{r.Basic, LabelLens, "RF 15-35mm F2.8"},
		{r.Capture, LabelCaptureTime, "2024-08-12 22:15:30"},
		{r.Capture, LabelLatitude, "40.6066°"},
		{r.Capture, LabelLongitude, "-75.3776°"},
		{r.Capture, LabelAltitude, "-120.50 m"},
		{r.Capture, LabelDirection, "180.0000°"},
		{r.Capture, LabelISO, "3200"},
		{r.Capture, LabelShutterSpeed, "0.004s"},
		{r.Capture, LabelAperture, "f/2.8"},
		{r.Capture, LabelFocalLength, "35.0 mm"},
		{r.Capture, LabelWhiteBalance, "Auto"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got, ok := tt.section.Get(tt.label); !ok || got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}

	if r.Source.Data != nil {
		t.Errorf("Expected the report not to retain image bytes")
	}
}

func TestBuildEverythingUnknown(t *testing.T) {
	r := NewBuilder(nil, time.UTC).Build(models.ImageFile{}, metadata.Raw{})

	for _, s := range []Section{r.Basic, r.Capture, r.Astronomical} {
		for _, e := range s {
			if e.Value == "" {
				t.Errorf("Expected %q to carry a value", e.Label)
			}
		}
	}
	for _, label := range r.Capture.Labels() {
		if got, _ := r.Capture.Get(label); got != format.Unknown {
			t.Errorf("Expected %q to be unknown, got %q", label, got)
		}
	}
	if got, _ := r.Basic.Get(LabelFileSize); got != "0.00 MB" {
		t.Errorf("Expected 0.00 MB, got %q", got)
	}
	if got, _ := r.Basic.Get(LabelCamera); got != format.Unknown {
		t.Errorf("Expected unknown camera, got %q", got)
	}
	if len(r.Basic) != 7 || len(r.Capture) != 10 {
		t.Errorf("Expected 7 basic and 10 capture entries, got %d and %d", len(r.Basic), len(r.Capture))
	}
}

func TestCamera(t *testing.T) {
	tests := []struct {
		maker, model string
		expected     string
	}{
		{"Canon", "EOS R6", "Canon EOS R6"},
		{"", "EOS R6", "EOS R6"},
		{"Canon", "", "Canon"},
		{"", "", format.Unknown},
	}
	for _, tt := range tests {
		if got := camera(tt.maker, tt.model); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestShutterNonNumeric(t *testing.T) {
	v := metadata.String("1/250")
	if got := shutter(&v); got != format.Unknown {
		t.Errorf("Expected unknown for a non-numeric exposure, got %q", got)
	}
}

func TestGenerate(t *testing.T) {
	b := NewBuilder(nil, edt)

	r, err := b.Generate(context.Background(), stubExtractor{raw: fullRaw()}, sampleImage())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.BaseName() != "milky-way" {
		t.Errorf("Expected base name milky-way, got %q", r.BaseName())
	}

	_, err = b.Generate(context.Background(), stubExtractor{err: metadata.ErrNoMetadata}, sampleImage())
	if !errors.Is(err, metadata.ErrNoMetadata) {
		t.Errorf("Expected ErrNoMetadata, got %v", err)
	}
}
