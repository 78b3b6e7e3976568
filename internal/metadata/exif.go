package metadata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/lehigh-university-libraries/skyreport/internal/models"
)

// ErrNoMetadata means the image carries no embedded metadata that could be
// decoded, either because the format lacks EXIF or it is not supported.
var ErrNoMetadata = errors.New("no usable EXIF metadata found; the format may not embed EXIF or is not supported")

const exifTimeLayout = "2006:01:02 15:04:05"

// Extractor turns raw image bytes into a Raw field map.
type Extractor interface {
	Extract(ctx context.Context, img models.ImageFile) (Raw, error)
}

// ExifExtractor decodes EXIF blocks from JPEG and TIFF containers.
type ExifExtractor struct {
	// Location interprets EXIF timestamps, which carry no zone.
	Location *time.Location
}

// NewExifExtractor creates an extractor reading timestamps in loc.
func NewExifExtractor(loc *time.Location) *ExifExtractor {
	if loc == nil {
		loc = time.Local
	}
	return &ExifExtractor{Location: loc}
}

// renamed maps EXIF tag names onto the names the report reads.
var renamed = map[string]string{
	"DateTimeDigitized": CreateDate,
	"DateTime":          ModifyDate,
	"PixelXDimension":   ExifImageWidth,
	"PixelYDimension":   ExifImageHeight,
	"ImageLength":       ImageHeight,
	"ISOSpeedRatings":   ISO,
	"LensSpecification": LensInfo,
}

var timestampFields = map[string]bool{
	DateTimeOriginal: true,
	CreateDate:       true,
	ModifyDate:       true,
}

// Extract decodes img.Data. It fails with ErrNoMetadata when no tags can be read.
func (e *ExifExtractor) Extract(ctx context.Context, img models.ImageFile) (Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x, err := exif.Decode(bytes.NewReader(img.Data))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("%w: %v", ErrNoMetadata, err)
	}
	if err != nil {
		slog.Warn("EXIF decoded with errors", "file", img.Name, "err", err)
	}

	raw := Raw{}
	if err := x.Walk(&tagWalker{raw: raw, loc: e.Location}); err != nil {
		return nil, fmt.Errorf("failed to walk EXIF tags: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoMetadata
	}

	if lat, lon, err := x.LatLong(); err == nil {
		raw[Latitude] = Number(lat)
		raw[Longitude] = Number(lon)
	}
	applyAltitudeRef(raw)
	translateWhiteBalance(raw)
	addDimensions(raw, img.Data)

	slog.Debug("EXIF extracted", "file", img.Name, "fields", len(raw))
	return raw, nil
}

type tagWalker struct {
	raw Raw
	loc *time.Location
}

func (w *tagWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	key := string(name)
	if to, ok := renamed[key]; ok {
		key = to
	}

	v := tagValue(tag)
	if timestampFields[key] {
		if s, ok := v.AsString(); ok {
			if t, ok := parseExifTime(s, w.loc); ok {
				v = Time(t)
			}
		}
	}
	w.raw[key] = v
	return nil
}

func tagValue(tag *tiff.Tag) Value {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return Null()
		}
		return String(strings.TrimSpace(strings.TrimRight(s, "\x00")))
	case tiff.UndefVal:
		return undefinedValue(tag.Val)
	}

	items := make([]Value, 0, tag.Count)
	for i := 0; i < int(tag.Count); i++ {
		n, ok := tagNumber(tag, i)
		if !ok {
			return Null()
		}
		items = append(items, Number(n))
	}
	switch len(items) {
	case 0:
		return Null()
	case 1:
		return items[0]
	}
	return List(items...)
}

func tagNumber(tag *tiff.Tag, i int) (float64, bool) {
	switch tag.Format() {
	case tiff.IntVal:
		n, err := tag.Int64(i)
		return float64(n), err == nil
	case tiff.RatVal:
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return 0, false
		}
		return float64(num) / float64(den), true
	case tiff.FloatVal:
		f, err := tag.Float(i)
		return f, err == nil
	}
	return 0, false
}

// undefinedValue keeps printable UNDEFINED payloads such as ExifVersion
// ("0231") and drops binary ones like MakerNote.
func undefinedValue(b []byte) Value {
	s := strings.TrimRight(string(b), "\x00")
	if s == "" {
		return Null()
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return Null()
		}
	}
	return String(s)
}

func parseExifTime(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{exifTimeLayout, "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// applyAltitudeRef negates GPSAltitude when GPSAltitudeRef marks it as
// below sea level.
func applyAltitudeRef(raw Raw) {
	alt, ok := raw[GPSAltitude].AsNumber()
	if !ok {
		return
	}
	if ref, ok := raw["GPSAltitudeRef"].AsNumber(); ok && ref == 1 {
		raw[GPSAltitude] = Number(-alt)
	}
}

func translateWhiteBalance(raw Raw) {
	mode, ok := raw[WhiteBalance].AsNumber()
	if !ok {
		return
	}
	switch mode {
	case 0:
		raw[WhiteBalance] = String("Auto")
	case 1:
		raw[WhiteBalance] = String("Manual")
	}
}

// addDimensions fills ImageWidth/ImageHeight from the image header when the
// EXIF block records neither synonym.
func addDimensions(raw Raw, data []byte) {
	if _, ok := raw.Truthy(WidthChain); ok {
		return
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return
	}
	raw[ImageWidth] = Number(float64(cfg.Width))
	raw[ImageHeight] = Number(float64(cfg.Height))
}
