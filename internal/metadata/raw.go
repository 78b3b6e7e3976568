// Package metadata decodes embedded capture metadata into a Raw field map
// and resolves the typed Fields a report is built from.
package metadata

import (
	"sort"
	"strings"
	"time"
)

// Normalized field names. The extractor stores well-known tags under these
// names; every other tag keeps its EXIF name.
const (
	DateTimeOriginal         = "DateTimeOriginal"
	CreateDate               = "CreateDate"
	ModifyDate               = "ModifyDate"
	Latitude                 = "latitude"
	Longitude                = "longitude"
	GPSAltitude              = "GPSAltitude"
	GPSImgDirection          = "GPSImgDirection"
	GPSDestBearing           = "GPSDestBearing"
	CameraElevationAngle     = "CameraElevationAngle"
	ExifImageWidth           = "ExifImageWidth"
	ExifImageHeight          = "ExifImageHeight"
	ImageWidth               = "ImageWidth"
	ImageHeight              = "ImageHeight"
	Make                     = "Make"
	Model                    = "Model"
	LensModel                = "LensModel"
	LensInfo                 = "LensInfo"
	ISO                      = "ISO"
	RecommendedExposureIndex = "RecommendedExposureIndex"
	ExposureTime             = "ExposureTime"
	FNumber                  = "FNumber"
	FocalLength              = "FocalLength"
	WhiteBalance             = "WhiteBalance"
)

// Raw maps field names to decoded values. The report pipeline only reads it.
type Raw map[string]Value

// Keys returns the field names in sorted order.
func (r Raw) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Chain is an ordered list of synonym fields for one logical concept.
type Chain []string

// Priority chains, highest priority first.
var (
	CaptureTimeChain = Chain{DateTimeOriginal, CreateDate, ModifyDate}
	DirectionChain   = Chain{GPSImgDirection, GPSDestBearing, CameraElevationAngle}
	WidthChain       = Chain{ExifImageWidth, ImageWidth}
	HeightChain      = Chain{ExifImageHeight, ImageHeight}
	LensChain        = Chain{LensModel, LensInfo}
	ISOChain         = Chain{ISO, RecommendedExposureIndex}
)

// Present returns the first field in chain that exists and is not null.
func (r Raw) Present(chain Chain) (Value, bool) {
	for _, name := range chain {
		if v, ok := r[name]; ok && !v.IsNull() {
			return v, true
		}
	}
	return Value{}, false
}

// Truthy returns the first field in chain holding a non-empty, non-zero value.
func (r Raw) Truthy(chain Chain) (Value, bool) {
	for _, name := range chain {
		if v, ok := r[name]; ok && v.Truthy() {
			return v, true
		}
	}
	return Value{}, false
}

// Number returns a field as a number, or nil when it is absent or not numeric.
func (r Raw) Number(name string) *float64 {
	if n, ok := r[name].AsNumber(); ok {
		return &n
	}
	return nil
}

// Text returns a string field with surrounding whitespace removed.
func (r Raw) Text(name string) string {
	s, _ := r[name].AsString()
	return strings.TrimSpace(s)
}

// Fields is the typed view of a Raw map. Pointer fields are nil when the
// source data did not provide a usable value.
type Fields struct {
	CaptureTime *time.Time
	Latitude    *float64
	Longitude   *float64
	Altitude    *float64
	Direction   *float64

	Width  *Value
	Height *Value
	Make   string
	Model  string
	Lens   *Value

	ISO          *Value
	ExposureTime *Value
	FNumber      *float64
	FocalLength  *float64
	WhiteBalance *Value
}

// HasLocation reports whether both coordinates were resolved.
func (f Fields) HasLocation() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// Resolve walks every priority chain once. loc interprets capture timestamps
// that were stored as plain EXIF strings.
func Resolve(r Raw, loc *time.Location) Fields {
	f := Fields{
		Altitude:    r.Number(GPSAltitude),
		Make:        r.Text(Make),
		Model:       r.Text(Model),
		FNumber:     truthyNumber(r, FNumber),
		FocalLength: truthyNumber(r, FocalLength),
	}

	// Blank timestamps fall through; the first non-empty one wins even when
	// it cannot be parsed.
	if v, ok := r.Truthy(CaptureTimeChain); ok {
		if t, ok := asInstant(v, loc); ok {
			f.CaptureTime = &t
		}
	}

	if lat, lon := r.Number(Latitude), r.Number(Longitude); lat != nil && lon != nil {
		f.Latitude, f.Longitude = lat, lon
	}

	if v, ok := r.Present(DirectionChain); ok {
		if n, ok := v.AsNumber(); ok {
			f.Direction = &n
		}
	}

	f.Width = optional(r.Truthy(WidthChain))
	f.Height = optional(r.Truthy(HeightChain))
	f.Lens = optional(r.Truthy(LensChain))
	f.ISO = optional(r.Truthy(ISOChain))
	f.ExposureTime = optional(r.Truthy(Chain{ExposureTime}))
	f.WhiteBalance = optional(r.Truthy(Chain{WhiteBalance}))

	return f
}

func optional(v Value, ok bool) *Value {
	if !ok {
		return nil
	}
	return &v
}

func truthyNumber(r Raw, name string) *float64 {
	n := r.Number(name)
	if n == nil || *n == 0 {
		return nil
	}
	return n
}

func asInstant(v Value, loc *time.Location) (time.Time, bool) {
	if t, ok := v.AsTime(); ok {
		return t, true
	}
	if s, ok := v.AsString(); ok {
		return parseExifTime(s, loc)
	}
	return time.Time{}, false
}
