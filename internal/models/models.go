package models

import (
	"path/filepath"
	"strings"
)

// DefaultBaseName names exports when the image has no usable file name.
const DefaultBaseName = "report"

// ImageFile represents a photograph submitted for a report
type ImageFile struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	MediaType string `json:"media_type"` // as declared by the uploader or the file extension
	Data      []byte `json:"-"`
}

// BaseName returns the file name with its final extension stripped.
func (f ImageFile) BaseName() string {
	name := filepath.Base(f.Name)
	if name == "." || name == string(filepath.Separator) {
		return DefaultBaseName
	}
	base := name
	if ext := filepath.Ext(name); len(ext) > 1 {
		base = strings.TrimSuffix(name, ext)
	}
	if base == "" {
		return DefaultBaseName
	}
	return base
}
