package export

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/skyreport/internal/report"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Formats lists every export encoding.
var Formats = []Format{FormatJSON, FormatCSV, FormatParquet}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (supported: json, csv, parquet)", s)
}

// ContentType is the media type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	}
	return "application/octet-stream"
}

// FileName returns "{baseName}-exif-report.{ext}".
func FileName(baseName string, f Format) string {
	return baseName + "-exif-report." + string(f)
}

// Encode serializes r in format f.
func Encode(r *report.Report, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, r, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams r to w in format f.
func Write(w io.Writer, r *report.Report, f Format) error {
	tree := FromReport(r)
	switch f {
	case FormatJSON:
		return WriteJSON(w, tree)
	case FormatCSV:
		return WriteCSV(w, tree)
	case FormatParquet:
		return WriteParquet(w, tree)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// WriteFile encodes r into dir and returns the written path.
func WriteFile(dir string, r *report.Report, f Format) (string, error) {
	data, err := Encode(r, f)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(r.BaseName(), f))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Info("Export written", "path", path, "format", f, "bytes", len(data))
	return path, nil
}
