package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/skyreport/internal/models"
)

// ErrTooLarge is returned when an image exceeds the configured size limit.
var ErrTooLarge = errors.New("image exceeds the size limit")

// Fetcher loads images from local paths and HTTP(S) URLs.
type Fetcher struct {
	HTTPClient *http.Client
	// MaxBytes caps downloads and file reads; zero means no limit.
	MaxBytes int64
}

// NewFetcher creates a Fetcher with a 30 second HTTP timeout.
func NewFetcher(maxBytes int64) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		MaxBytes: maxBytes,
	}
}

// IsURL reports whether src should be downloaded rather than read from disk.
func IsURL(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load reads src from disk or downloads it when it is a URL.
func (f *Fetcher) Load(ctx context.Context, src string) (models.ImageFile, error) {
	if IsURL(src) {
		return f.Download(ctx, src)
	}
	return f.ReadFile(src)
}

// ReadFile loads a local image.
func (f *Fetcher) ReadFile(p string) (models.ImageFile, error) {
	file, err := os.Open(p)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	data, err := f.readLimited(file)
	if err != nil {
		return models.ImageFile{}, err
	}

	name := filepath.Base(p)
	slog.Debug("Image read", "path", p, "bytes", len(data))
	return models.ImageFile{
		Name:      name,
		Size:      int64(len(data)),
		MediaType: MediaType(name, "", data),
		Data:      data,
	}, nil
}

// Download fetches an image over HTTP.
func (f *Fetcher) Download(ctx context.Context, imageURL string) (models.ImageFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("failed to build request: %w", err)
	}

	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ImageFile{}, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	data, err := f.readLimited(resp.Body)
	if err != nil {
		return models.ImageFile{}, err
	}

	name := nameFromURL(imageURL)
	slog.Info("Image downloaded", "url", imageURL, "bytes", len(data))
	return models.ImageFile{
		Name:      name,
		Size:      int64(len(data)),
		MediaType: MediaType(name, resp.Header.Get("Content-Type"), data),
		Data:      data,
	}, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	if f.MaxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, f.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if int64(len(data)) > f.MaxBytes {
		return nil, fmt.Errorf("%w (max %d bytes)", ErrTooLarge, f.MaxBytes)
	}
	return data, nil
}

// MediaType picks the declared type when it is an image type, then the file
// extension, then content sniffing. It returns "" when none is conclusive.
func MediaType(name, declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
	}
	if len(data) > 0 {
		if mt := http.DetectContentType(data); strings.HasPrefix(mt, "image/") {
			return mt
		}
	}
	return ""
}

func nameFromURL(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "image.jpg"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "image.jpg"
	}
	return name
}
