package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/skyreport/internal/export"
	"github.com/lehigh-university-libraries/skyreport/internal/images"
	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/models"
)

// HandleReport serves /api/report. POST builds a report from an uploaded
// file or an image URL; GET returns the latest report; DELETE drops it.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleLatest(w)
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodDelete:
		h.reportStore.Clear()
		h.metrics.SetLatestReport(false)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleLatest(w http.ResponseWriter) {
	rep, ok := h.reportStore.Get()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	body, err := export.Encode(rep, export.FormatJSON)
	if err != nil {
		h.writeError(w, "Failed to encode report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeBody(w, export.FormatJSON.ContentType(), body)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	// Check if this is a JSON request with image URL
	var (
		img models.ImageFile
		err error
	)
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		img, err = h.readURLSubmission(r)
	} else {
		img, err = h.readFileSubmission(w, r)
	}
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, images.ErrTooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		h.writeError(w, err.Error(), code)
		return
	}

	rep, err := h.generate(r.Context(), img)
	switch {
	case errors.Is(err, errSuperseded):
		h.writeError(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, metadata.ErrNoMetadata):
		h.writeError(w, "Failed to read metadata: "+err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		h.writeError(w, "Failed to build report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := export.Encode(rep, export.FormatJSON)
	if err != nil {
		h.writeError(w, "Failed to encode report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeBody(w, export.FormatJSON.ContentType(), body)
}

func (h *Handler) readURLSubmission(r *http.Request) (models.ImageFile, error) {
	var request struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&request); err != nil {
		return models.ImageFile{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if request.ImageURL == "" {
		return models.ImageFile{}, errors.New("image_url is required")
	}
	if !images.IsURL(request.ImageURL) {
		return models.ImageFile{}, errors.New("image_url must be an http or https URL")
	}
	return h.fetcher.Download(r.Context(), request.ImageURL)
}

func (h *Handler) readFileSubmission(w http.ResponseWriter, r *http.Request) (models.ImageFile, error) {
	if h.maxUpload > 0 {
		// leave room for the multipart envelope
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		file, header, err = r.FormFile("files")
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return models.ImageFile{}, images.ErrTooLarge
		}
		return models.ImageFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("failed to read file contents: %w", err)
	}
	if h.maxUpload > 0 && int64(len(data)) > h.maxUpload {
		return models.ImageFile{}, images.ErrTooLarge
	}

	return models.ImageFile{
		Name:      header.Filename,
		Size:      int64(len(data)),
		MediaType: images.MediaType(header.Filename, header.Header.Get("Content-Type"), data),
		Data:      data,
	}, nil
}
