package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/skyreport/internal/images"
	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/observability"
	"github.com/lehigh-university-libraries/skyreport/internal/report"
	"github.com/lehigh-university-libraries/skyreport/internal/storage"
)

type Handler struct {
	reportStore *storage.ReportStore
	builder     *report.Builder
	extractor   metadata.Extractor
	fetcher     *images.Fetcher
	metrics     *observability.Collector
	maxUpload   int64
}

// Options wires the collaborators a Handler needs. Metrics may be nil.
type Options struct {
	Builder        *report.Builder
	Extractor      metadata.Extractor
	Metrics        *observability.Collector
	MaxUploadBytes int64
}

func New(opts Options) *Handler {
	return &Handler{
		reportStore: storage.New(),
		builder:     opts.Builder,
		extractor:   opts.Extractor,
		fetcher:     images.NewFetcher(opts.MaxUploadBytes),
		metrics:     opts.Metrics,
		maxUpload:   opts.MaxUploadBytes,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	http.Error(w, message, code)
}

func (h *Handler) writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		slog.Error("Unable to write response", "err", err)
	}
}
