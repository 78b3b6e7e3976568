package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/skyreport/internal/export"
)

// HandleExport serves /api/report/export.{json,csv,parquet}. With no report
// held it is a no-op answered with 204.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ext := strings.TrimPrefix(r.URL.Path, "/api/report/export.")
	format, err := export.ParseFormat(ext)
	if err != nil || ext == r.URL.Path {
		h.writeError(w, "Unknown export format", http.StatusNotFound)
		return
	}

	rep, ok := h.reportStore.Get()
	if !ok {
		slog.Debug("Export requested with no report", "format", format)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	body, err := export.Encode(rep, format)
	if err != nil {
		h.writeError(w, "Failed to export report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveExport(string(format))

	filename := export.FileName(rep.BaseName(), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.writeBody(w, format.ContentType(), body)
}
