package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/models"
	"github.com/lehigh-university-libraries/skyreport/internal/observability"
	"github.com/lehigh-university-libraries/skyreport/internal/report"
)

var errSuperseded = errors.New("a newer submission replaced this one")

// generate builds a report for img and makes it the latest one, unless a
// newer submission began while this one was running.
func (h *Handler) generate(ctx context.Context, img models.ImageFile) (*report.Report, error) {
	ticket := h.reportStore.Begin()
	start := time.Now()

	rep, err := h.builder.Generate(ctx, h.extractor, img)
	if err != nil {
		outcome := observability.OutcomeError
		if errors.Is(err, metadata.ErrNoMetadata) {
			outcome = observability.OutcomeNoMetadata
		}
		h.metrics.ObserveReport(outcome, time.Since(start))
		if h.reportStore.Fail(ticket) {
			h.metrics.SetLatestReport(false)
		}
		return nil, err
	}

	if !h.reportStore.Commit(ticket, rep) {
		h.metrics.ObserveReport(observability.OutcomeSuperseded, time.Since(start))
		slog.Info("Discarding superseded report", "file", img.Name)
		return nil, errSuperseded
	}
	h.metrics.ObserveReport(observability.OutcomeSuccess, time.Since(start))
	h.metrics.SetLatestReport(true)

	slog.Info("Report generated",
		"file", img.Name,
		"bytes", img.Size,
		"raw_fields", len(rep.Raw),
		"astronomy", rep.HasAstronomy(),
		"elapsed", time.Since(start))
	return rep, nil
}
