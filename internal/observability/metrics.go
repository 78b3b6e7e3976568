// Package observability exposes Prometheus metrics for report generation and
// the HTTP surface.
package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Report outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeNoMetadata = "no_metadata"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

// Collector bundles the skyreport metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Reports        *prometheus.CounterVec
	ReportDuration prometheus.Histogram
	Exports        *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	LatestReport   prometheus.Gauge
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	reports, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyreport_reports_total",
		Help: "Report generation attempts, labeled by outcome.",
	}, []string{"outcome"}), "skyreport_reports_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyreport_report_duration_seconds",
		Help:    "Time to extract metadata and build a report, in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}), "skyreport_report_duration_seconds")
	if err != nil {
		return nil, err
	}

	exports, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyreport_exports_total",
		Help: "Exports served or written, labeled by format.",
	}, []string{"format"}), "skyreport_exports_total")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyreport_http_requests_total",
		Help: "Handled HTTP requests, labeled by route and status code.",
	}, []string{"route", "code"}), "skyreport_http_requests_total")
	if err != nil {
		return nil, err
	}

	latest, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skyreport_latest_report_present",
		Help: "1 when a report is available for export, 0 otherwise.",
	}), "skyreport_latest_report_present")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		Reports:        reports,
		ReportDuration: duration,
		Exports:        exports,
		HTTPRequests:   requests,
		LatestReport:   latest,
	}, nil
}

// ObserveReport records one report attempt.
func (c *Collector) ObserveReport(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Reports.WithLabelValues(outcome).Inc()
	c.ReportDuration.Observe(elapsed.Seconds())
}

// ObserveExport records one export in format.
func (c *Collector) ObserveExport(format string) {
	if c == nil {
		return
	}
	c.Exports.WithLabelValues(format).Inc()
}

// SetLatestReport tracks whether a report is held.
func (c *Collector) SetLatestReport(present bool) {
	if c == nil {
		return
	}
	if present {
		c.LatestReport.Set(1)
	} else {
		c.LatestReport.Set(0)
	}
}

// Middleware counts responses served by next under route.
func (c *Collector) Middleware(route string, next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		c.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
