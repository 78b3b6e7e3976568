package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/skyreport/internal/export"
	"github.com/lehigh-university-libraries/skyreport/internal/handlers"
	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/observability"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the report HTTP API",
		Long: `Starts the skyreport HTTP API on the specified port.

POST an image to /api/report (multipart field "file", or JSON {"image_url": ...})
to build a report; the latest report can then be downloaded from
/api/report/export.json, .csv or .parquet. Prometheus metrics are served on /metrics.`,
		Example: `  # Start server on default port 8888
  skyreport serve

  # Start server on custom port
  skyreport serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Port
			}

			collector, err := observability.NewCollector(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			handler := handlers.New(handlers.Options{
				Builder:        a.builder(),
				Extractor:      metadata.NewExifExtractor(a.location),
				Metrics:        collector,
				MaxUploadBytes: a.cfg.MaxUploadBytes(),
			})

			server := &http.Server{
				Addr:              ":" + port,
				Handler:           newMux(handler, collector),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return run(cmd.Context(), server)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}

func newMux(handler *handlers.Handler, collector *observability.Collector) *http.ServeMux {
	// Set up routes
	mux := http.NewServeMux()
	mux.Handle("/api/report", collector.Middleware("/api/report", http.HandlerFunc(handler.HandleReport)))
	for _, f := range export.Formats {
		route := "/api/report/export." + string(f)
		mux.Handle(route, collector.Middleware(route, http.HandlerFunc(handler.HandleExport)))
	}
	mux.Handle("/metrics", collector.Handler())
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

func run(ctx context.Context, server *http.Server) error {
	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Skyreport API available", "addr", server.Addr, "url", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation (Ctrl+C) or server error
	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
		// Give server 5 seconds to shut down gracefully
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "err", err)
			return err
		}
		slog.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
