package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	handler "github.com/felipemarinho97/nyaa-indexer/api"
	"github.com/felipemarinho97/nyaa-indexer/config"
	"github.com/felipemarinho97/nyaa-indexer/logging"
	"github.com/felipemarinho97/nyaa-indexer/monitoring"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP indexer",
		Long: `Serve exposes the search over HTTP:

  GET /             build info and endpoint list
  GET /search       q, category, sort=similarity
  GET /search/page  q, page

Prometheus metrics are served on METRICS_ADDR at /metrics.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("listen", "", "Listen address, overrides LISTEN_ADDR")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.ListenAddr = listen
	}

	metrics := monitoring.NewMetrics()
	metrics.Register()

	crawler, closeCrawler := newCrawler(cmd.Context(), cfg, metrics)
	defer closeCrawler()

	indexers := handler.NewIndexers(crawler, metrics, cfg.BaseURL, cfg.SearchTimeout)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	indexerServer := &http.Server{Addr: cfg.ListenAddr, Handler: newIndexerMux(indexers)}
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		logging.Info().Str("addr", cfg.MetricsAddr).Msg("Metrics server listening")
		errCh <- metricsServer.ListenAndServe()
	}()
	go func() {
		logging.Info().
			Str("addr", cfg.ListenAddr).
			Str("site", cfg.BaseURL).
			Uint("max_pages", cfg.MaxPages).
			Bool("snapshots", cfg.SnapshotsEnabled()).
			Msg("Indexer listening")
		errCh <- indexerServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
	case <-ctx.Done():
		logging.Info().Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(indexerServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
}

func newIndexerMux(indexers *handler.Indexer) http.Handler {
	indexerMux := http.NewServeMux()

	indexerMux.HandleFunc("/{$}", handler.HandlerIndex)
	indexerMux.HandleFunc("/search", indexers.HandlerSearch)
	indexerMux.HandleFunc("/search/page", indexers.HandlerSearchPage)

	return logging.HTTPLoggingMiddleware(indexerMux)
}
