// Package main provides the nyaa-indexer command line: an HTTP indexer
// server and a one-shot search command.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felipemarinho97/nyaa-indexer/cache"
	"github.com/felipemarinho97/nyaa-indexer/config"
	"github.com/felipemarinho97/nyaa-indexer/consts"
	"github.com/felipemarinho97/nyaa-indexer/logging"
	"github.com/felipemarinho97/nyaa-indexer/monitoring"
	"github.com/felipemarinho97/nyaa-indexer/nyaa"
	"github.com/felipemarinho97/nyaa-indexer/requester"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   consts.ProjectName,
		Short: "Search torrents listed on Nyaa",
		Long: `nyaa-indexer searches the Nyaa torrent index and returns every matching
torrent with its category, links, size, date and swarm counts.

Configuration is read from the environment and from a .env file in the
working directory (NYAA_URL, LISTEN_ADDR, METRICS_ADDR, REDIS_HOST,
MAX_PAGES, SEARCH_TIMEOUT, REQUEST_TIMEOUT, REQUESTS_PER_SECOND,
FAILURE_SNAPSHOT_TTL, LOG_LEVEL, LOG_FORMAT).`,
		Version:       consts.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			config.LoadEnvFile()
			logging.InitLogger()
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logging.SetVerbose()
			}
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const redisPingTimeout = 2 * time.Second

// newCrawler wires the crawler from cfg. The snapshot store, if configured,
// is pinged once; an unreachable redis is logged, not fatal. The returned
// func releases the store.
func newCrawler(ctx context.Context, cfg *config.Config, metrics *monitoring.Metrics) (*nyaa.Crawler, func()) {
	opts := []nyaa.Option{
		nyaa.WithMaxPages(cfg.MaxPages),
		nyaa.WithMetrics(metrics),
	}

	closer := func() {}
	if cfg.SnapshotsEnabled() {
		redis := cache.NewRedis(cfg.RedisHost, cfg.FailureSnapshotTTL)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		if err := redis.Ping(pingCtx); err != nil {
			logging.Warn().Err(err).Msg("Failure snapshots will not be saved until redis is reachable")
		}
		cancel()
		opts = append(opts, nyaa.WithRecorder(redis))
		closer = func() {
			if err := redis.Close(); err != nil {
				logging.Error().Err(err).Msg("Failed to close redis client")
			}
		}
	}

	req := requester.NewRequester(cfg.BaseURL, cfg.RequestTimeout, cfg.RequestsPerSecond)
	return nyaa.NewCrawler(req, opts...), closer
}
