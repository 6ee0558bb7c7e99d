package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/archfeed/archfeed/internal/adapter"
	"github.com/archfeed/archfeed/internal/fetcher"
	"github.com/archfeed/archfeed/internal/firmdb"
	"github.com/archfeed/archfeed/internal/output"
	"github.com/archfeed/archfeed/internal/ratelimit"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch jobs and publish the public listing",
	Long:  "Fetches open positions from every firm's job board, runs the broad aggregator search when an API key is configured, and writes the public jobs file plus the discoveries file.",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	firms, err := firmdb.Load(cfg.FirmsFile)
	if err != nil {
		logger.Error("failed to load firm database", "error", err)
		os.Exit(1)
	}
	logger.Info("firm database loaded", "firms", len(firms), "file", cfg.FirmsFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	limiter := ratelimit.NewHostLimiter(cfg.Aggregator.QueryDelay)
	agg := adapter.NewAggregator(cfg.Aggregator.BaseURL, cfg.Aggregator.APIKey, httpClient, limiter)

	driver := fetcher.New(
		adapter.NewGreenhouse(httpClient),
		adapter.NewLever(httpClient),
		agg,
		cfg.Aggregator.Queries,
		cfg.Batch,
		logger,
	)

	sum, discoveries, err := driver.Run(ctx, firms)
	if err != nil {
		logger.Error("fetch run failed", "error", err)
		os.Exit(1)
	}

	written, err := output.WritePublic(cfg.OutputFile, firms)
	if err != nil {
		logger.Error("failed to write public listing", "error", err)
		os.Exit(1)
	}
	sum.OutputBytes = written

	if err := output.WriteDiscoveries(cfg.DiscoveriesFile, discoveries); err != nil {
		logger.Error("failed to write discoveries file", "error", err)
		os.Exit(1)
	}

	n := setupNotifier(cfg, httpClient, logger)
	if err := n.Notify(sum); err != nil {
		logger.Error("notification failed", "error", err)
	}
	return nil
}
