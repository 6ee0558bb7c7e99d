package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/archfeed/archfeed/internal/discover"
	"github.com/archfeed/archfeed/internal/firmdb"
	"github.com/archfeed/archfeed/internal/probe"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find job-board slugs for firms missing them",
	Long:  "Probes Greenhouse and Lever with candidate slugs derived from each firm's name and website, then rewrites the firm database with the results.",
	RunE:  runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
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
	driver := discover.New(
		probe.NewGreenhouse(httpClient),
		probe.NewLever(httpClient),
		cfg.Batch,
		logger,
	)

	sum, err := driver.Run(ctx, firms)
	if err != nil {
		logger.Error("discovery run failed", "error", err)
		os.Exit(1)
	}

	if err := firmdb.Save(cfg.FirmsFile, firms); err != nil {
		logger.Error("failed to save firm database", "error", err)
		os.Exit(1)
	}

	n := setupNotifier(cfg, httpClient, logger)
	if err := n.Notify(sum); err != nil {
		logger.Error("notification failed", "error", err)
	}
	return nil
}
