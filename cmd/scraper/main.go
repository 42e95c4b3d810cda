package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/app"
	"github.com/velodata/tt-scraper/internal/config"
	"github.com/velodata/tt-scraper/internal/pipeline"
	"github.com/velodata/tt-scraper/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("time trial scraper starting",
		zap.String("base_url", cfg.Scrape.BaseURL),
		zap.Int("concurrency", cfg.Scrape.Concurrency),
		zap.Int("start_year", cfg.Ranking.StartYear),
		zap.Int("end_year", cfg.Ranking.EndYear),
		zap.String("output_dir", cfg.Output.Dir),
	)

	container, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("Failed to assemble services", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	start := time.Now()
	datasets, stats, err := container.Pipeline.Run(ctx)
	if err != nil {
		logger.Error("Pipeline failed", zap.Error(err))
		os.Exit(1)
	}

	if err := container.Exporter.WriteAll(datasets); err != nil {
		logger.Error("Failed to write datasets", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("run complete", zap.Duration("elapsed", time.Since(start)))
	printSummary(stats)
}

func printSummary(stats *pipeline.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"stage", "kept", "dropped"})
	t.AppendRows([]table.Row{
		{"riders", stats.RidersScraped, stats.RidersDropped},
		{"result batches", stats.ResultBatches - stats.ResultBatchesDropped, stats.ResultBatchesDropped},
		{"result rows", stats.ResultRows, ""},
		{"races", stats.RacesScraped, stats.RacesDropped},
	})
	t.AppendFooter(table.Row{"distinct race urls", stats.RaceURLs, ""})
	t.Render()
}
