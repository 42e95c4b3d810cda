package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/velodata/tt-scraper/internal/config"
	"github.com/velodata/tt-scraper/internal/export"
	"github.com/velodata/tt-scraper/internal/fetch"
	"github.com/velodata/tt-scraper/internal/pipeline"
	"github.com/velodata/tt-scraper/internal/scrape"
)

// Container bundles the assembled pipeline and exporter for one run.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Pipeline *pipeline.Pipeline
	Exporter *export.Writer
}

// Build wires the fetcher, the four scrapers, the pipeline and the CSV
// writer. Everything shares one fetch client and with it one connection
// pool.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	fetcher := fetch.NewClient(fetch.Options{
		Timeout:   cfg.Scrape.RequestTimeout,
		UserAgent: cfg.Scrape.UserAgent,
	}, logger)

	specialists := scrape.NewSpecialistScraper(
		fetcher, cfg.Scrape.BaseURL,
		cfg.Ranking.StartYear, cfg.Ranking.EndYear, cfg.Ranking.TopN,
		logger)
	riders := scrape.NewRiderScraper(fetcher, cfg.Scrape.BaseURL, logger)
	results := scrape.NewResultScraper(fetcher, cfg.Scrape.BaseURL, cfg.Scrape.MinResultYear, logger)
	races := scrape.NewRaceScraper(fetcher, cfg.Scrape.BaseURL, logger)

	pipe := pipeline.New(specialists, riders, results, races, cfg.Scrape.Concurrency, logger)
	exporter := export.NewWriter(cfg.Output.Dir, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Pipeline: pipe,
		Exporter: exporter,
	}, nil
}
