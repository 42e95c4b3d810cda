package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Scrape  ScrapeConfig
	Ranking RankingConfig
	Output  OutputConfig
	Logging LoggingConfig
}

type ScrapeConfig struct {
	BaseURL        string
	Concurrency    int
	RequestTimeout time.Duration
	UserAgent      string
	MinResultYear  int
}

type RankingConfig struct {
	StartYear int
	EndYear   int
	TopN      int
}

type OutputConfig struct {
	Dir string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Scrape: ScrapeConfig{
			BaseURL:        getEnv("PCS_BASE_URL", "https://www.procyclingstats.com/"),
			Concurrency:    getEnvInt("SCRAPE_CONCURRENCY", 15),
			RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
			UserAgent:      getEnv("USER_AGENT", "Mozilla/5.0 (compatible; tt-scraper/1.0)"),
			MinResultYear:  getEnvInt("MIN_RESULT_YEAR", 2020),
		},
		Ranking: RankingConfig{
			StartYear: getEnvInt("RANKING_START_YEAR", 2020),
			EndYear:   getEnvInt("RANKING_END_YEAR", 2024),
			TopN:      getEnvInt("RANKING_TOP_N", 50),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "data"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scrape.BaseURL == "" {
		return fmt.Errorf("PCS_BASE_URL is required")
	}
	if !strings.HasSuffix(c.Scrape.BaseURL, "/") {
		return fmt.Errorf("PCS_BASE_URL must end with a slash")
	}
	if c.Scrape.Concurrency < 1 {
		return fmt.Errorf("SCRAPE_CONCURRENCY must be at least 1")
	}
	if c.Scrape.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.Ranking.StartYear > c.Ranking.EndYear {
		return fmt.Errorf("RANKING_START_YEAR must not be after RANKING_END_YEAR")
	}
	if c.Ranking.TopN < 1 {
		return fmt.Errorf("RANKING_TOP_N must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
