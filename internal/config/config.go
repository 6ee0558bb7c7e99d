package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration shared by the discover and fetch runs.
type Config struct {
	FirmsFile       string // firm database, read by both runs, rewritten by discover
	OutputFile      string // public job listing written by fetch
	DiscoveriesFile string // unmatched aggregator results written by fetch
	ReviewDB        string // sqlite file backing the review command

	HTTPTimeout  time.Duration
	Batch        BatchConfig
	Aggregator   AggregatorConfig
	Notification NotificationConfig
}

// BatchConfig bounds outstanding request volume: Size firms run
// concurrently, then the driver sleeps Delay before the next group.
type BatchConfig struct {
	Size  int
	Delay time.Duration
}

// AggregatorConfig controls the free-text job-search pass. An empty APIKey
// disables the pass entirely.
type AggregatorConfig struct {
	APIKey     string
	BaseURL    string
	Queries    []string
	QueryDelay time.Duration // minimum gap between aggregator queries
}

// NotificationConfig controls where run summaries go.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const defaultAggregatorBaseURL = "https://jsearch.p.rapidapi.com"

var defaultQueries = []string{
	"architecture firm hiring",
	"architect job",
	"architectural designer",
	"landscape architect job",
}

// Default returns the configuration used when no config file is present.
// The aggregator key still comes from the environment so a bare
// `archfeed fetch` behaves the same as one with a minimal config file.
func Default() *Config {
	return &Config{
		FirmsFile:       "data/firms.json",
		OutputFile:      "public/jobs.json",
		DiscoveriesFile: "data/discoveries.json",
		ReviewDB:        "review.db",
		HTTPTimeout:     10 * time.Second,
		Batch: BatchConfig{
			Size:  5,
			Delay: 200 * time.Millisecond,
		},
		Aggregator: AggregatorConfig{
			APIKey:     os.Getenv("JSEARCH_API_KEY"),
			BaseURL:    defaultAggregatorBaseURL,
			Queries:    defaultQueries,
			QueryDelay: 1 * time.Second,
		},
		Notification: NotificationConfig{Type: "log"},
	}
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	FirmsFile       string              `yaml:"firms_file"`
	OutputFile      string              `yaml:"output_file"`
	DiscoveriesFile string              `yaml:"discoveries_file"`
	ReviewDB        string              `yaml:"review_db"`
	HTTPTimeout     string              `yaml:"http_timeout"`
	Batch           rawBatchConfig      `yaml:"batch"`
	Aggregator      rawAggregatorConfig `yaml:"aggregator"`
	Notification    NotificationConfig  `yaml:"notification"`
}

type rawBatchConfig struct {
	Size  int    `yaml:"size"`
	Delay string `yaml:"delay"`
}

type rawAggregatorConfig struct {
	APIKey     string   `yaml:"api_key"`
	BaseURL    string   `yaml:"base_url"`
	Queries    []string `yaml:"queries"`
	QueryDelay string   `yaml:"query_delay"`
}

// Load reads and parses the YAML config file at path, fills defaults,
// validates, and returns Config. Environment variables in the file body are
// expanded before parsing, which is how the aggregator API key is normally
// injected (api_key: ${JSEARCH_API_KEY}).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.FirmsFile != "" {
		cfg.FirmsFile = raw.FirmsFile
	}
	if raw.OutputFile != "" {
		cfg.OutputFile = raw.OutputFile
	}
	if raw.DiscoveriesFile != "" {
		cfg.DiscoveriesFile = raw.DiscoveriesFile
	}
	if raw.ReviewDB != "" {
		cfg.ReviewDB = raw.ReviewDB
	}

	if raw.HTTPTimeout != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse http_timeout %q: %w", raw.HTTPTimeout, err)
		}
	}

	if raw.Batch.Size != 0 {
		cfg.Batch.Size = raw.Batch.Size
	}
	if raw.Batch.Delay != "" {
		cfg.Batch.Delay, err = time.ParseDuration(raw.Batch.Delay)
		if err != nil {
			return nil, fmt.Errorf("parse batch.delay %q: %w", raw.Batch.Delay, err)
		}
	}

	// api_key overrides even when empty after expansion: a config that
	// names an unset env var means "disabled", not "fall back".
	cfg.Aggregator.APIKey = raw.Aggregator.APIKey
	if raw.Aggregator.BaseURL != "" {
		cfg.Aggregator.BaseURL = raw.Aggregator.BaseURL
	}
	if len(raw.Aggregator.Queries) > 0 {
		cfg.Aggregator.Queries = raw.Aggregator.Queries
	}
	if raw.Aggregator.QueryDelay != "" {
		cfg.Aggregator.QueryDelay, err = time.ParseDuration(raw.Aggregator.QueryDelay)
		if err != nil {
			return nil, fmt.Errorf("parse aggregator.query_delay %q: %w", raw.Aggregator.QueryDelay, err)
		}
	}

	if raw.Notification.Type != "" {
		cfg.Notification = raw.Notification
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.FirmsFile == "" {
		return fmt.Errorf("firms_file must not be empty")
	}
	if cfg.Batch.Size < 1 {
		return fmt.Errorf("batch.size must be at least 1, got %d", cfg.Batch.Size)
	}
	if cfg.Batch.Delay < 0 {
		return fmt.Errorf("batch.delay must not be negative, got %v", cfg.Batch.Delay)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if cfg.Aggregator.QueryDelay < 0 {
		return fmt.Errorf("aggregator.query_delay must not be negative, got %v", cfg.Aggregator.QueryDelay)
	}

	if cfg.Notification.Type == "slack" {
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	}

	return nil
}
