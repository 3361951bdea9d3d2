package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/zenflow/zenflow/pkg/leadfeed"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Lead history database configuration"`
	Feed     FeedConfig     `yaml:"feed" json:"feed" jsonschema:"description=Live lead feed configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
}

// DatabaseConfig holds lead history database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:zenflow.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// FeedConfig holds the live lead feed settings
type FeedConfig struct {
	Paused      bool          `yaml:"paused" json:"paused" jsonschema:"default=false,description=Do not tick automatically; ticks only happen on demand"`
	Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=5s,description=Tick interval"`
	Threshold   float64       `yaml:"threshold" json:"threshold" jsonschema:"default=0.7,exclusiveMinimum=0,exclusiveMaximum=1,description=A tick emits a lead when the random draw is above this value"`
	MaxSize     int           `yaml:"max_size" json:"max_size" jsonschema:"default=5,minimum=1,description=Maximum number of leads in the live list"`
	RevealDelay time.Duration `yaml:"reveal_delay" json:"reveal_delay" jsonschema:"default=50ms,description=Delay before a new lead is revealed"`
	Identities  []string      `yaml:"identities" json:"identities" jsonschema:"description=Pool of simulated lead handles"`
	Keyword     string        `yaml:"keyword" json:"keyword" jsonschema:"default=RECIPE,description=Comment keyword shown in the lead status"`
	Seed        []string      `yaml:"seed" json:"seed" jsonschema:"description=Handles shown in the live list on start, newest first"`
	RandomSeed  uint64        `yaml:"random_seed" json:"random_seed" jsonschema:"default=0,description=Seed for the random source, 0 picks a random one"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults and sanitizes the feed handles
func (c *Config) SetDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:zenflow.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// set defaults for feed
	if c.Feed.Interval == 0 {
		c.Feed.Interval = leadfeed.DefaultInterval
	}
	if c.Feed.Threshold == 0 {
		c.Feed.Threshold = leadfeed.DefaultThreshold
	}
	if c.Feed.MaxSize == 0 {
		c.Feed.MaxSize = leadfeed.DefaultMaxSize
	}
	if c.Feed.RevealDelay == 0 {
		c.Feed.RevealDelay = leadfeed.DefaultRevealDelay
	}
	if c.Feed.Keyword == "" {
		c.Feed.Keyword = leadfeed.DefaultKeyword
	}

	policy := bluemonday.StrictPolicy()
	c.Feed.Identities = sanitizeHandles(policy, c.Feed.Identities)
	if len(c.Feed.Identities) == 0 {
		c.Feed.Identities = append([]string(nil), leadfeed.DefaultIdentities...)
	}
	c.Feed.Seed = sanitizeHandles(policy, c.Feed.Seed)
	c.Feed.Keyword = strings.TrimSpace(policy.Sanitize(c.Feed.Keyword))
}

// sanitizeHandles strips markup and whitespace from handles, dropping empty and duplicate ones
func sanitizeHandles(policy *bluemonday.Policy, handles []string) []string {
	res := lo.FilterMap(handles, func(h string, _ int) (string, bool) {
		h = strings.TrimSpace(policy.Sanitize(h))
		return h, h != ""
	})
	return lo.Uniq(res)
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate feed config
	if cfg.Feed.Interval < 100*time.Millisecond {
		return fmt.Errorf("feed.interval must be at least 100ms")
	}
	if cfg.Feed.Threshold <= 0 || cfg.Feed.Threshold >= 1 {
		return fmt.Errorf("feed.threshold must be between 0 and 1 (exclusive)")
	}
	if cfg.Feed.MaxSize < 1 {
		return fmt.Errorf("feed.max_size must be at least 1")
	}
	if cfg.Feed.RevealDelay < 0 {
		return fmt.Errorf("feed.reveal_delay must be non-negative")
	}
	if cfg.Feed.Keyword == "" {
		return fmt.Errorf("feed.keyword is required")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the external base URL of the service
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetFeedConfig returns the live feed configuration
func (c *Config) GetFeedConfig() FeedConfig {
	return c.Feed
}
