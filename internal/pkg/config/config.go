package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Health     HealthConfig     `yaml:"health"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Sources    SourcesConfig    `yaml:"sources"`
	Cache      CacheConfig      `yaml:"cache"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Telegram   TelegramConfig   `yaml:"telegram"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type HealthConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type AggregatorConfig struct {
	AliasesPath string        `yaml:"aliases_path"`
	MatchWindow time.Duration `yaml:"match_window"` // kickoff proximity for same-fixture grouping
}

type SourcesConfig struct {
	UserAgent     string            `yaml:"user_agent"`
	Timeout       time.Duration     `yaml:"timeout"`
	Headers       map[string]string `yaml:"headers"`
	RatePerSecond float64           `yaml:"rate_per_second"`

	TheSportsDB TheSportsDBConfig `yaml:"thesportsdb"`
	SofaScore   SofaScoreConfig   `yaml:"sofascore"`
	Fudbal91    Fudbal91Config    `yaml:"fudbal91"`
}

type TheSportsDBConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	// Competition key -> candidate league names on the provider side.
	Competitions map[string][]string `yaml:"competitions"`
}

type SofaScoreConfig struct {
	BaseURL string `yaml:"base_url"`
	// Competition key -> tournament name substrings to keep.
	Competitions map[string][]string `yaml:"competitions"`
}

type Fudbal91Config struct {
	QuickOddsURL string `yaml:"quick_odds_url"`
	// Competition key -> competition page URL.
	Competitions map[string]string `yaml:"competitions"`
}

type CacheConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	RedisAddr     string        `yaml:"redis_addr"` // empty: in-process cache
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"` // empty: run snapshots disabled
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"` // empty: notifications disabled
	ChatID   int64  `yaml:"chat_id"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Sources.Timeout <= 0 {
		c.Sources.Timeout = 12 * time.Second
	}
	if c.Sources.RatePerSecond <= 0 {
		c.Sources.RatePerSecond = 4
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 2 * time.Minute
	}
	if c.Aggregator.MatchWindow <= 0 {
		c.Aggregator.MatchWindow = 30 * time.Minute
	}
	if c.Health.ReadHeaderTimeout <= 0 {
		c.Health.ReadHeaderTimeout = 10 * time.Second
	}
}

// CompetitionKeys returns every short code any source knows about.
func (c *Config) CompetitionKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range c.Sources.TheSportsDB.Competitions {
		add(k)
	}
	for k := range c.Sources.SofaScore.Competitions {
		add(k)
	}
	for k := range c.Sources.Fudbal91.Competitions {
		add(k)
	}
	return keys
}
