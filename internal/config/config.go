// Package config loads service settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSources           = errors.New("at least one source is required")
	ErrSourceMissingName   = errors.New("source name is required")
	ErrUnknownSourceKind   = errors.New("source kind must be one of: newsapi, rss, finnhub")
	ErrSourceMissingURL    = errors.New("rss source requires url")
	ErrMissingNewsAPIKey   = errors.New("newsapi sources require NEWSAPI_KEY")
	ErrMissingFinnHubKey   = errors.New("finnhub sources require FINNHUB_API_KEY")
	ErrInvalidInterval     = errors.New("interval must be positive")
	ErrInvalidFetchTimeout = errors.New("fetch_timeout must be positive")
	ErrInvalidCloudSize    = errors.New("cloud.size must be at least 1")
	ErrInvalidSizeScale    = errors.New("cloud.size_scale must be at least 1")
	ErrInvalidMaxSize      = errors.New("cloud.max_size must be at least 1")
	ErrInvalidWriteLimit   = errors.New("database.write_concurrency must be at least 1")
	ErrUnknownDriver       = errors.New("database.driver must be postgres or sqlite")
	ErrInvalidLogLevel     = errors.New("log_level must be one of: debug, info, warn, error")
)

// Source kinds.
const (
	KindNewsAPI = "newsapi"
	KindRSS     = "rss"
	KindFinnHub = "finnhub"
)

// Config is the complete service configuration.
type Config struct {
	Interval      time.Duration  `yaml:"interval"`
	FetchTimeout  time.Duration  `yaml:"fetch_timeout"`
	ArticleLimit  int            `yaml:"article_limit"`
	RunOnStart    bool           `yaml:"run_on_start"`
	Cloud         CloudConfig    `yaml:"cloud"`
	Sources       []SourceConfig `yaml:"sources"`
	Stopwords     []string       `yaml:"stopwords"`
	StopwordsFile string         `yaml:"stopwords_file"`
	Database      DatabaseConfig `yaml:"database"`
	Redis         RedisConfig    `yaml:"redis"`
	HTTP          HTTPConfig     `yaml:"http"`
	LogLevel      string         `yaml:"log_level"`

	NewsAPIKey string `yaml:"-"`
	FinnHubKey string `yaml:"-"`
}

// CloudConfig controls ranking and normalization.
type CloudConfig struct {
	Size      int `yaml:"size"`
	SizeScale int `yaml:"size_scale"`
	MaxSize   int `yaml:"max_size"`
}

// SourceConfig names one news source. Sort is the newsapi sortBy value.
type SourceConfig struct {
	Name     string `yaml:"name"`
	Sort     string `yaml:"sort"`
	Kind     string `yaml:"kind"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

type DatabaseConfig struct {
	Driver           string `yaml:"driver"`
	URL              string `yaml:"url"`
	WriteConcurrency int    `yaml:"write_concurrency"`
}

type RedisConfig struct {
	URL     string        `yaml:"url"`
	LockKey string        `yaml:"lock_key"`
	LockTTL time.Duration `yaml:"lock_ttl"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "configs/newspoint.yaml"

// PathFromEnv returns CONFIG_PATH or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		Interval:     20 * time.Second,
		FetchTimeout: 10 * time.Second,
		ArticleLimit: 10,
		Cloud: CloudConfig{
			Size:      200,
			SizeScale: 2,
			MaxSize:   250,
		},
		Database: DatabaseConfig{
			Driver:           "postgres",
			WriteConcurrency: 8,
		},
		Redis: RedisConfig{
			LockKey: "newspoint:lock:run",
			LockTTL: 2 * time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults, merges the stopword
// file, applies environment overrides and validates the result. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if cfg.StopwordsFile != "" {
		stoplist, err := LoadStoplist(cfg.StopwordsFile)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		cfg.Stopwords = append(cfg.Stopwords, stoplist.Terms...)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Stoplist is the stopword file format.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

func (c *Config) applyEnv() {
	c.NewsAPIKey = firstEnv("NEWSAPI_KEY", "NEWSAPI_PASS")
	c.FinnHubKey = os.Getenv("FINNHUB_API_KEY")

	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		c.HTTP.AllowedOrigins = append(c.HTTP.AllowedOrigins, v)
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	for i, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingName, i)
		}

		switch src.KindOrDefault() {
		case KindNewsAPI:
			if c.NewsAPIKey == "" {
				return fmt.Errorf("%w: source %q", ErrMissingNewsAPIKey, src.Name)
			}
		case KindRSS:
			if src.URL == "" {
				return fmt.Errorf("%w: source %q", ErrSourceMissingURL, src.Name)
			}
		case KindFinnHub:
			if c.FinnHubKey == "" {
				return fmt.Errorf("%w: source %q", ErrMissingFinnHubKey, src.Name)
			}
		default:
			return fmt.Errorf("%w: source %q has kind %q", ErrUnknownSourceKind, src.Name, src.Kind)
		}
	}

	if c.Interval <= 0 {
		return ErrInvalidInterval
	}

	if c.FetchTimeout <= 0 {
		return ErrInvalidFetchTimeout
	}

	if c.Cloud.Size < 1 {
		return ErrInvalidCloudSize
	}

	if c.Cloud.SizeScale < 1 {
		return ErrInvalidSizeScale
	}

	if c.Cloud.MaxSize < 1 {
		return ErrInvalidMaxSize
	}

	if c.Database.WriteConcurrency < 1 {
		return ErrInvalidWriteLimit
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return ErrUnknownDriver
	}

	if _, ok := parseLevel(c.LogLevel); !ok {
		return ErrInvalidLogLevel
	}

	return nil
}

// KindOrDefault returns the source kind, treating an empty kind as newsapi.
func (s SourceConfig) KindOrDefault() string {
	if s.Kind == "" {
		return KindNewsAPI
	}
	return s.Kind
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
