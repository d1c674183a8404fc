package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tendant/folio/pkg/folio"
	"github.com/tendant/folio/pkg/folio/urlstrategy"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:        "8080",
		Environment: "development",
		ContentDir:  "content",
		PublicDir:   "public",
		OutDir:      "dist",
		LogLevel:    "info",
		LogFormat:   "text",
		Conventions: folio.DefaultConventions(),
	}
}

// ServerConfig represents configuration shared by the folio commands
type ServerConfig struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"` // development, production, testing

	// Site layout
	ContentDir string `yaml:"content_dir"` // markdown documents (projects/, writing/)
	PublicDir  string `yaml:"public_dir"`  // static asset root holding projects/<slug>/
	OutDir     string `yaml:"out_dir"`     // build output

	// AssetURL selects the asset source (one of):
	//   ""                              - filesystem at PublicDir
	//   "memory://"                     - empty in-memory source
	//   "file:///path/to/public"        - filesystem
	//   "s3://bucket?region=..&prefix=.." - S3 or S3-compatible bucket
	AssetURL string `yaml:"asset_url"`

	// URL publishing
	URLStrategy string `yaml:"url_strategy"` // site-path, cdn; empty picks by environment
	CDNBaseURL  string `yaml:"cdn_url"`

	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json

	Conventions folio.Conventions `yaml:"conventions"`
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.ContentDir == "" {
		return errors.New("content_dir is required")
	}

	if _, err := c.Source(); err != nil {
		return err
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be 'text' or 'json', got: %s", c.LogFormat)
	}

	if c.URLStrategy != "" {
		if _, err := c.BuildURLStrategy(); err != nil {
			return err
		}
	}

	return nil
}

// BuildSource creates the configured asset source
func (c *ServerConfig) BuildSource() (folio.AssetReader, error) {
	src, err := c.Source()
	if err != nil {
		return nil, err
	}
	return src.Build()
}

// BuildResolver creates a Resolver over the configured asset source
func (c *ServerConfig) BuildResolver(logger *slog.Logger) (*folio.Resolver, folio.AssetReader, error) {
	source, err := c.BuildSource()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build asset source: %w", err)
	}

	resolver, err := folio.New(
		folio.WithSource(source),
		folio.WithConventions(c.Conventions),
		folio.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return resolver, source, nil
}

// BuildURLStrategy creates the URL strategy applied to API responses
func (c *ServerConfig) BuildURLStrategy() (urlstrategy.URLStrategy, error) {
	if c.URLStrategy == "" {
		return urlstrategy.NewRecommendedStrategy(c.Environment, c.CDNBaseURL), nil
	}
	return urlstrategy.NewURLStrategy(urlstrategy.Config{
		Type:       urlstrategy.URLStrategyType(c.URLStrategy),
		CDNBaseURL: c.CDNBaseURL,
	})
}

// NewLogger creates a slog logger writing to w with the configured level and format
func (c *ServerConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
