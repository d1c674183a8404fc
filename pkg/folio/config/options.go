package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/folio/pkg/folio"
)

// WithFile reads a YAML (or JSON/TOML, by extension) configuration file.
// Keys missing from the file keep their current values.
func WithFile(path string) Option {
	return func(c *ServerConfig) error {
		if path == "" {
			return nil
		}
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}
}

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithContentDir sets the markdown content directory
func WithContentDir(dir string) Option {
	return func(c *ServerConfig) error {
		if dir == "" {
			return fmt.Errorf("content directory cannot be empty")
		}
		c.ContentDir = dir
		return nil
	}
}

// WithOutDir sets the build output directory
func WithOutDir(dir string) Option {
	return func(c *ServerConfig) error {
		if dir == "" {
			return fmt.Errorf("output directory cannot be empty")
		}
		c.OutDir = dir
		return nil
	}
}

// WithFilesystemSource serves assets from baseDir
func WithFilesystemSource(baseDir string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}
		c.PublicDir = baseDir
		c.AssetURL = ""
		return nil
	}
}

// WithMemorySource uses an empty in-memory asset source
func WithMemorySource() Option {
	return func(c *ServerConfig) error {
		c.AssetURL = "memory://"
		return nil
	}
}

// WithAssetURL sets the asset source URL (memory://, file://, s3://)
func WithAssetURL(raw string) Option {
	return func(c *ServerConfig) error {
		c.AssetURL = raw
		return nil
	}
}

// WithCDN publishes asset URLs through a CDN
func WithCDN(baseURL string) Option {
	return func(c *ServerConfig) error {
		if baseURL == "" {
			return fmt.Errorf("CDN base URL cannot be empty")
		}
		c.URLStrategy = "cdn"
		c.CDNBaseURL = baseURL
		return nil
	}
}

// WithLogging sets log level and format
func WithLogging(level, format string) Option {
	return func(c *ServerConfig) error {
		if level != "" {
			c.LogLevel = level
		}
		if format != "" {
			c.LogFormat = format
		}
		return nil
	}
}

// WithConventions replaces the media naming conventions
func WithConventions(conventions folio.Conventions) Option {
	return func(c *ServerConfig) error {
		c.Conventions = conventions
		return nil
	}
}
