package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// envVars mirrors the environment surface. Unset variables stay empty and
// leave the corresponding setting untouched.
type envVars struct {
	Port        string `env:"FOLIO_PORT" env-description:"HTTP listen port"`
	Environment string `env:"FOLIO_ENVIRONMENT" env-description:"development, production or testing"`
	ContentDir  string `env:"FOLIO_CONTENT_DIR" env-description:"directory holding projects/ and writing/ documents"`
	PublicDir   string `env:"FOLIO_PUBLIC_DIR" env-description:"static asset root"`
	OutDir      string `env:"FOLIO_OUT_DIR" env-description:"build output directory"`
	AssetURL    string `env:"FOLIO_ASSET_URL" env-description:"memory://, file:///path or s3://bucket?region=.."`
	URLStrategy string `env:"FOLIO_URL_STRATEGY" env-description:"site-path or cdn"`
	CDNBaseURL  string `env:"FOLIO_CDN_URL" env-description:"CDN base URL for the cdn strategy"`
	LogLevel    string `env:"FOLIO_LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogFormat   string `env:"FOLIO_LOG_FORMAT" env-description:"text or json"`
	URLPrefix   string `env:"FOLIO_URL_PREFIX" env-description:"site path for project assets"`
	MaxDepth    int    `env:"FOLIO_MAX_DEPTH" env-description:"gallery recursion bound"`
}

// WithEnv applies FOLIO_* environment variable overrides.
//
// Server:
//
//	FOLIO_PORT, FOLIO_ENVIRONMENT
//
// Site layout:
//
//	FOLIO_CONTENT_DIR, FOLIO_PUBLIC_DIR, FOLIO_OUT_DIR
//
// Assets:
//
//	FOLIO_ASSET_URL - "memory://", "file:///path/to/public" or
//	                  "s3://bucket?region=us-east-1&endpoint=http://localhost:9000"
//	FOLIO_URL_STRATEGY, FOLIO_CDN_URL, FOLIO_URL_PREFIX, FOLIO_MAX_DEPTH
//
// Logging:
//
//	FOLIO_LOG_LEVEL, FOLIO_LOG_FORMAT
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env envVars
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		setString(&c.Port, env.Port)
		setString(&c.Environment, env.Environment)
		setString(&c.ContentDir, env.ContentDir)
		setString(&c.PublicDir, env.PublicDir)
		setString(&c.OutDir, env.OutDir)
		setString(&c.AssetURL, env.AssetURL)
		setString(&c.URLStrategy, env.URLStrategy)
		setString(&c.CDNBaseURL, env.CDNBaseURL)
		setString(&c.LogLevel, env.LogLevel)
		setString(&c.LogFormat, env.LogFormat)
		setString(&c.Conventions.URLPrefix, env.URLPrefix)
		if env.MaxDepth > 0 {
			c.Conventions.MaxDepth = env.MaxDepth
		}
		return nil
	}
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	var env envVars
	usage, err := cleanenv.GetDescription(&env, nil)
	if err != nil {
		return ""
	}
	return usage
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
