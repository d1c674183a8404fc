package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/folio/pkg/folio"
	"github.com/tendant/folio/pkg/folio/urlstrategy"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "/projects", cfg.Conventions.URLPrefix)

	src, err := cfg.Source()
	require.NoError(t, err)
	assert.Equal(t, SourceConfig{Type: "fs", BaseDir: "public"}, src)
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name      string
		opt       Option
		wantError bool
	}{
		{"port", WithPort("9090"), false},
		{"empty port", WithPort(""), true},
		{"environment", WithEnvironment("production"), false},
		{"empty environment", WithEnvironment(""), true},
		{"content dir", WithContentDir("site/content"), false},
		{"empty content dir", WithContentDir(""), true},
		{"empty out dir", WithOutDir(""), true},
		{"empty fs dir", WithFilesystemSource(""), true},
		{"cdn", WithCDN("https://cdn.example.com"), false},
		{"empty cdn", WithCDN(""), true},
		{"bad log level", WithLogging("loud", ""), true},
		{"bad log format", WithLogging("", "xml"), true},
		{"bad asset url", WithAssetURL("ftp://example.com"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.opt)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSourceFromAssetURL(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	tests := []struct {
		name      string
		assetURL  string
		wantType  string
		check     func(t *testing.T, s SourceConfig)
		wantError bool
	}{
		{name: "memory keyword", assetURL: "memory", wantType: "memory"},
		{name: "memory URL", assetURL: "memory://", wantType: "memory"},
		{name: "absolute file URL", assetURL: "file:///srv/site/public", wantType: "fs", check: func(t *testing.T, s SourceConfig) {
			assert.Equal(t, "/srv/site/public", s.BaseDir)
		}},
		{name: "relative file URL", assetURL: "file://public", wantType: "fs", check: func(t *testing.T, s SourceConfig) {
			assert.Equal(t, "public", s.BaseDir)
		}},
		{name: "S3 URL", assetURL: "s3://site-assets?region=eu-west-1&prefix=public", wantType: "s3", check: func(t *testing.T, s SourceConfig) {
			assert.Equal(t, "site-assets", s.S3.Bucket)
			assert.Equal(t, "eu-west-1", s.S3.Region)
			assert.Equal(t, "public", s.S3.Prefix)
			assert.Equal(t, "key", s.S3.AccessKeyID)
			assert.Equal(t, "secret", s.S3.SecretAccessKey)
			assert.False(t, s.S3.UsePathStyle)
		}},
		{name: "S3 with endpoint", assetURL: "s3://site?endpoint=http://localhost:9000", wantType: "s3", check: func(t *testing.T, s SourceConfig) {
			assert.Equal(t, "http://localhost:9000", s.S3.Endpoint)
			assert.True(t, s.S3.UsePathStyle)
		}},
		{name: "S3 without bucket", assetURL: "s3://", wantError: true},
		{name: "bad path_style", assetURL: "s3://site?path_style=maybe", wantError: true},
		{name: "empty file path", assetURL: "file://", wantError: true},
		{name: "unknown scheme", assetURL: "gs://bucket", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.AssetURL = tt.assetURL
			src, err := cfg.Source()
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, src.Type)
			if tt.check != nil {
				tt.check(t, src)
			}
		})
	}
}

func TestWithEnv(t *testing.T) {
	t.Setenv("FOLIO_PORT", "3000")
	t.Setenv("FOLIO_CONTENT_DIR", "/site/content")
	t.Setenv("FOLIO_ASSET_URL", "memory://")
	t.Setenv("FOLIO_LOG_FORMAT", "json")
	t.Setenv("FOLIO_MAX_DEPTH", "3")

	cfg, err := Load(WithEnv())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "/site/content", cfg.ContentDir)
	assert.Equal(t, "public", cfg.PublicDir, "unset variables keep defaults")
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3, cfg.Conventions.MaxDepth)

	src, err := cfg.Source()
	require.NoError(t, err)
	assert.Equal(t, "memory", src.Type)
}

func TestWithEnvInvalidStorage(t *testing.T) {
	t.Setenv("FOLIO_ASSET_URL", "ftp://example.com")
	_, err := Load(WithEnv())
	assert.Error(t, err)
}

func TestWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
public_dir: site/public
url_strategy: cdn
cdn_url: https://cdn.example.com
conventions:
  url_prefix: /work
  max_depth: 2
`), 0o644))

	t.Setenv("FOLIO_PORT", "7000")
	cfg, err := Load(WithFile(path), WithEnv())
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port, "environment overrides the file")
	assert.Equal(t, "site/public", cfg.PublicDir)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "/work", cfg.Conventions.URLPrefix)
	assert.Equal(t, 2, cfg.Conventions.MaxDepth)
	assert.Equal(t, []string{"video.mp4", "demo.mp4"}, cfg.Conventions.VideoCandidates)

	strategy, err := cfg.BuildURLStrategy()
	require.NoError(t, err)
	assert.IsType(t, &urlstrategy.CDNStrategy{}, strategy)
}

func TestWithFileMissing(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestBuildResolver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "projects", "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects", "demo", "cover.jpg"), []byte("x"), 0o644))

	cfg, err := Load(WithFilesystemSource(dir))
	require.NoError(t, err)

	var buf bytes.Buffer
	resolver, source, err := cfg.BuildResolver(cfg.NewLogger(&buf))
	require.NoError(t, err)
	require.NotNil(t, source)

	media := resolver.Resolve(context.Background(), "demo", folio.Overrides{})
	assert.Equal(t, "/projects/demo/cover.jpg", media.CoverImage)
}

func TestRecommendedStrategy(t *testing.T) {
	cfg, err := Load(WithEnvironment("production"))
	require.NoError(t, err)
	strategy, err := cfg.BuildURLStrategy()
	require.NoError(t, err)
	assert.IsType(t, &urlstrategy.SitePathStrategy{}, strategy)

	cfg.CDNBaseURL = "https://cdn.example.com"
	strategy, err = cfg.BuildURLStrategy()
	require.NoError(t, err)
	assert.IsType(t, &urlstrategy.CDNStrategy{}, strategy)
}

func TestNewLogger(t *testing.T) {
	cfg, err := Load(WithLogging("warn", "json"))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "slug", "demo")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"slug":"demo"`)
}

func TestEnvUsage(t *testing.T) {
	assert.Contains(t, EnvUsage(), "FOLIO_ASSET_URL")
}
