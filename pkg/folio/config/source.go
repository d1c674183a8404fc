package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/tendant/folio/pkg/folio"
	fsstorage "github.com/tendant/folio/pkg/folio/storage/fs"
	memorystorage "github.com/tendant/folio/pkg/folio/storage/memory"
	s3storage "github.com/tendant/folio/pkg/folio/storage/s3"
)

// SourceConfig describes the asset source parsed from AssetURL
type SourceConfig struct {
	Type    string // "fs", "memory", "s3"
	BaseDir string // fs only
	S3      s3storage.Config
}

// Source parses AssetURL. An empty AssetURL selects the filesystem at PublicDir.
func (c *ServerConfig) Source() (SourceConfig, error) {
	if strings.TrimSpace(c.AssetURL) == "" {
		if c.PublicDir == "" {
			return SourceConfig{}, fmt.Errorf("public_dir is required when asset_url is not set")
		}
		return SourceConfig{Type: "fs", BaseDir: c.PublicDir}, nil
	}
	return ParseAssetURL(c.AssetURL)
}

// ParseAssetURL parses a memory://, file:// or s3:// asset URL.
func ParseAssetURL(raw string) (SourceConfig, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case raw == "memory" || raw == "memory://":
		return SourceConfig{Type: "memory"}, nil
	case strings.HasPrefix(raw, "file://"):
		return parseFileURL(raw)
	case strings.HasPrefix(raw, "s3://"):
		return parseS3URL(raw)
	}

	return SourceConfig{}, fmt.Errorf("unsupported ASSET_URL format: %s (use 'memory://', 'file://...', or 's3://...')", raw)
}

// parseFileURL configures filesystem storage from URL
// Format: file:///path/to/public or file://relative/path
func parseFileURL(raw string) (SourceConfig, error) {
	dir := strings.TrimPrefix(raw, "file://")
	if dir == "" {
		return SourceConfig{}, fmt.Errorf("filesystem path cannot be empty in ASSET_URL")
	}
	return SourceConfig{Type: "fs", BaseDir: dir}, nil
}

// parseS3URL configures S3 storage from URL
// Format: s3://bucket?region=us-east-1&endpoint=http://localhost:9000&prefix=site&path_style=true
func parseS3URL(raw string) (SourceConfig, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return SourceConfig{}, fmt.Errorf("invalid ASSET_URL: %w", err)
	}
	if u.Host == "" {
		return SourceConfig{}, fmt.Errorf("S3 bucket name cannot be empty in ASSET_URL")
	}

	q := u.Query()
	cfg := s3storage.Config{
		Bucket:   u.Host,
		Region:   "us-east-1",
		Endpoint: q.Get("endpoint"),
		Prefix:   q.Get("prefix"),
	}
	if region := q.Get("region"); region != "" {
		cfg.Region = region
	} else if region, ok := os.LookupEnv("AWS_REGION"); ok && region != "" {
		cfg.Region = region
	}
	if ps := q.Get("path_style"); ps != "" {
		b, err := strconv.ParseBool(ps)
		if err != nil {
			return SourceConfig{}, fmt.Errorf("invalid path_style in ASSET_URL: %w", err)
		}
		cfg.UsePathStyle = b
	} else if cfg.Endpoint != "" {
		// S3-compatible services such as MinIO expect path-style requests
		cfg.UsePathStyle = true
	}

	// Check for AWS credentials in environment
	if accessKey, ok := os.LookupEnv("AWS_ACCESS_KEY_ID"); ok && accessKey != "" {
		cfg.AccessKeyID = accessKey
	}
	if secretKey, ok := os.LookupEnv("AWS_SECRET_ACCESS_KEY"); ok && secretKey != "" {
		cfg.SecretAccessKey = secretKey
	}

	return SourceConfig{Type: "s3", S3: cfg}, nil
}

// Build creates the asset source described by s.
func (s SourceConfig) Build() (folio.AssetReader, error) {
	switch s.Type {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: s.BaseDir})
	case "s3":
		return s3storage.New(s.S3)
	default:
		return nil, fmt.Errorf("unsupported asset source type: %s", s.Type)
	}
}
