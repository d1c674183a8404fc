package urlstrategy

import (
	"fmt"
	"strings"
)

// CDNStrategy generates URLs that point directly to a CDN mirroring the
// public asset tree (see storage/s3 Publish).
type CDNStrategy struct {
	CDNBaseURL string // e.g., "https://cdn.example.com"
}

// NewCDNStrategy creates a new CDN URL strategy
func NewCDNStrategy(cdnBaseURL string) *CDNStrategy {
	return &CDNStrategy{CDNBaseURL: strings.TrimSuffix(cdnBaseURL, "/")}
}

// AssetURL prefixes the CDN base onto a site path. Absolute http(s) URLs
// from frontmatter overrides already name their host and are returned
// unchanged.
func (s *CDNStrategy) AssetURL(sitePath string) (string, error) {
	if s.CDNBaseURL == "" {
		return "", fmt.Errorf("CDN base URL not configured")
	}
	lower := strings.ToLower(sitePath)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return sitePath, nil
	}
	return s.CDNBaseURL + "/" + strings.TrimPrefix(sitePath, "/"), nil
}
