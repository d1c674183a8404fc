package urlstrategy

import (
	"fmt"
)

// URLStrategyType represents the type of URL strategy
type URLStrategyType string

const (
	// Site-path strategy: assets served by the site under /projects
	StrategyTypeSitePath URLStrategyType = "site-path"

	// CDN strategy for direct CDN URLs
	StrategyTypeCDN URLStrategyType = "cdn"
)

// Config holds configuration for URL strategy creation
type Config struct {
	Type       URLStrategyType
	CDNBaseURL string // For CDN strategy
}

// NewURLStrategy creates a URL strategy based on the configuration.
// An empty type selects the site-path strategy.
func NewURLStrategy(config Config) (URLStrategy, error) {
	switch config.Type {
	case StrategyTypeSitePath, "":
		return NewSitePathStrategy(), nil

	case StrategyTypeCDN:
		if config.CDNBaseURL == "" {
			return nil, fmt.Errorf("CDN base URL is required for CDN strategy")
		}
		return NewCDNStrategy(config.CDNBaseURL), nil

	default:
		return nil, fmt.Errorf("unknown URL strategy type: %s", config.Type)
	}
}

// NewRecommendedStrategy picks the CDN in production when one is
// configured and site paths otherwise.
func NewRecommendedStrategy(environment string, cdnURL string) URLStrategy {
	if environment == "production" && cdnURL != "" {
		return NewCDNStrategy(cdnURL)
	}
	return NewSitePathStrategy()
}
