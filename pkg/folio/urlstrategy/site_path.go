package urlstrategy

// SitePathStrategy serves assets from the site itself; URLs pass through
// unchanged.
type SitePathStrategy struct{}

// NewSitePathStrategy creates the default site-relative strategy
func NewSitePathStrategy() *SitePathStrategy {
	return &SitePathStrategy{}
}

// AssetURL returns sitePath as is
func (s *SitePathStrategy) AssetURL(sitePath string) (string, error) {
	return sitePath, nil
}
