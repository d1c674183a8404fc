package mediasync

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/adrg/frontmatter"

	"github.com/tendant/folio/pkg/folio"
	"github.com/tendant/folio/pkg/folio/content"
)

// MediaSync rewrites the media frontmatter of project documents from the
// convention scan of their asset directories. Existing overrides are
// ignored so that stale values are replaced.
type MediaSync struct {
	resolver *folio.Resolver
	source   folio.AssetSource
	logger   *slog.Logger
}

// NewMediaSync creates the processor. source must be the resolver's
// source; it is used to warn about missing media folders.
func NewMediaSync(resolver *folio.Resolver, source folio.AssetSource, logger *slog.Logger) *MediaSync {
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaSync{resolver: resolver, source: source, logger: logger}
}

// Process implements DocumentProcessor.
func (m *MediaSync) Process(ctx context.Context, doc *Document) (bool, error) {
	var meta struct {
		Slug string `yaml:"slug"`
	}
	if _, err := frontmatter.Parse(bytes.NewReader(doc.Data), &meta); err != nil {
		return false, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if meta.Slug == "" {
		m.logger.Warn("skipping document without slug", "path", doc.Path)
		return false, ErrSkipped
	}

	dir := path.Join(m.resolver.Conventions().SourceDir, meta.Slug)
	if _, err := m.source.ListEntries(ctx, dir); err != nil {
		m.logger.Warn("media folder missing", "slug", meta.Slug, "dir", dir, "err", err)
	}

	media := m.resolver.Resolve(ctx, meta.Slug, folio.Overrides{})
	next, err := content.RewriteMedia(doc.Data, media)
	if err != nil {
		return false, err
	}
	if bytes.Equal(next, doc.Data) {
		return false, nil
	}

	if doc.DryRun {
		m.logger.Info("would update media frontmatter", "path", doc.Path)
		return true, nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(doc.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(doc.Path, next, mode); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", doc.Path, err)
	}
	m.logger.Info("updated media frontmatter", "path", doc.Path)
	return true, nil
}
