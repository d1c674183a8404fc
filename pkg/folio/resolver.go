package folio

import (
	"context"
	"log/slog"
	"path"
	"strings"
)

// Resolver produces Media bundles for projects. It holds no mutable
// state after construction and is safe for concurrent use as long as the
// AssetSource is.
type Resolver struct {
	source      AssetSource
	conventions Conventions
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSource sets the asset source scanned for convention media.
func WithSource(source AssetSource) Option {
	return func(r *Resolver) {
		r.source = source
	}
}

// WithConventions replaces the default naming conventions.
func WithConventions(c Conventions) Option {
	return func(r *Resolver) {
		r.conventions = c
	}
}

// WithLogger sets the logger used for degraded scans.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver. An asset source is required.
func New(options ...Option) (*Resolver, error) {
	r := &Resolver{conventions: DefaultConventions()}
	for _, option := range options {
		if option != nil {
			option(r)
		}
	}
	if r.source == nil {
		return nil, ErrSourceNotConfigured
	}
	r.conventions = r.conventions.normalize()
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// Conventions returns a copy of the conventions in use.
func (r *Resolver) Conventions() Conventions {
	return r.conventions.normalize()
}

// Resolve returns the media bundle for slug. Non-empty overrides win over
// the convention scan, and the cover falls back to the first gallery
// image. Resolve never fails: source errors only remove convention media.
func (r *Resolver) Resolve(ctx context.Context, slug string, overrides Overrides) Media {
	base := r.conventions.ProjectURL(slug)
	media := Media{
		CoverImage: overrideURL(base, overrides.CoverImage),
		Gallery:    []GalleryImage{},
		Video:      overrideURL(base, overrides.Video),
		PDF:        overrideURL(base, overrides.PDF),
	}

	seen := make(map[string]struct{})
	for _, ref := range overrides.Gallery {
		media.Gallery = r.appendImage(media.Gallery, seen, overrideURL(base, ref))
	}
	needGallery := len(media.Gallery) == 0

	if media.CoverImage == "" || media.Video == "" || media.PDF == "" || needGallery {
		scan := r.scan(ctx, slug, needGallery)
		if media.CoverImage == "" {
			media.CoverImage = scan.cover
		}
		if media.Video == "" {
			media.Video = scan.video
		}
		if media.PDF == "" {
			media.PDF = scan.pdf
		}
		if needGallery {
			for _, rel := range scan.images {
				media.Gallery = r.appendImage(media.Gallery, seen, joinEncoded(base, rel))
			}
		}
	}

	if media.CoverImage == "" && len(media.Gallery) > 0 {
		media.CoverImage = media.Gallery[0].Src
	}
	return media
}

func (r *Resolver) appendImage(gallery []GalleryImage, seen map[string]struct{}, src string) []GalleryImage {
	if src == "" {
		return gallery
	}
	key := strings.ToLower(src)
	if _, dup := seen[key]; dup {
		return gallery
	}
	seen[key] = struct{}{}
	return append(gallery, GalleryImage{Src: src, Alt: AltText(src, r.conventions.DefaultAlt)})
}

// scanResult holds convention matches as URLs (cover, video, pdf) and
// gallery paths relative to the project directory.
type scanResult struct {
	cover  string
	video  string
	pdf    string
	images []string
}

func (r *Resolver) scan(ctx context.Context, slug string, withGallery bool) scanResult {
	var result scanResult
	if !ValidSlug(slug) {
		r.logger.Debug("skipping media scan for invalid slug", "slug", slug)
		return result
	}

	dir := path.Join(r.conventions.SourceDir, slug)
	entries, err := r.source.ListEntries(ctx, dir)
	if err != nil {
		r.logger.Debug("project media directory unavailable", "slug", slug, "dir", dir, "err", err)
		return result
	}

	files := make(map[string]string)
	var names, documents []string
	for _, e := range entries {
		if !e.IsDir {
			names = append(names, e.Name)
		}
	}
	SortNatural(names)
	for _, name := range names {
		lower := strings.ToLower(name)
		if _, exists := files[lower]; !exists {
			files[lower] = name
		}
		if r.conventions.isDocument(name) {
			documents = append(documents, name)
		}
	}

	base := r.conventions.ProjectURL(slug)
	if name := firstCandidate(files, r.conventions.CoverCandidates); name != "" {
		result.cover = joinEncoded(base, name)
	}
	if name := firstCandidate(files, r.conventions.VideoCandidates); name != "" {
		result.video = joinEncoded(base, name)
	}
	if len(documents) > 0 {
		result.pdf = joinEncoded(base, documents[0])
	}

	if withGallery {
		result.images = r.collectImages(ctx, dir, "", entries, 0)
		SortNatural(result.images)
	}
	return result
}

// collectImages walks the listing of dir recursively and returns image
// paths relative to the project directory.
func (r *Resolver) collectImages(ctx context.Context, dir, rel string, entries []Entry, depth int) []string {
	var images []string
	for _, e := range entries {
		relPath := path.Join(rel, e.Name)
		if !e.IsDir {
			if r.conventions.isImage(e.Name) {
				images = append(images, relPath)
			}
			continue
		}
		if depth+1 >= r.conventions.MaxDepth || e.Name == "." || e.Name == ".." {
			continue
		}
		children, err := r.source.ListEntries(ctx, path.Join(dir, e.Name))
		if err != nil {
			r.logger.Debug("skipping unreadable media subdirectory", "dir", path.Join(dir, e.Name), "err", err)
			continue
		}
		images = append(images, r.collectImages(ctx, path.Join(dir, e.Name), relPath, children, depth+1)...)
	}
	return images
}

func firstCandidate(files map[string]string, candidates []string) string {
	for _, candidate := range candidates {
		if name, ok := files[candidate]; ok {
			return name
		}
	}
	return ""
}
