package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/folio/pkg/folio"
	"github.com/tendant/folio/pkg/folio/content"
	"github.com/tendant/folio/pkg/folio/urlstrategy"
)

// CatalogProvider returns the catalog to serve; a content.Store swaps it
// on reload.
type CatalogProvider interface {
	Catalog() *content.Catalog
}

// Handler serves the read-only project API and the project asset tree.
type Handler struct {
	catalog  CatalogProvider
	resolver *folio.Resolver
	assets   folio.AssetReader
	strategy urlstrategy.URLStrategy
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithAssets enables serving asset bytes under the project URL prefix.
func WithAssets(assets folio.AssetReader) Option {
	return func(h *Handler) { h.assets = assets }
}

// WithURLStrategy rewrites media URLs in API responses.
func WithURLStrategy(strategy urlstrategy.URLStrategy) Option {
	return func(h *Handler) { h.strategy = strategy }
}

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// NewHandler creates a new project handler
func NewHandler(catalog CatalogProvider, resolver *folio.Resolver, opts ...Option) *Handler {
	h := &Handler{
		catalog:  catalog,
		resolver: resolver,
		strategy: urlstrategy.NewSitePathStrategy(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes returns the API and asset routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/{slug}", h.GetProject)
		r.Get("/projects/{slug}/media", h.GetProjectMedia)
	})

	if h.assets != nil {
		r.Get(h.resolver.Conventions().URLPrefix+"/*", h.ServeAsset)
	}

	return r
}

// ProjectSummary is the list representation of a project
type ProjectSummary struct {
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	Kind       content.Kind `json:"kind"`
	Year       string       `json:"year"`
	Role       string       `json:"role"`
	Themes     []string     `json:"themes"`
	Tags       []string     `json:"tags"`
	HeroMetric string       `json:"heroMetric,omitempty"`
	Hook       string       `json:"hook,omitempty"`
	Featured   bool         `json:"featured"`
	Order      float64      `json:"order"`
	URL        string       `json:"url"`
	CoverImage string       `json:"coverImage,omitempty"`
}

// ProjectResponse is the detail representation of a project
type ProjectResponse struct {
	*content.Project
	URL   string      `json:"url"`
	Media folio.Media `json:"media"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "ok")
}

// ListProjects lists projects, optionally filtered by ?kind= and ?featured=
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	catalog := h.catalog.Catalog()
	query := r.URL.Query()

	var projects []*content.Project
	kind := content.Kind(query.Get("kind"))
	switch {
	case kind != "":
		if !content.ValidKind(kind) {
			h.writeError(w, r, http.StatusBadRequest, "invalid kind: "+string(kind))
			return
		}
		projects = catalog.ProjectsByKind(kind)
	default:
		projects = catalog.Projects()
	}

	if raw := query.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "featured must be a boolean")
			return
		}
		if featured && kind == "" {
			projects = catalog.FeaturedProjects()
		} else {
			projects = filter(projects, func(p *content.Project) bool { return p.Featured == featured })
		}
	}

	resp := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		media, err := h.media(r, p)
		if err != nil {
			h.writeError(w, r, http.StatusInternalServerError, "failed to build media URLs")
			return
		}
		resp = append(resp, ProjectSummary{
			Title:      p.Title,
			Slug:       p.Slug,
			Kind:       p.Kind,
			Year:       p.Year,
			Role:       p.Role,
			Themes:     nonNil(p.Themes),
			Tags:       nonNil(p.Tags),
			HeroMetric: p.HeroMetric,
			Hook:       p.Hook,
			Featured:   p.Featured,
			Order:      p.Order,
			URL:        p.URL(),
			CoverImage: media.CoverImage,
		})
	}

	render.JSON(w, r, resp)
}

// GetProject returns a project with its resolved media
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	media, err := h.media(r, p)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "failed to build media URLs")
		return
	}
	render.JSON(w, r, ProjectResponse{Project: p, URL: p.URL(), Media: media})
}

// GetProjectMedia returns only the resolved media of a project
func (h *Handler) GetProjectMedia(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	media, err := h.media(r, p)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "failed to build media URLs")
		return
	}
	render.JSON(w, r, media)
}

// ServeAsset streams a file of the project asset tree
func (h *Handler) ServeAsset(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(rel)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, "invalid path")
			return
		}
		rel = unescaped
	}
	for _, segment := range strings.Split(rel, "/") {
		if segment == ".." {
			h.writeError(w, r, http.StatusBadRequest, "invalid path")
			return
		}
	}
	key := path.Join(h.resolver.Conventions().SourceDir, rel)

	ctx := r.Context()
	meta, err := h.assets.Stat(ctx, key)
	if err != nil {
		h.assetError(w, r, key, err)
		return
	}
	body, err := h.assets.Open(ctx, key)
	if err != nil {
		h.assetError(w, r, key, err)
		return
	}
	defer body.Close()

	if meta.ContentType != "" {
		w.Header().Set("Content-Type", meta.ContentType)
	}
	if meta.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	}
	if !meta.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", meta.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	if meta.ETag != "" {
		w.Header().Set("ETag", `"`+meta.ETag+`"`)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("failed to stream asset", "key", key, "err", err)
	}
}

func (h *Handler) assetError(w http.ResponseWriter, r *http.Request, key string, err error) {
	switch {
	case errors.Is(err, folio.ErrEntryNotFound):
		h.writeError(w, r, http.StatusNotFound, "asset not found")
	case errors.Is(err, folio.ErrInvalidPath):
		h.writeError(w, r, http.StatusBadRequest, "invalid path")
	default:
		h.logger.Error("failed to read asset", "key", key, "err", err)
		h.writeError(w, r, http.StatusInternalServerError, "failed to read asset")
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*content.Project, bool) {
	slug := chi.URLParam(r, "slug")
	p, err := h.catalog.Catalog().ProjectBySlug(slug)
	if err != nil {
		if errors.Is(err, folio.ErrProjectNotFound) {
			h.writeError(w, r, http.StatusNotFound, "project not found")
			return nil, false
		}
		h.logger.Error("failed to look up project", "slug", slug, "err", err)
		h.writeError(w, r, http.StatusInternalServerError, "failed to look up project")
		return nil, false
	}
	return p, true
}

// media performs an independent resolution for every request.
func (h *Handler) media(r *http.Request, p *content.Project) (folio.Media, error) {
	start := time.Now()
	media := h.resolver.Resolve(r.Context(), p.Slug, p.Overrides())
	h.logger.Debug("resolved project media", "slug", p.Slug, "gallery", len(media.Gallery), "took", time.Since(start))

	out, err := urlstrategy.Apply(h.strategy, media)
	if err != nil {
		h.logger.Error("failed to apply URL strategy", "slug", p.Slug, "err", err)
		return folio.Media{}, err
	}
	return out, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

func filter(projects []*content.Project, keep func(*content.Project) bool) []*content.Project {
	out := []*content.Project{}
	for _, p := range projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
