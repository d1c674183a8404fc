package folio

import (
	"path"
	"strings"
)

// Conventions describes how media files are recognised inside a project's
// asset directory. The zero value is not usable; start from
// DefaultConventions and adjust.
type Conventions struct {
	// URLPrefix is the site path under which project assets are served.
	URLPrefix string `yaml:"url_prefix" json:"url_prefix"`

	// SourceDir is the directory, relative to the asset source root, that
	// holds one subdirectory per project slug.
	SourceDir string `yaml:"source_dir" json:"source_dir"`

	// CoverCandidates and VideoCandidates are matched case-insensitively
	// in priority order against the top level of the project directory.
	CoverCandidates []string `yaml:"cover_candidates" json:"cover_candidates"`
	VideoCandidates []string `yaml:"video_candidates" json:"video_candidates"`

	// DocumentExtension selects the downloadable document (".pdf").
	DocumentExtension string `yaml:"document_extension" json:"document_extension"`

	// ImageExtensions lists gallery extensions without the leading dot.
	ImageExtensions []string `yaml:"image_extensions" json:"image_extensions"`

	// DefaultAlt is used when no alt text can be derived from a file name.
	DefaultAlt string `yaml:"default_alt" json:"default_alt"`

	// MaxDepth bounds how many directory levels the gallery scan descends.
	MaxDepth int `yaml:"max_depth" json:"max_depth"`
}

// DefaultConventions returns the conventions used by the site.
func DefaultConventions() Conventions {
	return Conventions{
		URLPrefix:         "/projects",
		SourceDir:         "projects",
		CoverCandidates:   []string{"cover.webp", "cover.jpg", "cover.png"},
		VideoCandidates:   []string{"video.mp4", "demo.mp4"},
		DocumentExtension: ".pdf",
		ImageExtensions:   []string{"jpg", "jpeg", "png", "webp", "gif", "avif", "svg"},
		DefaultAlt:        "Project image",
		MaxDepth:          8,
	}
}

// normalize fills empty fields from the defaults and canonicalises case,
// slashes and dots. It always returns fresh slices.
func (c Conventions) normalize() Conventions {
	def := DefaultConventions()
	out := Conventions{
		URLPrefix:         strings.TrimSpace(c.URLPrefix),
		SourceDir:         strings.Trim(strings.TrimSpace(c.SourceDir), "/"),
		CoverCandidates:   lowerAll(c.CoverCandidates),
		VideoCandidates:   lowerAll(c.VideoCandidates),
		DocumentExtension: strings.ToLower(strings.TrimSpace(c.DocumentExtension)),
		DefaultAlt:        c.DefaultAlt,
		MaxDepth:          c.MaxDepth,
	}
	for _, ext := range c.ImageExtensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			out.ImageExtensions = append(out.ImageExtensions, ext)
		}
	}

	if out.URLPrefix == "" {
		out.URLPrefix = def.URLPrefix
	}
	out.URLPrefix = path.Clean("/" + out.URLPrefix)
	if out.SourceDir == "" {
		out.SourceDir = def.SourceDir
	}
	if out.CoverCandidates == nil {
		out.CoverCandidates = def.CoverCandidates
	}
	if out.VideoCandidates == nil {
		out.VideoCandidates = def.VideoCandidates
	}
	if out.DocumentExtension == "" {
		out.DocumentExtension = def.DocumentExtension
	}
	if !strings.HasPrefix(out.DocumentExtension, ".") {
		out.DocumentExtension = "." + out.DocumentExtension
	}
	if out.ImageExtensions == nil {
		out.ImageExtensions = def.ImageExtensions
	}
	if strings.TrimSpace(out.DefaultAlt) == "" {
		out.DefaultAlt = def.DefaultAlt
	}
	if out.MaxDepth <= 0 {
		out.MaxDepth = def.MaxDepth
	}
	return out
}

func (c Conventions) isImage(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, candidate := range c.ImageExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

func (c Conventions) isDocument(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), c.DocumentExtension)
}

func lowerAll(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
