package content

import (
	"github.com/tendant/folio/pkg/folio"
)

// Kind classifies a project for the section it is listed under.
type Kind string

const (
	KindResearch     Kind = "research"
	KindInstallation Kind = "installation"
	KindExperiment   Kind = "experiment"
)

// Kinds lists every valid project kind.
var Kinds = []Kind{KindResearch, KindInstallation, KindExperiment}

// Links are the external references a project may carry.
type Links struct {
	GitHub     string `yaml:"github" json:"github,omitempty"`
	Paper      string `yaml:"paper" json:"paper,omitempty"`
	Acceptance string `yaml:"acceptance" json:"acceptance,omitempty"`
	Demo       string `yaml:"demo" json:"demo,omitempty"`
	Video      string `yaml:"video" json:"video,omitempty"`
}

// Project is a project document parsed from content/projects.
type Project struct {
	Title      string   `yaml:"title" json:"title" validate:"required"`
	Slug       string   `yaml:"slug" json:"slug" validate:"required"`
	Kind       Kind     `yaml:"kind" json:"kind" validate:"required,oneof=research installation experiment"`
	Year       string   `yaml:"year" json:"year" validate:"required"`
	Role       string   `yaml:"role" json:"role" validate:"required"`
	Themes     []string `yaml:"themes" json:"themes"`
	Tags       []string `yaml:"tags" json:"tags"`
	HeroMetric string   `yaml:"heroMetric" json:"heroMetric,omitempty"`
	Hook       string   `yaml:"hook" json:"hook,omitempty"`
	Featured   bool     `yaml:"featured" json:"featured"`
	Order      float64  `yaml:"order" json:"order"`
	Links      *Links   `yaml:"links" json:"links,omitempty"`

	// Media overrides, usually maintained by the sync command
	CoverImage string   `yaml:"coverImage" json:"-"`
	Gallery    []string `yaml:"gallery" json:"-"`
	Video      string   `yaml:"video" json:"-"`
	PDF        string   `yaml:"pdf" json:"-"`

	// Path is the source file relative to the content directory
	Path string `yaml:"-" json:"-"`
	// Body is the document without its frontmatter
	Body []byte `yaml:"-" json:"-"`
}

// URL returns the site path of the project page.
func (p *Project) URL() string {
	return "/projects/" + p.Slug
}

// Overrides maps the frontmatter media fields onto resolver overrides.
func (p *Project) Overrides() folio.Overrides {
	return folio.Overrides{
		CoverImage: p.CoverImage,
		Gallery:    append([]string(nil), p.Gallery...),
		Video:      p.Video,
		PDF:        p.PDF,
	}
}

// Writing is an essay or note parsed from content/writing.
type Writing struct {
	Title string `yaml:"title" json:"title" validate:"required"`
	Slug  string `yaml:"slug" json:"slug" validate:"required"`
	Year  string `yaml:"year" json:"year,omitempty"`
	Type  string `yaml:"type" json:"type,omitempty"`

	Path string `yaml:"-" json:"-"`
	Body []byte `yaml:"-" json:"-"`
}

// URL returns the site path of the writing page.
func (w *Writing) URL() string {
	return "/writing/" + w.Slug
}
