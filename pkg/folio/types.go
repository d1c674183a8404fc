package folio

import "time"

// Overrides holds media references supplied explicitly by a project's
// frontmatter. Empty values are treated as absent.
type Overrides struct {
	CoverImage string   `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	Gallery    []string `json:"gallery,omitempty" yaml:"gallery,omitempty"`
	Video      string   `json:"video,omitempty" yaml:"video,omitempty"`
	PDF        string   `json:"pdf,omitempty" yaml:"pdf,omitempty"`
}

// IsZero reports whether no override field is set.
func (o Overrides) IsZero() bool {
	return o.CoverImage == "" && len(o.Gallery) == 0 && o.Video == "" && o.PDF == ""
}

// Media is the resolved media bundle of a single project.
type Media struct {
	CoverImage string         `json:"coverImage,omitempty"`
	Gallery    []GalleryImage `json:"gallery"`
	Video      string         `json:"video,omitempty"`
	PDF        string         `json:"pdf,omitempty"`
}

// GalleryImage is one gallery entry with alt text derived from its file name.
type GalleryImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Sources lists the gallery image URLs in order.
func (m Media) Sources() []string {
	out := make([]string, 0, len(m.Gallery))
	for _, img := range m.Gallery {
		out = append(out, img.Src)
	}
	return out
}

// Entry describes one item of an asset directory listing.
type Entry struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}
