package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tendant/folio/pkg/folio"
)

// Directory names below the content root.
const (
	ProjectsDir = "projects"
	WritingDir  = "writing"
)

// Catalog holds every document loaded from a content directory.
type Catalog struct {
	projects []*Project
	writings []*Writing
	bySlug   map[string]*Project
}

// Load parses every .md/.mdx document below dir/projects and dir/writing.
// Documents failing schema validation are skipped with a warning so that
// one broken file does not take the whole site down.
func Load(dir string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	validate := validator.New()
	c := &Catalog{bySlug: make(map[string]*Project)}

	projectFiles, err := ListDocuments(filepath.Join(dir, ProjectsDir))
	if err != nil {
		return nil, err
	}
	for _, file := range projectFiles {
		p := &Project{}
		body, err := parseFile(file, p)
		if err != nil {
			return nil, err
		}
		p.Body = body
		p.Path = relPath(dir, file)
		if p.Title == "" {
			p.Title = TitleFromFileName(file)
		}
		if err := validate.Struct(p); err != nil {
			logger.Warn("skipping invalid project document", "path", p.Path, "err", err)
			continue
		}
		if existing, dup := c.bySlug[p.Slug]; dup {
			logger.Warn("duplicate project slug", "slug", p.Slug, "path", p.Path, "kept", existing.Path)
			continue
		}
		c.bySlug[p.Slug] = p
		c.projects = append(c.projects, p)
	}

	writingFiles, err := ListDocuments(filepath.Join(dir, WritingDir))
	if err != nil {
		return nil, err
	}
	for _, file := range writingFiles {
		w := &Writing{}
		body, err := parseFile(file, w)
		if err != nil {
			return nil, err
		}
		w.Body = body
		w.Path = relPath(dir, file)
		if w.Title == "" {
			w.Title = TitleFromFileName(file)
		}
		if err := validate.Struct(w); err != nil {
			logger.Warn("skipping invalid writing document", "path", w.Path, "err", err)
			continue
		}
		c.writings = append(c.writings, w)
	}

	logger.Debug("content loaded", "dir", dir, "projects", len(c.projects), "writings", len(c.writings))
	return c, nil
}

// ListDocuments returns the .md and .mdx files below dir in lexical order.
// A missing directory yields no files.
func ListDocuments(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && IsDocument(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", dir, err)
	}
	return files, nil
}

// IsDocument reports whether name has a markdown extension.
func IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

// TitleFromFileName derives a display title such as "Light Field" from
// "light-field.mdx".
func TitleFromFileName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}

func parseFile(file string, v any) ([]byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	body, err := frontmatter.Parse(bytes.NewReader(data), v)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter in %s: %w", file, err)
	}
	return body, nil
}

func relPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

// Projects returns all projects in file order.
func (c *Catalog) Projects() []*Project {
	return append([]*Project(nil), c.projects...)
}

// ProjectBySlug returns the project with slug or folio.ErrProjectNotFound.
func (c *Catalog) ProjectBySlug(slug string) (*Project, error) {
	p, ok := c.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", folio.ErrProjectNotFound, slug)
	}
	return p, nil
}

// ProjectsByKind returns the projects of kind sorted by order. A missing
// order counts as 0; ties keep file order.
func (c *Catalog) ProjectsByKind(kind Kind) []*Project {
	return c.filterSorted(func(p *Project) bool { return p.Kind == kind })
}

// FeaturedProjects returns featured projects sorted by order.
func (c *Catalog) FeaturedProjects() []*Project {
	return c.filterSorted(func(p *Project) bool { return p.Featured })
}

// Writings returns all writing documents in file order.
func (c *Catalog) Writings() []*Writing {
	return append([]*Writing(nil), c.writings...)
}

func (c *Catalog) filterSorted(keep func(*Project) bool) []*Project {
	out := []*Project{}
	for _, p := range c.projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ValidKind reports whether k is one of Kinds.
func ValidKind(k Kind) bool {
	for _, kind := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
