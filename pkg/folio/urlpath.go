package folio

import (
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ProjectURL returns the site path of a project's asset directory,
// e.g. "/projects/my-slug".
func (c Conventions) ProjectURL(slug string) string {
	return strings.TrimSuffix(c.normalize().URLPrefix, "/") + "/" + url.PathEscape(slug)
}

// AssetURL joins a slash-separated path relative to the project directory
// onto the project URL, percent-encoding every segment.
func (c Conventions) AssetURL(slug, rel string) string {
	return joinEncoded(c.ProjectURL(slug), rel)
}

func joinEncoded(base, rel string) string {
	rel = path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	if rel == "/" {
		return base
	}
	segments := strings.Split(strings.TrimPrefix(rel, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return base + "/" + strings.Join(segments, "/")
}

// overrideURL resolves one frontmatter reference. Site-absolute paths and
// full URLs are kept verbatim, bare names are joined onto base.
func overrideURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "/") || hasScheme(ref) {
		return ref
	}
	return joinEncoded(base, strings.TrimPrefix(ref, "./"))
}

func hasScheme(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidSlug reports whether slug can name a single asset directory.
func ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, "/\\\x00")
}

// AltText derives human readable alt text from a file name or URL:
// directories and extension are dropped, underscores and hyphens become
// spaces and the first letter is upper-cased.
func AltText(ref, fallback string) string {
	name := ref
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || name == "/" || name == "." {
		return fallback
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
