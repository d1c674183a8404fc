package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	projectKeys = keySet("title", "slug", "kind", "year", "role", "themes", "tags",
		"heroMetric", "hook", "featured", "order", "links",
		"coverImage", "gallery", "video", "pdf")
	writingKeys = keySet("title", "slug", "year", "type")
	linkKeys    = keySet("github", "paper", "acceptance", "demo", "video")
	listKeys    = keySet("themes", "tags", "gallery")

	nestedKeyPattern = regexp.MustCompile(`^\s+([\w-]+):`)
	digitsPattern    = regexp.MustCompile(`^\d+$`)
)

// Issue is a single frontmatter problem found in a document.
type Issue struct {
	File    string
	Message string
}

func (i Issue) String() string {
	return i.File + ": " + i.Message
}

// projectRequired and writingRequired carry the fields every document
// must declare; the remaining schema is checked line by line.
type projectRequired struct {
	Title string `yaml:"title" validate:"required"`
	Slug  string `yaml:"slug" validate:"required"`
	Kind  string `yaml:"kind" validate:"required"`
	Year  string `yaml:"year" validate:"required"`
	Role  string `yaml:"role" validate:"required"`
}

type writingRequired struct {
	Title string `yaml:"title" validate:"required"`
	Slug  string `yaml:"slug" validate:"required"`
}

// Validate checks every document below dir/projects and dir/writing and
// returns all issues found. The error is only set when files cannot be read.
func Validate(dir string) ([]Issue, error) {
	validate := validator.New()
	var issues []Issue

	for _, section := range []struct {
		dir     string
		project bool
	}{
		{filepath.Join(dir, ProjectsDir), true},
		{filepath.Join(dir, WritingDir), false},
	} {
		files, err := ListDocuments(section.dir)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", file, err)
			}
			issues = append(issues, validateDocument(validate, filepath.Base(file), data, section.project)...)
		}
	}
	return issues, nil
}

// ValidateDocument checks a single project (or writing) document.
func ValidateDocument(name string, data []byte, project bool) []Issue {
	return validateDocument(validator.New(), name, data, project)
}

func validateDocument(validate *validator.Validate, name string, data []byte, project bool) []Issue {
	var issues []Issue
	add := func(format string, args ...any) {
		issues = append(issues, Issue{File: name, Message: fmt.Sprintf(format, args...)})
	}

	block, _, err := splitFrontmatter(data)
	if err != nil {
		add("%v", err)
		return issues
	}

	keys := writingKeys
	if project {
		keys = projectKeys
	}

	lines := strings.Split(strings.ReplaceAll(string(block), "\r\n", "\n"), "\n")
	currentKey := ""
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "  ") {
			if currentKey == "links" {
				if m := nestedKeyPattern.FindStringSubmatch(line); m != nil && !linkKeys[m[1]] {
					add("unknown links key %s", m[1])
				}
			}
			continue
		}

		currentKey = ""
		rawKey, rawValue, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key := strings.TrimSpace(rawKey)
		value := strings.TrimSpace(rawValue)
		currentKey = key

		if !keys[key] {
			add("unexpected key %s", key)
		}

		switch key {
		case "kind":
			if unquoted := strings.Trim(value, `"`); unquoted != "" && !ValidKind(Kind(unquoted)) {
				add("invalid kind %s", value)
			}
		case "order":
			if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
				add("order quoted %s", value)
			} else if !digitsPattern.MatchString(value) {
				add("order not numeric %s", value)
			}
		case "featured":
			if value != "" && value != "true" && value != "false" {
				add("featured not boolean %s", value)
			}
		}

		if listKeys[key] || key == "links" {
			if strings.HasPrefix(value, "[") {
				continue
			}
			next := nextNonEmpty(lines[i+1:])
			if listKeys[key] && !strings.HasPrefix(strings.TrimSpace(next), "-") {
				add("%s not list-like", key)
			}
			if key == "links" && !strings.HasPrefix(next, "  ") {
				add("links not nested")
			}
		}
	}

	var target any = &writingRequired{}
	if project {
		target = &projectRequired{}
	}
	if err := yaml.Unmarshal(block, target); err != nil {
		add("invalid YAML: %v", err)
		return issues
	}
	if err := validate.Struct(target); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				add("missing required key %s", lowerFirst(fe.Field()))
			}
		} else {
			add("%v", err)
		}
	}
	return issues
}

func nextNonEmpty(lines []string) string {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// splitFrontmatter separates the YAML block delimited by "---" lines from
// the body. The body keeps everything after the closing delimiter line.
func splitFrontmatter(data []byte) (block, body []byte, err error) {
	first, rest, _ := bytes.Cut(data, []byte("\n"))
	if string(bytes.TrimSuffix(first, []byte("\r"))) != "---" {
		return nil, nil, errors.New("missing frontmatter")
	}
	offset := len(first) + 1
	for len(rest) > 0 {
		line, next, found := bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimSuffix(line, []byte("\r"))) == "---" {
			end := offset + len(line)
			if found {
				end++
			}
			return data[len(first)+1 : offset], data[end:], nil
		}
		offset += len(line) + 1
		rest = next
	}
	return nil, nil, errors.New("unterminated frontmatter")
}
