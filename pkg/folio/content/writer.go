package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tendant/folio/pkg/folio"
)

// MediaKeys are the frontmatter keys owned by media sync.
var MediaKeys = []string{"coverImage", "gallery", "video", "pdf"}

// RewriteMedia replaces the media keys of a document's frontmatter with
// media. Other keys keep their order and comments; the body is left
// untouched. gallery is always written, the other keys only when set.
func RewriteMedia(data []byte, media folio.Media) ([]byte, error) {
	block, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		if doc.Content[0].Kind != yaml.MappingNode {
			return nil, fmt.Errorf("frontmatter is not a mapping")
		}
		mapping = doc.Content[0]
	}

	for _, key := range MediaKeys {
		deleteKey(mapping, key)
	}
	if media.CoverImage != "" {
		setString(mapping, "coverImage", media.CoverImage)
	}
	gallery := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, src := range media.Sources() {
		gallery.Content = append(gallery.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: src})
	}
	if len(gallery.Content) == 0 {
		gallery.Style = yaml.FlowStyle
	}
	mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "gallery"}, gallery)
	if media.Video != "" {
		setString(mapping, "video", media.Video)
	}
	if media.PDF != "" {
		setString(mapping, "pdf", media.PDF)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	buf.WriteString("---\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

func deleteKey(mapping *yaml.Node, key string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return
		}
	}
}

func setString(mapping *yaml.Node, key, value string) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
