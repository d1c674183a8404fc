package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.jpg", "02.jpg", -1},
		{"02.jpg", "10.jpg", -1},
		{"10.jpg", "9.jpg", 1},
		{"1.jpg", "01.jpg", -1},
		{"img2.png", "IMG10.png", -1},
		{"a.jpg", "A.jpg", 1},
		{"same.jpg", "same.jpg", 0},
		{"shot", "shot1", -1},
		{"00000000000000000000001.jpg", "2.jpg", -1},
		{"99999999999999999999999.jpg", "100000000000000000000000.jpg", -1},
		{"dir/02.jpg", "dir/sub/01.jpg", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, NaturalCompare(tt.a, tt.b))
			assert.Equal(t, -tt.want, NaturalCompare(tt.b, tt.a))
		})
	}
}

func TestSortNatural(t *testing.T) {
	values := []string{"10.jpg", "cover.jpg", "2.jpg", "01.jpg", "1.jpg", "B.png", "a.png"}
	SortNatural(values)
	assert.Equal(t, []string{"1.jpg", "01.jpg", "2.jpg", "10.jpg", "a.png", "B.png", "cover.jpg"}, values)
}

func TestOverrideURL(t *testing.T) {
	base := "/projects/demo"
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"bare name", "cover.jpg", "/projects/demo/cover.jpg"},
		{"dot prefix", "./cover.jpg", "/projects/demo/cover.jpg"},
		{"nested", "shots/a b.png", "/projects/demo/shots/a%20b.png"},
		{"site absolute", "/images/shared.png", "/images/shared.png"},
		{"full url", "https://cdn.example.com/a.mp4", "https://cdn.example.com/a.mp4"},
		{"traversal stays under project", "../other/x.jpg", "/projects/demo/other/x.jpg"},
		{"question mark encoded", "what?.pdf", "/projects/demo/what%3F.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overrideURL(base, tt.ref))
		})
	}
}

func TestAltText(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"/projects/x/my_photo-01.jpg", "My photo 01"},
		{"/projects/x/shots/__a--b__.png", "A b"},
		{"/projects/x/%C3%A9t%C3%A9.webp", "Été"},
		{"/projects/x/01.jpg", "01"},
		{"/projects/x/.jpg", "Project image"},
		{"/projects/x/___.png", "Project image"},
		{"https://cdn.example.com/a/hero_shot.jpg?w=200", "Hero shot"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, AltText(tt.ref, "Project image"))
		})
	}
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("neural-garden"))
	assert.True(t, ValidSlug("with space"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("."))
	assert.False(t, ValidSlug(".."))
	assert.False(t, ValidSlug("a/b"))
	assert.False(t, ValidSlug(`a\b`))
}

func TestConventionsNormalize(t *testing.T) {
	c := Conventions{URLPrefix: "media/", ImageExtensions: []string{".PNG", " "}}.normalize()

	assert.Equal(t, "/media", c.URLPrefix)
	assert.Equal(t, "projects", c.SourceDir)
	assert.Equal(t, []string{"png"}, c.ImageExtensions)
	assert.Equal(t, ".pdf", c.DocumentExtension)
	assert.Equal(t, "Project image", c.DefaultAlt)
	assert.True(t, c.isImage("a.PNG"))
	assert.False(t, c.isImage("a.jpg"))
	assert.Equal(t, "/media/x/a%20b.png", c.AssetURL("x", "a b.png"))
}
