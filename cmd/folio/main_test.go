package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/folio/pkg/folio"
)

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"content/projects/light-field.mdx": "---\ntitle: Light Field\nslug: light-field\nkind: research\nyear: 2024\nrole: Lead\norder: 1\n---\n# Light Field\n",
		"content/projects/echo.mdx":        "---\ntitle: Echo\nslug: echo\nkind: installation\nyear: 2023\nrole: Artist\nvideo: https://vimeo.com/1\n---\nEcho\n",
		"content/writing/essay.mdx":        "---\ntitle: Essay\nslug: essay\n---\nWords\n",
		"public/projects/light-field/cover.jpg": "jpg",
		"public/projects/light-field/02.png":    "png",
		"public/projects/light-field/1.jpg":     "jpg",
		"public/projects/light-field/demo.mp4":  "mp4",
	}
	for rel, data := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	}
	return root
}

func run(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--content", filepath.Join(root, "content"),
		"--public", filepath.Join(root, "public"),
	}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolveCommand(t *testing.T) {
	root := writeSite(t)

	out, _, err := run(t, root, "resolve", "light-field")
	require.NoError(t, err)

	var media folio.Media
	require.NoError(t, json.Unmarshal([]byte(out), &media))
	assert.Equal(t, "/projects/light-field/cover.jpg", media.CoverImage)
	assert.Equal(t, "/projects/light-field/demo.mp4", media.Video)
	assert.Equal(t, []string{
		"/projects/light-field/1.jpg",
		"/projects/light-field/02.png",
		"/projects/light-field/cover.jpg",
	}, media.Sources())

	out, _, err = run(t, root, "resolve", "echo")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &media))
	assert.Equal(t, "https://vimeo.com/1", media.Video)

	_, _, err = run(t, root, "resolve", "../etc")
	assert.ErrorIs(t, err, folio.ErrInvalidSlug)
}

func TestSyncCommand(t *testing.T) {
	root := writeSite(t)
	doc := filepath.Join(root, "content/projects/light-field.mdx")
	before, err := os.ReadFile(doc)
	require.NoError(t, err)

	out, _, err := run(t, root, "sync", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would update 2 file(s)")
	unchanged, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, before, unchanged)

	out, _, err = run(t, root, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2 file(s)")

	after, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(after), "coverImage: /projects/light-field/cover.jpg\n")
	assert.Contains(t, string(after), "video: /projects/light-field/demo.mp4\n")

	echo, err := os.ReadFile(filepath.Join(root, "content/projects/echo.mdx"))
	require.NoError(t, err)
	assert.NotContains(t, string(echo), "vimeo", "sync replaces stale overrides")
	assert.Contains(t, string(echo), "gallery: []\n")
}

func TestValidateCommand(t *testing.T) {
	root := writeSite(t)

	out, _, err := run(t, root, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Frontmatter checks passed.")

	bad := filepath.Join(root, "content/projects/bad.mdx")
	require.NoError(t, os.WriteFile(bad, []byte("---\ntitle: Bad\nslug: bad\nkind: sculpture\nyear: 2020\nrole: x\n---\n"), 0o644))

	_, stderr, err := run(t, root, "validate")
	require.Error(t, err)
	assert.Contains(t, stderr, "- bad.mdx: invalid kind sculpture")
}

func TestBuildCommand(t *testing.T) {
	root := writeSite(t)
	outDir := filepath.Join(root, "dist")

	_, _, err := run(t, root, "build", "--out", outDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "media.json"))
	require.NoError(t, err)
	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.NotEmpty(t, manifest.BuildID)
	assert.False(t, manifest.GeneratedAt.IsZero())
	require.Contains(t, manifest.Projects, "light-field")
	assert.Equal(t, "/projects/light-field/cover.jpg", manifest.Projects["light-field"].CoverImage)

	page, err := os.ReadFile(filepath.Join(outDir, "projects", "light-field.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<h1 id="light-field">Light Field</h1>`)

	_, err = os.Stat(filepath.Join(outDir, "writing", "essay.html"))
	assert.NoError(t, err)
}

func TestListCommand(t *testing.T) {
	root := writeSite(t)

	out, _, err := run(t, root, "list", "--kind", "research")
	require.NoError(t, err)
	assert.Contains(t, out, "light-field")
	assert.NotContains(t, out, "echo")

	_, _, err = run(t, root, "list", "--kind", "painting")
	assert.Error(t, err)
}

func TestPublishRequiresS3(t *testing.T) {
	root := writeSite(t)
	_, _, err := run(t, root, "publish", "--to", "memory://")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://")
}
