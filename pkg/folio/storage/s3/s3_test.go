package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/folio/pkg/folio"
	memorystorage "github.com/tendant/folio/pkg/folio/storage/memory"
)

// fakeBucket is a minimal path-style S3 endpoint serving delimited
// listings and recording uploads.
type fakeBucket struct {
	mu      sync.Mutex
	keys    []string
	uploads map[string]string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("list-type") != "2" {
			http.NotFound(w, r)
			return
		}
		f.list(w, r.URL.Query().Get("prefix"), r.URL.Query().Get("delimiter"))
	case http.MethodPut:
		_, _ = io.Copy(io.Discard, r.Body)
		key := strings.TrimPrefix(r.URL.Path, "/site-assets/")
		f.mu.Lock()
		f.uploads[key] = r.Header.Get("Content-Type")
		f.mu.Unlock()
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeBucket) list(w http.ResponseWriter, prefix, delimiter string) {
	var contents, prefixes strings.Builder
	seen := map[string]bool{}
	for _, key := range f.keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if i := strings.Index(rest, delimiter); delimiter != "" && i >= 0 {
			p := prefix + rest[:i+1]
			if !seen[p] {
				seen[p] = true
				fmt.Fprintf(&prefixes, "<CommonPrefixes><Prefix>%s</Prefix></CommonPrefixes>", p)
			}
			continue
		}
		fmt.Fprintf(&contents, "<Contents><Key>%s</Key><LastModified>2024-05-01T10:00:00.000Z</LastModified><ETag>&quot;x&quot;</ETag><Size>3</Size><StorageClass>STANDARD</StorageClass></Contents>", key)
	}
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Name>site-assets</Name><Prefix>%s</Prefix><Delimiter>%s</Delimiter><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>%s%s</ListBucketResult>`,
		prefix, delimiter, contents.String(), prefixes.String())
}

func newFakeBackend(t *testing.T, keys ...string) (*Backend, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{keys: keys, uploads: map[string]string{}}
	server := httptest.NewServer(bucket)
	t.Cleanup(server.Close)

	backend, err := New(Config{
		Region:          "us-east-1",
		Bucket:          "site-assets",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Endpoint:        server.URL,
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	return backend, bucket
}

func TestS3Backend_BasicConfiguration(t *testing.T) {
	t.Run("EmptyBucket", func(t *testing.T) {
		_, err := New(Config{Region: "us-east-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket name is required")
	})

	t.Run("DefaultRegion", func(t *testing.T) {
		backend, err := New(Config{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", backend.config.Region)
	})

	t.Run("PrefixKeys", func(t *testing.T) {
		backend, err := New(Config{Bucket: "b", Prefix: "/public/", AccessKeyID: "k", SecretAccessKey: "s"})
		require.NoError(t, err)
		assert.Equal(t, "public/projects/x", backend.key("projects/x"))
		assert.Equal(t, "public", backend.key(""))
		assert.Equal(t, "public/x", backend.key("../x"))
	})
}

func TestS3Backend_ListEntries(t *testing.T) {
	backend, _ := newFakeBackend(t,
		"projects/demo/cover.jpg",
		"projects/demo/paper.pdf",
		"projects/demo/shots/01.jpg",
		"projects/other/01.jpg",
	)
	ctx := context.Background()

	entries, err := backend.ListEntries(ctx, "projects/demo")
	require.NoError(t, err)

	byName := map[string]folio.Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	require.Len(t, byName, 3)
	assert.False(t, byName["cover.jpg"].IsDir)
	assert.Equal(t, int64(3), byName["cover.jpg"].Size)
	assert.False(t, byName["paper.pdf"].IsDir)
	assert.True(t, byName["shots"].IsDir)

	_, err = backend.ListEntries(ctx, "projects/missing")
	assert.ErrorIs(t, err, folio.ErrEntryNotFound)
}

func TestS3Backend_ResolvesMedia(t *testing.T) {
	backend, _ := newFakeBackend(t,
		"projects/demo/cover.webp",
		"projects/demo/demo.mp4",
		"projects/demo/shots/02.jpg",
		"projects/demo/shots/10.jpg",
	)
	resolver, err := folio.New(folio.WithSource(backend))
	require.NoError(t, err)

	media := resolver.Resolve(context.Background(), "demo", folio.Overrides{})

	assert.Equal(t, "/projects/demo/cover.webp", media.CoverImage)
	assert.Equal(t, "/projects/demo/demo.mp4", media.Video)
	assert.Equal(t, []string{
		"/projects/demo/cover.webp",
		"/projects/demo/shots/02.jpg",
		"/projects/demo/shots/10.jpg",
	}, media.Sources())
}

func TestS3Backend_Publish(t *testing.T) {
	backend, bucket := newFakeBackend(t)
	src := memorystorage.New()
	require.NoError(t, src.PutWithType("projects/demo/cover.jpg", []byte("jpg"), "image/jpeg"))
	require.NoError(t, src.PutWithType("projects/demo/shots/01.png", []byte("png"), "image/png"))

	n, err := backend.Publish(context.Background(), src, "projects")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	assert.Equal(t, "image/jpeg", bucket.uploads["projects/demo/cover.jpg"])
	assert.Equal(t, "image/png", bucket.uploads["projects/demo/shots/01.png"])
}
