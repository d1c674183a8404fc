package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tendant/folio/pkg/folio"
)

type object struct {
	data        []byte
	contentType string
	updatedAt   time.Time
}

// Backend is an in-memory asset tree implementing folio.AssetReader.
// Directories exist implicitly through the keys stored below them.
type Backend struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates an empty in-memory backend
func New() *Backend {
	return &Backend{objects: make(map[string]object)}
}

// Put stores data under key, detecting the content type from the bytes.
func (b *Backend) Put(key string, data []byte) error {
	return b.PutWithType(key, data, "")
}

// PutWithType stores data under key with an explicit content type.
func (b *Backend) PutWithType(key string, data []byte, contentType string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: empty key", folio.ErrInvalidPath)
	}
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = object{
		data:        append([]byte(nil), data...),
		contentType: contentType,
		updatedAt:   time.Now().UTC(),
	}
	return nil
}

// Delete removes key.
func (b *Backend) Delete(key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[key]; !ok {
		return folio.ErrEntryNotFound
	}
	delete(b.objects, key)
	return nil
}

// ListEntries lists the direct children of dir.
func (b *Backend) ListEntries(ctx context.Context, dir string) ([]folio.Entry, error) {
	dir, err := cleanKey(dir)
	if err != nil {
		return nil, &folio.SourceError{Backend: "memory", Dir: dir, Op: "list", Err: err}
	}
	prefix := dir
	if prefix != "" {
		prefix += "/"
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	found := false
	dirs := make(map[string]struct{})
	var entries []folio.Entry
	for key, obj := range b.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		found = true
		rest := strings.TrimPrefix(key, prefix)
		if name, _, nested := strings.Cut(rest, "/"); nested {
			if _, ok := dirs[name]; !ok {
				dirs[name] = struct{}{}
				entries = append(entries, folio.Entry{Name: name, IsDir: true})
			}
			continue
		}
		entries = append(entries, folio.Entry{
			Name:    rest,
			Size:    int64(len(obj.data)),
			ModTime: obj.updatedAt,
		})
	}
	if !found {
		return nil, &folio.SourceError{Backend: "memory", Dir: dir, Op: "list", Err: folio.ErrEntryNotFound}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Stat returns metadata for key.
func (b *Backend) Stat(ctx context.Context, key string) (*folio.AssetMeta, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	if !ok {
		return nil, folio.ErrEntryNotFound
	}
	return &folio.AssetMeta{
		Key:         key,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UpdatedAt:   obj.updatedAt,
	}, nil
}

// Open returns a reader over the stored bytes.
func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	if !ok {
		return nil, folio.ErrEntryNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	cleaned := path.Clean("/" + key)
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %s", folio.ErrInvalidPath, key)
		}
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
