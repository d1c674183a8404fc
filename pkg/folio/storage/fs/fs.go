package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tendant/folio/pkg/folio"
)

// Backend is a read-only filesystem implementation of folio.AssetReader
// rooted at the site's public directory.
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Root of the public asset tree, e.g. "./public"
}

// New creates a new filesystem backend. The base directory does not have
// to exist yet; listings below a missing root report folio.ErrEntryNotFound.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	abs, err := filepath.Abs(config.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	return &Backend{baseDir: abs}, nil
}

// BaseDir returns the absolute root directory.
func (b *Backend) BaseDir() string {
	return b.baseDir
}

// ListEntries lists the direct children of dir.
func (b *Backend) ListEntries(ctx context.Context, dir string) ([]folio.Entry, error) {
	full, err := b.resolve(dir)
	if err != nil {
		return nil, &folio.SourceError{Backend: "fs", Dir: dir, Op: "list", Err: err}
	}

	dirEntries, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = folio.ErrEntryNotFound
		}
		return nil, &folio.SourceError{Backend: "fs", Dir: dir, Op: "list", Err: err}
	}

	entries := make([]folio.Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		info, err := d.Info()
		if err != nil {
			continue
		}
		// Symlinks are classified by their target.
		if info.Mode()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(filepath.Join(full, d.Name())); err == nil {
				info = target
			} else {
				continue
			}
		}
		entries = append(entries, folio.Entry{
			Name:    d.Name(),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

// Stat returns metadata for a file, detecting its content type.
func (b *Backend) Stat(ctx context.Context, key string) (*folio.AssetMeta, error) {
	full, err := b.resolve(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, folio.ErrEntryNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.IsDir() {
		return nil, folio.ErrEntryNotFound
	}

	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(full); err == nil {
		contentType = mt.String()
	}

	return &folio.AssetMeta{
		Key:         filepath.ToSlash(strings.TrimPrefix(full, b.baseDir+string(filepath.Separator))),
		Size:        info.Size(),
		ContentType: contentType,
		UpdatedAt:   info.ModTime(),
	}, nil
}

// Open opens a file for reading.
func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	full, err := b.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, folio.ErrEntryNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// resolve maps a slash-separated key onto the base directory, refusing
// keys that escape it.
func (b *Backend) resolve(key string) (string, error) {
	full := filepath.Join(b.baseDir, filepath.FromSlash(key))
	if !isSubpath(b.baseDir, full) {
		return "", fmt.Errorf("%w: %s", folio.ErrInvalidPath, key)
	}
	return full, nil
}

func isSubpath(root, child string) bool {
	rel, err := filepath.Rel(root, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
