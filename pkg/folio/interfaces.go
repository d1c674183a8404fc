package folio

import (
	"context"
	"io"
	"time"
)

// AssetSource lists the contents of directories below a storage root.
// dir is slash-separated and relative to the root, e.g. "projects/demo".
// Implementations return an error wrapping ErrEntryNotFound when the
// directory does not exist.
type AssetSource interface {
	ListEntries(ctx context.Context, dir string) ([]Entry, error)
}

// AssetReader is implemented by sources that can also serve file bytes.
type AssetReader interface {
	AssetSource

	// Stat returns metadata for a single file.
	Stat(ctx context.Context, key string) (*AssetMeta, error)

	// Open returns the file contents; the caller closes the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// AssetMeta contains metadata about a stored asset.
type AssetMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}
