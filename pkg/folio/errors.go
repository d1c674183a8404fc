package folio

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrEntryNotFound indicates a directory or file is missing from the source
	ErrEntryNotFound = errors.New("entry not found")

	// ErrProjectNotFound indicates no project document has the requested slug
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidSlug indicates a slug that cannot name an asset directory
	ErrInvalidSlug = errors.New("invalid slug")

	// ErrInvalidPath indicates a key that escapes the source root
	ErrInvalidPath = errors.New("invalid asset path")

	// ErrSourceNotConfigured indicates that no asset source was supplied
	ErrSourceNotConfigured = errors.New("asset source not configured")
)

// SourceError represents a failed asset source operation
type SourceError struct {
	Backend string
	Dir     string
	Op      string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source operation %s failed for %s on backend %s: %v", e.Op, e.Dir, e.Backend, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
