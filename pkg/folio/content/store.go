package content

import (
	"log/slog"
	"sync/atomic"
)

// Store keeps the most recently loaded catalog and swaps it atomically on
// Reload, so readers never observe a half-loaded catalog.
type Store struct {
	dir     string
	logger  *slog.Logger
	current atomic.Pointer[Catalog]
}

// NewStore loads dir once and returns a store serving it.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{dir: dir, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload parses the content directory again. On failure the previous
// catalog stays in place.
func (s *Store) Reload() error {
	c, err := Load(s.dir, s.logger)
	if err != nil {
		return err
	}
	s.current.Store(c)
	return nil
}

// Catalog returns the current catalog.
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Catalog returns c itself so a fixed catalog can be used wherever a
// reloadable store is accepted.
func (c *Catalog) Catalog() *Catalog {
	return c
}
