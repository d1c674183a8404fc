package mediasync

import (
	"context"
	"errors"
)

// ErrSkipped is returned by a processor that deliberately ignored a
// document; the scanner counts it as skipped rather than failed.
var ErrSkipped = errors.New("document skipped")

// Document is one content file handed to a processor.
type Document struct {
	// Path is the file path on disk
	Path string
	// Data holds the raw file contents
	Data []byte
	// DryRun asks the processor not to persist any change
	DryRun bool
}

// DocumentProcessor processes individual documents.
//
// Example implementations:
//   - MediaSync (rewrites media frontmatter from the asset tree)
//   - Reporter (lists projects and their resolved media)
type DocumentProcessor interface {
	// Process is called for each document found during scan and reports
	// whether the document was (or, in dry-run mode, would be) changed.
	// Return an error to mark this document as failed (scan continues with next document).
	Process(ctx context.Context, doc *Document) (bool, error)
}
