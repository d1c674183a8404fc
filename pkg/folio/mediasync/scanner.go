package mediasync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tendant/folio/pkg/folio/content"
)

// Scanner walks the markdown documents of a directory and processes them
// with the provided processor.
type Scanner struct {
	dir    string
	logger *slog.Logger
}

// New creates a new Scanner over dir, typically <content>/projects.
func New(dir string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{dir: dir, logger: logger}
}

// ScanOptions configures the scan operation.
type ScanOptions struct {
	// Processor defines the processing logic (required)
	Processor DocumentProcessor

	// DryRun is passed on to the processor, which must not persist changes
	DryRun bool

	// OnProgress is called after each document is processed (optional)
	OnProgress func(processed, total int64)
}

// ScanResult contains statistics about the scan operation.
type ScanResult struct {
	// TotalFound is the total number of documents found
	TotalFound int64

	// TotalUpdated is the number of documents the processor changed
	TotalUpdated int64

	// TotalSkipped is the number of documents the processor skipped
	TotalSkipped int64

	// TotalFailed is the number of documents that failed processing
	TotalFailed int64

	// UpdatedPaths and FailedPaths list the affected files
	UpdatedPaths []string
	FailedPaths  []string
}

// Scan processes every document below the scanner's directory. If a
// document fails processing, the error is recorded but scanning continues
// with the next document. Cancelling ctx stops the scan.
func (s *Scanner) Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{}

	if opts.Processor == nil {
		return result, fmt.Errorf("processor is required")
	}

	files, err := content.ListDocuments(s.dir)
	if err != nil {
		return result, err
	}
	result.TotalFound = int64(len(files))
	if len(files) == 0 {
		s.logger.Warn("no documents found", "dir", s.dir)
		return result, nil
	}

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			result.TotalFailed++
			result.FailedPaths = append(result.FailedPaths, file)
			s.logger.Error("failed to read document", "path", file, "err", err)
			continue
		}

		changed, err := opts.Processor.Process(ctx, &Document{Path: file, Data: data, DryRun: opts.DryRun})
		switch {
		case errors.Is(err, ErrSkipped):
			result.TotalSkipped++
		case err != nil:
			result.TotalFailed++
			result.FailedPaths = append(result.FailedPaths, file)
			s.logger.Error("failed to process document", "path", file, "err", err)
		case changed:
			result.TotalUpdated++
			result.UpdatedPaths = append(result.UpdatedPaths, file)
		}

		if opts.OnProgress != nil {
			opts.OnProgress(int64(i+1), result.TotalFound)
		}
	}

	return result, nil
}

// ForEach is a convenience method that processes each document with a callback function.
//
// Example:
//
//	scanner.ForEach(ctx, func(ctx context.Context, doc *mediasync.Document) (bool, error) {
//	    fmt.Println(doc.Path)
//	    return false, nil
//	})
func (s *Scanner) ForEach(ctx context.Context, fn func(context.Context, *Document) (bool, error)) (*ScanResult, error) {
	return s.Scan(ctx, ScanOptions{Processor: &funcProcessor{fn: fn}})
}

// funcProcessor adapts a function to the DocumentProcessor interface.
type funcProcessor struct {
	fn func(context.Context, *Document) (bool, error)
}

func (p *funcProcessor) Process(ctx context.Context, doc *Document) (bool, error) {
	return p.fn(ctx, doc)
}
