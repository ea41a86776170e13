// Package extract turns uploaded documents into plain text.
//
// PDFs go through a two stage pipeline: the embedded text layer is read
// first and, when it yields nothing, pages are rasterized and run through
// OCR. Per-page failures are returned as values and logged by the
// orchestrating caller; only document level failures become errors.
package extract

import (
	"context"
	"strings"
)

type SourceKind string

const (
	SourceStructured SourceKind = "structured"
	SourceOCR        SourceKind = "ocr"
	SourcePlain      SourceKind = "plain"
)

// Document is the text pulled out of one upload. It is never persisted.
type Document struct {
	Text       string
	SourceKind SourceKind
}

// PageResult is the outcome of reading one page. Page is 1-based.
type PageResult struct {
	Page int
	Text string
	Err  error
}

// TextExtractor reads a document from disk.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (Document, error)
}

func joinPages(pages []PageResult) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Err != nil || strings.TrimSpace(p.Text) == "" {
			continue
		}
		parts = append(parts, p.Text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
