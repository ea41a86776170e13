package extract

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// StructuredExtractor reads a PDF's embedded text layer page by page. It
// returns an error only when the document cannot be opened.
type StructuredExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]PageResult, error)
}

// TextLayerExtractor is the ledongthuc/pdf backed StructuredExtractor.
type TextLayerExtractor struct{}

func (TextLayerExtractor) ExtractPages(_ context.Context, path string) (pages []PageResult, err error) {
	// the parser panics on some malformed files instead of returning errors
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("open pdf: %v", rec)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	n := r.NumPage()
	pages = make([]PageResult, 0, n)
	for i := 1; i <= n; i++ {
		text, perr := pageText(r, i)
		pages = append(pages, PageResult{Page: i, Text: text, Err: perr})
	}
	return pages, nil
}

func pageText(r *pdf.Reader, i int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("page %d: %v", i, rec)
		}
	}()
	p := r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}
