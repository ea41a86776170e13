package extract

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
	"github.com/mind-engage/mindengage-quizgen/internal/logger"
)

// PDFPipeline tries the text layer first and falls back to OCR.
type PDFPipeline struct {
	Structured StructuredExtractor
	OCR        OCRBackend
	Log        *logger.Logger
}

func NewPDFPipeline(structured StructuredExtractor, ocr OCRBackend, log *logger.Logger) *PDFPipeline {
	return &PDFPipeline{Structured: structured, OCR: ocr, Log: logger.OrNop(log)}
}

// Extract returns the document text. It fails when OCR cannot be set up or
// the rasterizer rejects the file; an empty Text after OCR is left for the
// caller to judge.
func (p *PDFPipeline) Extract(ctx context.Context, path string) (Document, error) {
	log := logger.OrNop(p.Log).With("file", filepath.Base(path))

	pages, err := p.Structured.ExtractPages(ctx, path)
	if err != nil {
		log.Warn("text layer unreadable, trying OCR", "error", err)
	} else {
		logFailedPages(log, "structured", pages)
		if text := joinPages(pages); text != "" {
			log.Info("extracted pdf text layer", "pages", len(pages))
			return Document{Text: text, SourceKind: SourceStructured}, nil
		}
		log.Info("pdf has no text layer, switching to OCR", "pages", len(pages))
	}

	pages, err = p.OCR.ExtractViaOCR(ctx, path)
	if errors.Is(err, apperr.ErrMalformedPDF) {
		log.Warn("pdf rejected by rasterizer", "error", err)
		return Document{}, err
	}
	if err != nil {
		log.Error("ocr unavailable", "error", err)
		return Document{}, err
	}
	logFailedPages(log, "ocr", pages)
	text := joinPages(pages)
	log.Info("extracted pdf via OCR", "pages", len(pages), "chars", len(text))
	return Document{Text: text, SourceKind: SourceOCR}, nil
}

func logFailedPages(log *logger.Logger, stage string, pages []PageResult) {
	for _, pg := range pages {
		if pg.Err != nil {
			log.Warn("page skipped", "stage", stage, "page", pg.Page, "error", pg.Err)
		}
	}
}
