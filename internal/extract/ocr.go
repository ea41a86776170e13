package extract

import (
	"context"
	"errors"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
	"github.com/mind-engage/mindengage-quizgen/internal/ocr"
)

// OCRBackend reads text from page images. The only error it returns is a
// *apperr.ConfigurationError; page failures are reported per PageResult.
type OCRBackend interface {
	ExtractViaOCR(ctx context.Context, path string) ([]PageResult, error)
}

type OCRExtractor struct {
	Rasterizer ocr.Rasterizer
	Recognizer ocr.Recognizer
}

func NewOCRExtractor(r ocr.Rasterizer, rec ocr.Recognizer) *OCRExtractor {
	return &OCRExtractor{Rasterizer: r, Recognizer: rec}
}

func (o *OCRExtractor) ExtractViaOCR(ctx context.Context, path string) ([]PageResult, error) {
	images, cleanup, err := o.Rasterizer.Rasterize(ctx, path)
	if err != nil {
		var ce *apperr.ConfigurationError
		if errors.As(err, &ce) || errors.Is(err, apperr.ErrMalformedPDF) ||
			errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &apperr.ConfigurationError{Backend: "rasterizer", Err: err}
	}
	defer cleanup()

	results := make([]PageResult, 0, len(images))
	for _, img := range images {
		res, err := o.recognize(ctx, img)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// recognize runs OCR on one page and releases its image whatever the
// outcome. A missing recognizer binary is fatal for the whole document.
func (o *OCRExtractor) recognize(ctx context.Context, img ocr.PageImage) (PageResult, error) {
	defer img.Release()

	text, err := o.Recognizer.Recognize(ctx, img.Path)
	if err != nil {
		var ce *apperr.ConfigurationError
		if errors.As(err, &ce) {
			return PageResult{}, err
		}
		return PageResult{Page: img.Number, Err: err}, nil
	}
	return PageResult{Page: img.Number, Text: text}, nil
}
