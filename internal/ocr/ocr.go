// Package ocr wraps the external tools used to read image-only PDFs:
// a rasterizer that turns pages into images and a recognizer that turns
// images into text.
package ocr

import (
	"context"
	"errors"
	"os"
)

// PageImage is one rasterized page on disk. Number is 1-based.
type PageImage struct {
	Number int
	Path   string
}

// Release removes the page image. Releasing twice is not an error.
func (p PageImage) Release() error {
	if err := os.Remove(p.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type Rasterizer interface {
	// Rasterize renders every page of pdfPath. cleanup removes whatever the
	// call created and is safe to call after the pages were released.
	Rasterize(ctx context.Context, pdfPath string) (pages []PageImage, cleanup func(), err error)
}

type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}
