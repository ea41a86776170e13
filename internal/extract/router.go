package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
	"github.com/mind-engage/mindengage-quizgen/internal/logger"
)

// Router picks an extractor by file extension and owns the temp file the
// upload is spooled to.
type Router struct {
	PDF     TextExtractor
	DOCX    TextExtractor
	Plain   TextExtractor
	TempDir string // empty means os.TempDir()
	Log     *logger.Logger
}

func NewRouter(pdf TextExtractor, tempDir string, log *logger.Logger) *Router {
	return &Router{
		PDF:     pdf,
		DOCX:    DOCXExtractor{},
		Plain:   PlainTextReader{},
		TempDir: tempDir,
		Log:     logger.OrNop(log),
	}
}

func (r *Router) extractorFor(ext string) TextExtractor {
	switch ext {
	case ".pdf":
		return r.PDF
	case ".docx":
		return r.DOCX
	case ".txt":
		return r.Plain
	}
	return nil
}

// Route extracts the text of an upload named filename. The temp copy is
// removed on every path out of this function.
func (r *Router) Route(ctx context.Context, filename string, content io.Reader) (Document, error) {
	log := logger.OrNop(r.Log)
	ext := strings.ToLower(filepath.Ext(filename))
	ex := r.extractorFor(ext)
	if ex == nil {
		return Document{}, fmt.Errorf("%w: %q", apperr.ErrUnsupportedFileType, ext)
	}

	path, err := r.spool(content, ext)
	if path != "" {
		defer func() {
			if rmErr := os.Remove(path); rmErr != nil {
				log.Warn("failed to remove upload temp file", "path", path, "error", rmErr)
			}
		}()
	}
	if err != nil {
		return Document{}, fmt.Errorf("save upload: %w", err)
	}

	doc, err := ex.Extract(ctx, path)
	if err != nil {
		return Document{}, err
	}
	doc.Text = strings.TrimSpace(doc.Text)
	if doc.Text == "" {
		return Document{}, apperr.ErrEmptyContent
	}
	return doc, nil
}

// spool copies content to a uniquely named temp file. The client filename
// only contributes its extension.
func (r *Router) spool(content io.Reader, ext string) (string, error) {
	f, err := os.CreateTemp(r.TempDir, "upload-"+uuid.NewString()+"-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return f.Name(), err
	}
	return f.Name(), f.Close()
}
