package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
	"github.com/mind-engage/mindengage-quizgen/internal/ocr"
)

// fakeRasterizer writes one file per page whose content is the OCR text,
// or "FAIL" to make the recognizer error.
type fakeRasterizer struct {
	dir     string
	pages   []string
	err     error
	cleaned bool
}

func (f *fakeRasterizer) Rasterize(_ context.Context, _ string) ([]ocr.PageImage, func(), error) {
	if f.err != nil {
		return nil, func() {}, f.err
	}
	var imgs []ocr.PageImage
	for i, content := range f.pages {
		p := filepath.Join(f.dir, fmt.Sprintf("page-%d.png", i+1))
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return nil, nil, err
		}
		imgs = append(imgs, ocr.PageImage{Number: i + 1, Path: p})
	}
	return imgs, func() { f.cleaned = true }, nil
}

type fileRecognizer struct{ seen int }

func (r *fileRecognizer) Recognize(_ context.Context, path string) (string, error) {
	r.seen++
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if string(b) == "FAIL" {
		return "", errors.New("recognition failed")
	}
	return string(b), nil
}

func TestOCRSkipsFailedPage(t *testing.T) {
	dir := t.TempDir()
	ras := &fakeRasterizer{dir: dir, pages: []string{"Page one text", "FAIL", "Page three text"}}
	o := NewOCRExtractor(ras, &fileRecognizer{})
	p := NewPDFPipeline(fakeStructured{}, o, nil)

	doc, err := p.Extract(context.Background(), "scan.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Text != "Page one text\nPage three text" {
		t.Fatalf("text = %q", doc.Text)
	}
	if !ras.cleaned {
		t.Fatal("rasterizer cleanup not called")
	}
	left, _ := os.ReadDir(dir)
	if len(left) != 0 {
		t.Fatalf("page images not released: %v", left)
	}
}

func TestOCRAllPagesFailIsEmptyNotError(t *testing.T) {
	ras := &fakeRasterizer{dir: t.TempDir(), pages: []string{"FAIL", "FAIL"}}
	results, err := NewOCRExtractor(ras, &fileRecognizer{}).ExtractViaOCR(context.Background(), "scan.pdf")
	if err != nil {
		t.Fatalf("ExtractViaOCR: %v", err)
	}
	if got := joinPages(results); got != "" {
		t.Fatalf("text = %q", got)
	}
}

func TestOCRRasterizeFailureIsConfigurationError(t *testing.T) {
	ras := &fakeRasterizer{err: errors.New("mkdir denied")}
	_, err := NewOCRExtractor(ras, &fileRecognizer{}).ExtractViaOCR(context.Background(), "scan.pdf")
	var ce *apperr.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
}

type missingRecognizer struct{ calls int }

func (m *missingRecognizer) Recognize(context.Context, string) (string, error) {
	m.calls++
	return "", &apperr.ConfigurationError{Backend: "tesseract", Path: "/nope/tesseract", Err: errors.New("not found")}
}

func TestOCRMissingRecognizerStopsEarly(t *testing.T) {
	dir := t.TempDir()
	ras := &fakeRasterizer{dir: dir, pages: []string{"a", "b", "c"}}
	rec := &missingRecognizer{}

	_, err := NewOCRExtractor(ras, rec).ExtractViaOCR(context.Background(), "scan.pdf")
	var ce *apperr.ConfigurationError
	if !errors.As(err, &ce) || ce.Backend != "tesseract" {
		t.Fatalf("want tesseract ConfigurationError, got %v", err)
	}
	if rec.calls != 1 {
		t.Fatalf("recognizer called %d times, want 1", rec.calls)
	}
	if !ras.cleaned {
		t.Fatal("cleanup should still run")
	}
}
