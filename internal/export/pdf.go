// Package export renders stored quizzes for download.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/mind-engage/mindengage-quizgen/internal/quiz"
)

// PDFRenderer lays a quiz out as a flowing A4 document: a centered title,
// then each numbered prompt with its options and answer. Page breaks are
// left to fpdf.
type PDFRenderer struct {
	Dir string // where Render creates files; empty means os.TempDir()
	// FontPath names a TrueType font used with UTF-8 text. When empty the
	// core Arial font is used, which only covers cp1252: other characters
	// print as '.'.
	FontPath string
	Compress bool
}

func NewPDFRenderer(dir string) *PDFRenderer {
	return &PDFRenderer{Dir: dir, Compress: true}
}

func (r *PDFRenderer) document(q quiz.Quiz) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetTitle(q.Title, true)
	pdf.AddPage()
	tr := func(s string) string { return s }
	if r.FontPath != "" {
		pdf.AddUTF8Font("quiz", "", r.FontPath)
		pdf.SetFont("quiz", "", 12)
	} else {
		pdf.SetFont("Arial", "", 12)
		tr = pdf.UnicodeTranslatorFromDescriptor("") // cp1252
	}

	pdf.CellFormat(0, 10, tr("Quiz: "+q.Title), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	for i, qq := range q.Questions {
		pdf.MultiCell(0, 10, tr(fmt.Sprintf("%d. %s", i+1, qq.Prompt)), "", "L", false)
		for _, opt := range qq.Options {
			pdf.MultiCell(0, 10, tr("   "+opt), "", "L", false)
		}
		pdf.MultiCell(0, 10, tr("Answer: "+qq.Answer), "", "L", false)
		pdf.Ln(3)
	}
	return pdf
}

// Write streams the rendered quiz to w.
func (r *PDFRenderer) Write(w io.Writer, q quiz.Quiz) error {
	return r.document(q).Output(w)
}

// Render writes the quiz to a new temp file and returns its path. The
// caller owns the file.
func (r *PDFRenderer) Render(q quiz.Quiz) (string, error) {
	f, err := os.CreateTemp(r.Dir, "quiz-*.pdf")
	if err != nil {
		return "", err
	}
	if err := r.Write(f, q); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
