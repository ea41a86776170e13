package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DOCXExtractor collects paragraph text from word/document.xml.
type DOCXExtractor struct{}

func (DOCXExtractor) Extract(_ context.Context, path string) (Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperr.ErrUnreadableDocument, err)
	}
	defer zr.Close()

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return Document{}, fmt.Errorf("%w: word/document.xml missing", apperr.ErrUnreadableDocument)
	}
	rc, err := body.Open()
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperr.ErrUnreadableDocument, err)
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(rc)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperr.ErrUnreadableDocument, err)
	}
	return Document{Text: strings.TrimSpace(strings.Join(paragraphs, "\n")), SourceKind: SourceStructured}, nil
}

// readParagraphs returns the non-empty text of every w:p in document order.
// Paragraphs nested in text boxes are emitted before their container.
func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		out    []string
		stack  []*strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				stack = append(stack, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				if len(stack) > 0 {
					stack[len(stack)-1].WriteByte('\t')
				}
			case "br", "cr":
				if len(stack) > 0 {
					stack[len(stack)-1].WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(stack) == 0 {
					continue
				}
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if p.Len() > 0 {
					out = append(out, p.String())
				}
			}
		case xml.CharData:
			if inText && len(stack) > 0 {
				stack[len(stack)-1].Write(t)
			}
		}
	}
	return out, nil
}
