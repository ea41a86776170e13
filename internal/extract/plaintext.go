package extract

import (
	"bytes"
	"context"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainTextReader reads UTF-8 text, falling back to Latin-1.
type PlainTextReader struct{}

func (PlainTextReader) Extract(_ context.Context, path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Document{Text: decodeText(b), SourceKind: SourcePlain}, nil
}

func decodeText(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b)
	}
	// every byte is a valid Latin-1 code point, so this cannot fail
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
