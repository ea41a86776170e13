// Package apperr holds the error taxonomy shared by extraction, quiz
// generation and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUnreadableDocument  = errors.New("unable to read .docx file")
	ErrMalformedPDF        = errors.New("unable to read .pdf file")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyContent        = errors.New("extracted text is empty")
	ErrNotFound            = errors.New("quiz not found")
	ErrUnsupportedQuizType = errors.New("unsupported quiz type")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoInput             = errors.New("provide text or file")
)

// ConfigurationError reports an external extraction backend that could not
// be reached at all.
type ConfigurationError struct {
	Backend string // e.g. "poppler", "tesseract"
	Path    string // location that was attempted
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s backend error: ensure it is installed and the configured path is correct (attempted path=%q): %v",
		e.Backend, e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsClientError reports whether err should be surfaced as a 400.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrUnreadableDocument,
		ErrMalformedPDF,
		ErrUnsupportedFileType,
		ErrEmptyContent,
		ErrUnsupportedQuizType,
		ErrInvalidInput,
		ErrNoInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
