package ocr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

type TesseractOCR struct {
	Path    string // executable; a bare name is resolved through PATH
	Lang    string
	Timeout time.Duration
}

func NewTesseractOCR(path string) *TesseractOCR {
	if path == "" {
		path = "tesseract"
	}
	return &TesseractOCR{Path: path, Lang: "eng", Timeout: 20 * time.Second}
}

// Check reports a ConfigurationError when the executable cannot be found.
func (t *TesseractOCR) Check() error {
	if _, err := exec.LookPath(t.Path); err != nil {
		return &apperr.ConfigurationError{Backend: "tesseract", Path: t.Path, Err: err}
	}
	return nil
}

func (t *TesseractOCR) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := t.Check(); err != nil {
		return "", err
	}
	args := []string{imagePath, "stdout"}
	if t.Lang != "" {
		args = append(args, "-l", t.Lang)
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, t.Path, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", err
		}
		return "", errors.New(msg)
	}
	// tesseract ends every page with a form feed
	return strings.TrimRight(out.String(), "\f\r\n "), nil
}
