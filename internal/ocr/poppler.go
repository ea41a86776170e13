package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

// PopplerRasterizer renders pages with pdftoppm from a Poppler install.
type PopplerRasterizer struct {
	BinDir  string // directory holding pdftoppm; empty means PATH
	DPI     int
	Timeout time.Duration
	WorkDir string // parent of per-call scratch dirs; empty means os.TempDir()
}

func NewPopplerRasterizer(binDir string) *PopplerRasterizer {
	return &PopplerRasterizer{BinDir: binDir, DPI: 200, Timeout: 5 * time.Minute}
}

func (p *PopplerRasterizer) binary() string {
	name := "pdftoppm"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	if p.BinDir == "" {
		return name
	}
	return filepath.Join(p.BinDir, name)
}

func (p *PopplerRasterizer) configErr(err error) error {
	path := p.BinDir
	if path == "" {
		path = p.binary()
	}
	return &apperr.ConfigurationError{Backend: "poppler", Path: path, Err: err}
}

func (p *PopplerRasterizer) Rasterize(ctx context.Context, pdfPath string) ([]PageImage, func(), error) {
	bin := p.binary()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, func() {}, p.configErr(err)
	}
	dir, err := os.MkdirTemp(p.WorkDir, "quiz-ocr-*")
	if err != nil {
		return nil, func() {}, fmt.Errorf("create ocr work dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	dpi := p.DPI
	if dpi <= 0 {
		dpi = 200
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, bin, "-r", strconv.Itoa(dpi), "-png", pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			return nil, func() {}, fmt.Errorf("pdftoppm: %w", ctx.Err())
		case errors.As(err, &exitErr):
			// pdftoppm ran and rejected the input
			return nil, func() {}, fmt.Errorf("%w: pdftoppm: %v: %s", apperr.ErrMalformedPDF, err, strings.TrimSpace(string(out)))
		default:
			return nil, func() {}, p.configErr(fmt.Errorf("start pdftoppm: %w", err))
		}
	}

	pages, err := collectPages(dir)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return pages, cleanup, nil
}

var pageFileRe = regexp.MustCompile(`^page-(\d+)\.png$`)

// collectPages lists pdftoppm output ordered by page number. pdftoppm pads
// the number to the width of the page count, so names alone do not sort.
func collectPages(dir string) ([]PageImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var pages []PageImage
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pageFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pages = append(pages, PageImage{Number: n, Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
	return pages, nil
}
