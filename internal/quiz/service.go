package quiz

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
	"github.com/mind-engage/mindengage-quizgen/internal/extract"
	"github.com/mind-engage/mindengage-quizgen/internal/logger"
)

type Extractor interface {
	Route(ctx context.Context, filename string, content io.Reader) (extract.Document, error)
}

type PDFRenderer interface {
	Render(q Quiz) (string, error)
}

type PackageBuilder interface {
	BuildPackage(q Quiz) ([]byte, error)
}

// EventRecorder receives audit events; failures are logged, never returned.
type EventRecorder interface {
	Record(ctx context.Context, typ, key string, data any) error
}

const (
	EventQuizGenerated = "QuizGenerated"
	EventQuizExported  = "QuizExported"
)

type Service struct {
	Extractor Extractor
	Store     Store
	PDF       PDFRenderer
	QTI       PackageBuilder
	Events    EventRecorder // optional
	Log       *logger.Logger

	Now   func() time.Time
	NewID func() string
}

func NewService(ex Extractor, store Store, pdf PDFRenderer, qti PackageBuilder, log *logger.Logger) *Service {
	return &Service{
		Extractor: ex,
		Store:     store,
		PDF:       pdf,
		QTI:       qti,
		Log:       logger.OrNop(log),
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// GenerateInput is one generate request. File, when set, wins over Text.
type GenerateInput struct {
	Filename     string
	File         io.Reader
	Text         string
	QuizType     string
	NumQuestions int
}

// Generate extracts, synthesizes and stores a quiz. Nothing is stored
// unless the quiz was fully built.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (Quiz, error) {
	t, err := ParseType(in.QuizType)
	if err != nil {
		return Quiz{}, err
	}
	if in.NumQuestions <= 0 {
		return Quiz{}, fmt.Errorf("%w: num_questions must be a positive integer", apperr.ErrInvalidInput)
	}
	if in.File == nil && in.Text == "" {
		return Quiz{}, apperr.ErrNoInput
	}

	meta := map[string]any{"num_questions": in.NumQuestions}
	text := in.Text
	if in.File != nil {
		doc, err := s.Extractor.Route(ctx, in.Filename, in.File)
		if err != nil {
			return Quiz{}, err
		}
		text = doc.Text
		meta["source"] = "file"
		meta["filename"] = in.Filename
		meta["extraction"] = string(doc.SourceKind)
	} else {
		meta["source"] = "text"
		meta["extraction"] = string(extract.SourcePlain)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Quiz{}, apperr.ErrEmptyContent
	}

	questions, err := Synthesize(text, t, in.NumQuestions)
	if err != nil {
		return Quiz{}, err
	}
	q := Quiz{
		ID:        s.NewID(),
		Title:     Title(t),
		Questions: questions,
		Metadata:  meta,
		CreatedAt: s.Now().Unix(),
	}
	if err := s.Store.Put(ctx, q); err != nil {
		return Quiz{}, fmt.Errorf("store quiz: %w", err)
	}
	s.Log.Info("quiz generated", "quiz_id", q.ID, "type", t, "questions", len(questions), "source", meta["source"])
	s.record(ctx, EventQuizGenerated, q.ID, map[string]any{"type": t, "questions": len(questions)})
	return q, nil
}

func (s *Service) Get(ctx context.Context, id string) (Quiz, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, opts ListOpts) ([]Summary, error) {
	return s.Store.List(ctx, opts)
}

// ExportPDF renders the quiz to a temp file; the caller removes it.
func (s *Service) ExportPDF(ctx context.Context, id string) (string, error) {
	q, err := s.Store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	path, err := s.PDF.Render(q)
	if err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}
	s.record(ctx, EventQuizExported, id, map[string]any{"format": "pdf"})
	return path, nil
}

func (s *Service) ExportQTI(ctx context.Context, id string) ([]byte, error) {
	q, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	pkg, err := s.QTI.BuildPackage(q)
	if err != nil {
		return nil, fmt.Errorf("build qti package: %w", err)
	}
	s.record(ctx, EventQuizExported, id, map[string]any{"format": "qti"})
	return pkg, nil
}

func (s *Service) record(ctx context.Context, typ, key string, data any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(ctx, typ, key, data); err != nil {
		s.Log.Warn("event not recorded", "type", typ, "key", key, "error", err)
	}
}
