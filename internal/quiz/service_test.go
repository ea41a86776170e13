package quiz_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
	"github.com/mind-engage/mindengage-quizgen/internal/extract"
	"github.com/mind-engage/mindengage-quizgen/internal/quiz"
)

type fakeExtractor struct {
	doc      extract.Document
	err      error
	filename string
	body     string
}

func (f *fakeExtractor) Route(_ context.Context, filename string, content io.Reader) (extract.Document, error) {
	f.filename = filename
	b, _ := io.ReadAll(content)
	f.body = string(b)
	return f.doc, f.err
}

type failingStore struct{ quiz.Store }

func (failingStore) Put(context.Context, quiz.Quiz) error { return errors.New("disk full") }

type fakeRenderer struct{ rendered []quiz.Quiz }

func (r *fakeRenderer) Render(q quiz.Quiz) (string, error) {
	r.rendered = append(r.rendered, q)
	return "/tmp/quiz.pdf", nil
}

type fakeQTI struct{}

func (fakeQTI) BuildPackage(q quiz.Quiz) ([]byte, error) { return []byte("zip:" + q.ID), nil }

type memEvents struct{ types []string }

func (m *memEvents) Record(_ context.Context, typ, _ string, _ any) error {
	m.types = append(m.types, typ)
	return nil
}

func newService(ex quiz.Extractor, store quiz.Store) (*quiz.Service, *memEvents) {
	svc := quiz.NewService(ex, store, &fakeRenderer{}, fakeQTI{}, nil)
	svc.Now = func() time.Time { return time.Unix(1700000000, 0) }
	svc.NewID = func() string { return "quiz-fixed" }
	ev := &memEvents{}
	svc.Events = ev
	return svc, ev
}

func TestGenerateFromText(t *testing.T) {
	store := quiz.NewInMemoryStore()
	svc, ev := newService(&fakeExtractor{}, store)

	q, err := svc.Generate(context.Background(), quiz.GenerateInput{
		Text: "A cat sat. A dog ran. A bird flew.", QuizType: "mcq", NumQuestions: 2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.ID != "quiz-fixed" || q.Title != "Generated Mcq Quiz" || len(q.Questions) != 2 {
		t.Fatalf("quiz = %+v", q)
	}
	if q.Metadata["source"] != "text" || q.Metadata["num_questions"] != 2 {
		t.Fatalf("metadata = %v", q.Metadata)
	}
	stored, err := svc.Get(context.Background(), "quiz-fixed")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i := range q.Questions {
		if stored.Questions[i].Answer != q.Questions[i].Answer {
			t.Fatalf("stored order differs at %d", i)
		}
	}
	if len(ev.types) != 1 || ev.types[0] != quiz.EventQuizGenerated {
		t.Fatalf("events = %v", ev.types)
	}
}

func TestGenerateFileWinsOverText(t *testing.T) {
	ex := &fakeExtractor{doc: extract.Document{Text: "From the file.", SourceKind: extract.SourceOCR}}
	svc, _ := newService(ex, quiz.NewInMemoryStore())

	q, err := svc.Generate(context.Background(), quiz.GenerateInput{
		Filename: "scan.pdf", File: strings.NewReader("%PDF"), Text: "Ignored text.",
		QuizType: "identification", NumQuestions: 5,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ex.filename != "scan.pdf" || ex.body != "%PDF" {
		t.Fatalf("extractor saw %q / %q", ex.filename, ex.body)
	}
	if len(q.Questions) != 1 || q.Questions[0].Answer != "From the file" {
		t.Fatalf("questions = %+v", q.Questions)
	}
	if q.Metadata["source"] != "file" || q.Metadata["extraction"] != "ocr" {
		t.Fatalf("metadata = %v", q.Metadata)
	}
}

func TestGenerateRejectsBadInputWithoutStoring(t *testing.T) {
	cases := []struct {
		name string
		in   quiz.GenerateInput
		ex   *fakeExtractor
		want error
	}{
		{"no input", quiz.GenerateInput{QuizType: "mcq", NumQuestions: 1}, &fakeExtractor{}, apperr.ErrNoInput},
		{"bad type", quiz.GenerateInput{Text: "x.", QuizType: "essay", NumQuestions: 1}, &fakeExtractor{}, apperr.ErrUnsupportedQuizType},
		{"zero count", quiz.GenerateInput{Text: "x.", QuizType: "mcq", NumQuestions: 0}, &fakeExtractor{}, apperr.ErrInvalidInput},
		{"blank text", quiz.GenerateInput{Text: "   ", QuizType: "mcq", NumQuestions: 1}, &fakeExtractor{}, apperr.ErrEmptyContent},
		{"only periods", quiz.GenerateInput{Text: "...", QuizType: "mcq", NumQuestions: 1}, &fakeExtractor{}, apperr.ErrEmptyContent},
		{"extractor fails", quiz.GenerateInput{Filename: "a.exe", File: strings.NewReader("x"), QuizType: "mcq", NumQuestions: 1},
			&fakeExtractor{err: apperr.ErrUnsupportedFileType}, apperr.ErrUnsupportedFileType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := quiz.NewInMemoryStore()
			svc, ev := newService(c.ex, store)
			_, err := svc.Generate(context.Background(), c.in)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			list, _ := store.List(context.Background(), quiz.ListOpts{})
			if len(list) != 0 || len(ev.types) != 0 {
				t.Fatalf("nothing should be stored: %v %v", list, ev.types)
			}
		})
	}
}

func TestGenerateStoreFailure(t *testing.T) {
	svc, ev := newService(&fakeExtractor{}, failingStore{quiz.NewInMemoryStore()})
	_, err := svc.Generate(context.Background(), quiz.GenerateInput{Text: "A b.", QuizType: "mcq", NumQuestions: 1})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v", err)
	}
	if len(ev.types) != 0 {
		t.Fatal("no event for an unsaved quiz")
	}
}

func TestExports(t *testing.T) {
	store := quiz.NewInMemoryStore()
	svc, ev := newService(&fakeExtractor{}, store)
	ctx := context.Background()

	if _, err := svc.ExportPDF(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("ExportPDF(nope) = %v", err)
	}
	if _, err := svc.Generate(ctx, quiz.GenerateInput{Text: "Fact one.", QuizType: "true_false", NumQuestions: 1}); err != nil {
		t.Fatal(err)
	}
	path, err := svc.ExportPDF(ctx, "quiz-fixed")
	if err != nil || path != "/tmp/quiz.pdf" {
		t.Fatalf("ExportPDF = %q, %v", path, err)
	}
	pkg, err := svc.ExportQTI(ctx, "quiz-fixed")
	if err != nil || string(pkg) != "zip:quiz-fixed" {
		t.Fatalf("ExportQTI = %q, %v", pkg, err)
	}
	want := []string{quiz.EventQuizGenerated, quiz.EventQuizExported, quiz.EventQuizExported}
	if strings.Join(ev.types, ",") != strings.Join(want, ",") {
		t.Fatalf("events = %v", ev.types)
	}
}
