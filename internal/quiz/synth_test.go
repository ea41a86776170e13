package quiz

import (
	"errors"
	"testing"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

func TestSynthesizeMCQ(t *testing.T) {
	qs, err := Synthesize("A cat sat. A dog ran.", TypeMCQ, 2)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("want 2 questions, got %d", len(qs))
	}
	q := qs[0]
	if q.Answer != "A cat sat" {
		t.Fatalf("answer = %q", q.Answer)
	}
	if len(q.Options) != 4 || q.Options[0] != "A) A cat sat" || q.Options[3] != "D) Incorrect Option 3" {
		t.Fatalf("options = %q", q.Options)
	}
	if q.Prompt != "What does this sentence describe?\n\"A cat sat\"" {
		t.Fatalf("prompt = %q", q.Prompt)
	}
	if qs[1].Answer != "A dog ran" {
		t.Fatalf("second answer = %q", qs[1].Answer)
	}
}

func TestSynthesizeFillBlank(t *testing.T) {
	qs, err := Synthesize("The sky is blue.", TypeFillBlank, 1)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if qs[0].Prompt != "_____ sky is blue" || qs[0].Answer != "The" {
		t.Fatalf("got %+v", qs[0])
	}
	if qs[0].Options != nil {
		t.Fatal("only mcq questions carry options")
	}
}

func TestFillBlankReplacesOnlyFirstOccurrence(t *testing.T) {
	qs, err := Synthesize("is it what it is", TypeFillBlank, 1)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if qs[0].Prompt != "_____ it what it is" || qs[0].Answer != "is" {
		t.Fatalf("got %+v", qs[0])
	}
}

func TestFillBlankFirstWordInsideLaterWord(t *testing.T) {
	// first textual occurrence is the leading token itself
	qs, _ := Synthesize("an answer and another", TypeFillBlank, 1)
	if qs[0].Prompt != "_____ answer and another" {
		t.Fatalf("prompt = %q", qs[0].Prompt)
	}
}

func TestSynthesizeTrueFalseAndIdentification(t *testing.T) {
	tf, err := Synthesize("Water boils at 100 degrees.", TypeTrueFalse, 1)
	if err != nil {
		t.Fatal(err)
	}
	if tf[0].Answer != "True" || tf[0].Prompt != "Is this statement true?\n\"Water boils at 100 degrees\"" {
		t.Fatalf("true_false = %+v", tf[0])
	}
	id, err := Synthesize("Water boils at 100 degrees.", TypeIdentification, 1)
	if err != nil {
		t.Fatal(err)
	}
	if id[0].Answer != "Water boils at 100 degrees" || id[0].Prompt != "What is being talked about here?\n\"Water boils at 100 degrees\"" {
		t.Fatalf("identification = %+v", id[0])
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "...", "\n.\n"} {
		for _, n := range []int{1, 5} {
			if _, err := Synthesize(text, TypeMCQ, n); !errors.Is(err, apperr.ErrEmptyContent) {
				t.Fatalf("Synthesize(%q, %d) err = %v", text, n, err)
			}
		}
	}
}

func TestSynthesizeNeverPads(t *testing.T) {
	qs, err := Synthesize("One. Two.\nThree", TypeIdentification, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 3 {
		t.Fatalf("want 3 questions, got %d", len(qs))
	}
	for i, want := range []string{"One", "Two", "Three"} {
		if qs[i].Answer != want {
			t.Fatalf("question %d answer = %q, want %q", i, qs[i].Answer, want)
		}
	}
}

func TestSynthesizeTruncates(t *testing.T) {
	qs, err := Synthesize("a. b. c. d.", TypeTrueFalse, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 {
		t.Fatalf("len = %d", len(qs))
	}
}

func TestSynthesizeUnknownType(t *testing.T) {
	if _, err := Synthesize("Some text.", Type("essay"), 1); !errors.Is(err, apperr.ErrUnsupportedQuizType) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseTypeAndTitle(t *testing.T) {
	ty, err := ParseType(" True_False ")
	if err != nil || ty != TypeTrueFalse {
		t.Fatalf("ParseType = %q, %v", ty, err)
	}
	if _, err := ParseType("matching"); !errors.Is(err, apperr.ErrUnsupportedQuizType) {
		t.Fatalf("err = %v", err)
	}
	if got := Title(TypeTrueFalse); got != "Generated True_false Quiz" {
		t.Fatalf("title = %q", got)
	}
	if got := Title(TypeMCQ); got != "Generated Mcq Quiz" {
		t.Fatalf("title = %q", got)
	}
}
