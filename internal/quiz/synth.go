package quiz

import (
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

const blank = "_____"

var mcqDistractors = []string{
	"B) Incorrect Option 1",
	"C) Incorrect Option 2",
	"D) Incorrect Option 3",
}

// Sentences splits text on periods and keeps the trimmed, non-empty
// fragments in source order.
func Sentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")
	var out []string
	for _, frag := range strings.Split(text, ".") {
		if s := strings.TrimSpace(frag); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Synthesize builds up to n questions of type t, one per sentence, from
// the start of text.
func Synthesize(text string, t Type, n int) ([]Question, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", apperr.ErrUnsupportedQuizType, string(t))
	}
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return nil, apperr.ErrEmptyContent
	}
	if n > len(sentences) {
		n = len(sentences)
	}
	if n < 0 {
		n = 0
	}
	questions := make([]Question, 0, n)
	for _, s := range sentences[:n] {
		questions = append(questions, build(t, s))
	}
	return questions, nil
}

func build(t Type, s string) Question {
	switch t {
	case TypeMCQ:
		return Question{
			Type:    t,
			Prompt:  fmt.Sprintf("What does this sentence describe?\n\"%s\"", s),
			Options: append([]string{"A) " + s}, mcqDistractors...),
			Answer:  s,
		}
	case TypeTrueFalse:
		return Question{
			Type:   t,
			Prompt: fmt.Sprintf("Is this statement true?\n\"%s\"", s),
			Answer: "True",
		}
	case TypeFillBlank:
		prompt, word := blankFirstWord(s)
		return Question{Type: t, Prompt: prompt, Answer: word}
	default: // TypeIdentification
		return Question{
			Type:   t,
			Prompt: fmt.Sprintf("What is being talked about here?\n\"%s\"", s),
			Answer: s,
		}
	}
}

// blankFirstWord replaces only the first occurrence of the sentence's first
// word, so a word that recurs later in the sentence is kept.
func blankFirstWord(s string) (prompt, word string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s, ""
	}
	word = fields[0]
	return strings.Replace(s, word, blank, 1), word
}
