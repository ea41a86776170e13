package quiz

import (
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

type Type string

const (
	TypeMCQ            Type = "mcq"
	TypeTrueFalse      Type = "true_false"
	TypeFillBlank      Type = "fill_blank"
	TypeIdentification Type = "identification"
)

var Types = []Type{TypeMCQ, TypeTrueFalse, TypeFillBlank, TypeIdentification}

func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// ParseType accepts the wire names above, case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", apperr.ErrUnsupportedQuizType, s)
	}
	return t, nil
}

type Question struct {
	Type    Type     `json:"type" bson:"type"`
	Prompt  string   `json:"question" bson:"question"`
	Options []string `json:"options,omitempty" bson:"options,omitempty"` // mcq only
	Answer  string   `json:"answer" bson:"answer"`
}

type Quiz struct {
	ID        string         `json:"id" bson:"id"`
	Title     string         `json:"title" bson:"title"`
	Questions []Question     `json:"questions" bson:"questions"`
	Metadata  map[string]any `json:"metadata" bson:"metadata"`
	CreatedAt int64          `json:"created_at,omitempty" bson:"created_at"`
}

type Summary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at"`
}

func (q Quiz) Summary() Summary {
	return Summary{ID: q.ID, Title: q.Title, QuestionCount: len(q.Questions), CreatedAt: q.CreatedAt}
}

// Title reads "Generated True_false Quiz" for true_false: only the first
// letter of the type is upper-cased.
func Title(t Type) string {
	s := strings.ToLower(string(t))
	if s == "" {
		return "Generated Quiz"
	}
	return "Generated " + strings.ToUpper(s[:1]) + s[1:] + " Quiz"
}
