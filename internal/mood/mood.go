package mood

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jjbmsda/ott-mood-app/internal/models"
)

// Category is the closed set of moods a quiz can resolve to.
type Category string

const (
	Happy   Category = "happy"
	Blue    Category = "blue"
	Excited Category = "excited"
	Hyped   Category = "hyped"
	Any     Category = "any"
)

// Categories lists every mood in evaluation order. Ties resolve to the
// earliest non-Any entry.
var Categories = []Category{Happy, Blue, Excited, Hyped, Any}

var (
	ErrIncomplete      = errors.New("quiz is incomplete")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
)

// IncompleteError names the first question without an answer.
type IncompleteError struct {
	QuestionID string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: question %s has no answer", ErrIncomplete, e.QuestionID)
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

var genres = map[Category][]int{
	Happy:   {35, 10751},
	Blue:    {18},
	Excited: {10749},
	Hyped:   {28, 12},
	Any:     {},
}

var labels = map[Category]struct{ ko, en string }{
	Happy:   {"행복해요", "Happy"},
	Blue:    {"우울해요", "Blue"},
	Excited: {"설레요", "Excited"},
	Hyped:   {"신나요", "Hyped"},
	Any:     {"아무거나", "Anything"},
}

// GenreIDs returns the TMDB genre ids for the mood. Any has none.
func (c Category) GenreIDs() []int {
	ids := genres[c]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Label is the localized display name of the mood.
func (c Category) Label(lang models.Language) string {
	l, ok := labels[c]
	if !ok {
		return string(c)
	}
	if lang.IsEnglish() {
		return l.en
	}
	return l.ko
}

// ParseCategory accepts a category token or any of its localized labels.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		l := labels[c]
		if strings.EqualFold(s, string(c)) || s == l.ko || strings.EqualFold(s, l.en) {
			return c, true
		}
	}
	return "", false
}

// AnswerSet maps a question id to the chosen option id.
type AnswerSet map[string]string

// Score is the summed weight per mood.
type Score map[Category]int

// Tally sums the weights of the chosen options. Missing answers and
// unknown option ids add nothing.
func Tally(answers AnswerSet, questions []Question) Score {
	score := make(Score, len(Categories))
	for _, c := range Categories {
		score[c] = 0
	}
	for _, q := range questions {
		opt, ok := findOption(q, answers[q.ID])
		if !ok {
			continue
		}
		for c, w := range opt.Weights {
			if _, known := score[c]; known {
				score[c] += w
			}
		}
	}
	return score
}

// Pick resolves a score to a single mood. The strictly highest score wins;
// on a tie a non-Any mood replaces Any, and a non-positive winner yields Any.
func Pick(score Score) Category {
	best := Any
	bestScore := math.MinInt
	for _, c := range Categories {
		s := score[c]
		if s > bestScore || (s == bestScore && best == Any && c != Any) {
			best = c
			bestScore = s
		}
	}
	if bestScore <= 0 {
		return Any
	}
	return best
}

// ComputeMood scores answers against questions and picks the mood.
func ComputeMood(answers AnswerSet, questions []Question) Category {
	return Pick(Tally(answers, questions))
}

// ValidateAnswer checks that optionID is one of questionID's options.
func ValidateAnswer(questions []Question, questionID, optionID string) error {
	for _, q := range questions {
		if q.ID != questionID {
			continue
		}
		if _, ok := findOption(q, optionID); !ok {
			return fmt.Errorf("%w: %s for question %s", ErrUnknownOption, optionID, questionID)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
}

// Validate checks that every question has a valid answer, in quiz order.
func Validate(answers AnswerSet, questions []Question) error {
	for _, q := range questions {
		optionID, ok := answers[q.ID]
		if !ok || optionID == "" {
			return &IncompleteError{QuestionID: q.ID}
		}
		if _, ok := findOption(q, optionID); !ok {
			return fmt.Errorf("%w: %s for question %s", ErrUnknownOption, optionID, q.ID)
		}
	}
	return nil
}

// Result is a resolved mood with its localized label and the score behind it.
type Result struct {
	Mood   Category `json:"mood"`
	Label  string   `json:"label"`
	Scores Score    `json:"scores"`
}

// Resolve validates a complete answer set and computes its mood.
func Resolve(answers AnswerSet, lang models.Language) (*Result, error) {
	questions := Questions(lang)
	if err := Validate(answers, questions); err != nil {
		return nil, err
	}
	score := Tally(answers, questions)
	m := Pick(score)
	return &Result{Mood: m, Label: m.Label(lang), Scores: score}, nil
}
