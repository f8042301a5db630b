package questionbank

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/geoquiz/internal/quiz"
)

// Source values describe where a set came from.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceLLM     = "llm"
)

// DefaultSetName is the name of the embedded set.
const DefaultSetName = "geography"

var (
	ErrEmptyName      = errors.New("question set name is required")
	ErrNoQuestions    = errors.New("question set has no questions")
	ErrEmptyStatement = errors.New("question text is empty")
)

//go:embed default.yaml
var defaultSetYAML []byte

// Set is a named, ordered collection of true/false questions.
type Set struct {
	ID          string
	Name        string
	Description string
	Source      string
	Questions   []quiz.Question
	CreatedAt   time.Time
}

// DuplicateError reports two questions with the same statement.
type DuplicateError struct {
	First, Second int
	Text          string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("questions %d and %d are duplicates: %q", e.First+1, e.Second+1, e.Text)
}

// Default returns the built-in geography set.
func Default() *Set {
	set, err := Parse(defaultSetYAML, FormatYAML)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("questionbank: embedded default set is invalid: %v", err))
	}
	set.ID = DefaultSetName
	set.Source = SourceBuiltin
	return set
}

// Validate checks the structural rules every playable set must satisfy.
func Validate(s *Set) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if len(s.Questions) == 0 {
		return ErrNoQuestions
	}
	seen := make(map[string]int, len(s.Questions))
	for i, q := range s.Questions {
		key := NormalizeStatement(q.Text)
		if key == "" {
			return fmt.Errorf("question %d: %w", i+1, ErrEmptyStatement)
		}
		if j, ok := seen[key]; ok {
			return &DuplicateError{First: j, Second: i, Text: q.Text}
		}
		seen[key] = i
	}
	return nil
}

// NormalizeStatement lowercases text and collapses whitespace so that
// trivially different statements compare equal.
func NormalizeStatement(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Shuffle returns a copy of s with its questions in random order.
func Shuffle(s *Set, r *rand.Rand) *Set {
	out := *s
	out.Questions = append([]quiz.Question(nil), s.Questions...)
	r.Shuffle(len(out.Questions), func(i, j int) {
		out.Questions[i], out.Questions[j] = out.Questions[j], out.Questions[i]
	})
	return &out
}

// Counts returns how many statements are true and how many are false.
func (s *Set) Counts() (trueCount, falseCount int) {
	for _, q := range s.Questions {
		if q.Answer {
			trueCount++
		} else {
			falseCount++
		}
	}
	return trueCount, falseCount
}
