// Package play holds the quiz and results screens. Both work on the same
// *quiz.Engine, so restarting from the results screen reuses the session
// owner instead of building a new one.
package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/quiz"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/ui/components"
	"github.com/abhisek/geoquiz/internal/ui/layout"
	"github.com/abhisek/geoquiz/internal/ui/theme"
)

const (
	focusTrue = iota
	focusFalse
)

// QuizScreen presents one question at a time from an engine.
type QuizScreen struct {
	engine  *quiz.Engine
	setName string
	focus   int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// NewQuiz creates a QuizScreen over engine. setName is shown in the title.
func NewQuiz(engine *quiz.Engine, setName string) *QuizScreen {
	return &QuizScreen{engine: engine, setName: setName}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	if s.setName == "" {
		return "Quiz"
	}
	return "Quiz: " + s.setName
}

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("Q %d/%d  ✓ %d", s.engine.CurrentIndex()+1, s.engine.QuestionCount(), s.engine.Score())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.engine.IsAnswered() {
		return []layout.KeyHint{
			{Key: "n/Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "t", Description: "True"},
		{Key: "f", Description: "False"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.engine.IsComplete() {
		return s, nil
	}

	if s.engine.IsAnswered() {
		switch kmsg.String() {
		case "n", "enter", "space":
			s.engine.Advance()
		}
	} else {
		switch kmsg.String() {
		case "t":
			s.engine.SubmitAnswer(true)
		case "f":
			s.engine.SubmitAnswer(false)
		case "left", "h", "right", "l", "tab":
			s.focus = 1 - s.focus
		case "enter", "space":
			s.engine.SubmitAnswer(s.focus == focusTrue)
		}
	}

	if s.engine.IsComplete() {
		return s, router.Replace(NewResults(s.engine, s.setName))
	}
	if !s.engine.IsAnswered() {
		s.focus = focusTrue
	}
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	idx := s.engine.CurrentIndex()
	total := s.engine.QuestionCount()

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", idx+1, total),
		float64(s.engine.AnsweredCount())/float64(total),
		false,
		cw,
	).View()

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw - 6).
		Align(lipgloss.Center).
		Render(s.engine.CurrentQuestion().Text)

	sections := []string{
		progress,
		components.Card(question, cw, nil),
	}

	if s.engine.IsAnswered() {
		sections = append(sections, s.renderFeedback(), components.Button{Label: "NEXT ▸", Focused: true}.View())
	} else {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("True or false?"),
			components.ButtonRow(
				components.Button{Label: "TRUE", Focused: s.focus == focusTrue},
				components.Button{Label: "FALSE", Focused: s.focus == focusFalse},
			))
	}

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (s *QuizScreen) renderFeedback() string {
	q := s.engine.CurrentQuestion()
	given := s.engine.Answers()[s.engine.CurrentIndex()]
	if given != nil && *given == q.Answer {
		return theme.Correct.Render("✓ Correct!")
	}
	return theme.Incorrect.Render(fmt.Sprintf("✗ Not quite. The statement is %s.", answerWord(q.Answer)))
}

func answerWord(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// NewFromSet starts a fresh engine over set and returns the quiz screen
// for it.
func NewFromSet(set *questionbank.Set) (*QuizScreen, error) {
	engine, err := quiz.New(set.Questions)
	if err != nil {
		return nil, fmt.Errorf("start quiz %q: %w", set.Name, err)
	}
	return NewQuiz(engine, set.Name), nil
}
