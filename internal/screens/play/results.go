package play

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/geoquiz/internal/quiz"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/ui/components"
	"github.com/abhisek/geoquiz/internal/ui/layout"
	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// ResultsScreen shows the final score and a per-question review.
type ResultsScreen struct {
	engine  *quiz.Engine
	setName string
	result  quiz.Result
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.BackHandler = (*ResultsScreen)(nil)

// NewResults creates a ResultsScreen for a finished engine.
func NewResults(engine *quiz.Engine, setName string) *ResultsScreen {
	return &ResultsScreen{
		engine:  engine,
		setName: setName,
		result:  quiz.BuildResult(engine),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Restart"},
		{Key: "Esc", Description: "Home"},
	}
}

// Back returns to the home screen rather than the screen the quiz was
// started from.
func (s *ResultsScreen) Back() tea.Cmd {
	return router.PopToRoot
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r":
			s.engine.Restart()
			return s, router.Replace(NewQuiz(s.engine, s.setName))
		case "enter":
			return s, s.Back()
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)

	var accent color.Color = theme.Secondary
	switch r.Grade {
	case quiz.GradePerfect:
		accent = theme.Accent
	case quiz.GradeKeepPracticing:
		accent = theme.Error
	}

	score := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Render(fmt.Sprintf("%d / %d", r.Score, r.Total))
	percent := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%.0f%% correct · best streak %d", r.Percent, r.BestStreak))
	message := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(r.Message())

	summary := components.Card(score+"\n"+percent+"\n\n"+message, cw, accent)

	// Review rows take whatever height the summary leaves.
	budget := height - lipgloss.Height(summary) - 6
	review := renderReview(r.Review, cw, budget)

	hint := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Press r to play again")

	return components.Center(strings.Join([]string{summary, review, hint}, "\n\n"), width, height)
}

// renderReview lists each statement with a mark, truncated to maxRows lines.
func renderReview(rows []quiz.QuestionReview, cw, maxRows int) string {
	if maxRows <= 0 {
		return ""
	}

	textWidth := max(cw-4, 10)
	var lines []string
	for i, row := range rows {
		if len(lines) == maxRows-1 && i < len(rows)-1 {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("  … %d more", len(rows)-i)))
			break
		}
		mark := theme.Correct.Render("✓")
		if !row.IsRight() {
			mark = theme.Incorrect.Render("✗")
		}
		text := ansi.Truncate(row.Text, textWidth, "…")
		lines = append(lines, mark+" "+lipgloss.NewStyle().Foreground(theme.Text).Render(text))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}
