// Package generate is the screen for creating a question set with an LLM.
package generate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/questiongen"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/screens/play"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/abhisek/geoquiz/internal/ui/components"
	"github.com/abhisek/geoquiz/internal/ui/layout"
	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// DefaultCount is the pre-filled number of statements.
const DefaultCount = 10

type phase int

const (
	phaseInput phase = iota
	phaseGenerating
	phaseDone
)

const (
	fieldTopic = iota
	fieldCount
)

// generatedMsg reports the outcome of a generation run. Saved is false when
// there is no store or saving failed. AvoidErr is set when stored sets could
// not be read for the avoid list; the run still goes ahead.
type generatedMsg struct {
	Set      *questionbank.Set
	Saved    bool
	SaveErr  error
	AvoidErr error
	Err      error
}

// GenerateScreen collects a topic and count, runs the generator in the
// background and offers to play the result.
type GenerateScreen struct {
	generator questiongen.Generator
	setRepo   store.SetRepo

	topic components.TextInput
	count components.TextInput
	field int

	phase  phase
	cancel context.CancelFunc
	set    *questionbank.Set
	saved  bool
	errMsg string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)
var _ screen.BackHandler = (*GenerateScreen)(nil)

// New creates a GenerateScreen. setRepo may be nil, in which case the set
// is only kept in memory.
func New(generator questiongen.Generator, setRepo store.SetRepo) *GenerateScreen {
	count := components.NewTextInput("10", true, 2)
	count.SetValue(strconv.Itoa(DefaultCount))
	count.Blur()

	return &GenerateScreen{
		generator: generator,
		setRepo:   setRepo,
		topic:     components.NewTextInput("e.g. rivers of Africa", false, 80),
		count:     count,
	}
}

func (s *GenerateScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *GenerateScreen) Title() string {
	return "Generate Set"
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseDone:
		if s.set != nil {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Play"},
				{Key: "Esc", Description: "Back"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Edit"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Back cancels a running generation and returns to the form. Otherwise it
// leaves the screen.
func (s *GenerateScreen) Back() tea.Cmd {
	if s.phase == phaseGenerating {
		s.cancel()
		s.cancel = nil
		s.phase = phaseInput
		s.errMsg = "Generation cancelled."
		return nil
	}
	return router.Pop
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if s.phase != phaseGenerating {
			// Result of a cancelled run.
			return s, nil
		}
		s.cancel()
		s.cancel = nil
		s.phase = phaseDone
		s.set = msg.Set
		s.saved = msg.Saved
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		var problems []string
		if msg.AvoidErr != nil {
			problems = append(problems, "Stored sets unavailable, statements may repeat: "+msg.AvoidErr.Error())
		}
		if msg.SaveErr != nil {
			problems = append(problems, "Not saved: "+msg.SaveErr.Error())
		}
		s.errMsg = strings.Join(problems, "\n")
		return s, nil

	case tea.KeyMsg:
		switch s.phase {
		case phaseGenerating:
			return s, nil
		case phaseDone:
			return s, s.updateDone(msg)
		}
		return s, s.updateInput(msg)
	}

	if s.phase == phaseInput {
		return s, s.forward(msg)
	}
	return s, nil
}

func (s *GenerateScreen) updateDone(msg tea.KeyMsg) tea.Cmd {
	if msg.String() != "enter" {
		return nil
	}
	if s.set == nil {
		s.phase = phaseInput
		return s.focus(fieldTopic)
	}
	qs, err := play.NewFromSet(s.set)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return router.Replace(qs)
}

func (s *GenerateScreen) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		return s.focus((s.field + 1) % 2)
	case "enter":
		if s.field == fieldTopic && strings.TrimSpace(s.topic.Value()) != "" {
			return s.focus(fieldCount)
		}
		return s.start()
	}
	return s.forward(msg)
}

func (s *GenerateScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.field == fieldTopic {
		s.topic, cmd = s.topic.Update(msg)
	} else {
		s.count, cmd = s.count.Update(msg)
	}
	return cmd
}

func (s *GenerateScreen) focus(field int) tea.Cmd {
	s.field = field
	if field == fieldTopic {
		s.count.Blur()
		return s.topic.Focus()
	}
	s.topic.Blur()
	return s.count.Focus()
}

// start validates the form and launches generation.
func (s *GenerateScreen) start() tea.Cmd {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.errMsg = "Enter a topic first."
		return s.focus(fieldTopic)
	}
	count, err := s.count.NumericValue()
	if err != nil || count < questiongen.MinCount || count > questiongen.MaxCount {
		s.errMsg = fmt.Sprintf("Count must be between %d and %d.", questiongen.MinCount, questiongen.MaxCount)
		return s.focus(fieldCount)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.phase = phaseGenerating
	s.errMsg = ""

	generator, repo := s.generator, s.setRepo
	return func() tea.Msg {
		return runGeneration(ctx, generator, repo, questiongen.Input{Topic: topic, Count: count})
	}
}

func runGeneration(ctx context.Context, generator questiongen.Generator, repo store.SetRepo, input questiongen.Input) generatedMsg {
	// On error avoid holds what was collected so far.
	avoid, avoidErr := questiongen.CollectAvoid(ctx, repo)
	input.Avoid = avoid

	set, err := generator.Generate(ctx, input)
	if err != nil {
		return generatedMsg{Err: fmt.Errorf("generate: %w", err)}
	}
	msg := generatedMsg{Set: set, AvoidErr: avoidErr}
	if repo == nil {
		return msg
	}
	if err := questiongen.SaveUnique(ctx, repo, set); err != nil {
		msg.SaveErr = err
		return msg
	}
	msg.Saved = true
	return msg
}

func (s *GenerateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	switch s.phase {
	case phaseInput:
		sections = append(sections,
			theme.Title.Render("Create a new question set"),
			renderField("Topic", s.topic.View(), s.field == fieldTopic),
			renderField(fmt.Sprintf("Statements (%d-%d)", questiongen.MinCount, questiongen.MaxCount),
				s.count.View(), s.field == fieldCount),
		)
	case phaseGenerating:
		sections = append(sections,
			theme.Title.Render("Generating…"),
			theme.Hint.Render(fmt.Sprintf("Asking the model for %s statements about %q",
				s.count.Value(), strings.TrimSpace(s.topic.Value()))),
		)
	case phaseDone:
		if s.set != nil {
			sections = append(sections, renderSummary(s.set, s.saved, cw))
		}
	}

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Align(lipgloss.Center).
			Render(s.errMsg))
	}

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func renderField(label, input string, focused bool) string {
	style := theme.Unselected
	if focused {
		style = theme.Selected
	}
	return style.Render(label) + "\n" + input
}

func renderSummary(set *questionbank.Set, saved bool, cw int) string {
	trueCount, falseCount := set.Counts()
	lines := []string{
		theme.Correct.Render("✓ " + set.Name),
		theme.Body.Render(set.Description),
		theme.Hint.Render(fmt.Sprintf("%d statements · %d true · %d false", len(set.Questions), trueCount, falseCount)),
	}
	if saved {
		lines = append(lines, theme.Hint.Render("Saved to your question sets."))
	}
	lines = append(lines, "", components.Button{Label: "PLAY ▸", Focused: true}.View())
	return components.Card(strings.Join(lines, "\n"), cw, theme.Secondary)
}
