// Package sets lists the question sets available to play.
package sets

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/screens/play"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/abhisek/geoquiz/internal/ui/components"
	"github.com/abhisek/geoquiz/internal/ui/layout"
	"github.com/abhisek/geoquiz/internal/ui/theme"
)

type setsLoadedMsg struct {
	Infos []store.SetInfo
	Err   error
}

type setReadyMsg struct {
	Set     *questionbank.Set
	Shuffle bool
	Err     error
}

type setDeletedMsg struct {
	Name string
	Err  error
}

// SetsScreen lists the built-in set followed by every stored set.
type SetsScreen struct {
	setRepo  store.SetRepo
	builtin  *questionbank.Set
	entries  []store.SetInfo
	selected int
	loaded   bool
	errMsg   string
	// confirm is the name of a set awaiting delete confirmation.
	confirm string
}

var _ screen.Screen = (*SetsScreen)(nil)
var _ screen.KeyHintProvider = (*SetsScreen)(nil)
var _ screen.Resumer = (*SetsScreen)(nil)

// New creates a SetsScreen. setRepo may be nil, in which case only the
// built-in set is shown.
func New(setRepo store.SetRepo) *SetsScreen {
	builtin := questionbank.Default()
	return &SetsScreen{
		setRepo: setRepo,
		builtin: builtin,
		entries: []store.SetInfo{builtinInfo(builtin)},
	}
}

func builtinInfo(s *questionbank.Set) store.SetInfo {
	return store.SetInfo{
		Name:          s.Name,
		Description:   s.Description,
		Source:        questionbank.SourceBuiltin,
		QuestionCount: len(s.Questions),
	}
}

func (s *SetsScreen) Init() tea.Cmd {
	return s.load
}

func (s *SetsScreen) Resume() tea.Cmd {
	return s.load
}

func (s *SetsScreen) load() tea.Msg {
	if s.setRepo == nil {
		return setsLoadedMsg{}
	}
	infos, err := s.setRepo.List(context.Background())
	return setsLoadedMsg{Infos: infos, Err: err}
}

func (s *SetsScreen) Title() string {
	return "Question Sets"
}

func (s *SetsScreen) KeyHints() []layout.KeyHint {
	if s.confirm != "" {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "n", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play"},
		{Key: "s", Description: "Play shuffled"},
		{Key: "d", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.entries = append([]store.SetInfo{builtinInfo(s.builtin)}, msg.Infos...)
		s.selected = min(s.selected, len(s.entries)-1)
		return s, nil

	case setReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		set := msg.Set
		if msg.Shuffle {
			set = questionbank.Shuffle(set, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		}
		qs, err := play.NewFromSet(set)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, router.Push(qs)

	case setDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.load

	case tea.KeyMsg:
		if s.confirm != "" {
			name := s.confirm
			s.confirm = ""
			if msg.String() == "y" {
				return s, s.delete(name)
			}
			return s, nil
		}

		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			return s, s.open(s.entries[s.selected], false)
		case "s":
			return s, s.open(s.entries[s.selected], true)
		case "d":
			if e := s.entries[s.selected]; e.Source != questionbank.SourceBuiltin {
				s.confirm = e.Name
			}
		}
	}
	return s, nil
}

// open fetches the full set for info and reports it with setReadyMsg.
func (s *SetsScreen) open(info store.SetInfo, shuffle bool) tea.Cmd {
	if info.Source == questionbank.SourceBuiltin {
		set := s.builtin
		return func() tea.Msg { return setReadyMsg{Set: set, Shuffle: shuffle} }
	}
	repo := s.setRepo
	return func() tea.Msg {
		set, err := repo.Get(context.Background(), info.Name)
		if err != nil {
			return setReadyMsg{Err: fmt.Errorf("load set %q: %w", info.Name, err)}
		}
		return setReadyMsg{Set: set, Shuffle: shuffle}
	}
}

func (s *SetsScreen) delete(name string) tea.Cmd {
	repo := s.setRepo
	return func() tea.Msg {
		return setDeletedMsg{Name: name, Err: repo.Delete(context.Background(), name)}
	}
}

func (s *SetsScreen) View(width, height int) string {
	if !s.loaded && s.setRepo != nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading question sets...")
	}

	cw := components.ContentWidth(width)
	var rows []string
	for i, e := range s.entries {
		rows = append(rows, renderRow(e, i == s.selected, cw))
	}

	sections := []string{strings.Join(rows, "\n")}
	if s.confirm != "" {
		sections = append(sections, theme.Incorrect.Render(fmt.Sprintf("Delete %q? (y/n)", s.confirm)))
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(strings.Join(sections, "\n\n"))
}

func renderRow(e store.SetInfo, selected bool, cw int) string {
	prefix := "  "
	nameStyle := theme.Unselected
	if selected {
		prefix = "▸ "
		nameStyle = theme.Selected
	}

	tag := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d questions · %s", e.QuestionCount, e.Source))
	line := prefix + nameStyle.Render(e.Name) + "  " + tag

	if e.Description != "" && selected {
		desc := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Width(cw).
			PaddingLeft(4).
			Render(e.Description)
		line += "\n" + desc
	}
	return line
}
