package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/questiongen"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/screens/generate"
	"github.com/abhisek/geoquiz/internal/screens/play"
	"github.com/abhisek/geoquiz/internal/screens/sets"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/abhisek/geoquiz/internal/ui/components"
)

// storedCountMsg carries the number of sets in the store.
type storedCountMsg struct {
	count int
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu        components.Menu
	setRepo     store.SetRepo
	generator   questiongen.Generator
	defaultSet  *questionbank.Set
	storedCount int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. Either dependency may be nil: without a set repo
// only the built-in set is listed, and without a generator the GENERATE SET
// item is disabled.
func New(setRepo store.SetRepo, generator questiongen.Generator) *HomeScreen {
	h := &HomeScreen{
		setRepo:    setRepo,
		generator:  generator,
		defaultSet: questionbank.Default(),
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: h.startDefault},
		{Label: "QUESTION SETS", Action: func() tea.Cmd {
			return router.Push(sets.New(setRepo))
		}},
		{Label: "GENERATE SET", Disabled: generator == nil, Action: func() tea.Cmd {
			return router.Push(generate.New(generator, setRepo))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) startDefault() tea.Cmd {
	s, err := play.NewFromSet(h.defaultSet)
	if err != nil {
		// The embedded set is validated by tests; nothing to show here.
		return nil
	}
	return router.Push(s)
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.countStored
}

func (h *HomeScreen) Resume() tea.Cmd {
	return h.countStored
}

func (h *HomeScreen) countStored() tea.Msg {
	if h.setRepo == nil {
		return storedCountMsg{}
	}
	infos, err := h.setRepo.List(context.Background())
	if err != nil {
		return storedCountMsg{}
	}
	return storedCountMsg{count: len(infos)}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(storedCountMsg); ok {
		h.storedCount = msg.count
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal size.
	compact := height+8 < 30 || width < 80
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderGlobe(cw))
	}
	sections = append(sections,
		renderStatsBar(h.storedCount+1, len(h.defaultSet.Questions), cw),
		h.menu.View(),
	)
	if h.generator == nil {
		sections = append(sections, renderLLMBanner(cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
