// Package screen defines the contract between the router and the
// individual TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geoquiz/internal/ui/layout"
)

// Screen is one page of the application.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen put a short status, such as the running
// score, on the right side of the header.
type StatusProvider interface {
	Status() string
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// BackHandler lets a screen decide what Esc does instead of the default pop.
type BackHandler interface {
	Back() tea.Cmd
}
