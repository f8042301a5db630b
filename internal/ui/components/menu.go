package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu that skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.next(-1)
	case "down", "j":
		m.Selected = m.next(+1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// next returns the closest enabled index in direction dir, or the current
// selection when there is none.
func (m Menu) next(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the menu as a column of buttons of equal width.
func (m Menu) View() string {
	width := 0
	for _, item := range m.Items {
		width = max(width, lipgloss.Width(item.Label)+4)
	}

	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		style := theme.ButtonInactive
		label := item.Label
		switch {
		case item.Disabled:
			style = theme.ButtonDisabled
		case i == m.Selected:
			style = theme.ButtonActive
			label = "▸ " + label
		}
		buttons[i] = style.Width(width).Align(lipgloss.Center).Render(label)
	}
	return strings.Join(buttons, "\n")
}
