package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// ContentWidth returns the width used for cards inside a frame of the
// given width, capped so text stays readable on wide terminals.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Card wraps content in a rounded-border card of width cw. A nil border
// color uses the theme default.
func Card(content string, cw int, border color.Color) string {
	if border == nil {
		border = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Center places content horizontally and vertically in the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
