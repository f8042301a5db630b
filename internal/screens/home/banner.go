package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/ui/theme"
)

const titleFull = `  ██████╗ ███████╗ ██████╗  ██████╗ ██╗   ██╗██╗███████╗
 ██╔════╝ ██╔════╝██╔═══██╗██╔═══██╗██║   ██║██║╚══███╔╝
 ██║  ███╗█████╗  ██║   ██║██║   ██║██║   ██║██║  ███╔╝
 ██║   ██║██╔══╝  ██║   ██║██║▄▄ ██║██║   ██║██║ ███╔╝
 ╚██████╔╝███████╗╚██████╔╝╚██████╔╝╚██████╔╝██║███████╗
  ╚═════╝ ╚══════╝ ╚═════╝  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const titleCompact = "G · E · O · Q · U · I · Z"

const globe = `   .-'''-.
  / ~~  ~ \
 | ~  ~~~  |
  \ ~~ ~  /
   '-...-'`

// renderTitle returns the block-letter title, or a one-line version when
// space is short.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	art := titleFull
	if compact || lipgloss.Width(titleFull) > cw {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

func renderGlobe(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Primary).
		Width(cw).
		Align(lipgloss.Center).
		Render(globe)
}

// renderStatsBar shows how many sets and built-in questions are available.
func renderStatsBar(sets, questions, cw int) string {
	setStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	qStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	stats := fmt.Sprintf("%s  %s",
		setStyle.Render(fmt.Sprintf("◆ %d SETS", sets)),
		qStyle.Render(fmt.Sprintf("✓ %d QUESTIONS IN DEFAULT SET", questions)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLLMBanner is shown when question generation is unavailable.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to generate new sets (see geoquiz --help)")
}

// renderFrame wraps content in a double border filling the whole area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
