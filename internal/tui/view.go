package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/progressbar/internal/render"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render(m.title)
	if m.state.RecordID != "" {
		header += " " + recordStyle.Render(fmt.Sprintf("(%s)", m.state.RecordID))
	} else if !m.state.Bound {
		header += " " + recordStyle.Render("(unbound)")
	}

	bar := render.Terminal(render.Build(m.state, m.cfg), render.TerminalOptions{Width: m.width, Phase: m.phase})

	return lipgloss.JoinVertical(lipgloss.Left, header, barStyle.Render(bar), helpStyle.Render(m.help.View(m.keys)))
}
