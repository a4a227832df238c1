package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.state = msg.State
		return m, nil
	case frameMsg:
		m.phase++
		return m, m.frame()
	case tea.WindowSizeMsg:
		m.width = m.maxWidth
		if avail := msg.Width - 4; avail > 0 && avail < m.width {
			m.width = avail
		}
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Click):
			return m.startClick()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.startClick()
		}
	}

	return m, nil
}

func (m Model) startClick() (tea.Model, tea.Cmd) {
	if !m.cfg.OnClick.Enabled() || !m.state.ShowBar() {
		return m, nil
	}
	m.clicks++
	return m, m.click()
}
