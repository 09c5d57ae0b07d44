package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type ConfirmModel struct {
	question string
}

func NewConfirmModel() *ConfirmModel {
	return &ConfirmModel{}
}

func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(key.String()) {
	case "y", "enter":
		return m, answer(true)
	case "n", "esc":
		return m, answer(false)
	}

	return m, nil
}

func answer(yes bool) tea.Cmd {
	return func() tea.Msg {
		return confirmMsg{yes: yes}
	}
}

func (m *ConfirmModel) View() string {
	var b strings.Builder

	for _, line := range strings.Split(m.question, "\n") {
		b.WriteString(center(lineStyle(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("y / enter yes  •  n / esc no")))

	return BoxStyle.Width(76).BorderForeground(Warning).Render(b.String())
}

func lineStyle(s string) string {
	return TitleStyle.Foreground(Warning).Render(s)
}
