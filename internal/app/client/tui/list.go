package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"subtracker/internal/app/client"
)

// ListModel shows one card per subscription and the totals underneath.
type ListModel struct {
	ctx           context.Context
	ctrl          Controller
	now           func() time.Time
	cursor        int
	loading       bool
	pendingDelete int
	flash         string
	err           error
}

func NewListModel(ctx context.Context, ctrl Controller) *ListModel {
	return &ListModel{ctx: ctx, ctrl: ctrl, now: time.Now}
}

func (m *ListModel) setErr(err error) {
	m.err = err
}

func (m *ListModel) clampCursor() {
	n := len(m.ctrl.Cards(m.now()))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ListModel) selected() (client.Card, bool) {
	cards := m.ctrl.Cards(m.now())
	if m.cursor < 0 || m.cursor >= len(cards) {
		return client.Card{}, false
	}

	return cards[m.cursor], true
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.loading {
		return m, nil
	}

	if m.pendingDelete != 0 {
		id := m.pendingDelete
		m.pendingDelete = 0
		if key.String() != "y" {
			return m, nil
		}
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg {
			return deletedMsg{err: ctrl.Delete(ctx, id)}
		}
	}

	m.flash = ""
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "a", "n":
		return m, func() tea.Msg { return openFormMsg{} }
	case "e", "enter":
		if card, ok := m.selected(); ok {
			return m, func() tea.Msg { return openFormMsg{id: card.ID} }
		}
	case "d", "x":
		if card, ok := m.selected(); ok {
			m.pendingDelete = card.ID
		}
	case "r":
		m.loading = true
		m.err = nil
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg {
			return loadedMsg{err: ctrl.Load(ctx)}
		}
	case "L":
		return m, func() tea.Msg { return logoutMsg{} }
	case "q":
		return m, tea.Quit
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	b.WriteString(center(TitleStyle.MarginTop(1).Render("YOUR SUBSCRIPTIONS")))
	b.WriteString("\n\n")

	cards := m.ctrl.Cards(m.now())
	switch {
	case m.loading:
		b.WriteString(center(InfoStyle.Render("Loading...")))
		b.WriteString("\n")
	case len(cards) == 0:
		b.WriteString(center(InfoStyle.Render("No subscriptions yet. Press a to add your first one!")))
		b.WriteString("\n")
	default:
		for i, card := range cards {
			b.WriteString(center(renderCard(card, i == m.cursor)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center(m.totals()))
	b.WriteString("\n")

	switch {
	case m.pendingDelete != 0:
		b.WriteString(center(ErrorStyle.Render("Are you sure you want to delete this subscription? (y/n)")))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(center(ErrorStyle.Render(client.UserMessage(m.err))))
		b.WriteString("\n")
	case m.flash != "":
		b.WriteString(center(SuccessStyle.Render(m.flash)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("↑/↓ move  •  a add  •  e edit  •  d delete  •  r refresh  •  L logout  •  q quit")))

	return BoxStyle.Width(76).Render(b.String())
}

func (m *ListModel) totals() string {
	st := m.ctrl.Stats()

	monthly := StatsStyle.Render("Monthly: $" + st.MonthlyTotal.Format())
	yearly := StatsStyle.Render("Yearly: $" + st.YearlyTotal.Format())
	count := InfoStyle.Render(fmt.Sprintf("%d subscriptions", st.Count))

	return lipgloss.JoinHorizontal(lipgloss.Center, monthly, yearly, count)
}

func renderCard(c client.Card, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}

	name := lipgloss.NewStyle().Foreground(Text).Bold(true).Render(c.AppName)
	category := lipgloss.NewStyle().Foreground(Secondary).Render(" [" + c.Category + "]")

	price := PriceStyle.Render("$"+c.Price.Format()) + InfoStyle.Render(" "+string(c.BillingCycle))
	next := lipgloss.NewStyle().Foreground(Text).Render("Next: "+c.NextBillingLabel()) +
		InfoStyle.Render(" ("+c.DueLabel()+")")
	yearly := lipgloss.NewStyle().Foreground(Warning).Render("Yearly: $" + c.YearlyCost.Format())

	lines := []string{
		name + category,
		price + "   " + next,
		yearly,
	}
	if c.Notes != "" {
		lines = append(lines, InfoStyle.Render("Notes: "+c.Notes))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
