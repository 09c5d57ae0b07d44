package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"subtracker/internal/app/client"
	"subtracker/internal/domain/subscription"
)

const (
	formAppName = iota
	formCategory
	formPrice
	formCycle
	formNextBilling
	formNotes
	formFieldCount
)

var formLabels = [formFieldCount]string{"App name:", "Category:", "Price:", "Cycle:", "Next billing:", "Notes:"}

// FormModel adds a subscription, or edits one when id is set.
type FormModel struct {
	ctx     context.Context
	ctrl    Controller
	id      int
	inputs  [formFieldCount]string
	focused int
	loading bool
	err     error
}

func NewFormModel(ctx context.Context, ctrl Controller) *FormModel {
	return &FormModel{ctx: ctx, ctrl: ctrl}
}

// Reset prepares the form. id 0 means a new subscription.
func (m *FormModel) Reset(id int) {
	m.id = id
	m.inputs = [formFieldCount]string{}
	m.inputs[formCycle] = string(subscription.Monthly)
	m.focused = formAppName
	m.loading = false
	m.err = nil

	if s, ok := m.ctrl.Find(id); ok && id != 0 {
		m.inputs = formValues(s)
	}
}

func formValues(s subscription.Subscription) [formFieldCount]string {
	return [formFieldCount]string{
		formAppName:     s.AppName,
		formCategory:    s.Category,
		formPrice:       s.Price.String(),
		formCycle:       string(s.BillingCycle),
		formNextBilling: s.NextBilling.String(),
		formNotes:       s.Notes,
	}
}

// parseForm turns the raw inputs into fields. Every field is sent, as a full form submit does;
// empty required fields are left for the controller to report.
func parseForm(inputs [formFieldCount]string) (subscription.Fields, error) {
	var f subscription.Fields

	name := strings.TrimSpace(inputs[formAppName])
	category := strings.TrimSpace(inputs[formCategory])
	notes := strings.TrimSpace(inputs[formNotes])
	f.AppName, f.Category, f.Notes = &name, &category, &notes

	if raw := strings.TrimSpace(inputs[formPrice]); raw != "" {
		price, err := subscription.ParseMoney(strings.TrimPrefix(raw, "$"))
		if err != nil {
			return f, fmt.Errorf("%w: price must be a number", subscription.ErrInvalidInput)
		}
		f.Price = &price
	}

	if raw := strings.TrimSpace(inputs[formCycle]); raw != "" {
		cycle, err := subscription.ParseBillingCycle(strings.ToLower(raw))
		if err != nil {
			return f, fmt.Errorf("%w: %v", subscription.ErrInvalidInput, err)
		}
		f.BillingCycle = &cycle
	}

	if raw := strings.TrimSpace(inputs[formNextBilling]); raw != "" {
		next, err := subscription.ParseDate(raw)
		if err != nil {
			return f, fmt.Errorf("%w: next billing must look like YYYY-MM-DD", subscription.ErrInvalidInput)
		}
		f.NextBilling = &next
	}

	return f, nil
}

func (m *FormModel) Init() tea.Cmd {
	return nil
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.loading {
		return m, nil
	}

	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return closeFormMsg{} }
	case "tab", "down":
		m.focused = (m.focused + 1) % formFieldCount
	case "shift+tab", "up":
		m.focused = (m.focused + formFieldCount - 1) % formFieldCount
	case "enter":
		if m.focused < formFieldCount-1 {
			m.focused++
			return m, nil
		}
		return m, m.submit()
	case "ctrl+s":
		return m, m.submit()
	case "backspace":
		m.inputs[m.focused] = dropLast(m.inputs[m.focused])
	default:
		if m.focused == formCycle && (key.String() == "left" || key.String() == "right" || key.String() == " ") {
			m.toggleCycle()
			return m, nil
		}
		if key.Type == tea.KeyRunes || key.Type == tea.KeySpace {
			m.inputs[m.focused] += string(key.Runes)
		}
	}

	return m, nil
}

func (m *FormModel) toggleCycle() {
	if m.inputs[formCycle] == string(subscription.Monthly) {
		m.inputs[formCycle] = string(subscription.Yearly)
		return
	}
	m.inputs[formCycle] = string(subscription.Monthly)
}

func (m *FormModel) submit() tea.Cmd {
	f, err := parseForm(m.inputs)
	if err != nil {
		m.err = err
		return nil
	}

	m.loading = true
	m.err = nil
	ctx, ctrl, id := m.ctx, m.ctrl, m.id

	return func() tea.Msg {
		if id == 0 {
			return savedMsg{err: ctrl.Add(ctx, f)}
		}
		return savedMsg{err: ctrl.Update(ctx, id, f)}
	}
}

func (m *FormModel) View() string {
	var b strings.Builder

	title := "ADD SUBSCRIPTION"
	if m.id != 0 {
		title = "EDIT SUBSCRIPTION"
	}
	b.WriteString(center(TitleStyle.MarginTop(1).Render(title)))
	b.WriteString("\n\n")

	for i := 0; i < formFieldCount; i++ {
		style := InputStyle
		if i == m.focused {
			style = FocusedInputStyle
		}

		value := m.inputs[i]
		if i == formCycle {
			value = "‹ " + value + " ›"
		}

		field := lipgloss.JoinHorizontal(lipgloss.Center, LabelStyle.Render(formLabels[i]), style.Width(45).Render(value))
		b.WriteString(center(field))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(center(InfoStyle.Render("Saving...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(center(ErrorStyle.Render(client.UserMessage(m.err))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab next  •  ←/→ cycle  •  ctrl+s save  •  esc cancel")))

	return BoxStyle.Width(76).Render(b.String())
}
