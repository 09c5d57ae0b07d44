package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"subtracker/internal/app/client"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldName
)

// AuthModel is the sign-in screen. ctrl+s toggles between login and registration, ctrl+g enters guest mode.
type AuthModel struct {
	ctx      context.Context
	ctrl     Controller
	register bool
	inputs   [3]string
	focused  int
	loading  bool
	err      error
}

func NewAuthModel(ctx context.Context, ctrl Controller) *AuthModel {
	return &AuthModel{ctx: ctx, ctrl: ctrl}
}

func (m *AuthModel) Reset() {
	m.inputs[fieldPassword] = ""
	m.focused = fieldEmail
	m.loading = false
	m.err = nil
}

func (m *AuthModel) setErr(err error) {
	m.err = err
}

func (m *AuthModel) fieldCount() int {
	if m.register {
		return 3
	}
	return 2
}

func (m *AuthModel) Init() tea.Cmd {
	return nil
}

func (m *AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.loading {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		m.focused = (m.focused + 1) % m.fieldCount()
	case "shift+tab", "up":
		m.focused = (m.focused + m.fieldCount() - 1) % m.fieldCount()
	case "ctrl+s":
		m.register = !m.register
		m.focused = fieldEmail
		m.err = nil
	case "ctrl+g":
		m.loading = true
		m.err = nil
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg {
			return authDoneMsg{err: ctrl.EnterGuest(ctx)}
		}
	case "esc":
		return m, tea.Quit
	case "enter":
		return m, m.submit()
	case "backspace":
		m.inputs[m.focused] = dropLast(m.inputs[m.focused])
	case "ctrl+l":
		m.inputs = [3]string{}
		m.err = nil
	default:
		if key.Type == tea.KeyRunes || key.Type == tea.KeySpace {
			m.inputs[m.focused] += string(key.Runes)
		}
	}

	return m, nil
}

func (m *AuthModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.inputs[fieldEmail])
	password := m.inputs[fieldPassword]
	if email == "" || password == "" {
		m.err = fmt.Errorf("email and password are required")
		return nil
	}

	m.loading = true
	m.err = nil
	ctx, ctrl := m.ctx, m.ctrl

	if m.register {
		name := strings.TrimSpace(m.inputs[fieldName])
		return func() tea.Msg {
			return authDoneMsg{err: ctrl.Register(ctx, email, password, name)}
		}
	}

	return func() tea.Msg {
		return authDoneMsg{err: ctrl.Login(ctx, email, password)}
	}
}

func (m *AuthModel) View() string {
	var b strings.Builder

	title, subtitle := "LOGIN", "Welcome back! Sign in to sync your subscriptions."
	if m.register {
		title, subtitle = "REGISTER", "Create an account to keep subscriptions on the server."
	}

	b.WriteString(center(TitleStyle.MarginTop(1).Render(title)))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.MarginBottom(1).Render(subtitle)))
	b.WriteString("\n\n")

	labels := []string{"Email:", "Password:", "Name:"}
	for i := 0; i < m.fieldCount(); i++ {
		value := m.inputs[i]
		if i == fieldPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}

		style := InputStyle
		if i == m.focused {
			style = FocusedInputStyle
		}

		field := lipgloss.JoinHorizontal(lipgloss.Center, LabelStyle.Render(labels[i]), style.Width(45).Render(value))
		b.WriteString(center(field))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(center(InfoStyle.Render("Working...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(center(ErrorStyle.Render(client.UserMessage(m.err))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter submit  •  ctrl+s login/register  •  ctrl+g guest  •  esc quit")))

	return BoxStyle.Width(76).Render(b.String())
}
