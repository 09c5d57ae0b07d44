// Package tui is the interactive terminal front-end of the client controller.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"subtracker/internal/app/client"
	"subtracker/internal/domain/subscription"
)

// Controller is what the screens need from client.Controller.
type Controller interface {
	State() client.State
	Profile() (client.Profile, bool)
	Restore(ctx context.Context) error
	Register(ctx context.Context, email, password, name string) error
	Login(ctx context.Context, email, password string) error
	EnterGuest(ctx context.Context) error
	Logout() error
	Load(ctx context.Context) error
	Add(ctx context.Context, f subscription.Fields) error
	Update(ctx context.Context, id int, f subscription.Fields) error
	Delete(ctx context.Context, id int) error
	Find(id int) (subscription.Subscription, bool)
	Cards(now time.Time) []client.Card
	Stats() subscription.Stats
}

var _ Controller = (*client.Controller)(nil)

type View int

const (
	AuthView View = iota
	ListView
	FormView
	ConfirmView
)

type (
	openFormMsg  struct{ id int }
	closeFormMsg struct{}
	logoutMsg    struct{}
	confirmMsg   struct{ yes bool }
)

type Model struct {
	ctx     context.Context
	ctrl    Controller
	view    View
	auth    *AuthModel
	list    *ListModel
	form    *FormModel
	confirm *ConfirmModel
	width   int
	height  int
}

func NewModel(ctx context.Context, ctrl Controller) Model {
	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		view:    AuthView,
		auth:    NewAuthModel(ctx, ctrl),
		list:    NewListModel(ctx, ctrl),
		form:    NewFormModel(ctx, ctrl),
		confirm: NewConfirmModel(),
	}
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, ctrl Controller) error {
	_, err := tea.NewProgram(NewModel(ctx, ctrl), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Restore(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case authDoneMsg:
		m.auth.loading = false
		return m.afterLoad(msg.err, m.auth.setErr)

	case loadedMsg:
		m.list.loading = false
		return m.afterLoad(msg.err, m.list.setErr)

	case savedMsg:
		m.form.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, client.ErrSessionExpired) {
				return m.toAuth(msg.err), nil
			}
			m.form.err = msg.err
			return m, nil
		}
		m.list.flash = "Saved"
		m.view = ListView
		return m, nil

	case deletedMsg:
		if errors.Is(msg.err, client.ErrSessionExpired) {
			return m.toAuth(msg.err), nil
		}
		m.list.err = msg.err
		if msg.err == nil {
			m.list.flash = "Deleted"
		}
		m.list.clampCursor()
		return m, nil

	case openFormMsg:
		m.form.Reset(msg.id)
		m.view = FormView
		return m, nil

	case closeFormMsg:
		m.view = ListView
		return m, nil

	case logoutMsg:
		err := m.ctrl.Logout()
		return m.toAuth(err), nil

	case confirmMsg:
		if !msg.yes {
			m.list.err = client.ErrNetwork
			m.view = ListView
			return m, nil
		}
		m.view = AuthView
		m.auth.loading = true
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg {
			return authDoneMsg{err: ctrl.EnterGuest(ctx)}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case AuthView:
		_, cmd = m.auth.Update(msg)
	case ListView:
		_, cmd = m.list.Update(msg)
	case FormView:
		_, cmd = m.form.Update(msg)
	case ConfirmView:
		_, cmd = m.confirm.Update(msg)
	}

	return m, cmd
}

// afterLoad picks the next screen once the controller finished a sign-in or a reload.
func (m Model) afterLoad(err error, report func(error)) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		return m.toAuth(err), nil
	case errors.Is(err, client.ErrNetwork) && m.ctrl.State() == client.StateRemote:
		m.confirm.question = "Cannot reach the server. Continue in guest mode?\nGuest data stays on this device only."
		m.view = ConfirmView
		return m, nil
	}

	if m.ctrl.State() == client.StateUnauthenticated {
		m.view = AuthView
		m.auth.setErr(err)
		return m, nil
	}

	report(err)
	m.view = ListView
	m.list.clampCursor()

	return m, nil
}

func (m Model) toAuth(err error) Model {
	m.view = AuthView
	m.auth.Reset()
	m.auth.setErr(err)
	return m
}

func (m Model) View() string {
	var content string
	switch m.view {
	case AuthView:
		content = m.auth.View()
	case ListView:
		content = m.list.View()
	case FormView:
		content = m.form.View()
	case ConfirmView:
		content = m.confirm.View()
	}

	if m.view == AuthView {
		return content
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.statusBar(), content)
}

func (m Model) statusBar() string {
	var who string
	switch m.ctrl.State() {
	case client.StateGuest:
		who = lipgloss.NewStyle().Foreground(Warning).Render("guest mode (local only)")
	case client.StateRemote:
		p, _ := m.ctrl.Profile()
		who = lipgloss.NewStyle().Foreground(Success).Render(p.Email)
		if p.Name != "" {
			who += lipgloss.NewStyle().Foreground(Muted).Render(" (" + p.Name + ")")
		}
	default:
		who = lipgloss.NewStyle().Foreground(Muted).Render("signed out")
	}

	return statusBarStyle.Render(who)
}
