package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilgaz/tempo/internal/store"
)

// loginModel asks for an email and establishes the session. The app shows
// it whenever nobody is signed in.
type loginModel struct {
	store  *store.Store
	width  int
	height int

	form  *huh.Form
	email *string
}

func newLoginModel(s *store.Store) loginModel {
	email := ""
	m := loginModel{store: s, email: &email}
	m.form = m.newForm()
	return m
}

func (m loginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(m.email).
				Validate(validateEmail),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(s, "@") {
		return errors.New("enter a valid email address")
	}
	return nil
}

func (m *loginModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m loginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		email := strings.TrimSpace(*m.email)
		*m.email = ""
		m.form = m.newForm()
		return m, tea.Batch(m.form.Init(), m.signIn(email))
	}

	return m, cmd
}

func (m loginModel) signIn(email string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.store.SignIn(email)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Sign in failed: %v", err), isError: true}
		}
		return signedInMsg{user: user}
	}
}

func (m loginModel) view() string {
	title := titleStyle.Render("tempo")
	subtitle := mutedStyle.Render("Sign in to track your time")
	content := lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", m.form.View())

	panel := activePanelStyle.Width(min(m.width-4, 48)).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
