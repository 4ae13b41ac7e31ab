package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilgaz/tempo/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	weekStart string
	rangeDays int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	fWeekStart *string
	fRangeDays *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ws, rd := "", ""
	return settingsModel{
		store:      s,
		fWeekStart: &ws,
		fRangeDays: &rd,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	weekStart string
	rangeDays int
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{
			weekStart: s.store.WeekStart(),
			rangeDays: s.store.RangeDays(),
		}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.weekStart = msg.weekStart
		s.rangeDays = msg.rangeDays
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.fWeekStart = s.store.WeekStart()
	*s.fRangeDays = fmt.Sprintf("%d", s.store.RangeDays())

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.fWeekStart),
			huh.NewSelect[string]().Title("Default dashboard window").
				Options(
					huh.NewOption("Last 7 days", "7"),
					huh.NewOption("Last 30 days", "30"),
					huh.NewOption("Last 3 months", "90"),
				).Value(s.fRangeDays),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.store.SetSetting(store.SettingWeekStart, *s.fWeekStart)
		s.store.SetSetting(store.SettingRangeDays, *s.fRangeDays)
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s",
			lipgloss.NewStyle().Width(28).Render(label),
			highlightStyle.Render(value),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		row("Week starts on", s.weekStart),
		row("Default dashboard window", fmt.Sprintf("last %d days", s.rangeDays)),
		"",
		hint,
	)

	return panelStyle.Width(w).Render(content)
}
