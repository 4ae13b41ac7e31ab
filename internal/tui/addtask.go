package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilgaz/tempo/internal/service"
	"github.com/ilgaz/tempo/internal/store"
)

// addTaskModel is the batch entry form: an ordered list of 1..20 drafts,
// each edited through a huh form, submitted as one all-or-nothing insert.
type addTaskModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	drafts   *service.DraftList
	projects []store.Project // active only
	cursor   int
	saving   bool

	formActive bool
	form       *huh.Form
	editing    int // draft index bound to the open form

	// Form field pointers (survive value copies)
	fProject *int64
	fName    *string
	fDate    *string
	fHours   *string
	fMinutes *string
	fNotes   *string
}

func newAddTaskModel(s *store.Store, user *store.User) addTaskModel {
	var project int64
	name, date, hours, minutes, notes := "", "", "", "", ""
	return addTaskModel{
		store:    s,
		user:     user,
		drafts:   service.NewDraftList(time.Now()),
		fProject: &project,
		fName:    &name,
		fDate:    &date,
		fHours:   &hours,
		fMinutes: &minutes,
		fNotes:   &notes,
	}
}

func (m *addTaskModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type activeProjectsMsg struct {
	projects []store.Project
}

func (m addTaskModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.store.ListProjects(true)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return activeProjectsMsg{projects: projects}
	}
}

// reset returns the form to a single empty draft, as after a successful
// save.
func (m addTaskModel) reset() addTaskModel {
	m.drafts.Reset(time.Now())
	m.cursor = 0
	m.saving = false
	m.formActive = false
	m.form = nil
	return m
}

func (m addTaskModel) update(msg tea.Msg) (addTaskModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case activeProjectsMsg:
		m.projects = msg.projects
		return m, nil

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < m.drafts.Len()-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			if err := m.drafts.Add(time.Now()); err != nil {
				return m, warn(err)
			}
			m.cursor = m.drafts.Len() - 1
		case key.Matches(msg, keys.Delete):
			if err := m.drafts.Remove(m.cursor); err != nil {
				return m, warn(err)
			}
			if m.cursor >= m.drafts.Len() {
				m.cursor = m.drafts.Len() - 1
			}
		case key.Matches(msg, keys.Enter):
			return m.showRowForm(m.cursor)
		case key.Matches(msg, keys.Save):
			return m.saveAll()
		}
	}
	return m, nil
}

func warn(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: err.Error(), isError: true}
	}
}

func (m addTaskModel) showRowForm(i int) (addTaskModel, tea.Cmd) {
	if len(m.projects) == 0 {
		return m, warn(fmt.Errorf("no active projects; create one in Projects first"))
	}

	d := m.drafts.At(i)
	m.editing = i
	*m.fProject = d.ProjectID
	*m.fName = d.Name
	*m.fDate = d.Date.Format(store.DateFormat)
	*m.fHours = strconv.Itoa(d.Hours)
	*m.fMinutes = strconv.Itoa(d.Minutes)
	*m.fNotes = d.Notes

	options := make([]huh.Option[int64], len(m.projects))
	for i, p := range m.projects {
		options[i] = huh.NewOption(p.Name, p.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Project").Options(options...).Value(m.fProject),
			huh.NewInput().Title("Task name").CharLimit(service.MaxNameLen).Value(m.fName),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.fDate).Validate(validateFormDate),
			huh.NewInput().Title("Hours").Value(m.fHours).Validate(validateIntRange(0, 23, "hours")),
			huh.NewInput().Title("Minutes").Value(m.fMinutes).Validate(validateIntRange(0, 59, "minutes")),
			huh.NewText().Title("Notes (optional)").CharLimit(service.MaxNotesLen).Value(m.fNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

// validateFormDate enforces the same submission window as the batch
// validation, so out-of-range dates are refused at input time too.
func validateFormDate(s string) error {
	d, err := time.ParseInLocation(store.DateFormat, s, time.Local)
	if err != nil {
		return fmt.Errorf("enter a date as YYYY-MM-DD")
	}
	return service.ValidateDate(d, time.Now())
}

func validateIntRange(lo, hi int, what string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("%s must be between %d and %d", what, lo, hi)
		}
		return nil
	}
}

func (m addTaskModel) updateForm(msg tea.Msg) (addTaskModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil

		d := m.drafts.At(m.editing)
		d.ProjectID = *m.fProject
		d.Name = *m.fName
		if date, err := time.ParseInLocation(store.DateFormat, *m.fDate, time.Local); err == nil {
			d.Date = date
		}
		if h, err := strconv.Atoi(*m.fHours); err == nil {
			d.Hours = h
		}
		if mins, err := strconv.Atoi(*m.fMinutes); err == nil {
			d.Minutes = mins
		}
		d.Notes = *m.fNotes
		return m, nil
	}

	return m, cmd
}

// saveAll validates the whole batch, then submits it in one insert. On any
// failure nothing is saved and the drafts stay as they are; exactly one
// status message is produced per attempt.
func (m addTaskModel) saveAll() (addTaskModel, tea.Cmd) {
	drafts := append([]service.Draft(nil), m.drafts.Drafts()...)
	projects := m.projects
	userID := m.user.ID
	count := len(drafts)

	m.saving = true
	return m, func() tea.Msg {
		if err := service.Validate(drafts, projects, time.Now()); err != nil {
			return saveFailedMsg{err: err}
		}
		if err := m.store.InsertTasks(service.ToNewTasks(drafts, userID)); err != nil {
			return saveFailedMsg{err: fmt.Errorf("save failed: %v", err)}
		}
		return tasksSavedMsg{count: count}
	}
}

func (m addTaskModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render(fmt.Sprintf("Task %d", m.editing+1))
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render(fmt.Sprintf("Add Tasks (%d/%d)", m.drafts.Len(), service.MaxDrafts))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-4s %-18s %-24s %-12s %s", "#", "Project", "Task", "Date", "Duration")))

	for i, d := range m.drafts.Drafts() {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		project := "(none)"
		if d.ProjectID != 0 {
			project = m.projectName(d.ProjectID)
		}
		name := d.Name
		if name == "" {
			name = "—"
		}

		row := style.Render(fmt.Sprintf("%s%-4d", cursor, i+1)) +
			fmt.Sprintf("%-18s %-24s %-12s %s",
				truncate(project, 17),
				truncate(name, 23),
				d.Date.Format(store.DateFormat),
				formatRowDuration(d.Hours, d.Minutes),
			)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	if m.saving {
		rows = append(rows, warningStyle.Render("  Saving..."))
	} else {
		rows = append(rows, mutedStyle.Render("  enter: edit  n: add row  d: remove row  s: save all"))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m addTaskModel) projectName(id int64) string {
	for _, p := range m.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return "?"
}
