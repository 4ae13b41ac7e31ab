package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilgaz/tempo/internal/icons"
	"github.com/ilgaz/tempo/internal/service"
	"github.com/ilgaz/tempo/internal/store"
)

type groupMode int

const (
	groupByDate groupMode = iota
	groupByProject
)

// historyModel browses the user's full task history: free-text filter on
// task name, regrouping by date or project, and single-task deletion with
// a confirm step.
type historyModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	tasks  []store.Task // complete set, newest first
	mode   groupMode
	groups []service.Group[store.Task]
	rows   int // total task rows across groups

	search    textinput.Model
	searching bool

	cursor     int // index into the flattened task rows
	confirming bool
	deleteID   int64
}

func newHistoryModel(s *store.Store, user *store.User) historyModel {
	ti := textinput.New()
	ti.Placeholder = "Search by task name"
	ti.CharLimit = 100
	ti.Width = 40

	return historyModel{
		store:  s,
		user:   user,
		search: ti,
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type historyDataMsg struct {
	tasks []store.Task
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.store.ListTasks(m.user.ID, store.TaskFilter{Desc: true})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return historyDataMsg{tasks: tasks}
	}
}

// regroup applies the filter then the grouping pass, in that order.
func (m *historyModel) regroup() {
	filtered := m.tasks
	if q := strings.ToLower(strings.TrimSpace(m.search.Value())); q != "" {
		filtered = nil
		for _, t := range m.tasks {
			if strings.Contains(strings.ToLower(t.Name), q) {
				filtered = append(filtered, t)
			}
		}
	}

	keyFn := func(t store.Task) string { return t.Date }
	if m.mode == groupByProject {
		keyFn = func(t store.Task) string { return t.ProjectName }
	}
	m.groups = service.GroupBy(filtered, keyFn)

	m.rows = len(filtered)
	if m.cursor >= m.rows {
		m.cursor = max(0, m.rows-1)
	}
}

// taskAt returns the task at the flattened row index.
func (m historyModel) taskAt(i int) *store.Task {
	for _, g := range m.groups {
		if i < len(g.Items) {
			return &g.Items[i]
		}
		i -= len(g.Items)
	}
	return nil
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.tasks = msg.tasks
		m.regroup()
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, keys.Search):
			m.searching = true
			return m, m.search.Focus()
		case key.Matches(msg, keys.Group):
			if m.mode == groupByDate {
				m.mode = groupByProject
			} else {
				m.mode = groupByDate
			}
			m.cursor = 0
			m.regroup()
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < m.rows-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if t := m.taskAt(m.cursor); t != nil {
				m.confirming = true
				m.deleteID = t.ID
			}
		case key.Matches(msg, keys.Back):
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.regroup()
			}
		}
	}
	return m, nil
}

func (m historyModel) updateSearch(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.regroup()
	return m, cmd
}

// updateConfirm handles the delete confirmation overlay. Only an explicit
// "y" deletes; everything else cancels.
func (m historyModel) updateConfirm(msg tea.KeyMsg) (historyModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.deleteID
		m.confirming = false
		m.deleteID = 0
		return m, func() tea.Msg {
			if err := m.store.DeleteTask(id); err != nil {
				return statusMsg{text: fmt.Sprintf("Delete failed: %v", err), isError: true}
			}
			return taskDeletedMsg{}
		}
	default:
		m.confirming = false
		m.deleteID = 0
		return m, nil
	}
}

func (m historyModel) view() string {
	w := m.width - 4

	modeLabel := "date"
	if m.mode == groupByProject {
		modeLabel = "project"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Task History"), "  ",
		mutedStyle.Render(fmt.Sprintf("grouped by %s", modeLabel)),
	)

	searchLine := "  " + m.search.View()

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, searchLine)
	rows = append(rows, "")

	if m.rows == 0 {
		rows = append(rows, mutedStyle.Render("  No tasks found"))
	} else {
		rows = append(rows, m.renderGroups()...)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  /: search  g: regroup  d: delete  esc: clear search"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if m.confirming {
		return lipgloss.JoinVertical(lipgloss.Left,
			panelStyle.Width(w).Render(content),
			m.renderConfirm(w),
		)
	}
	return panelStyle.Width(w).Render(content)
}

func (m historyModel) renderGroups() []string {
	var rows []string
	idx := 0
	for _, g := range m.groups {
		total := service.FormatMinutes(service.TotalMinutes(g.Items))
		rows = append(rows, fmt.Sprintf("  %s  %s",
			highlightStyle.Render(m.groupTitle(g.Key)),
			mutedStyle.Render("Total: "+total),
		))

		for _, t := range g.Items {
			cursor := "  "
			style := normalItemStyle
			if idx == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}

			left := m.rowContext(t)
			notes := t.Notes
			if notes == "" {
				notes = "-"
			}

			row := style.Render(fmt.Sprintf("  %s%-22s", cursor, truncate(left, 21))) +
				fmt.Sprintf(" %-28s %-9s %s",
					truncate(t.Name, 27),
					formatRowDuration(t.Hours, t.Minutes),
					mutedStyle.Render(truncate(notes, 24)),
				)
			rows = append(rows, row)
			idx++
		}
		rows = append(rows, "")
	}
	return rows
}

// groupTitle renders a date group as a readable date and a project group
// as the project name.
func (m historyModel) groupTitle(key string) string {
	if m.mode == groupByDate {
		if d, err := time.Parse(store.DateFormat, key); err == nil {
			return d.Format("January 2, 2006")
		}
	}
	return key
}

// rowContext is the leading cell: the project (with its icon glyph) under
// date grouping, the date under project grouping.
func (m historyModel) rowContext(t store.Task) string {
	if m.mode == groupByDate {
		return icons.Resolve(t.ProjectIcon) + " " + t.ProjectName
	}
	if d, err := time.Parse(store.DateFormat, t.Date); err == nil {
		return d.Format("Jan 2, 2006")
	}
	return t.Date
}

func (m historyModel) renderConfirm(w int) string {
	question := titleStyle.Render("Delete this task?")
	detail := mutedStyle.Render("This is permanent and cannot be undone.")
	hint := fmt.Sprintf("%s  %s",
		errorStyle.Render("y: delete"),
		mutedStyle.Render("any other key: cancel"),
	)
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, question, detail, "", hint),
	)
}
