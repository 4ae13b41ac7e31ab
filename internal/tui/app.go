package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilgaz/tempo/internal/export"
	"github.com/ilgaz/tempo/internal/store"
)

// App is the root Bubble Tea model. The signed-in user is held here and
// passed explicitly into every view that needs it; when it is nil the app
// shows the login screen instead of the tabbed shell.
type App struct {
	store *store.Store
	user  *store.User

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	login     loginModel
	dashboard dashboardModel
	addtask   addTaskModel
	history   historyModel
	projects  projectsModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, user *store.User) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		store:      s,
		activeView: viewDashboard,
		login:      newLoginModel(s),
		help:       h,
	}
	if user != nil {
		a = a.withUser(user)
	}
	return a
}

// withUser builds the per-user views after sign-in. The dashboard
// window starts at the default_range_days preference.
func (a App) withUser(user *store.User) App {
	a.user = user
	a.dashboard = newDashboardModel(a.store, user, a.store.RangeDays())
	a.addtask = newAddTaskModel(a.store, user)
	a.history = newHistoryModel(a.store, user)
	a.projects = newProjectsModel(a.store)
	a.settings = newSettingsModel(a.store)
	a.setSizes()
	return a
}

func (a *App) setSizes() {
	contentHeight := a.height - 4 // header + footer
	a.login.setSize(a.width, a.height)
	a.dashboard.setSize(a.width, contentHeight)
	a.addtask.setSize(a.width, contentHeight)
	a.history.setSize(a.width, contentHeight)
	a.projects.setSize(a.width, contentHeight)
	a.settings.setSize(a.width, contentHeight)
}

func (a App) Init() tea.Cmd {
	if a.user == nil {
		return a.login.Init()
	}
	return tea.Batch(a.dashboard.Init(), a.addtask.refresh())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.setSizes()
		return a, nil

	case signedInMsg:
		a = a.withUser(msg.user)
		a.activeView = viewDashboard
		a.status = "Signed in as " + msg.user.Email
		a.statusErr = false
		return a, tea.Batch(a.dashboard.loadData(), a.addtask.refresh())

	case signedOutMsg:
		a.user = nil
		a.login = newLoginModel(a.store)
		a.login.setSize(a.width, a.height)
		a.status = ""
		return a, a.login.Init()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case saveFailedMsg:
		// The drafts are untouched; unlock the form so the user can
		// correct and retry.
		a.addtask.saving = false
		a.status = msg.err.Error()
		a.statusErr = true
		return a, nil

	case tasksSavedMsg:
		// Reset to a single empty draft and land on the dashboard.
		a.addtask = a.addtask.reset()
		a.activeView = viewDashboard
		a.status = fmt.Sprintf("%d task(s) saved", msg.count)
		a.statusErr = false
		return a, a.dashboard.loadData()

	case taskDeletedMsg:
		a.status = "Task deleted"
		a.statusErr = false
		return a, a.history.refresh()

	case projectCreatedMsg:
		a.status = fmt.Sprintf("Project %q created", msg.project.Name)
		a.statusErr = false
		return a, a.projects.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case tea.KeyMsg:
		if a.user == nil {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.login, cmd = a.login.update(msg)
			return a, cmd
		}

		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form, search), delegate
		// first.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.SignOut):
			return a, a.signOut()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewAddTask
			return a, a.addtask.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewProjects
			return a, a.projects.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.user == nil {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewAddTask:
		a.addtask, cmd = a.addtask.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isCapturing() bool {
	switch a.activeView {
	case viewAddTask:
		return a.addtask.formActive
	case viewHistory:
		return a.history.searching || a.history.confirming
	case viewProjects:
		return a.projects.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewAddTask:
		return a.addtask.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewProjects:
		return a.projects.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) signOut() tea.Cmd {
	return func() tea.Msg {
		if err := a.store.SignOut(); err != nil {
			return statusMsg{text: fmt.Sprintf("Sign out failed: %v", err), isError: true}
		}
		return signedOutMsg{}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.user == nil {
		return a.login.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewAddTask:
		content = a.addtask.view()
	case viewHistory:
		content = a.history.view()
	case viewProjects:
		content = a.projects.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("tempo")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	who := highlightStyle.Render(" " + a.user.Email)

	left := footerStyle.Render(helpView)
	right := status + who

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	userID := a.user.ID
	return func() tea.Msg {
		tasks, err := a.store.ListTasks(userID, store.TaskFilter{Desc: true})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("tempo-export-%s.csv", dateStr))
			if err := export.ToCSV(tasks, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("tempo-export-%s.json", dateStr))
			if err := export.ToJSON(tasks, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
