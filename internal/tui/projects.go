package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilgaz/tempo/internal/icons"
	"github.com/ilgaz/tempo/internal/store"
)

// projectsModel manages the projects tasks are logged against. Archived
// projects stay visible here but are no longer offered in the add-task
// form.
type projectsModel struct {
	store  *store.Store
	width  int
	height int

	projects []store.Project
	cursor   int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName *string
	formIcon *string
}

func newProjectsModel(s *store.Store) projectsModel {
	name, icon := "", "folder"
	return projectsModel{
		store:    s,
		formName: &name,
		formIcon: &icon,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type projectsDataMsg struct {
	projects []store.Project
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, err := p.store.ListProjects(false)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return projectsDataMsg{projects: projects}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.projects)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showNewProjectForm()
		case key.Matches(msg, keys.Delete):
			if len(p.projects) > 0 {
				proj := p.projects[p.cursor]
				if err := p.store.ArchiveProject(proj.ID); err != nil {
					return p, warn(err)
				}
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p projectsModel) showNewProjectForm() (projectsModel, tea.Cmd) {
	*p.formName = ""
	*p.formIcon = "folder"

	iconOptions := make([]huh.Option[string], len(icons.Identifiers))
	for i, name := range icons.Identifiers {
		iconOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", icons.Resolve(name), name), name)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(p.formName),
			huh.NewSelect[string]().Title("Icon").Options(iconOptions...).Value(p.formIcon),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		name := strings.TrimSpace(*p.formName)
		if name == "" {
			return p, p.refresh()
		}
		icon := *p.formIcon
		return p, func() tea.Msg {
			proj, err := p.store.CreateProject(name, icon)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return projectCreatedMsg{project: proj}
		}
	}

	return p, cmd
}

func (p projectsModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Projects")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-28s %s", "", "Name", "Status")))

	for i, proj := range p.projects {
		glyph := icons.Resolve(proj.Icon)
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := proj.Status
		if status == store.ProjectStatusArchived {
			status = mutedStyle.Render(status)
		} else {
			status = successStyle.Render(status)
		}
		row := style.Render(fmt.Sprintf("%s%s %-28s", cursor, glyph, truncate(proj.Name, 27))) + " " + status
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: archive"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
