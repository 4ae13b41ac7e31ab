package tui

import (
	"fmt"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilgaz/tempo/internal/service"
	"github.com/ilgaz/tempo/internal/store"
)

var windowChoices = []int{7, 30, 90}

type dashboardModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	rangeDays int
	tasks     []store.Task
	stats     service.Stats
	series    []service.DailyTotal

	chart    tslc.Model
	hasChart bool
}

func newDashboardModel(s *store.Store, user *store.User, rangeDays int) dashboardModel {
	return dashboardModel{
		store:     s,
		user:      user,
		rangeDays: rangeDays,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	tasks     []store.Task
	weekStart string
}

// loadData fetches the trailing window. Aggregates are recomputed from the
// fetched tasks when the message lands.
func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		from := service.WindowStart(time.Now(), d.rangeDays)
		tasks, err := d.store.ListTasks(d.user.ID, store.TaskFilter{From: &from})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return dashboardDataMsg{tasks: tasks, weekStart: d.store.WeekStart()}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.tasks = msg.tasks
		d.stats = service.ComputeStats(msg.tasks, time.Now(), msg.weekStart)
		d.series = service.DailySeries(msg.tasks)
		d.buildChart()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			d.rangeDays = prevWindow(d.rangeDays)
			return d, d.loadData()
		case key.Matches(msg, keys.Right):
			d.rangeDays = nextWindow(d.rangeDays)
			return d, d.loadData()
		}
	}
	return d, nil
}

func nextWindow(days int) int {
	for i, w := range windowChoices {
		if w == days {
			return windowChoices[(i+1)%len(windowChoices)]
		}
	}
	return windowChoices[0]
}

func prevWindow(days int) int {
	for i, w := range windowChoices {
		if w == days {
			return windowChoices[(i+len(windowChoices)-1)%len(windowChoices)]
		}
	}
	return windowChoices[0]
}

func (d *dashboardModel) buildChart() {
	d.hasChart = len(d.series) > 0
	if !d.hasChart {
		return
	}

	chartWidth := max(d.width-10, 30)
	chartHeight := 10
	if d.height > 30 {
		chartHeight = 14
	}

	minTime := d.series[0].Date
	maxTime := d.series[len(d.series)-1].Date
	if !maxTime.After(minTime) {
		// A single point still needs a non-empty time range to draw.
		maxTime = minTime.AddDate(0, 0, 1)
	}

	maxHours := 0.0
	for _, p := range d.series {
		if p.Hours > maxHours {
			maxHours = p.Hours
		}
	}

	chart := tslc.New(chartWidth, chartHeight)
	chart.AxisStyle = mutedStyle
	chart.LabelStyle = mutedStyle
	chart.SetStyle(lipgloss.NewStyle().Foreground(colorPrimary))
	chart.SetTimeRange(minTime, maxTime)
	chart.SetViewTimeRange(minTime, maxTime)
	chart.SetYRange(0, maxHours+1)
	chart.SetViewYRange(0, maxHours+1)

	for _, p := range d.series {
		chart.Push(tslc.TimePoint{Time: p.Date, Value: p.Hours})
	}
	chart.DrawBraille()
	d.chart = chart
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Dashboard"), "  ",
		mutedStyle.Render(fmt.Sprintf("last %d days  (←/→ change window)", d.rangeDays)),
	)

	cards := d.renderStatCards(contentWidth)
	chartPanel := d.renderChartPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, header, cards, chartPanel)
}

func (d dashboardModel) renderStatCards(w int) string {
	cardWidth := max(w/4-2, 12)

	card := func(label, value string) string {
		content := lipgloss.JoinVertical(lipgloss.Left,
			statLabelStyle.Render(label),
			statValueStyle.Render(value),
		)
		return panelStyle.Width(cardWidth).Render(content)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Today", formatHours(d.stats.Today)),
		card("This Week", formatHours(d.stats.Week)),
		card("This Month", formatHours(d.stats.Month)),
		card("Total Tasks", fmt.Sprintf("%d", d.stats.Total)),
	)
}

func (d dashboardModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Time Consumption")

	if !d.hasChart {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks in this window"),
		)
		return panelStyle.Width(w).Render(content)
	}

	yLabel := mutedStyle.Render("hours per day")
	content := lipgloss.JoinVertical(lipgloss.Left, title, yLabel, d.chart.View())
	return panelStyle.Width(w).Render(content)
}
