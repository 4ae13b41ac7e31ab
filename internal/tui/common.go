package tui

import (
	"fmt"

	"github.com/ilgaz/tempo/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewAddTask
	viewHistory
	viewProjects
	viewSettings
)

var viewNames = []string{"Dashboard", "Add Task", "History", "Projects", "Settings"}

// --- Messages ---

type signedInMsg struct {
	user *store.User
}

type signedOutMsg struct{}

// tasksSavedMsg reports a successful batch insert; the app resets the form
// and returns to the dashboard.
type tasksSavedMsg struct {
	count int
}

// saveFailedMsg reports a failed batch submission. The drafts stay as
// they were so the user can correct and retry.
type saveFailedMsg struct {
	err error
}

type taskDeletedMsg struct{}

type projectCreatedMsg struct {
	project *store.Project
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatHours renders an hour total with one decimal, e.g. "2.3h".
func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// formatRowDuration renders a single task's duration, e.g. "2h 30m".
func formatRowDuration(hours, minutes int) string {
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func truncate(s string, n int) string {
	if n <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
