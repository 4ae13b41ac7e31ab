package store

import "time"

// DateFormat is the calendar-day format used for task dates. Tasks carry
// no time-of-day component.
const DateFormat = "2006-01-02"

const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
}

type Project struct {
	ID        int64
	Name      string
	Icon      string // kebab-case glyph identifier, may be empty
	Status    string // active, archived
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Task struct {
	ID           int64
	UserID       int64
	ProjectID    int64
	Name         string
	Date         string // DateFormat
	Hours        int
	Minutes      int
	TotalMinutes int
	Notes        string // empty when NULL in the store
	CreatedAt    time.Time

	// Joined from projects.
	ProjectName string
	ProjectIcon string
}

// NewTask is a task record pending insertion.
type NewTask struct {
	UserID    int64
	ProjectID int64
	Name      string
	Date      string
	Hours     int
	Minutes   int
	Notes     string
}

// TaskFilter is used to filter task queries.
type TaskFilter struct {
	From *string // inclusive date lower bound, DateFormat
	Desc bool    // newest first
}

type Setting struct {
	Key   string
	Value string
}
