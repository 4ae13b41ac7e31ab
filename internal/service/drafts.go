package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilgaz/tempo/internal/store"
)

const (
	// MaxDrafts caps how many tasks can be entered in one batch.
	MaxDrafts = 20
	// MaxNameLen and MaxNotesLen mirror the store's column contracts.
	MaxNameLen  = 200
	MaxNotesLen = 500
	// DateWindowDays is how far back a task may be dated, inclusive.
	DateWindowDays = 7
	// MaxRowMinutes caps a single row's duration at 24 hours. Redundant
	// with the hour/minute ranges, kept as its own rule.
	MaxRowMinutes = 1440
)

var (
	ErrDraftLimit = errors.New("you can add at most 20 tasks at once")
	ErrLastDraft  = errors.New("at least one task is required")
)

// Draft is an unsaved task row pending batch submission.
type Draft struct {
	ProjectID int64 // 0 = not selected
	Name      string
	Date      time.Time
	Hours     int
	Minutes   int
	Notes     string
}

// DraftList holds the ordered add-task rows. It always contains between
// one and MaxDrafts drafts.
type DraftList struct {
	drafts []Draft
}

func NewDraftList(today time.Time) *DraftList {
	return &DraftList{drafts: []Draft{emptyDraft(today)}}
}

func emptyDraft(today time.Time) Draft {
	return Draft{Date: Day(today)}
}

func (l *DraftList) Len() int        { return len(l.drafts) }
func (l *DraftList) Drafts() []Draft { return l.drafts }

func (l *DraftList) At(i int) *Draft {
	return &l.drafts[i]
}

// Add appends a fresh draft dated today. Fails once MaxDrafts is reached,
// leaving the list unchanged.
func (l *DraftList) Add(today time.Time) error {
	if len(l.drafts) >= MaxDrafts {
		return ErrDraftLimit
	}
	l.drafts = append(l.drafts, emptyDraft(today))
	return nil
}

// Remove drops the draft at i. The last remaining draft cannot be removed.
func (l *DraftList) Remove(i int) error {
	if len(l.drafts) <= 1 {
		return ErrLastDraft
	}
	if i < 0 || i >= len(l.drafts) {
		return fmt.Errorf("no draft at index %d", i)
	}
	l.drafts = append(l.drafts[:i], l.drafts[i+1:]...)
	return nil
}

// Reset returns the list to a single empty draft, as after a successful
// save.
func (l *DraftList) Reset(today time.Time) {
	l.drafts = []Draft{emptyDraft(today)}
}

// Day truncates t to calendar-day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateDate checks the submission window: today-7 ≤ date ≤ today,
// inclusive on both ends, by calendar day.
func ValidateDate(date, today time.Time) error {
	d, t := Day(date), Day(today)
	if d.After(t) {
		return errors.New("date cannot be in the future")
	}
	if d.Before(t.AddDate(0, 0, -DateWindowDays)) {
		return fmt.Errorf("date cannot be older than %d days", DateWindowDays)
	}
	return nil
}

// Validate checks the whole batch before any write is attempted. The first
// failure aborts the submission; nothing is partially saved.
func Validate(drafts []Draft, active []store.Project, today time.Time) error {
	activeIDs := make(map[int64]bool, len(active))
	for _, p := range active {
		activeIDs[p.ID] = true
	}

	for i, d := range drafts {
		row := i + 1
		if d.ProjectID == 0 {
			return fmt.Errorf("task %d: select a project", row)
		}
		if !activeIDs[d.ProjectID] {
			return fmt.Errorf("task %d: project is not active", row)
		}
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("task %d: enter a task name", row)
		}
		if len(strings.TrimSpace(d.Name)) > MaxNameLen {
			return fmt.Errorf("task %d: task name is longer than %d characters", row, MaxNameLen)
		}
		if err := ValidateDate(d.Date, today); err != nil {
			return fmt.Errorf("task %d: %v", row, err)
		}
		if d.Hours < 0 || d.Hours > 23 {
			return fmt.Errorf("task %d: hours must be between 0 and 23", row)
		}
		if d.Minutes < 0 || d.Minutes > 59 {
			return fmt.Errorf("task %d: minutes must be between 0 and 59", row)
		}
		if len(d.Notes) > MaxNotesLen {
			return fmt.Errorf("task %d: notes are longer than %d characters", row, MaxNotesLen)
		}
		if d.Hours*60+d.Minutes > MaxRowMinutes {
			return fmt.Errorf("task %d: a single task cannot exceed 24 hours", row)
		}
	}
	return nil
}

// ToNewTasks converts validated drafts into store records for the batch
// insert.
func ToNewTasks(drafts []Draft, userID int64) []store.NewTask {
	batch := make([]store.NewTask, 0, len(drafts))
	for _, d := range drafts {
		batch = append(batch, store.NewTask{
			UserID:    userID,
			ProjectID: d.ProjectID,
			Name:      strings.TrimSpace(d.Name),
			Date:      Day(d.Date).Format(store.DateFormat),
			Hours:     d.Hours,
			Minutes:   d.Minutes,
			Notes:     strings.TrimSpace(d.Notes),
		})
	}
	return batch
}
