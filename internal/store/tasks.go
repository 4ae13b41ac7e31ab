package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertTasks writes the whole batch in a single transaction. Either every
// record is inserted or none is; the first failure rolls everything back.
func (s *Store) InsertTasks(batch []NewTask) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert tasks: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, t := range batch {
		var notes any
		if t.Notes != "" {
			notes = t.Notes
		}
		_, err := tx.Exec(
			`INSERT INTO tasks (user_id, project_id, name, date, hours, minutes, total_minutes, notes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.UserID, t.ProjectID, t.Name, t.Date, t.Hours, t.Minutes, t.Hours*60+t.Minutes, notes, now,
		)
		if err != nil {
			return fmt.Errorf("insert task %q: %w", t.Name, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetTask(id int64) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT t.id, t.user_id, t.project_id, t.name, t.date, t.hours, t.minutes,
		        t.total_minutes, t.notes, t.created_at, p.name, p.icon
		 FROM tasks t
		 JOIN projects p ON p.id = t.project_id
		 WHERE t.id = ?`, id,
	)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// ListTasks returns a user's tasks with their project name and icon,
// ordered by date.
func (s *Store) ListTasks(userID int64, f TaskFilter) ([]Task, error) {
	query := `SELECT t.id, t.user_id, t.project_id, t.name, t.date, t.hours, t.minutes,
	                 t.total_minutes, t.notes, t.created_at, p.name, p.icon
	          FROM tasks t
	          JOIN projects p ON p.id = t.project_id
	          WHERE t.user_id = ?`
	args := []any{userID}

	if f.From != nil {
		query += ` AND t.date >= ?`
		args = append(args, *f.From)
	}
	if f.Desc {
		query += ` ORDER BY t.date DESC, t.id DESC`
	} else {
		query += ` ORDER BY t.date, t.id`
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// DeleteTask removes a single task permanently.
func (s *Store) DeleteTask(id int64) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete task %d: no such task", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var notes sql.NullString
	var createdAt string
	err := row.Scan(
		&t.ID, &t.UserID, &t.ProjectID, &t.Name, &t.Date, &t.Hours, &t.Minutes,
		&t.TotalMinutes, &notes, &createdAt, &t.ProjectName, &t.ProjectIcon,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		t.Notes = notes.String
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}
