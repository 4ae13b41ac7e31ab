package store

import (
	"fmt"
	"strconv"
)

// Setting keys.
const (
	SettingWeekStart   = "week_start"         // "monday" or "sunday"
	SettingRangeDays   = "default_range_days" // 7, 30 or 90
	SettingSessionUser = "session_user"       // signed-in user id
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) DeleteSetting(key string) error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// WeekStart returns the configured first day of the week, defaulting to
// monday for missing or unrecognized values.
func (s *Store) WeekStart() string {
	v, err := s.GetSetting(SettingWeekStart)
	if err != nil || (v != "monday" && v != "sunday") {
		return "monday"
	}
	return v
}

// RangeDays returns the default dashboard window in days (7, 30 or 90).
func (s *Store) RangeDays() int {
	v, err := s.GetSetting(SettingRangeDays)
	if err != nil {
		return 30
	}
	switch n, _ := strconv.Atoi(v); n {
	case 7, 30, 90:
		return n
	default:
		return 30
	}
}
