package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// CurrentUser resolves the persisted session to a user. It returns
// (nil, nil) when nobody is signed in.
func (s *Store) CurrentUser() (*User, error) {
	v, err := s.GetSetting(SettingSessionUser)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// Stale or corrupt session value: treat as signed out.
		s.DeleteSetting(SettingSessionUser)
		return nil, nil
	}

	u, err := s.GetUser(id)
	if err != nil {
		s.DeleteSetting(SettingSessionUser)
		return nil, nil
	}
	return u, nil
}

// SignIn resolves the email to a user (creating it on first sign-in) and
// persists the session.
func (s *Store) SignIn(email string) (*User, error) {
	u, err := s.FindOrCreateUser(email)
	if err != nil {
		return nil, err
	}
	if err := s.SetSetting(SettingSessionUser, strconv.FormatInt(u.ID, 10)); err != nil {
		return nil, err
	}
	return u, nil
}

// SignOut terminates the persisted session.
func (s *Store) SignOut() error {
	return s.DeleteSetting(SettingSessionUser)
}
