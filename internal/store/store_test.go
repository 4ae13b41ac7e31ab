package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seed creates a user and an active project for task tests.
func seed(t *testing.T, s *Store) (*User, *Project) {
	t.Helper()
	u, err := s.FindOrCreateUser("dev@example.com")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	p, err := s.CreateProject("Website", "code")
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return u, p
}

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(DateFormat)
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/tempo.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen must succeed without re-migrating
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestDefaultSettingsSeeded(t *testing.T) {
	s := newTestStore(t)
	if got := s.WeekStart(); got != "monday" {
		t.Fatalf("expected default week start monday, got %q", got)
	}
	if got := s.RangeDays(); got != 30 {
		t.Fatalf("expected default range 30, got %d", got)
	}
}

// ============================================================
// Users and session
// ============================================================

func TestFindOrCreateUser(t *testing.T) {
	s := newTestStore(t)

	u, err := s.FindOrCreateUser("a@b.com")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == 0 || u.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	// Second call resolves to the same record
	u2, err := s.FindOrCreateUser("a@b.com")
	if err != nil {
		t.Fatal(err)
	}
	if u2.ID != u.ID {
		t.Fatalf("expected same user, got %d and %d", u.ID, u2.ID)
	}
}

func TestGetUserByEmailMissing(t *testing.T) {
	s := newTestStore(t)
	u, err := s.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)

	u, err := s.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Fatal("expected no session on a fresh store")
	}

	signed, err := s.SignIn("a@b.com")
	if err != nil {
		t.Fatal(err)
	}

	u, err = s.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.ID != signed.ID {
		t.Fatalf("expected session user %d, got %+v", signed.ID, u)
	}

	if err := s.SignOut(); err != nil {
		t.Fatal(err)
	}
	u, err = s.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Fatal("expected no session after sign out")
	}
}

func TestCurrentUserStaleSession(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting(SettingSessionUser, "999")

	u, err := s.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Fatal("stale session should resolve to signed out")
	}
}

// ============================================================
// Projects
// ============================================================

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("Website", "code")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Website" || p.Icon != "code" || p.Status != ProjectStatusActive {
		t.Fatalf("unexpected project: %+v", p)
	}
	if p.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestCreateProjectDuplicateName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("Dup", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateProject("Dup", "star"); err == nil {
		t.Fatal("expected error for duplicate project name")
	}
}

func TestListProjectsActiveOnly(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("B", "")
	a, _ := s.CreateProject("A", "")
	s.ArchiveProject(a.ID)

	active, err := s.ListProjects(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Name != "B" {
		t.Fatalf("expected only active project B, got %+v", active)
	}

	all, err := s.ListProjects(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(all))
	}
	// Sorted by name
	if all[0].Name != "A" || all[1].Name != "B" {
		t.Fatalf("expected sorted by name: got %s, %s", all[0].Name, all[1].Name)
	}
	if all[0].Status != ProjectStatusArchived {
		t.Fatalf("expected A archived, got %q", all[0].Status)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestInsertAndListTasks(t *testing.T) {
	s := newTestStore(t)
	u, p := seed(t, s)

	err := s.InsertTasks([]NewTask{
		{UserID: u.ID, ProjectID: p.ID, Name: "Design review", Date: day(0), Hours: 1, Minutes: 30, Notes: "with team"},
		{UserID: u.ID, ProjectID: p.ID, Name: "Bug triage", Date: day(-1), Hours: 0, Minutes: 45},
	})
	if err != nil {
		t.Fatal(err)
	}

	tasks, err := s.ListTasks(u.ID, TaskFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	// Ascending date order: yesterday first
	if tasks[0].Name != "Bug triage" || tasks[1].Name != "Design review" {
		t.Fatalf("unexpected order: %s, %s", tasks[0].Name, tasks[1].Name)
	}

	got := tasks[1]
	if got.TotalMinutes != 90 {
		t.Fatalf("expected total_minutes 90, got %d", got.TotalMinutes)
	}
	if got.Notes != "with team" {
		t.Fatalf("expected notes, got %q", got.Notes)
	}
	if got.ProjectName != "Website" || got.ProjectIcon != "code" {
		t.Fatalf("expected joined project fields, got %q %q", got.ProjectName, got.ProjectIcon)
	}
	if tasks[0].Notes != "" {
		t.Fatalf("expected empty notes for NULL, got %q", tasks[0].Notes)
	}
}

func TestInsertTasksAtomic(t *testing.T) {
	s := newTestStore(t)
	u, p := seed(t, s)

	// Second record violates the project foreign key; the whole batch
	// must roll back.
	err := s.InsertTasks([]NewTask{
		{UserID: u.ID, ProjectID: p.ID, Name: "ok", Date: day(0), Hours: 1},
		{UserID: u.ID, ProjectID: 9999, Name: "bad", Date: day(0), Hours: 1},
	})
	if err == nil {
		t.Fatal("expected batch insert to fail")
	}

	tasks, err := s.ListTasks(u.ID, TaskFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks after failed batch, got %d", len(tasks))
	}
}

func TestInsertTasksEmptyBatch(t *testing.T) {
	s := newTestStore(t)
	if err := s.InsertTasks(nil); err != nil {
		t.Fatalf("empty batch should be a no-op: %v", err)
	}
}

func TestListTasksFromFilter(t *testing.T) {
	s := newTestStore(t)
	u, p := seed(t, s)

	s.InsertTasks([]NewTask{
		{UserID: u.ID, ProjectID: p.ID, Name: "old", Date: day(-10), Hours: 1},
		{UserID: u.ID, ProjectID: p.ID, Name: "recent", Date: day(-2), Hours: 1},
	})

	from := day(-7)
	tasks, err := s.ListTasks(u.ID, TaskFilter{From: &from})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Name != "recent" {
		t.Fatalf("expected only the recent task, got %+v", tasks)
	}
}

func TestListTasksDesc(t *testing.T) {
	s := newTestStore(t)
	u, p := seed(t, s)

	s.InsertTasks([]NewTask{
		{UserID: u.ID, ProjectID: p.ID, Name: "older", Date: day(-3), Hours: 1},
		{UserID: u.ID, ProjectID: p.ID, Name: "newer", Date: day(0), Hours: 1},
	})

	tasks, err := s.ListTasks(u.ID, TaskFilter{Desc: true})
	if err != nil {
		t.Fatal(err)
	}
	if tasks[0].Name != "newer" || tasks[1].Name != "older" {
		t.Fatalf("expected newest first, got %s, %s", tasks[0].Name, tasks[1].Name)
	}
}

func TestListTasksScopedToUser(t *testing.T) {
	s := newTestStore(t)
	u, p := seed(t, s)
	other, _ := s.FindOrCreateUser("other@example.com")

	s.InsertTasks([]NewTask{
		{UserID: u.ID, ProjectID: p.ID, Name: "mine", Date: day(0), Hours: 1},
		{UserID: other.ID, ProjectID: p.ID, Name: "theirs", Date: day(0), Hours: 1},
	})

	tasks, err := s.ListTasks(u.ID, TaskFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Name != "mine" {
		t.Fatalf("expected only this user's tasks, got %+v", tasks)
	}
}

func TestGetTask(t *testing.T) {
	s := newTestStore(t)
	u, p := seed(t, s)

	s.InsertTasks([]NewTask{
		{UserID: u.ID, ProjectID: p.ID, Name: "lookup", Date: day(0), Hours: 2, Minutes: 15, Notes: "details"},
	})
	tasks, _ := s.ListTasks(u.ID, TaskFilter{})

	got, err := s.GetTask(tasks[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "lookup" || got.TotalMinutes != 135 || got.ProjectName != "Website" {
		t.Fatalf("unexpected task: %+v", got)
	}

	if _, err := s.GetTask(9999); err == nil {
		t.Fatal("expected error for a missing task")
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	u, p := seed(t, s)

	s.InsertTasks([]NewTask{
		{UserID: u.ID, ProjectID: p.ID, Name: "doomed", Date: day(0), Hours: 1},
	})
	tasks, _ := s.ListTasks(u.ID, TaskFilter{})
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	if err := s.DeleteTask(tasks[0].ID); err != nil {
		t.Fatal(err)
	}

	tasks, _ = s.ListTasks(u.ID, TaskFilter{})
	if len(tasks) != 0 {
		t.Fatal("deleted task still listed")
	}
}

func TestDeleteTaskMissing(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteTask(42); err == nil {
		t.Fatal("expected error deleting a missing task")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting(SettingWeekStart, "sunday"); err != nil {
		t.Fatal(err)
	}
	if got := s.WeekStart(); got != "sunday" {
		t.Fatalf("expected sunday, got %q", got)
	}

	s.SetSetting(SettingRangeDays, "90")
	if got := s.RangeDays(); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}

	// Unrecognized values fall back to defaults
	s.SetSetting(SettingWeekStart, "friday")
	if got := s.WeekStart(); got != "monday" {
		t.Fatalf("expected fallback monday, got %q", got)
	}
	s.SetSetting(SettingRangeDays, "13")
	if got := s.RangeDays(); got != 30 {
		t.Fatalf("expected fallback 30, got %d", got)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("zzz_custom", "1")

	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected seeded pair plus one, got %d", len(all))
	}
	// Ordered by key
	if all[0].Key != SettingRangeDays || all[2].Key != "zzz_custom" {
		t.Fatalf("unexpected order: %+v", all)
	}
}
