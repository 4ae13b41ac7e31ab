package service

import (
	"testing"
	"time"

	"github.com/ilgaz/tempo/internal/store"
)

func task(date string, minutes int) store.Task {
	return store.Task{Date: date, TotalMinutes: minutes}
}

// ============================================================
// Grouping
// ============================================================

func TestGroupByFirstSeenOrder(t *testing.T) {
	tasks := []store.Task{
		{Date: "2026-08-30", Name: "a"},
		{Date: "2026-08-29", Name: "b"},
		{Date: "2026-08-30", Name: "c"},
	}

	groups := GroupBy(tasks, func(t store.Task) string { return t.Date })
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "2026-08-30" || groups[1].Key != "2026-08-29" {
		t.Fatalf("unexpected group order: %s, %s", groups[0].Key, groups[1].Key)
	}
	if len(groups[0].Items) != 2 || groups[0].Items[1].Name != "c" {
		t.Fatalf("items within a group should keep input order: %+v", groups[0].Items)
	}
}

func TestGroupByPreservesTotal(t *testing.T) {
	tasks := []store.Task{
		task("2026-08-30", 60),
		task("2026-08-29", 45),
		task("2026-08-30", 30),
	}

	byDate := GroupBy(tasks, func(t store.Task) string { return t.Date })
	sum := 0
	for _, g := range byDate {
		sum += TotalMinutes(g.Items)
	}
	if sum != 135 {
		t.Fatalf("grouping lost minutes: got %d", sum)
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes(205); got != "3h 25m" {
		t.Fatalf("expected 3h 25m, got %q", got)
	}
	if got := FormatMinutes(0); got != "0h 0m" {
		t.Fatalf("expected 0h 0m, got %q", got)
	}
	if got := FormatMinutes(60); got != "1h 0m" {
		t.Fatalf("expected 1h 0m, got %q", got)
	}
}

// ============================================================
// Dashboard stats
// ============================================================

func TestComputeStats(t *testing.T) {
	// Sunday, so a monday-start week began 2026-08-24.
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tasks := []store.Task{
		task("2026-08-30", 90), // today
		task("2026-08-30", 45), // today
		task("2026-08-26", 60), // this week, this month
		task("2026-08-10", 120), // this month only
	}

	s := ComputeStats(tasks, now, "monday")
	if s.Today != 2.25 {
		t.Fatalf("expected Today 2.25, got %v", s.Today)
	}
	if s.Week != 3.25 {
		t.Fatalf("expected Week 3.25, got %v", s.Week)
	}
	if s.Month != 5.25 {
		t.Fatalf("expected Month 5.25, got %v", s.Month)
	}
	if s.Total != 4 {
		t.Fatalf("expected Total 4, got %d", s.Total)
	}
}

func TestComputeStatsCountsOnlyFetched(t *testing.T) {
	// Only the fetched tasks feed the aggregates; a task outside the
	// caller's window simply is not in the slice.
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := ComputeStats([]store.Task{task("2026-08-30", 60)}, now, "monday")
	if s.Month != 1 || s.Total != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	got := StartOfWeek(sunday, "monday")
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("monday start: expected %v, got %v", want, got)
	}

	got = StartOfWeek(sunday, "sunday")
	want = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("sunday start: expected %v, got %v", want, got)
	}

	wednesday := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	got = StartOfWeek(wednesday, "monday")
	want = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("mid-week monday start: expected %v, got %v", want, got)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if got := WindowStart(now, 7); got != "2026-08-23" {
		t.Fatalf("expected 2026-08-23, got %q", got)
	}
	if got := WindowStart(now, 30); got != "2026-07-31" {
		t.Fatalf("expected 2026-07-31, got %q", got)
	}
}

func TestDailySeries(t *testing.T) {
	tasks := []store.Task{
		task("2026-08-28", 60),
		task("2026-08-28", 30),
		task("2026-08-30", 120),
	}

	series := DailySeries(tasks)
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].Hours != 1.5 {
		t.Fatalf("expected 1.5h on the first point, got %v", series[0].Hours)
	}
	if series[1].Hours != 2 {
		t.Fatalf("expected 2h on the second point, got %v", series[1].Hours)
	}
	if !series[0].Date.Before(series[1].Date) {
		t.Fatal("expected points in fetch order")
	}
}

func TestDailySeriesNoZeroFill(t *testing.T) {
	tasks := []store.Task{
		task("2026-08-20", 60),
		task("2026-08-30", 60),
	}
	series := DailySeries(tasks)
	if len(series) != 2 {
		t.Fatalf("gap days should get no points: got %d", len(series))
	}
}
