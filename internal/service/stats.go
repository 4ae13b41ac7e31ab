package service

import (
	"time"

	"github.com/ilgaz/tempo/internal/store"
)

// Stats are the dashboard aggregates for one fetched window. Today, Week
// and Month are hours; Total is the task count. All three hour figures are
// computed from the fetched tasks only, so a window narrower than the
// containing week or month undercounts them.
type Stats struct {
	Today float64
	Week  float64
	Month float64
	Total int
}

// DailyTotal is one point of the dashboard time series.
type DailyTotal struct {
	Date  time.Time
	Hours float64
}

// WindowStart returns the inclusive date lower bound for a trailing window
// of days.
func WindowStart(now time.Time, days int) string {
	return Day(now).AddDate(0, 0, -days).Format(store.DateFormat)
}

// StartOfWeek returns the most recent week start on or before t.
// weekStart is "monday" or "sunday".
func StartOfWeek(t time.Time, weekStart string) time.Time {
	d := Day(t)
	offset := int(d.Weekday()) // days since Sunday
	if weekStart == "monday" {
		offset = int(d.Weekday()) - 1
		if offset < 0 {
			offset = 6
		}
	}
	return d.AddDate(0, 0, -offset)
}

// ComputeStats aggregates the fetched tasks into the four dashboard
// numbers.
func ComputeStats(tasks []store.Task, now time.Time, weekStart string) Stats {
	today := Day(now)
	weekFrom := StartOfWeek(now, weekStart)
	monthFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var todayMin, weekMin, monthMin int
	for _, t := range tasks {
		d, err := time.ParseInLocation(store.DateFormat, t.Date, now.Location())
		if err != nil {
			continue
		}
		if d.Equal(today) {
			todayMin += t.TotalMinutes
		}
		if !d.Before(weekFrom) && !d.After(today) {
			weekMin += t.TotalMinutes
		}
		if !d.Before(monthFrom) && !d.After(today) {
			monthMin += t.TotalMinutes
		}
	}

	return Stats{
		Today: float64(todayMin) / 60,
		Week:  float64(weekMin) / 60,
		Month: float64(monthMin) / 60,
		Total: len(tasks),
	}
}

// DailySeries groups tasks by calendar date and sums hours per date. One
// point per distinct date present; days without tasks get no point. Order
// follows first occurrence, which is date order for a date-sorted fetch.
func DailySeries(tasks []store.Task) []DailyTotal {
	groups := GroupBy(tasks, func(t store.Task) string { return t.Date })

	series := make([]DailyTotal, 0, len(groups))
	for _, g := range groups {
		d, err := time.Parse(store.DateFormat, g.Key)
		if err != nil {
			continue
		}
		series = append(series, DailyTotal{
			Date:  d,
			Hours: float64(TotalMinutes(g.Items)) / 60,
		})
	}
	return series
}
