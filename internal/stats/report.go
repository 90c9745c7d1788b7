// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/tomato/internal/model"
	"github.com/verte-zerg/tomato/internal/session"
)

const (
	dateLayout        = "2006-01-02"
	defaultRecentDays = 14
)

// BuildReport aggregates the session log for rendering.
func BuildReport(list session.List, cfg model.StatsConfig) model.Report {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	days := cfg.Days
	if days <= 0 {
		days = defaultRecentDays
	}

	total := list.TotalWorkMinutes()
	report := model.Report{
		TotalMinutes: total,
		Breakdown:    BreakdownMinutes(total),
		Sessions:     list.Len(),
		Message:      Encouragement(total),
		Days:         dailyTotals(list.Sessions, loc),
	}
	if report.Sessions > 0 {
		report.AverageWorkMinutes = float64(total) / float64(report.Sessions)
	}

	byDate := make(map[string]model.DayTotal, len(report.Days))
	for _, d := range report.Days {
		byDate[d.Date] = d
	}
	report.Recent = recentMinutes(byDate, now.In(loc), days)
	report.CurrentStreak = currentStreak(byDate, now.In(loc))

	if len(report.Recent) > 0 {
		values := make([]float64, len(report.Recent))
		for i, v := range report.Recent {
			values[i] = float64(v)
		}
		averages := MovingAverage(values, 7)
		report.RecentAverage = averages[len(averages)-1]
	}
	return report
}

func dailyTotals(sessions []session.Session, loc *time.Location) []model.DayTotal {
	byDate := map[string]*model.DayTotal{}
	for _, s := range sessions {
		date := s.Timestamp.In(loc).Format(dateLayout)
		entry, ok := byDate[date]
		if !ok {
			entry = &model.DayTotal{Date: date}
			byDate[date] = entry
		}
		entry.Sessions++
		entry.WorkMinutes += uint64(s.WorkTime)
		entry.BreakMinutes += uint64(s.BreakTime)
	}
	out := make([]model.DayTotal, 0, len(byDate))
	for _, entry := range byDate {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// recentMinutes returns worked minutes per day, oldest first, ending at now.
func recentMinutes(byDate map[string]model.DayTotal, now time.Time, days int) []uint64 {
	out := make([]uint64, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i-days+1).Format(dateLayout)
		out[i] = byDate[day].WorkMinutes
	}
	return out
}

// currentStreak counts consecutive days with a session, ending today or,
// when nothing was recorded today yet, yesterday.
func currentStreak(byDate map[string]model.DayTotal, now time.Time) int {
	day := now
	if _, ok := byDate[day.Format(dateLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		if _, ok := byDate[day.Format(dateLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
