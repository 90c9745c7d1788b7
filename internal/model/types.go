// Package model defines shared data structures.
package model

import "time"

// StatsConfig defines options for stats output.
type StatsConfig struct {
	// Now anchors the recent-days window and the streak.
	Now time.Time
	// Location decides which calendar day a session belongs to.
	Location *time.Location
	// Days is the length of the recent-days window.
	Days int
}

// Breakdown splits a minute count into whole days, hours and minutes.
type Breakdown struct {
	Days    uint64 `json:"days" yaml:"days"`
	Hours   uint64 `json:"hours" yaml:"hours"`
	Minutes uint64 `json:"minutes" yaml:"minutes"`
}

// DayTotal aggregates the sessions completed on one calendar day.
type DayTotal struct {
	Date         string `json:"date" yaml:"date"`
	Sessions     int    `json:"sessions" yaml:"sessions"`
	WorkMinutes  uint64 `json:"work_minutes" yaml:"work_minutes"`
	BreakMinutes uint64 `json:"break_minutes" yaml:"break_minutes"`
}

// Report summarizes the session log for display.
type Report struct {
	TotalMinutes       uint64     `json:"total_minutes" yaml:"total_minutes"`
	Breakdown          Breakdown  `json:"breakdown" yaml:"breakdown"`
	Sessions           int        `json:"sessions" yaml:"sessions"`
	AverageWorkMinutes float64    `json:"average_work_minutes" yaml:"average_work_minutes"`
	CurrentStreak      int        `json:"current_streak_days" yaml:"current_streak_days"`
	RecentAverage      float64    `json:"recent_daily_average" yaml:"recent_daily_average"`
	Recent             []uint64   `json:"recent_days" yaml:"recent_days"`
	Days               []DayTotal `json:"days" yaml:"days"`
	Message            string     `json:"message" yaml:"message"`
}
