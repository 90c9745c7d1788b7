// Package stats contains statistics calculations and reporting.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tomato/internal/model"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// maxTableDays bounds the per-day table in text output.
const maxTableDays = 7

// Render writes the report in the requested format.
func Render(w io.Writer, report model.Report, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return RenderText(w, report)
	case FormatJSON:
		return RenderJSON(w, report)
	case FormatYAML:
		return RenderYAML(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// TotalLine formats the worked total as days, hours and minutes.
func TotalLine(b model.Breakdown) string {
	return fmt.Sprintf("Total time worked: %d days, %d hours, %d minutes", b.Days, b.Hours, b.Minutes)
}

// RenderText writes a human-readable report.
func RenderText(w io.Writer, report model.Report) error {
	lines := []string{
		TotalLine(report.Breakdown),
		report.Message,
		"",
		fmt.Sprintf("Sessions: %d (avg %.1f min)", report.Sessions, report.AverageWorkMinutes),
		fmt.Sprintf("Current streak: %d %s", report.CurrentStreak, plural(report.CurrentStreak, "day", "days")),
	}
	if len(report.Recent) > 0 {
		values := make([]float64, len(report.Recent))
		for i, v := range report.Recent {
			values[i] = float64(v)
		}
		lines = append(lines,
			fmt.Sprintf("Last %d days: [%s] 7-day avg %.1f min/day", len(values), Sparkline(values), report.RecentAverage))
	}

	days := report.Days
	if len(days) > maxTableDays {
		days = days[len(days)-maxTableDays:]
	}
	if len(days) > 0 {
		lines = append(lines, "")
		lines = append(lines, dayLines(days)...)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDays writes per-day totals as an aligned table.
func RenderDays(w io.Writer, days []model.DayTotal) error {
	for _, line := range dayLines(days) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func dayLines(days []model.DayTotal) []string {
	tbl := newTable(
		column{header: "Date"},
		column{header: "Sessions", right: true},
		column{header: "Work", right: true},
		column{header: "Break", right: true},
	)
	for _, d := range days {
		tbl.add(
			d.Date,
			strconv.Itoa(d.Sessions),
			strconv.FormatUint(d.WorkMinutes, 10),
			strconv.FormatUint(d.BreakMinutes, 10),
		)
	}
	return tbl.lines()
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, report model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// RenderYAML writes the report as YAML.
func RenderYAML(w io.Writer, report model.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
