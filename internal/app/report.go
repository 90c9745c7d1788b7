package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tomato/internal/model"
	"github.com/verte-zerg/tomato/internal/stats"
	"github.com/verte-zerg/tomato/internal/store"
)

// Report builds the stats report from the session log.
func (a *App) Report() model.Report {
	return stats.BuildReport(a.sessions.List(), model.StatsConfig{
		Now:      a.now(),
		Location: time.Local,
	})
}

// WriteStats renders the stats report to w in format.
func (a *App) WriteStats(w io.Writer, format string) error {
	return stats.Render(w, a.Report(), format)
}

// ExportResult describes an archive after an export.
type ExportResult struct {
	Sessions int
	Days     []model.DayTotal
}

// Export mirrors the session log into the SQLite archive at path and returns
// what the archive now holds.
func (a *App) Export(ctx context.Context, path string) (res ExportResult, err error) {
	st, err := store.Open(ctx, path)
	if err != nil {
		return ExportResult{}, err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close archive: %w", cerr)
		}
	}()

	sessions := a.sessions.List().Sessions
	if err := st.ReplaceSessions(ctx, sessions); err != nil {
		return ExportResult{}, err
	}
	days, err := st.DailyTotals(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to read archive totals: %w", err)
	}
	a.log.Info().Str("db", path).Int("sessions", len(sessions)).Int("days", len(days)).Msg("archive exported")
	return ExportResult{Sessions: len(sessions), Days: days}, nil
}
