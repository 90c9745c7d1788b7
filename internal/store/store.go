// Package store handles the SQLite session archive.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/verte-zerg/tomato/internal/model"
	"github.com/verte-zerg/tomato/internal/session"
	"github.com/verte-zerg/tomato/internal/store/migrations"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for archived sessions.
type Store struct {
	db *sql.DB
}

// gooseUp is a seam for testing migration failures.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Open opens or creates the SQLite database and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := gooseUp(ctx, s.db, "."); err != nil {
		return fmt.Errorf("failed to migrate archive: %w", err)
	}
	return nil
}

// ReplaceSessions swaps the archived sessions for sessions in one transaction.
func (s *Store) ReplaceSessions(ctx context.Context, sessions []session.Session) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear archive: %w", err)
	}

	if len(sessions) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO sessions (completed_at, work_minutes, break_minutes) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, sess := range sessions {
			if _, err = stmt.ExecContext(ctx, sess.Timestamp.Unix(), sess.WorkTime, sess.BreakTime); err != nil {
				return fmt.Errorf("failed to archive session: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

// ListSessions returns the archived sessions in insertion order.
func (s *Store) ListSessions(ctx context.Context) ([]session.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT completed_at, work_minutes, break_minutes FROM sessions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []session.Session
	for rows.Next() {
		var (
			completed int64
			work      uint32
			brk       uint32
		)
		if err := rows.Scan(&completed, &work, &brk); err != nil {
			return nil, err
		}
		out = append(out, session.NewAt(time.Unix(completed, 0), work, brk))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DailyTotals aggregates archived sessions per UTC calendar day.
func (s *Store) DailyTotals(ctx context.Context) ([]model.DayTotal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date(completed_at, 'unixepoch') AS day,
		COUNT(*), SUM(work_minutes), SUM(break_minutes)
		FROM sessions
		GROUP BY day
		ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.DayTotal
	for rows.Next() {
		var d model.DayTotal
		if err := rows.Scan(&d.Date, &d.Sessions, &d.WorkMinutes, &d.BreakMinutes); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
