// Package history persists daily emission entries in a local SQLite
// database. It is a plain I/O collaborator: the engine's invariants do not
// depend on it, and its queries feed the forecast, streak, and summary
// surfaces.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

// DateLayout is the canonical date encoding for entries; one entry per day.
const DateLayout = "2006-01-02"

// Entry is one logged day.
type Entry struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Readings engine.Readings `json:"readings"`
	TotalKg  float64         `json:"total_kg"`
	LoggedAt time.Time       `json:"logged_at"`
}

// Store wraps the SQLite history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &Store{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL UNIQUE,
  readings TEXT NOT NULL,
  total_kg REAL NOT NULL,
  logged_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

// newID mints a ULID for an entry row.
func newID(now time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0) //nolint:gosec // IDs, not secrets
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}

// Save upserts the entry for date (one row per day), returning the stored
// entry. Saving an existing date overwrites its readings and total but
// keeps the original row ID.
func (s *Store) Save(ctx context.Context, date time.Time, readings engine.Readings, totalKg float64) (Entry, error) {
	encoded, err := json.Marshal(readings)
	if err != nil {
		return Entry{}, fmt.Errorf("encode readings: %w", err)
	}

	now := time.Now().UTC()
	entry := Entry{
		ID:       newID(now),
		Date:     date.Format(DateLayout),
		Readings: readings,
		TotalKg:  totalKg,
		LoggedAt: now,
	}

	const stmt = `
INSERT INTO entries (id, date, readings, total_kg, logged_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  readings=excluded.readings,
  total_kg=excluded.total_kg,
  logged_at=excluded.logged_at;
`
	if _, err := s.db.ExecContext(ctx, stmt,
		entry.ID, entry.Date, string(encoded), entry.TotalKg,
		now.Format(time.RFC3339Nano)); err != nil {
		return Entry{}, fmt.Errorf("save entry: %w", err)
	}

	// The upsert may have kept an earlier row's ID.
	stored, err := s.ByDate(ctx, date)
	if err != nil {
		return Entry{}, err
	}
	return stored, nil
}

// ByDate fetches the entry for one date. Returns sql.ErrNoRows wrapped when
// the date has no entry.
func (s *Store) ByDate(ctx context.Context, date time.Time) (Entry, error) {
	const query = `SELECT id, date, readings, total_kg, logged_at FROM entries WHERE date = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, query, date.Format(DateLayout)))
}

// Range returns entries with from <= date <= to, ascending by date.
func (s *Store) Range(ctx context.Context, from, to time.Time) ([]Entry, error) {
	const query = `
SELECT id, date, readings, total_kg, logged_at FROM entries
WHERE date >= ? AND date <= ? ORDER BY date ASC`
	rows, err := s.db.QueryContext(ctx, query,
		from.Format(DateLayout), to.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// All returns every entry ascending by date.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	return s.Range(ctx,
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
}

// DailyTotals returns up to limit most recent daily totals in ascending
// date order, shaped for the forecaster.
func (s *Store) DailyTotals(ctx context.Context, limit int) ([]float64, error) {
	if limit < 1 {
		limit = 1
	}
	const query = `
SELECT total_kg FROM (
  SELECT date, total_kg FROM entries ORDER BY date DESC LIMIT ?
) ORDER BY date ASC`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var totals []float64
	for rows.Next() {
		var total float64
		if err := rows.Scan(&total); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

// TotalFor returns the stored total for a date and whether one exists.
func (s *Store) TotalFor(ctx context.Context, date time.Time) (float64, bool, error) {
	entry, err := s.ByDate(ctx, date)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return entry.TotalKg, true, nil
}

// Streak counts consecutive logged days ending at date (inclusive),
// walking backwards until the first gap.
func (s *Store) Streak(ctx context.Context, date time.Time) (int, error) {
	streak := 0
	current := date
	for {
		_, ok, err := s.exists(ctx, current)
		if err != nil {
			return 0, err
		}
		if !ok {
			return streak, nil
		}
		streak++
		current = current.AddDate(0, 0, -1)
	}
}

func (s *Store) exists(ctx context.Context, date time.Time) (string, bool, error) {
	const query = `SELECT id FROM entries WHERE date = ?`
	var id string
	err := s.db.QueryRowContext(ctx, query, date.Format(DateLayout)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("check entry: %w", err)
	}
	return id, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanOne(row *sql.Row) (Entry, error) {
	entry, err := s.scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("entry: %w", err)
	}
	return entry, err
}

func (s *Store) scanRow(row rowScanner) (Entry, error) {
	var (
		entry    Entry
		readings string
		loggedAt string
	)
	if err := row.Scan(&entry.ID, &entry.Date, &readings, &entry.TotalKg, &loggedAt); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(readings), &entry.Readings); err != nil {
		return Entry{}, fmt.Errorf("decode readings for %s: %w", entry.Date, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, loggedAt); err == nil {
		entry.LoggedAt = ts
	}
	return entry, nil
}
