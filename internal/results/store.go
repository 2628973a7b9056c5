// Package results persists finished races in SQLite.
package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"kartrace/internal/race"
)

var ErrEmptyRace = errors.New("race has no entries")

type Store struct {
	*sql.DB
}

// Race is one recorded race and its classification.
type Race struct {
	ID        uuid.UUID
	Track     string
	Laps      int
	Duration  float64 // race seconds
	CreatedAt time.Time
	Entries   []race.Result
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS races (
			race_id           TEXT PRIMARY KEY,
			track             TEXT,
			laps              INTEGER,
			duration          DOUBLE,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS race_entries (
			race_id           TEXT,
			racer             TEXT,
			place             INTEGER,
			laps              INTEGER,
			finish_time       DOUBLE,
			progress          DOUBLE,
			FOREIGN KEY(race_id) REFERENCES races(race_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db}, nil
}

// RecordRace stores r and its entries in one transaction. A zero ID is
// replaced with a fresh one, which is returned.
func (s *Store) RecordRace(ctx context.Context, r Race) (uuid.UUID, error) {
	if len(r.Entries) == 0 {
		return uuid.Nil, ErrEmptyRace
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO races (race_id, track, laps, duration, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID.String(), r.Track, r.Laps, r.Duration, r.CreatedAt,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert race: %w", err)
	}
	for _, e := range r.Entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO race_entries (race_id, racer, place, laps, finish_time, progress) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID.String(), e.Name, e.Place, e.Laps, e.FinishTime, e.Progress,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert entry %s: %w", e.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return r.ID, nil
}

// RecentRaces returns up to limit races, newest first, with entries in
// classification order (finishers by place, then the rest).
func (s *Store) RecentRaces(ctx context.Context, limit int) ([]Race, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT race_id, track, laps, duration, created_at FROM races ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Race
	for rows.Next() {
		var (
			r  Race
			id string
		)
		if err := rows.Scan(&id, &r.Track, &r.Laps, &r.Duration, &r.CreatedAt); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("race id %q: %w", id, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Entries, err = s.entries(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) entries(ctx context.Context, id uuid.UUID) ([]race.Result, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT racer, place, laps, finish_time, progress FROM race_entries
		WHERE race_id = ?
		ORDER BY place = 0, place, progress DESC`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []race.Result
	for rows.Next() {
		var e race.Result
		if err := rows.Scan(&e.Name, &e.Place, &e.Laps, &e.FinishTime, &e.Progress); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
