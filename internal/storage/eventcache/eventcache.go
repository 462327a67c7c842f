// Package eventcache stores solved rise, transit and set events in SQLite so
// repeated requests for the same observer, body and date skip the solver.
package eventcache

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/chrissnell/almanac/pkg/migrate"
	"github.com/chrissnell/almanac/pkg/riseset"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Key identifies one body seen from one place. Coordinates are part of the
// key so moving a named observer never serves stale events.
type Key struct {
	Observer  string
	Latitude  float64
	Longitude float64
	Body      string
}

// Cache is an SQLite-backed event cache. Days are stored as UTC calendar
// dates.
type Cache struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// Open opens or creates the cache database at path and migrates it.
func Open(ctx context.Context, path string, logger *zap.SugaredLogger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event cache: %w", err)
	}
	// SQLite serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping event cache: %w", err)
	}

	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate.NewMigrator(db, migrate.NewFSProvider(sub, ""), logger).MigrateUp(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate event cache: %w", err)
	}

	logger.Infow("event cache opened", "path", path)
	return &Cache{db: db, logger: logger}, nil
}

func dayKey(day time.Time) string {
	return day.Format(time.DateOnly)
}

// Get returns the cached events for the calendar date of day. The boolean
// reports whether the day has been computed at all; a computed day may hold
// no events.
func (c *Cache) Get(ctx context.Context, key Key, day time.Time) ([]riseset.Event, bool, error) {
	d := dayKey(day)

	var computedAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT computed_at FROM days WHERE observer = ? AND latitude = ? AND longitude = ? AND body = ? AND day = ?`,
		key.Observer, key.Latitude, key.Longitude, key.Body, d).Scan(&computedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cached day: %w", err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT ts, kind FROM events WHERE observer = ? AND latitude = ? AND longitude = ? AND body = ? AND day = ? ORDER BY ts`,
		key.Observer, key.Latitude, key.Longitude, key.Body, d)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cached events: %w", err)
	}
	defer rows.Close()

	events := []riseset.Event{}
	for rows.Next() {
		var ts int64
		var kind string
		if err := rows.Scan(&ts, &kind); err != nil {
			return nil, false, fmt.Errorf("failed to scan cached event: %w", err)
		}
		k, err := riseset.ParseKind(kind)
		if err != nil {
			return nil, false, err
		}
		events = append(events, riseset.Event{Time: time.Unix(0, ts).UTC(), Kind: k})
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return events, true, nil
}

// Put replaces the cached events for the calendar date of day.
func (c *Cache) Put(ctx context.Context, key Key, day time.Time, events []riseset.Event) error {
	d := dayKey(day)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	args := []any{key.Observer, key.Latitude, key.Longitude, key.Body, d}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM events WHERE observer = ? AND latitude = ? AND longitude = ? AND body = ? AND day = ?`, args...); err != nil {
		return fmt.Errorf("failed to clear cached events: %w", err)
	}
	for _, e := range events {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events (observer, latitude, longitude, body, day, ts, kind) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			append(args, e.Time.UnixNano(), e.Kind.String())...); err != nil {
			return fmt.Errorf("failed to insert cached event: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO days (observer, latitude, longitude, body, day, computed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		append(args, time.Now().Unix())...); err != nil {
		return fmt.Errorf("failed to record cached day: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cached day: %w", err)
	}
	c.logger.Debugw("cached events", "observer", key.Observer, "body", key.Body, "day", d, "events", len(events))
	return nil
}

// Purge removes every cached day computed before cutoff.
func (c *Cache) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM events WHERE EXISTS (
			SELECT 1 FROM days d
			WHERE d.observer = events.observer AND d.latitude = events.latitude
			  AND d.longitude = events.longitude AND d.body = events.body
			  AND d.day = events.day AND d.computed_at < ?)`, cutoff.Unix()); err != nil {
		return 0, fmt.Errorf("failed to purge events: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM days WHERE computed_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge days: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
