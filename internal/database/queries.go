package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zapponejosh/parsical/internal/calendar"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidEvent is returned when an event cannot be stored as given.
	ErrInvalidEvent = errors.New("invalid event")
)

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent reads one events row. The stored fields are taken as they are:
// callers check At.IsValid() before trusting them.
func scanEvent(row rowScanner) (*Event, error) {
	var (
		e                    Event
		year, month, day     int
		hour, minute, second int
		createdAt            string
	)
	if err := row.Scan(&e.ID, &e.Title, &year, &month, &day, &hour, &minute, &second, &createdAt); err != nil {
		return nil, err
	}
	e.At = calendar.DateTimeFromUncheckedParts(year, month, day, hour, minute, second)
	e.CreatedAt = parseTimestamp(createdAt)
	return &e, nil
}

const eventColumns = `id, title, year, month, day, hour, minute, second, created_at`

// =============================================================================
// Event Queries
// =============================================================================

// CreateEvent stores e under a new UUID and fills in ID and CreatedAt.
// The date-time must be valid.
func (db *DB) CreateEvent(ctx context.Context, e *Event) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		return tx.insertEvent(ctx, e)
	})
}

// ImportEvents stores every event in one transaction. If any event is
// rejected nothing is stored, and the error names its position.
func (db *DB) ImportEvents(ctx context.Context, events []*Event) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		for i, e := range events {
			if err := tx.insertEvent(ctx, e); err != nil {
				return fmt.Errorf("event %d (%q): %w", i, e.Title, err)
			}
		}
		return nil
	})
}

func (tx *Tx) insertEvent(ctx context.Context, e *Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if !e.At.IsValid() {
		return fmt.Errorf("%w: %s is not a valid date and time", ErrInvalidEvent, e.At)
	}

	id := uuid.NewString()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, title, year, month, day, hour, minute, second)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, e.Title, e.At.Year(), e.At.Month(), e.At.Day(), e.At.Hour(), e.At.Minute(), e.At.Second())
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	var createdAt string
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM events WHERE id = ?`, id).Scan(&createdAt); err != nil {
		return fmt.Errorf("read back event: %w", err)
	}
	e.ID = id
	e.CreatedAt = parseTimestamp(createdAt)
	return nil
}

// GetEvent retrieves an event by ID.
// Returns ErrNotFound if no event has that ID.
func (db *DB) GetEvent(ctx context.Context, id string) (*Event, error) {
	row := db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query event: %w", err)
	}
	return e, nil
}

// ListEvents returns events in calendar order, optionally limited to one
// year or one month of a year.
func (db *DB) ListEvents(ctx context.Context, f EventFilter) ([]*Event, error) {
	var (
		where []string
		args  []any
	)
	if f.Year != 0 {
		where = append(where, "year = ?")
		args = append(args, f.Year)
	}
	if f.Month != 0 {
		where = append(where, "month = ?")
		args = append(args, f.Month)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY year, month, day, hour, minute, second, id LIMIT ?`

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// DeleteEvent removes an event.
// Returns ErrNotFound if no event has that ID.
func (db *DB) DeleteEvent(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountEvents returns the number of stored events.
func (db *DB) CountEvents(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
