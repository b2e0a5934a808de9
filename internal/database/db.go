// Package database stores calendar events in SQLite.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// memoryPath opens a private in-memory store.
const memoryPath = ":memory:"

// ErrSchemaOutdated means the store has not been migrated to the version
// this build expects.
var ErrSchemaOutdated = errors.New("event schema outdated")

// DB is the event store.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Config holds database configuration options.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a single-connection setup. SQLite allows one writer,
// and a private :memory: store only exists on its own connection.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// dsn adds the pragmas the event store runs with. File stores use WAL so
// the CLI importer and the server can share one file.
func dsn(path string) string {
	if path == memoryPath {
		return path + "?_busy_timeout=5000"
	}
	return path + "?_journal_mode=WAL&_busy_timeout=5000"
}

// Open connects to the event store at cfg.Path, creating its directory
// when needed. Call Migrate before using it.
func Open(cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Path != memoryPath {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create event store directory: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite3", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping event store: %w", err)
	}

	logger.Info("event store opened", slog.String("path", cfg.Path))
	return &DB{DB: sqlDB, logger: logger}, nil
}

// Close closes the event store.
func (db *DB) Close() error {
	db.logger.Debug("closing event store")
	return db.DB.Close()
}

// Status is what Health reports about a working store.
type Status struct {
	SchemaVersion int `json:"schema_version"`
	Events        int `json:"events"`
}

// Health checks that the events table is present and fully migrated.
func (db *DB) Health(ctx context.Context) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var st Status
	var tables int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'events'`,
	).Scan(&tables)
	if err != nil {
		return st, fmt.Errorf("inspect event store: %w", err)
	}
	if tables == 0 {
		return st, fmt.Errorf("%w: events table missing", ErrSchemaOutdated)
	}

	if st.SchemaVersion, err = db.schemaVersion(ctx); err != nil {
		return st, err
	}
	if st.SchemaVersion < latestVersion() {
		return st, fmt.Errorf("%w: at version %d, want %d", ErrSchemaOutdated, st.SchemaVersion, latestVersion())
	}

	if st.Events, err = db.CountEvents(ctx); err != nil {
		return st, err
	}
	return st, nil
}

func (db *DB) schemaVersion(ctx context.Context) (int, error) {
	var v int
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// Migrate brings the event schema up to date and returns how many
// migrations it applied. Migrations run in version order inside one
// transaction, so a failure leaves the schema untouched.
func (db *DB) Migrate(ctx context.Context) (int, error) {
	applied := 0
	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version    INTEGER PRIMARY KEY,
				applied_at TEXT NOT NULL DEFAULT (datetime('now'))
			)`); err != nil {
			return fmt.Errorf("create schema_migrations: %w", err)
		}

		var current int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}

		for version := current + 1; version <= latestVersion(); version++ {
			stmt, ok := migrationsSQL[version]
			if !ok {
				return fmt.Errorf("migration %d not found", version)
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
				return fmt.Errorf("record migration %d: %w", version, err)
			}
			db.logger.Info("event schema migrated", slog.Int("version", version))
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// Tx is a transaction on the event store.
type Tx struct {
	*sql.Tx
}

// WithTx runs fn in a transaction, committing only when fn succeeds.
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	tx := &Tx{sqlTx}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
