package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Events,
	2: migrationV2EventDateIndex,
}

// latestVersion is the schema version this build expects.
func latestVersion() int { return len(migrationsSQL) }

// migrationV1Events creates the events table.
//
// Date fields are stored as the raw Persian year/month/day and clock
// values. Nothing is validated on the way back out.
const migrationV1Events = `
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	year        INTEGER NOT NULL,
	month       INTEGER NOT NULL,
	day         INTEGER NOT NULL,
	hour        INTEGER NOT NULL DEFAULT 0,
	minute      INTEGER NOT NULL DEFAULT 0,
	second      INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);
`

// migrationV2EventDateIndex supports the year/month listing filter.
const migrationV2EventDateIndex = `
CREATE INDEX IF NOT EXISTS idx_events_date
	ON events (year, month, day, hour, minute, second);
`
