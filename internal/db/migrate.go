package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate replays every statement on each open. Statements are written to
// be re-runnable; an ALTER that adds a column an older store already has
// is skipped.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		_, err := db.Exec(stmt)
		if err == nil || isDuplicateColumn(err) {
			continue
		}
		return fmt.Errorf("migration %d: %w", i, err)
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	return strings.Contains(err.Error(), "duplicate column name")
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS packages (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subpackages (
		id          TEXT PRIMARY KEY,
		package_id  TEXT NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subpackages_package ON subpackages(package_id)`,

	`CREATE TABLE IF NOT EXISTS services (
		id                   TEXT PRIMARY KEY,
		subpackage_id        TEXT NOT NULL REFERENCES subpackages(id) ON DELETE CASCADE,
		name                 TEXT NOT NULL,
		total_hours          REAL NOT NULL DEFAULT 0,
		planned_start        TEXT,
		planned_end          TEXT,
		planned_daily_series TEXT,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_services_subpackage ON services(subpackage_id)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		id          TEXT NOT NULL,
		service_id  TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		title       TEXT NOT NULL DEFAULT '',
		weight      REAL NOT NULL DEFAULT 0 CHECK(weight >= 0 AND weight <= 100),
		progress    REAL NOT NULL DEFAULT 0 CHECK(progress >= 0 AND progress <= 100),
		order_index INTEGER NOT NULL DEFAULT 0,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (service_id, id)
	)`,

	// Raw payloads are stored verbatim; the curve normalizer interprets them on read.
	`CREATE TABLE IF NOT EXISTS progress_events (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		service_id  TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		event_id    TEXT,
		payload     TEXT NOT NULL,
		received_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_progress_events_service ON progress_events(service_id)`,

	`CREATE TABLE IF NOT EXISTS progress_overlays (
		service_id  TEXT PRIMARY KEY REFERENCES services(id) ON DELETE CASCADE,
		percent     REAL NOT NULL CHECK(percent >= 0 AND percent <= 100),
		source      TEXT NOT NULL CHECK(source IN ('manual','checklist')),
		recorded_at TEXT NOT NULL
	)`,

	// Short human-facing service codes, e.g. "CIV-012".
	`ALTER TABLE services ADD COLUMN code TEXT NOT NULL DEFAULT ''`,
}
