package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS parks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		park_id     TEXT    NOT NULL,
		unit_code   TEXT    NOT NULL DEFAULT '',
		name        TEXT    NOT NULL,
		type        TEXT    NOT NULL DEFAULT '',
		region      TEXT    NOT NULL DEFAULT '',
		states      TEXT    NOT NULL DEFAULT '',
		lat         REAL,
		lng         REAL,
		nps_url     TEXT    NOT NULL DEFAULT '',
		visited     INTEGER NOT NULL DEFAULT 0,
		visit_date  TEXT    NOT NULL DEFAULT '',
		rating      REAL,
		stamp_count INTEGER NOT NULL DEFAULT 0,
		photo_count INTEGER NOT NULL DEFAULT 0,
		raw_json    TEXT    NOT NULL,
		exported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS parks_park_id ON parks(park_id)`,
	`CREATE TABLE IF NOT EXISTS visit_entries (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		park_row   INTEGER NOT NULL REFERENCES parks(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		visit_date TEXT    NOT NULL DEFAULT '',
		visit_note TEXT    NOT NULL DEFAULT '',
		rating     REAL,
		review     TEXT    NOT NULL DEFAULT '',
		notes      TEXT    NOT NULL DEFAULT '',
		blog_url   TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS stamps (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id INTEGER NOT NULL REFERENCES visit_entries(id) ON DELETE CASCADE,
		image    TEXT    NOT NULL,
		caption  TEXT    NOT NULL DEFAULT '',
		date     TEXT    NOT NULL DEFAULT '',
		featured INTEGER NOT NULL DEFAULT 0
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions (idempotent, checks if column exists first)
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"visit_entries", "blog_snippet", "TEXT NOT NULL DEFAULT ''"},
		{"parks", "hero_url", "TEXT NOT NULL DEFAULT ''"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("closing rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue any
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return nil // column already exists
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating columns: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}
