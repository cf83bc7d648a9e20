package storage

import (
	"database/sql"
	"fmt"
)

// migration is one forward-only, idempotent schema step. Each migration
// must be safe to re-run: check before ALTER, CREATE ... IF NOT EXISTS.
type migration struct {
	name string
	run  func(*sql.DB) error
}

// migrations lists every schema step in order. New steps are appended,
// never edited or reordered, so a store opened against an older schema
// catches up deterministically.
var migrations = []migration{
	{
		name: "001_create_memory_entries",
		run: func(db *sql.DB) error {
			_, err := db.Exec(`
				CREATE TABLE IF NOT EXISTS memory_entries (
					id TEXT PRIMARY KEY,
					category TEXT NOT NULL,
					key TEXT NOT NULL,
					value TEXT NOT NULL,
					entity_type TEXT NOT NULL DEFAULT '',
					entity_id TEXT NOT NULL DEFAULT '',
					tags TEXT NOT NULL DEFAULT '[]',
					timestamp DATETIME NOT NULL,
					provenance TEXT NOT NULL DEFAULT '{}',
					embedding TEXT
				);
				CREATE INDEX IF NOT EXISTS idx_memory_category ON memory_entries(category);
				CREATE INDEX IF NOT EXISTS idx_memory_entity ON memory_entries(entity_type, entity_id);
				CREATE INDEX IF NOT EXISTS idx_memory_timestamp ON memory_entries(timestamp);
				CREATE INDEX IF NOT EXISTS idx_memory_key ON memory_entries(key);
			`)
			return err
		},
	},
	{
		// Legacy installs stored a bare "code" column for execution
		// records before code_generated/file_locations were folded into
		// the JSON value blob. This step adds the column (if missing)
		// and backfills it so older readers relying on the raw column
		// keep working during the transition window.
		name: "002_add_legacy_code_column",
		run: func(db *sql.DB) error {
			has, err := columnExists(db, "memory_entries", "code")
			if err != nil {
				return err
			}
			if !has {
				if _, err := db.Exec(`ALTER TABLE memory_entries ADD COLUMN code TEXT`); err != nil {
					return err
				}
			}
			_, err = db.Exec(`
				UPDATE memory_entries
				SET code = json_extract(value, '$.code_generated')
				WHERE code IS NULL AND json_extract(value, '$.code_generated') IS NOT NULL
			`)
			return err
		},
	},
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// runMigrations applies every pending migration, tracked in a
// schema_migrations table keyed by name so reruns are no-ops.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := map[string]bool{}
	rows, err := db.Query(`SELECT name FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		applied[name] = true
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}
		if err := m.run(db); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (name) VALUES (?)`, m.name); err != nil {
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}
	}
	return nil
}
