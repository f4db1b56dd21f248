package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the episode tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS episodes (
		id           TEXT PRIMARY KEY,
		policy       TEXT NOT NULL,
		source       TEXT NOT NULL DEFAULT '',
		records      INTEGER NOT NULL DEFAULT 0,
		steps        INTEGER NOT NULL DEFAULT 0,
		total_reward REAL NOT NULL DEFAULT 0,
		started_at   TEXT NOT NULL,
		finished_at  TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS transitions (
		episode_id       TEXT NOT NULL REFERENCES episodes(id) ON DELETE CASCADE,
		step             INTEGER NOT NULL,
		pid              INTEGER NOT NULL DEFAULT 0,
		action           INTEGER NOT NULL,
		reward           REAL NOT NULL,
		observation      TEXT NOT NULL,
		next_observation TEXT NOT NULL,
		terminated       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (episode_id, step)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_episodes_started_at ON episodes(started_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
