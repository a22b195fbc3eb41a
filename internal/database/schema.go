package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id                INTEGER PRIMARY KEY,
		name              TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL DEFAULT '',
		date              TIMESTAMPTZ NOT NULL,
		location          TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL DEFAULT '',
		max_attendees     INTEGER NOT NULL,
		current_attendees INTEGER NOT NULL DEFAULT 0,
		price             NUMERIC(10, 2) NOT NULL DEFAULT 0,
		image_url         TEXT NOT NULL DEFAULT '',
		is_active         BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id               TEXT PRIMARY KEY,
		event_id         INTEGER NOT NULL REFERENCES events (id),
		attendee_contact TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS registrations_event_id_idx ON registrations (event_id, created_at)`,
}

// Migrate creates the tables the catalog needs if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
