// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Options
CREATE TABLE IF NOT EXISTS poll_option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    title TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id);

-- Votes: one per (session, poll), enforced by the store
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    poll_option_id TEXT NOT NULL REFERENCES poll_option(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (session_id, poll_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_session_poll ON vote(session_id, poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_poll_option ON vote(poll_id, poll_option_id);
`
