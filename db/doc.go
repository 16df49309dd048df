// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL avoids driver-specific defaults (CURRENT_TIMESTAMP instead of NOW())
so the same statements run on sqlite and postgres.

# Tables

The schema includes:

  - poll: Poll metadata
  - poll_option: Voting options per poll
  - vote: One vote per session per poll

# Relationships

	poll 1──* poll_option
	poll 1──* vote
	poll_option 1──* vote

All foreign keys use ON DELETE CASCADE; deleting a poll removes its
options and votes.

# Consistency

The central invariant - at most one vote per (session, poll) - is
enforced here with UNIQUE (session_id, poll_id) rather than with
application-level locking. Two racing submissions from one session
resolve in the store: one insert wins, the other fails the constraint.

# Indexes

Performance indexes on:

  - poll_option.poll_id
  - vote.(session_id, poll_id)
  - vote.(poll_id, poll_option_id)
*/
package db
