// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/models"
)

var ErrVoteExists = errors.New("vote already exists for this session and poll")

// Ledger is the authoritative store of current votes: at most one per
// (session, poll), enforced by the table's UNIQUE constraint rather
// than application locks.
type Ledger struct {
	db *sql.DB
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// FindVote returns the session's current vote on a poll, or nil if it
// has not voted.
func (l *Ledger) FindVote(sessionID, pollID string) (*models.Vote, error) {
	var v models.Vote
	err := l.db.QueryRow(`
		SELECT id, session_id, poll_id, poll_option_id, created_at
		FROM vote
		WHERE session_id = $1 AND poll_id = $2
	`, sessionID, pollID).Scan(&v.ID, &v.SessionID, &v.PollID, &v.PollOptionID, &v.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}
	return &v, nil
}

// CreateVote records a fresh vote. Fails with ErrVoteExists if the
// session already has a vote on this poll; callers change a vote with
// ReplaceVote, never by upsert, so the old option's decrement stays
// explicit.
func (l *Ledger) CreateVote(sessionID, pollID, optionID string) (models.Vote, error) {
	v := models.Vote{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		PollID:       pollID,
		PollOptionID: optionID,
		CreatedAt:    time.Now(),
	}

	_, err := l.db.Exec(`
		INSERT INTO vote (id, session_id, poll_id, poll_option_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.SessionID, v.PollID, v.PollOptionID, v.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrVoteExists
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}
	return v, nil
}

// DeleteVote removes a vote by id.
func (l *Ledger) DeleteVote(voteID string) error {
	_, err := l.db.Exec(`DELETE FROM vote WHERE id = $1`, voteID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

// ReplaceVote atomically swaps a session's vote for a new option:
// delete and insert run in one transaction, so a failed insert cannot
// strand the session with zero votes.
func (l *Ledger) ReplaceVote(oldVoteID, sessionID, pollID, optionID string) (models.Vote, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vote WHERE id = $1`, oldVoteID); err != nil {
		return models.Vote{}, fmt.Errorf("failed to delete old vote: %w", err)
	}

	v := models.Vote{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		PollID:       pollID,
		PollOptionID: optionID,
		CreatedAt:    time.Now(),
	}
	_, err = tx.Exec(`
		INSERT INTO vote (id, session_id, poll_id, poll_option_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.SessionID, v.PollID, v.PollOptionID, v.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrVoteExists
		}
		return models.Vote{}, fmt.Errorf("failed to insert replacement vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Vote{}, fmt.Errorf("failed to commit vote replacement: %w", err)
	}
	return v, nil
}

// OptionInPoll reports whether optionID exists and belongs to pollID.
func (l *Ledger) OptionInPoll(pollID, optionID string) (bool, error) {
	var exists bool
	err := l.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM poll_option
			WHERE id = $1 AND poll_id = $2
		)
	`, optionID, pollID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("failed to check option: %w", err)
	}
	return exists, nil
}

// OptionCount is one row of the ledger's per-option vote totals.
type OptionCount struct {
	PollID       string
	PollOptionID string
	Votes        int64
}

// CountByOption aggregates the ledger into per-(poll, option) totals.
// Used to rebuild the tally projection at startup.
func (l *Ledger) CountByOption() ([]OptionCount, error) {
	rows, err := l.db.Query(`
		SELECT poll_id, poll_option_id, COUNT(*)
		FROM vote
		GROUP BY poll_id, poll_option_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	var counts []OptionCount
	for rows.Next() {
		var c OptionCount
		if err := rows.Scan(&c.PollID, &c.PollOptionID, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// isUniqueViolation matches the uniqueness errors of both configured
// drivers (sqlite and postgres).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
