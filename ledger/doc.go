// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the authoritative record of current votes.

# Contract

One vote per (session, poll) at any time:

	v, err := led.FindVote(sessionID, pollID)   // nil if none
	v, err := led.CreateVote(sessionID, pollID, optionID)
	err := led.DeleteVote(voteID)
	v, err := led.ReplaceVote(oldVoteID, sessionID, pollID, optionID)

CreateVote fails with ErrVoteExists when the session already holds a
vote on the poll. The invariant lives in the store's UNIQUE
(session_id, poll_id) constraint: two concurrent submissions from one
session are serialized by the database, one wins, the other surfaces
ErrVoteExists. No application-level locking.

# Changing a Vote

A changed vote is a delete plus an insert, never an update in place,
so the caller's decrement of the old option stays explicit. ReplaceVote
wraps the pair in a transaction to rule out the partial state where
the delete lands and the insert does not.

# Supporting Queries

OptionInPoll validates a (poll, option) reference before any mutation.
CountByOption aggregates the ledger for rebuilding the tally
projection at startup; the tally is derived from this ledger, never
the other way around.
*/
package ledger
