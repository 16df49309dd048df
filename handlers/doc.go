// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the livepoll API.

# Handler Types

Each handler is a struct with its dependencies injected via a
constructor:

  - PollHandler: Poll creation and retrieval
  - VotingHandler: Vote submission through the change processor
  - ResultsHandler: Live result streaming (SSE)

# Voting Flow

	POST /polls                  → CreatePoll (returns pollId)
	GET  /polls/{pollId}         → GetPoll (options with live counts)
	POST /polls/{pollId}/votes   → SubmitVote (sets sessionId cookie)
	GET  /polls/{pollId}/results → StreamResults (SSE live feed)

SubmitVote reads the optional signed sessionId cookie. On a first
vote it sets the cookie (30 days, HttpOnly, path /). A resubmission
of the same option returns 400 with a user-facing message; a changed
vote moves the count between options.

# Error Mapping

Processor errors map onto statuses:

	vote.ErrDuplicateVote    → 400
	vote.ErrInvalidReference → 400
	vote.ErrVoteConflict     → 409
	anything else            → 500 (logged)

# Live Results

StreamResults is a thin bridge from the fanout bus to Server-Sent
Events: subscribe, then forward each {pollOptionId, votes} event as a
`data:` frame until the client disconnects. No history is replayed.
*/
package handlers
