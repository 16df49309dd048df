// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/livepoll/fanout"
	"github.com/danielhkuo/livepoll/ledger"
	"github.com/danielhkuo/livepoll/session"
	"github.com/danielhkuo/livepoll/tally"
)

var (
	// ErrDuplicateVote is returned when a session resubmits the option
	// it already voted for. Not a fault: reported to the caller, no
	// state changes.
	ErrDuplicateVote = errors.New("session already voted for this option")

	// ErrInvalidReference is returned when the poll or option does not
	// exist, or the option belongs to a different poll.
	ErrInvalidReference = errors.New("poll or option not found")

	// ErrVoteConflict is returned when a concurrent submission from
	// the same session won the uniqueness race. The client may retry.
	ErrVoteConflict = errors.New("conflicting vote submission")
)

// Processor orchestrates a vote submission across the ledger, the
// tally projection, the fanout bus, and session identity. All handles
// are injected; the processor holds no global state.
type Processor struct {
	ledger   *ledger.Ledger
	tallies  *tally.Store
	hub      *fanout.Hub
	sessions *session.Manager
}

func NewProcessor(led *ledger.Ledger, tallies *tally.Store, hub *fanout.Hub, sessions *session.Manager) *Processor {
	return &Processor{ledger: led, tallies: tallies, hub: hub, sessions: sessions}
}

// Result is the outcome of a successful submission.
type Result struct {
	SessionID string
	Minted    bool // true when a new session token was issued
	Votes     int64
}

// SubmitVote records a session's choice on a poll.
//
// A first vote inserts a ledger entry and increments the option's
// tally. A changed vote swaps the ledger entry and moves one count
// from the old option to the new one, publishing both deltas.
// Resubmitting the same option fails with ErrDuplicateVote. An empty
// or unverifiable token counts as a first-ever vote and mints a fresh
// token, returned in the Result for the caller to hand back to the
// client.
//
// Fanout publishes happen after the ledger and tally mutations are
// durable and never fail the submission.
func (p *Processor) SubmitVote(pollID, optionID, token string) (Result, error) {
	ok, err := p.ledger.OptionInPoll(pollID, optionID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to validate option: %w", err)
	}
	if !ok {
		return Result{}, ErrInvalidReference
	}

	// An invalid signature is treated as no token at all: the voter
	// gets a fresh session rather than an error they can't act on.
	sessionID := ""
	if token != "" {
		if verified, err := p.sessions.Verify(token); err == nil {
			sessionID = verified
		}
	}

	var previous *ledgerVote
	if sessionID != "" {
		existing, err := p.ledger.FindVote(sessionID, pollID)
		if err != nil {
			return Result{}, err
		}
		if existing != nil {
			if existing.PollOptionID == optionID {
				return Result{}, ErrDuplicateVote
			}
			previous = &ledgerVote{id: existing.ID, optionID: existing.PollOptionID}
		}
	}

	minted := false
	if sessionID == "" {
		sessionID = p.sessions.Mint()
		minted = true
	}

	if previous != nil {
		if _, err := p.ledger.ReplaceVote(previous.id, sessionID, pollID, optionID); err != nil {
			if err == ledger.ErrVoteExists {
				return Result{}, ErrVoteConflict
			}
			return Result{}, err
		}

		oldCount := p.tallies.Increment(pollID, previous.optionID, -1)
		p.hub.Publish(pollID, fanout.Event{PollOptionID: previous.optionID, Votes: oldCount})
	} else {
		if _, err := p.ledger.CreateVote(sessionID, pollID, optionID); err != nil {
			if err == ledger.ErrVoteExists {
				return Result{}, ErrVoteConflict
			}
			return Result{}, err
		}
	}

	newCount := p.tallies.Increment(pollID, optionID, 1)
	p.hub.Publish(pollID, fanout.Event{PollOptionID: optionID, Votes: newCount})

	slog.Info("vote recorded",
		"poll_id", pollID,
		"option_id", optionID,
		"changed", previous != nil,
		"new_session", minted,
	)

	return Result{SessionID: sessionID, Minted: minted, Votes: newCount}, nil
}

type ledgerVote struct {
	id       string
	optionID string
}
