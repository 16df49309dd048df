// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote implements the vote submission state machine.

# Submission Flow

SubmitVote runs the whole write path for one request:

 1. Validate that the option exists and belongs to the poll.
 2. If the request carries a valid session token, look up the
    session's current vote. Same option → ErrDuplicateVote. Different
    option → the old vote will be replaced.
 3. Mint a session token if the request had none (or an invalid one).
 4. Write the ledger: create, or delete-plus-create in one
    transaction for a changed vote.
 5. Move the tally: -1 on the released option, +1 on the chosen one,
    publishing each new count on the fanout bus.

The response is complete once ledger and tally are updated; fanout
delivery is fire-and-forget and cannot fail a vote.

# Errors

  - ErrDuplicateVote: same choice resubmitted, nothing changed
  - ErrInvalidReference: unknown poll/option pair, nothing changed
  - ErrVoteConflict: a concurrent submission from the same session won
    the store's uniqueness race; safe to retry

Everything else is an infrastructure failure wrapped with context.

# Concurrency

No locks here. Same-session races land on the ledger's UNIQUE
constraint; distinct-session counting relies on the tally store's
per-key atomicity.
*/
package vote
