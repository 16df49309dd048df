// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally keeps live per-option vote counts.

# Counter Semantics

Increment is the core operation:

	n := tallies.Increment(pollID, optionID, +1)

It adjusts the count and returns the post-update value in one step,
so the caller can publish `{option, n}` without racing a separate
read. delta is +1 for a new vote, -1 when a changed vote releases
its old option.

Counts never go negative in practice: a decrement only ever follows
the matching increment for the same key, guaranteed by the ledger's
one-vote-per-(session, poll) constraint.

# Derived Data

The store is a cache of the vote ledger, not an authority. On startup
it is rebuilt from the ledger:

	for _, c := range counts {
		tallies.Set(c.PollID, c.PollOptionID, c.Votes)
	}

Snapshot(pollID) serves the poll read endpoint.
*/
package tally
