// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fanout broadcasts vote-count events to live subscribers.

# Usage

One Hub serves the whole process:

	hub := fanout.NewHub()

	sub := hub.Subscribe(pollID)
	defer sub.Close()
	for ev := range sub.Events() {
		// push ev to the client
	}

	hub.Publish(pollID, fanout.Event{PollOptionID: id, Votes: n})

# Delivery Guarantees

Best effort, at most once, ordered per publisher per poll:

  - No backlog or replay. A subscriber sees only events published
    during its subscription window.
  - Publish never blocks. A subscriber whose buffer is full misses
    the event; nothing is queued or retried.
  - Publishes with zero subscribers are dropped.

This is a live feed, not a log. Clients needing the current state
read the tally snapshot first and then follow the feed.

# Lifecycle

Close releases the subscription and closes the event channel, so a
range loop over Events() terminates. Close is idempotent.
*/
package fanout
