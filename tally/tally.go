// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "sync"

type key struct {
	pollID   string
	optionID string
}

// Store keeps a live vote count per (poll, option). It is a derived
// projection of the vote ledger: fast to read, rebuildable from the
// ledger at any time. All operations are atomic per key.
type Store struct {
	mu     sync.Mutex
	counts map[key]int64
}

func NewStore() *Store {
	return &Store{counts: make(map[key]int64)}
}

// Increment adjusts the count for (pollID, optionID) by delta and
// returns the post-update count. Returning the new count atomically
// lets callers publish an accurate snapshot without a read-then-publish
// race.
func (s *Store) Increment(pollID, optionID string, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{pollID, optionID}
	s.counts[k] += delta
	return s.counts[k]
}

// Get returns the current count for (pollID, optionID).
func (s *Store) Get(pollID, optionID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key{pollID, optionID}]
}

// Set overwrites the count for (pollID, optionID). Used when
// rebuilding the projection from the ledger at startup.
func (s *Store) Set(pollID, optionID string, count int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key{pollID, optionID}] = count
}

// Snapshot returns a copy of all option counts for one poll.
func (s *Store) Snapshot(pollID string) map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64)
	for k, c := range s.counts {
		if k.pollID == pollID {
			out[k.optionID] = c
		}
	}
	return out
}
