// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fanout

import (
	"log/slog"
	"sync"
)

// subscriberBuffer is the per-subscriber channel capacity. A
// subscriber that falls further behind than this starts losing
// events (at-most-once delivery, no redelivery).
const subscriberBuffer = 16

// Event is a vote-count change on one poll option.
type Event struct {
	PollOptionID string `json:"pollOptionId"`
	Votes        int64  `json:"votes"`
}

// Hub is an in-memory broadcast channel keyed by poll id. There is no
// backlog: late subscribers receive nothing published before they
// subscribed, and publishes with zero subscribers are dropped.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a listener for one poll's events. The caller
// must Close() the subscription when done to release it.
func (h *Hub) Subscribe(pollID string) *Subscription {
	sub := &Subscription{
		hub:    h,
		pollID: pollID,
		ch:     make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[pollID] == nil {
		h.subs[pollID] = make(map[*Subscription]struct{})
	}
	h.subs[pollID][sub] = struct{}{}
	return sub
}

// Publish delivers ev to every live subscriber of pollID. It never
// blocks: a subscriber whose buffer is full misses the event.
func (h *Hub) Publish(pollID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[pollID] {
		select {
		case sub.ch <- ev:
		default:
			slog.Debug("fanout subscriber lagging, event dropped",
				"poll_id", pollID, "option_id", ev.PollOptionID)
		}
	}
}

// SubscriberCount reports the number of live subscribers for a poll.
func (h *Hub) SubscriberCount(pollID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[pollID])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[sub.pollID]
	if set == nil {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.pollID)
	}
	// Closing under the write lock is safe: Publish sends while
	// holding the read lock, so no send can race the close.
	close(sub.ch)
}

// Subscription is one listener's live feed of a poll's events.
type Subscription struct {
	hub    *Hub
	pollID string
	ch     chan Event
	once   sync.Once
}

// Events returns the receive channel. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}
