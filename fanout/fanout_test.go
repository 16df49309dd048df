// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fanout

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe("poll1")
	defer sub.Close()

	hub.Publish("poll1", Event{PollOptionID: "optA", Votes: 1})
	hub.Publish("poll1", Event{PollOptionID: "optB", Votes: 3})

	// Events arrive in publish order
	ev := <-sub.Events()
	if ev.PollOptionID != "optA" || ev.Votes != 1 {
		t.Errorf("First event = %+v, want optA/1", ev)
	}
	ev = <-sub.Events()
	if ev.PollOptionID != "optB" || ev.Votes != 3 {
		t.Errorf("Second event = %+v, want optB/3", ev)
	}
}

func TestNoHistoryForLateSubscribers(t *testing.T) {
	hub := NewHub()

	hub.Publish("poll1", Event{PollOptionID: "optA", Votes: 1})

	sub := hub.Subscribe("poll1")
	defer sub.Close()

	select {
	case ev := <-sub.Events():
		t.Errorf("Late subscriber received pre-subscription event: %+v", ev)
	case <-time.After(20 * time.Millisecond):
		// Expected: nothing published before subscribing is delivered
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	// Must not block or panic
	done := make(chan struct{})
	go func() {
		hub.Publish("nobody-listening", Event{PollOptionID: "optA", Votes: 1})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with zero subscribers")
	}
}

func TestCrossPollIsolation(t *testing.T) {
	hub := NewHub()

	sub1 := hub.Subscribe("poll1")
	defer sub1.Close()
	sub2 := hub.Subscribe("poll2")
	defer sub2.Close()

	hub.Publish("poll1", Event{PollOptionID: "optA", Votes: 1})

	ev := <-sub1.Events()
	if ev.PollOptionID != "optA" {
		t.Errorf("poll1 subscriber got %+v", ev)
	}

	select {
	case ev := <-sub2.Events():
		t.Errorf("poll2 subscriber received poll1 event: %+v", ev)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestMultipleSubscribers(t *testing.T) {
	hub := NewHub()

	sub1 := hub.Subscribe("poll1")
	defer sub1.Close()
	sub2 := hub.Subscribe("poll1")
	defer sub2.Close()

	hub.Publish("poll1", Event{PollOptionID: "optA", Votes: 2})

	for i, sub := range []*Subscription{sub1, sub2} {
		select {
		case ev := <-sub.Events():
			if ev.Votes != 2 {
				t.Errorf("Subscriber %d got %+v", i, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %d received nothing", i)
		}
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe("poll1")
	sub.Close()

	if n := hub.SubscriberCount("poll1"); n != 0 {
		t.Errorf("SubscriberCount() after Close = %d, want 0", n)
	}

	// Channel is closed, so a range loop would terminate
	if _, ok := <-sub.Events(); ok {
		t.Error("Events() channel still open after Close")
	}

	// Publishing after close must not panic
	hub.Publish("poll1", Event{PollOptionID: "optA", Votes: 1})

	// Double close is safe
	sub.Close()
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe("poll1")
	defer sub.Close()

	// Overfill the buffer without draining
	total := subscriberBuffer * 3
	for i := 0; i < total; i++ {
		hub.Publish("poll1", Event{PollOptionID: "optA", Votes: int64(i + 1)})
	}

	// Only the buffered events survive; overflow was dropped, and
	// Publish never blocked getting here
	received := 0
	for {
		select {
		case <-sub.Events():
			received++
		default:
			if received != subscriberBuffer {
				t.Errorf("Received %d events, want %d buffered", received, subscriberBuffer)
			}
			return
		}
	}
}

func TestSubscriberCount(t *testing.T) {
	hub := NewHub()

	if n := hub.SubscriberCount("poll1"); n != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", n)
	}

	sub1 := hub.Subscribe("poll1")
	sub2 := hub.Subscribe("poll1")

	if n := hub.SubscriberCount("poll1"); n != 2 {
		t.Errorf("SubscriberCount() = %d, want 2", n)
	}

	sub1.Close()
	sub2.Close()

	if n := hub.SubscriberCount("poll1"); n != 0 {
		t.Errorf("SubscriberCount() after closes = %d, want 0", n)
	}
}
