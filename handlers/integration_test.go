// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/livepoll/fanout"
	"github.com/danielhkuo/livepoll/ledger"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/session"
	"github.com/danielhkuo/livepoll/tally"
	"github.com/danielhkuo/livepoll/testutil"
	"github.com/danielhkuo/livepoll/vote"
)

// setupTestServer wires the handlers onto a mux directly, mirroring
// the route patterns the router registers.
func setupTestServer(t *testing.T) (*httptest.Server, *fanout.Hub) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	tallies := tally.NewStore()
	hub := fanout.NewHub()

	sessions := session.NewManager(testutil.GetTestConfig().SessionSecret)
	processor := vote.NewProcessor(ledger.New(conn), tallies, hub, sessions)

	pollHandler := NewPollHandler(conn, tallies)
	votingHandler := NewVotingHandler(processor)
	resultsHandler := NewResultsHandler(conn, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /polls", pollHandler.CreatePoll)
	mux.HandleFunc("GET /polls/{pollId}", pollHandler.GetPoll)
	mux.HandleFunc("POST /polls/{pollId}/votes", votingHandler.SubmitVote)
	mux.HandleFunc("GET /polls/{pollId}/results", resultsHandler.StreamResults)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, hub
}

func postJSON(t *testing.T, url string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(body)
	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// TestVotingFlow walks the whole lifecycle over real HTTP: create a
// poll, vote anonymously, get a session cookie, fail to resubmit,
// change the vote, and read the final counts back.
func TestVotingFlow(t *testing.T) {
	server, _ := setupTestServer(t)

	// Create a poll
	resp := postJSON(t, server.URL+"/polls", models.CreatePollRequest{
		Title:   "Best color?",
		Options: []string{"Red", "Blue"},
	}, nil)
	if resp.StatusCode != 201 {
		t.Fatalf("Create poll status = %d, want 201", resp.StatusCode)
	}
	var created models.CreatePollResponse
	decodeBody(t, resp, &created)

	// Read it back to learn the option ids
	resp, err := http.Get(server.URL + "/polls/" + created.PollID)
	if err != nil {
		t.Fatalf("Get poll failed: %v", err)
	}
	var pollResp models.GetPollResponse
	decodeBody(t, resp, &pollResp)
	if len(pollResp.Poll.Options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(pollResp.Poll.Options))
	}
	// Options come back ordered by id, so find them by title
	var red, blue string
	for _, opt := range pollResp.Poll.Options {
		switch opt.Title {
		case "Red":
			red = opt.ID
		case "Blue":
			blue = opt.ID
		}
	}

	// First vote, no cookie yet
	votesURL := server.URL + "/polls/" + created.PollID + "/votes"
	resp = postJSON(t, votesURL, models.SubmitVoteRequest{PollOptionID: red}, nil)
	if resp.StatusCode != 201 {
		t.Fatalf("First vote status = %d, want 201", resp.StatusCode)
	}

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == models.SessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Expected sessionId cookie on first vote")
	}
	var voteResp models.SubmitVoteResponse
	decodeBody(t, resp, &voteResp)
	if voteResp.Votes != 1 {
		t.Errorf("First vote count = %d, want 1", voteResp.Votes)
	}

	// Resubmitting the same option is rejected
	resp = postJSON(t, votesURL, models.SubmitVoteRequest{PollOptionID: red}, cookie)
	if resp.StatusCode != 400 {
		t.Errorf("Duplicate vote status = %d, want 400", resp.StatusCode)
	}
	var errResp models.ErrorResponse
	decodeBody(t, resp, &errResp)
	if errResp.Message != "You already voted in this poll." {
		t.Errorf("Duplicate vote message = %q", errResp.Message)
	}

	// Changing to the other option succeeds and keeps the session
	resp = postJSON(t, votesURL, models.SubmitVoteRequest{PollOptionID: blue}, cookie)
	if resp.StatusCode != 201 {
		t.Fatalf("Changed vote status = %d, want 201", resp.StatusCode)
	}
	decodeBody(t, resp, &voteResp)
	if voteResp.SessionID != cookie.Value {
		t.Error("Changed vote should keep the original session")
	}

	// The poll now shows the moved count
	resp, err = http.Get(server.URL + "/polls/" + created.PollID)
	if err != nil {
		t.Fatalf("Get poll failed: %v", err)
	}
	decodeBody(t, resp, &pollResp)
	counts := make(map[string]int64)
	for _, opt := range pollResp.Poll.Options {
		counts[opt.ID] = opt.Votes
	}
	if counts[red] != 0 {
		t.Errorf("Red votes = %d, want 0", counts[red])
	}
	if counts[blue] != 1 {
		t.Errorf("Blue votes = %d, want 1", counts[blue])
	}
}

// TestVotingFlowWithLiveResults votes while a results stream is open
// and checks the events arrive in submission order.
func TestVotingFlowWithLiveResults(t *testing.T) {
	server, hub := setupTestServer(t)

	resp := postJSON(t, server.URL+"/polls", models.CreatePollRequest{
		Title:   "Lunch?",
		Options: []string{"Pizza", "Sushi"},
	}, nil)
	var created models.CreatePollResponse
	decodeBody(t, resp, &created)

	resp, err := http.Get(server.URL + "/polls/" + created.PollID)
	if err != nil {
		t.Fatalf("Get poll failed: %v", err)
	}
	var pollResp models.GetPollResponse
	decodeBody(t, resp, &pollResp)
	var pizza, sushi string
	for _, opt := range pollResp.Poll.Options {
		switch opt.Title {
		case "Pizza":
			pizza = opt.ID
		case "Sushi":
			sushi = opt.ID
		}
	}

	stream, err := http.Get(server.URL + "/polls/" + created.PollID + "/results")
	if err != nil {
		t.Fatalf("Failed to open results stream: %v", err)
	}
	defer stream.Body.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount(created.PollID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Stream never subscribed to the hub")
		}
		time.Sleep(5 * time.Millisecond)
	}

	votesURL := server.URL + "/polls/" + created.PollID + "/votes"
	resp = postJSON(t, votesURL, models.SubmitVoteRequest{PollOptionID: pizza}, nil)
	resp.Body.Close()
	resp = postJSON(t, votesURL, models.SubmitVoteRequest{PollOptionID: sushi}, nil)
	resp.Body.Close()

	reader := bufio.NewReader(stream.Body)

	first := readSSEEvent(t, reader)
	if first.PollOptionID != pizza || first.Votes != 1 {
		t.Errorf("First event = %+v, want {%s 1}", first, pizza)
	}
	second := readSSEEvent(t, reader)
	if second.PollOptionID != sushi || second.Votes != 1 {
		t.Errorf("Second event = %+v, want {%s 1}", second, sushi)
	}
}
