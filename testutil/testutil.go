// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/db"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Each test gets its own file under t.TempDir(), so tests are isolated
// and nothing external (no postgres) is required to run the suite.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "livepoll_test.db") +
		"?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3333,
		DatabaseURL:   "file:test.db",
		DatabaseType:  "sqlite",
		SessionSecret: "test-session-secret",
	}
}

// CreateTestPoll creates a poll with options and returns the poll ID
// and option IDs in input order
func CreateTestPoll(t *testing.T, conn *sql.DB, title string, options []string) (pollID string, optionIDs []string) {
	t.Helper()

	pollID = uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll (id, title) VALUES ($1, $2)
	`, pollID, title)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for _, opt := range options {
		optionID := uuid.NewString()
		_, err := conn.Exec(`
			INSERT INTO poll_option (id, poll_id, title)
			VALUES ($1, $2, $3)
		`, optionID, pollID, opt)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
		optionIDs = append(optionIDs, optionID)
	}

	return pollID, optionIDs
}

// InsertTestVote writes a vote directly into the ledger table and
// returns its ID
func InsertTestVote(t *testing.T, conn *sql.DB, sessionID, pollID, optionID string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, session_id, poll_id, poll_option_id)
		VALUES ($1, $2, $3, $4)
	`, voteID, sessionID, pollID, optionID)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CountVotes returns the number of ledger rows for (pollID, optionID)
func CountVotes(t *testing.T, conn *sql.DB, pollID, optionID string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE poll_id = $1 AND poll_option_id = $2
	`, pollID, optionID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
