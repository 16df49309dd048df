package models

import "time"

// SessionCookieName is the cookie carrying the signed voter session token.
const SessionCookieName = "sessionId"

// SessionCookieMaxAge is the client-side cookie lifetime in seconds (30 days).
// The server does not enforce expiry; the token stays valid as a ledger key.
const SessionCookieMaxAge = 60 * 60 * 24 * 30

// Request types

type CreatePollRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

type SubmitVoteRequest struct {
	PollOptionID string `json:"pollOptionId"`
}

// Response types

type CreatePollResponse struct {
	PollID string `json:"pollId"`
}

type SubmitVoteResponse struct {
	SessionID string `json:"sessionId"`
	Votes     int64  `json:"votes"`
}

type GetPollResponse struct {
	Poll PollDetail `json:"poll"`
}

type PollDetail struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Options []OptionDetail `json:"options"`
}

type OptionDetail struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Votes int64  `json:"votes"`
}

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Title  string `json:"title"`
}

type Vote struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"-"` // Never expose in JSON
	PollID       string    `json:"poll_id"`
	PollOptionID string    `json:"poll_option_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
