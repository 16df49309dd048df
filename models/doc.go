// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, options ([]string)
  - SubmitVoteRequest: pollOptionId

# Response Types

Types for JSON responses:

  - CreatePollResponse: pollId
  - SubmitVoteResponse: sessionId, votes
  - GetPollResponse: poll with per-option live counts
  - ErrorResponse: error, message

JSON field names follow the public API convention (camelCase).

# Domain Types

Internal data structures:

  - Poll: poll metadata
  - Option: voting option with title
  - Vote: the one current vote of a session on a poll

Vote.SessionID is never serialized; a session token identifies a
browser, not a user, and does not leave the server once stored.

# Constants

Session cookie settings:

	SessionCookieName   = "sessionId"
	SessionCookieMaxAge = 30 days (seconds)
*/
package models
