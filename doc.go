// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll API server.

Livepoll is a minimal polling service: create a poll with options,
cast or change a vote (one per browser session per poll), and watch
the counts move in real time over a Server-Sent Events feed.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=file:livepoll.db SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3333 -d "postgres://..." -t postgres

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite or postgres connection string
  - SESSION_SECRET (--session-secret): secret for session cookie HMAC

Optional settings:

  - PORT (-p): Server port (default: 3333)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ledger: authoritative vote store (one vote per session per poll)
  - tally: live per-option counts, rebuilt from the ledger at startup
  - fanout: per-poll broadcast of count changes
  - session: signed, self-certifying voter tokens
  - vote: the change processor orchestrating a submission
  - handlers: HTTP request handlers (polls, voting, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
