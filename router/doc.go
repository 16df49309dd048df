// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the livepoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, tallies, hub)

# Endpoints

Health:

	GET /health

Polls:

	POST /polls                  - Create poll with options
	GET  /polls/{pollId}         - Poll info with live counts

Voting:

	POST /polls/{pollId}/votes   - Cast or change a vote

Live results:

	GET /polls/{pollId}/results  - Server-Sent Events feed

# Handler Initialization

The router wires the change processor from its collaborators and
creates handler instances with dependency injection:

	processor := vote.NewProcessor(ledger.New(db), tallies, hub, sessions)
	votingHandler := handlers.NewVotingHandler(processor)

The tally store and fanout hub are shared with main, which rebuilds
the tallies from the ledger at startup.
*/
package router
