// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/fanout"
	"github.com/danielhkuo/livepoll/handlers"
	"github.com/danielhkuo/livepoll/ledger"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/session"
	"github.com/danielhkuo/livepoll/tally"
	"github.com/danielhkuo/livepoll/vote"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, tallies *tally.Store, hub *fanout.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the vote change processor with injected service handles
	sessions := session.NewManager(cfg.SessionSecret)
	processor := vote.NewProcessor(ledger.New(db), tallies, hub, sessions)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, tallies)
	votingHandler := handlers.NewVotingHandler(processor)
	resultsHandler := handlers.NewResultsHandler(db, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{pollId}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting
	mux.HandleFunc("POST /polls/{pollId}/votes", middleware.WithLogging(votingHandler.SubmitVote))

	// Live results (SSE)
	mux.HandleFunc("GET /polls/{pollId}/results", middleware.WithLogging(resultsHandler.StreamResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return mux
}
