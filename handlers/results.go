// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/fanout"
	"github.com/danielhkuo/livepoll/middleware"
)

type ResultsHandler struct {
	db  *sql.DB
	hub *fanout.Hub
}

func NewResultsHandler(db *sql.DB, hub *fanout.Hub) *ResultsHandler {
	return &ResultsHandler{db: db, hub: hub}
}

// StreamResults handles GET /polls/:pollId/results
// Streams live {pollOptionId, votes} events for the poll as
// Server-Sent Events until the client disconnects. The feed starts at
// subscription time; clients wanting the current state read the poll
// first and then follow the stream.
func (h *ResultsHandler) StreamResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId is required")
		return
	}
	if _, err := uuid.Parse(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId must be a valid uuid")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)
	`, pollID).Scan(&exists)

	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	// Subscribe before writing headers so no event published after the
	// stream opens is missed
	sub := h.hub.Subscribe(pollID)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	slog.Info("results stream opened", "poll_id", pollID)

	for {
		select {
		case <-r.Context().Done():
			slog.Info("results stream closed", "poll_id", pollID)
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				slog.Error("failed to encode event", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
