// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/tally"
)

type PollHandler struct {
	db      *sql.DB
	tallies *tally.Store
}

func NewPollHandler(db *sql.DB, tallies *tally.Store) *PollHandler {
	return &PollHandler{db: db, tallies: tallies}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least 2 options are required")
		return
	}
	for _, opt := range req.Options {
		if strings.TrimSpace(opt) == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "option titles must not be empty")
			return
		}
	}

	pollID := uuid.NewString()

	// Insert poll and options together; a poll without its options is
	// not a valid state
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, title, created_at)
		VALUES ($1, $2, $3)
	`, pollID, req.Title, time.Now())

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	for _, opt := range req.Options {
		_, err = tx.Exec(`
			INSERT INTO poll_option (id, poll_id, title)
			VALUES ($1, $2, $3)
		`, uuid.NewString(), pollID, opt)

		if err != nil {
			slog.Error("failed to insert option", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "options", len(req.Options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: pollID,
	})
}

// GetPoll handles GET /polls/:pollId
// Returns the poll with its options and live vote counts
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId is required")
		return
	}
	if _, err := uuid.Parse(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId must be a valid uuid")
		return
	}

	var poll models.Poll
	err := h.db.QueryRow(`
		SELECT id, title, created_at FROM poll WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Title, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, title FROM poll_option WHERE poll_id = $1 ORDER BY id
	`, pollID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	options := []models.OptionDetail{}
	for rows.Next() {
		var opt models.OptionDetail
		if err := rows.Scan(&opt.ID, &opt.Title); err != nil {
			slog.Error("failed to scan option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		options = append(options, opt)
	}

	// Counts come from the tally projection, not a ledger scan
	counts := h.tallies.Snapshot(pollID)
	for i := range options {
		options[i].Votes = counts[options[i].ID]
	}

	middleware.JSONResponse(w, http.StatusOK, models.GetPollResponse{
		Poll: models.PollDetail{
			ID:      poll.ID,
			Title:   poll.Title,
			Options: options,
		},
	})
}
