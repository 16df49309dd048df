// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/vote"
)

type VotingHandler struct {
	processor *vote.Processor
}

func NewVotingHandler(processor *vote.Processor) *VotingHandler {
	return &VotingHandler{processor: processor}
}

// SubmitVote handles POST /polls/:pollId/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId is required")
		return
	}
	if _, err := uuid.Parse(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId must be a valid uuid")
		return
	}

	// Parse request
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PollOptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollOptionId is required")
		return
	}
	if _, err := uuid.Parse(req.PollOptionID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollOptionId must be a valid uuid")
		return
	}

	// The session cookie is optional: absent on a client's first-ever
	// vote. A bad signature is handled downstream as no cookie.
	token := ""
	if c, err := r.Cookie(models.SessionCookieName); err == nil {
		token = c.Value
	}

	res, err := h.processor.SubmitVote(pollID, req.PollOptionID, token)
	if err != nil {
		switch err {
		case vote.ErrDuplicateVote:
			middleware.ErrorResponse(w, http.StatusBadRequest, "You already voted in this poll.")
		case vote.ErrInvalidReference:
			middleware.ErrorResponse(w, http.StatusBadRequest, "Poll or option not found")
		case vote.ErrVoteConflict:
			middleware.ErrorResponse(w, http.StatusConflict, "Vote submission conflicted, please retry")
		default:
			slog.Error("failed to submit vote", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		}
		return
	}

	if res.Minted {
		http.SetCookie(w, &http.Cookie{
			Name:     models.SessionCookieName,
			Value:    res.SessionID,
			Path:     "/",
			MaxAge:   models.SessionCookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		SessionID: res.SessionID,
		Votes:     res.Votes,
	})
}
