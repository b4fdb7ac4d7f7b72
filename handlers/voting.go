// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/voting"
)

type VotingHandler struct {
	pipeline *voting.Pipeline
}

func NewVotingHandler(pipeline *voting.Pipeline) *VotingHandler {
	return &VotingHandler{pipeline: pipeline}
}

// SubmitVote handles POST /api/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, models.CodeValidation, "Invalid JSON")
		return
	}

	vote, err := h.pipeline.SubmitVote(r.Context(), req)
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusCreated, vote)
	case errors.Is(err, voting.ErrValidation):
		middleware.CodedErrorResponse(w, http.StatusBadRequest, models.CodeValidation, err.Error())
	case errors.Is(err, voting.ErrInvalidOption):
		middleware.CodedErrorResponse(w, http.StatusBadRequest, models.CodeInvalidOption, "Option does not belong to this poll")
	case errors.Is(err, voting.ErrAlreadyVoted):
		middleware.CodedErrorResponse(w, http.StatusConflict, models.CodeAlreadyVoted, "You have already voted in this poll")
	case errors.Is(err, voting.ErrPollNotActive):
		middleware.CodedErrorResponse(w, http.StatusConflict, models.CodePollNotActive, "Poll is not active")
	default:
		slog.Error("failed to submit vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
	}
}
