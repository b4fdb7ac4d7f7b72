// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/models"
	"github.com/danielhkuo/live-poll/polls"
	"github.com/danielhkuo/live-poll/presence"
)

type ResultsHandler struct {
	manager *polls.Manager
	tracker *presence.Tracker
	now     func() time.Time
}

func NewResultsHandler(manager *polls.Manager, tracker *presence.Tracker) *ResultsHandler {
	return &ResultsHandler{manager: manager, tracker: tracker, now: time.Now}
}

// CurrentPoll handles GET /api/polls/current
// Responds with null when no poll is open.
func (h *ResultsHandler) CurrentPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.manager.ActivePoll(r.Context())
	if err != nil {
		slog.Error("failed to load active poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if poll == nil {
		middleware.JSONResponse(w, http.StatusOK, nil)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CurrentPollResponse{
		Poll:        *poll,
		SecondsLeft: int(poll.TimeLeft(h.now()) / time.Second),
	})
}

// History handles GET /api/polls/history
func (h *ResultsHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.manager.History(r.Context())
	if err != nil {
		slog.Error("failed to load poll history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, history)
}

// Participants handles GET /api/participants
func (h *ResultsHandler) Participants(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.tracker.Roster())
}
