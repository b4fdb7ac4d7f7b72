// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/live-poll/cliparse"
	"github.com/danielhkuo/live-poll/handlers"
	"github.com/danielhkuo/live-poll/ledger"
	"github.com/danielhkuo/live-poll/middleware"
	"github.com/danielhkuo/live-poll/mirror"
	"github.com/danielhkuo/live-poll/polls"
	"github.com/danielhkuo/live-poll/presence"
	"github.com/danielhkuo/live-poll/realtime"
	"github.com/danielhkuo/live-poll/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, hub *realtime.Hub, replicator mirror.Replicator) *http.ServeMux {
	mux := http.NewServeMux()

	// Services
	store := ledger.New(db)
	manager := polls.NewManager(store, hub, replicator)
	pipeline := voting.NewPipeline(store, hub, replicator)
	tracker := presence.NewTracker(hub)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(manager)
	votingHandler := handlers.NewVotingHandler(pipeline)
	resultsHandler := handlers.NewResultsHandler(manager, tracker)
	socketHandler := handlers.NewSocketHandler(hub, tracker, cfg.AllowedOrigins)
	var mirrorProbe handlers.Pinger
	if p, ok := replicator.(handlers.Pinger); ok {
		mirrorProbe = p
	}
	healthHandler := handlers.NewHealthHandler(store, mirrorProbe, hub)

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/detailed", middleware.WithLogging(healthHandler.Detailed))

	// Polls
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls/current", middleware.WithLogging(resultsHandler.CurrentPoll))
	mux.HandleFunc("GET /api/polls/history", middleware.WithLogging(resultsHandler.History))

	// Voting
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(votingHandler.SubmitVote))

	// Presence
	mux.HandleFunc("GET /api/participants", middleware.WithLogging(resultsHandler.Participants))

	// Real-time channel
	mux.HandleFunc("GET /ws", middleware.WithLogging(socketHandler.ServeWS))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("live-poll API v1"))
	})

	return mux
}
