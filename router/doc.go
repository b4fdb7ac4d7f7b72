// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the live poll API.

# Route Registration

NewRouter builds the services over one ledger and one hub and returns a
configured http.ServeMux:

	mux := router.NewRouter(db, cfg, hub, replicator)

# Endpoints

Health:

	GET /health
	GET /health/detailed

Polls:

	POST /api/polls         - Create poll and close the previous one
	GET  /api/polls/current - Open poll with live counts, or null
	GET  /api/polls/history - Closed polls, newest first

Voting and presence:

	POST /api/votes        - Submit a vote
	GET  /api/participants - Connected student names

Real-time:

	GET /ws - WebSocket upgrade
*/
package router
