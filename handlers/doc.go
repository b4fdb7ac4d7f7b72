// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP and WebSocket handlers for the live poll API.

# Handler Types

Each handler is a thin struct over a service:

  - PollHandler: poll creation (polls.Manager)
  - VotingHandler: vote submission (voting.Pipeline)
  - ResultsHandler: current poll, history and roster
  - SocketHandler: the /ws endpoint (realtime.Hub, presence.Tracker)
  - HealthHandler: liveness and dependency checks

# REST Endpoints

	POST /api/polls          → CreatePoll (closes the previous poll)
	GET  /api/polls/current  → CurrentPoll (null when none is open)
	GET  /api/polls/history  → History (closed polls, newest first)
	POST /api/votes          → SubmitVote
	GET  /api/participants   → Participants

Errors are JSON with a machine-readable code:

	400 {"code": "validation"}       malformed or incomplete request
	400 {"code": "invalid_option"}   option does not belong to the poll
	409 {"code": "already_voted"}    one vote per student per poll
	409 {"code": "poll_not_active"}  poll is closed or unknown

# WebSocket Protocol

Every frame is {"event": name, "data": payload}. Clients send:

	join                  {"name": "Ann", "role": "student"}
	request:participants  (no data; answered to the sender only)
	chat:send             {"sender": "Ann", "text": "hi"}
	student:kick          "Ann"

and receive poll:created, vote:update, participants:update,
student:kicked and chat:receive.
*/
package handlers
