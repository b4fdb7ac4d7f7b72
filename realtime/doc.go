// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime fans out poll, roster, and chat events over WebSockets.

Every connected client receives every event; there is no per-room scoping.
Frames are JSON envelopes:

	{"event": "vote:update", "data": {...}}

A client that misses an event while disconnected reconciles by fetching
the current poll or roster after reconnecting.

# Hub

	hub := realtime.NewHub()
	client := hub.Register(conn)
	go client.WritePump()
	client.ReadPump(dispatch)

Publish never blocks: each client has a bounded queue and an event that
does not fit is dropped for that client.
*/
package realtime
