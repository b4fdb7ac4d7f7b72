// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import "encoding/json"

// Server → client events
const (
	EventPollCreated  = "poll:created"
	EventVoteUpdate   = "vote:update"
	EventParticipants = "participants:update"
	EventKicked       = "student:kicked"
	EventChat         = "chat:receive"
)

// Client → server messages
const (
	MessageJoin                = "join"
	MessageRequestParticipants = "request:participants"
	MessageChatSend            = "chat:send"
	MessageKick                = "student:kick"
)

// Event is one push to clients. Every event is self-contained so clients
// can apply them in any order.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Message is one frame received from a client.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Publisher fans an event out to every connected client. Delivery is
// best-effort: no acknowledgment, retry, or replay.
type Publisher interface {
	Publish(ev Event)
}
