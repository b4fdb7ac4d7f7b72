// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub is the single broadcast domain shared by teacher and student clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Register adds a connection to the hub and returns its client. The caller
// runs WritePump and ReadPump.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := newClient(uuid.NewString(), h, conn)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.close()
		return c
	}
	h.clients[c.id] = c
	total := len(h.clients)
	h.mu.Unlock()

	slog.Info("client connected", "conn_id", c.id, "clients", total)
	return c
}

// Unregister removes the client and stops its write pump.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	total := len(h.clients)
	h.mu.Unlock()

	c.close()
	if ok {
		slog.Info("client disconnected", "conn_id", c.id, "clients", total)
	}
}

// Publish encodes ev once and queues it for every client.
func (h *Hub) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to encode event", "event", ev.Name, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if !c.enqueue(payload) {
			slog.Warn("dropped event for slow client", "event", ev.Name, "conn_id", id)
		}
	}
}

// SendTo queues ev for a single connection.
func (h *Hub) SendTo(connID string, ev Event) bool {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to encode event", "event", ev.Name, "error", err)
		return false
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	return c.enqueue(payload)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
